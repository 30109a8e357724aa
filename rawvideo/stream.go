// Package rawvideo reads and writes streams of packed RGBA frames, the
// layout of ffmpeg's "-f rawvideo -pix_fmt rgba". Streams may be wrapped
// in zstd compression.
package rawvideo

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
)

// Reader yields consecutive frames of a fixed size.
type Reader struct {
	r         io.Reader
	dec       *zstd.Decoder
	frameSize int
	frames    uint64
}

// NewReader reads width x height frames from r. With compressed set the
// stream is decoded as zstd.
func NewReader(r io.Reader, width, height int, compressed bool) (*Reader, error) {
	size, err := ValidateSize(width, height)
	if err != nil {
		return nil, err
	}

	rd := &Reader{r: r, frameSize: size}
	if compressed {
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		rd.dec = dec
		rd.r = dec
	}

	logrus.WithFields(logrus.Fields{
		"function":   "rawvideo.NewReader",
		"width":      width,
		"height":     height,
		"frame_size": size,
		"compressed": compressed,
	}).Debug("Raw video reader created")

	return rd, nil
}

// FrameSize returns the byte length of one frame.
func (rd *Reader) FrameSize() int { return rd.frameSize }

// Frames returns the number of frames read so far.
func (rd *Reader) Frames() uint64 { return rd.frames }

// ReadFrame fills dst with the next frame. It returns io.EOF at a clean
// end of stream and ErrShortFrame if the stream stops inside a frame.
func (rd *Reader) ReadFrame(dst []byte) error {
	if len(dst) < rd.frameSize {
		return fmt.Errorf("%w: buffer %d bytes, frame %d", ErrInvalidSize, len(dst), rd.frameSize)
	}

	_, err := io.ReadFull(rd.r, dst[:rd.frameSize])
	switch {
	case err == nil:
		rd.frames++
		return nil
	case errors.Is(err, io.EOF):
		return io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: frame %d", ErrShortFrame, rd.frames)
	default:
		return fmt.Errorf("read frame %d: %w", rd.frames, err)
	}
}

// Close releases the zstd decoder, if any. The underlying reader is not closed.
func (rd *Reader) Close() error {
	if rd.dec != nil {
		rd.dec.Close()
		rd.dec = nil
	}
	return nil
}

// Writer emits frames of a fixed size.
type Writer struct {
	w         io.Writer
	enc       *zstd.Encoder
	frameSize int
	frames    uint64
}

// NewWriter writes width x height frames to w, zstd-compressed when
// compressed is set.
func NewWriter(w io.Writer, width, height int, compressed bool) (*Writer, error) {
	size, err := ValidateSize(width, height)
	if err != nil {
		return nil, err
	}

	wr := &Writer{w: w, frameSize: size}
	if compressed {
		enc, err := zstd.NewWriter(w,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedFastest),
		)
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		wr.enc = enc
		wr.w = enc
	}

	logrus.WithFields(logrus.Fields{
		"function":   "rawvideo.NewWriter",
		"width":      width,
		"height":     height,
		"frame_size": size,
		"compressed": compressed,
	}).Debug("Raw video writer created")

	return wr, nil
}

// Frames returns the number of frames written so far.
func (wr *Writer) Frames() uint64 { return wr.frames }

// WriteFrame writes exactly one frame from src.
func (wr *Writer) WriteFrame(src []byte) error {
	if len(src) < wr.frameSize {
		return fmt.Errorf("%w: buffer %d bytes, frame %d", ErrInvalidSize, len(src), wr.frameSize)
	}
	if _, err := wr.w.Write(src[:wr.frameSize]); err != nil {
		return fmt.Errorf("write frame %d: %w", wr.frames, err)
	}
	wr.frames++
	return nil
}

// Close flushes the zstd stream, if any. The underlying writer is not closed.
func (wr *Writer) Close() error {
	if wr.enc == nil {
		return nil
	}
	err := wr.enc.Close()
	wr.enc = nil
	return err
}
