package secam

// Detector constants.
const (
	detectNoiseRange = 512
	sparkRange       = 80
)

// detectPair marks fire origins in the spark channel of both rows, each
// row driven by its own random stream.
func (f *Filter) detectPair(p encodedPair) encodedPair {
	even := NewStream(seed(f.entropy))
	odd := NewStream(seed(f.entropy))

	f.detectRow(p.even, p.width, &even)
	f.detectRow(p.odd, p.width, &odd)

	return p
}

// detectRow scans left to right keeping a decaying volatility estimate of
// the luma channel, perturbed by the stream. Wherever the estimate exceeds
// the fire threshold the pixel receives a spark of random strength in
// [0, sparkRange); a zero strength leaves it unmarked.
//
// The estimate starts at a random value below the fire seed, so bright
// sparking is possible even over a flat run at the start of a row.
func (f *Filter) detectRow(row []byte, width int, rnd *Stream) {
	var oscillation int32
	if f.fireSeed > 0 {
		oscillation = umod(rnd.Value(), f.fireSeed)
	}

	for i := 1; i < width; i++ {
		cur := int32(row[i*bytesPerPixel+chLuma])
		prev := int32(row[(i-1)*bytesPerPixel+chLuma])

		oscillation += abs32(cur - prev - umod(rnd.Value(), detectNoiseRange))

		if oscillation > f.fireThreshold {
			row[i*bytesPerPixel+chSpark] = uint8(umod(rnd.Value(), sparkRange))
		}

		rnd.Next()
		oscillation /= 2
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
