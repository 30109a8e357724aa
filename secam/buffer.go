package secam

// Channel layout of one packed pixel at each stage boundary.
//
//	stage        ch0    ch1                      ch2     ch3
//	rgbaPair     R      G                        B       A
//	encodedPair  luma   chroma (V even, U odd)   spark   A
//	rgbPair      R      G                        B       A
//
// ch3 is written once by the encoder (copied from the source) and never
// touched again. Every stage type is a view over caller memory.
const (
	chLuma   = 0
	chChroma = 1
	chSpark  = 2
	chAlpha  = 3

	bytesPerPixel = 4
)

// rgbaPair is a read-only view of two adjacent source rows.
type rgbaPair struct {
	even, odd []byte
}

// encodedPair is the destination row pair after encoding. The detector
// writes sparks into ch2 and the filter rewrites ch0 and ch1 in place.
type encodedPair struct {
	even, odd []byte
	width     int
}

// rgbPair is the destination row pair after decoding; its contents are final.
type rgbPair struct {
	even, odd []byte
}

// rowPair slices rows y and y+1 out of a packed frame buffer.
func rowPair(buf []byte, width, y int) (even, odd []byte) {
	stride := width * bytesPerPixel
	even = buf[y*stride : (y+1)*stride]
	odd = buf[(y+1)*stride : (y+2)*stride]
	return even, odd
}
