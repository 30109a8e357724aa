package secam

// Reconstruction windows. Both look forward from the current pixel and
// repeat the last column past the row end; chroma is blurred twice as
// wide as luma.
const (
	lumaLoss   = 4
	chromaLoss = 8
)

// rgbFromYUV writes R, G and B for [0,1]-normalized luma and chroma.
func rgbFromYUV(dst []byte, y, u, v float32) {
	Y, U, V := float64(y), float64(u), float64(v)
	dst[0] = clampByte(int32(float64(298.082*Y) + float64(408.583*V) - 222.921))
	dst[1] = clampByte(int32(float64(298.082*Y) - float64(100.291*U) - float64(208.120*V) + 135.576))
	dst[2] = clampByte(int32(float64(298.082*Y) + float64(516.412*U) - 276.836))
}

// decodePair turns the filtered pair back into RGB. Pixel i only reads
// columns i and later, so results can overwrite the row as it goes.
func decodePair(p encodedPair) rgbPair {
	even, odd := p.even, p.odd
	last := p.width - 1

	for i := 0; i < p.width; i++ {
		var yEven, yOdd, u, v float32

		for j := 0; j < lumaLoss; j++ {
			idx := min(i+j, last) * bytesPerPixel
			yEven += float32(even[idx+chLuma])
			yOdd += float32(odd[idx+chLuma])
		}

		for j := 0; j < chromaLoss; j++ {
			idx := min(i+j, last) * bytesPerPixel
			u += float32(odd[idx+chChroma])
			v += float32(even[idx+chChroma])
		}

		yEven /= 255 * lumaLoss
		yOdd /= 255 * lumaLoss
		u /= 255 * chromaLoss
		v /= 255 * chromaLoss

		px := i * bytesPerPixel
		rgbFromYUV(even[px:], yEven, u, v)
		rgbFromYUV(odd[px:], yOdd, u, v)
	}

	return rgbPair{even: even, odd: odd}
}
