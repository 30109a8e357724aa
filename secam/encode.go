package secam

// Studio-range RGB to YUV coefficients on [0,1]-normalized input.
//
// Products are wrapped in float64() where they feed a sum: an explicit
// conversion forbids the compiler from fusing multiply-add, which would
// move results sitting on an integer boundary.

func unpackRGB(px []byte) (r, g, b float32) {
	return float32(px[0]) / 255, float32(px[1]) / 255, float32(px[2]) / 255
}

func lumaFromRGB(r, g, b float32) uint8 {
	return uint8(16.0 + float64(65.7380*float64(r)) + float64(129.057*float64(g)) + float64(25.0640*float64(b)))
}

func uFromRGB(r, g, b float32) uint8 {
	return uint8(128.0 - float64(37.9450*float64(r)) - float64(74.4940*float64(g)) + float64(112.439*float64(b)))
}

func vFromRGB(r, g, b float32) uint8 {
	return uint8(128.0 + float64(112.439*float64(r)) - float64(94.1540*float64(g)) - float64(18.2850*float64(b)))
}

// encodePair converts two source rows into luma/chroma rows in dst.
//
// Pixels are taken in horizontal pairs. Each pixel keeps its own luma;
// the pair shares one chroma value per row, V computed from the even
// row's average colour and U from the odd row's. The spark channel is
// cleared and alpha copied through. With an odd width the last column
// pairs with itself.
//
// Each 2-pixel block is read completely before it is written, so src and
// dst may be the same rows.
func encodePair(dstEven, dstOdd []byte, src rgbaPair, width int) encodedPair {
	for i := 0; i < width; i += 2 {
		j := i + 1
		if j >= width {
			j = i
		}
		p0, p1 := i*bytesPerPixel, j*bytesPerPixel

		r0e, g0e, b0e := unpackRGB(src.even[p0:])
		r1e, g1e, b1e := unpackRGB(src.even[p1:])
		r0o, g0o, b0o := unpackRGB(src.odd[p0:])
		r1o, g1o, b1o := unpackRGB(src.odd[p1:])

		evenR, evenG, evenB := (r0e+r1e)/2, (g0e+g1e)/2, (b0e+b1e)/2
		oddR, oddG, oddB := (r0o+r1o)/2, (g0o+g1o)/2, (b0o+b1o)/2

		y0e := lumaFromRGB(r0e, g0e, b0e)
		y1e := lumaFromRGB(r1e, g1e, b1e)
		y0o := lumaFromRGB(r0o, g0o, b0o)
		y1o := lumaFromRGB(r1o, g1o, b1o)
		u := uFromRGB(oddR, oddG, oddB)
		v := vFromRGB(evenR, evenG, evenB)

		a0e, a1e := src.even[p0+chAlpha], src.even[p1+chAlpha]
		a0o, a1o := src.odd[p0+chAlpha], src.odd[p1+chAlpha]

		// p1 is written first so that p0 wins when the last column pairs
		// with itself.
		putEncoded(dstEven[p1:], y1e, v, a1e)
		putEncoded(dstEven[p0:], y0e, v, a0e)
		putEncoded(dstOdd[p1:], y1o, u, a1o)
		putEncoded(dstOdd[p0:], y0o, u, a0o)
	}

	return encodedPair{even: dstEven, odd: dstOdd, width: width}
}

func putEncoded(px []byte, luma, chroma, alpha uint8) {
	px[chLuma] = luma
	px[chChroma] = chroma
	px[chSpark] = 0
	px[chAlpha] = alpha
}
