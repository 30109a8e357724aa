package secam

// SignPolicy selects how a newly triggered fire run picks its polarity.
type SignPolicy int

const (
	// SignConstant keeps every fire run positive.
	SignConstant SignPolicy = iota
	// SignDynamic flips the run negative when the chroma is already
	// positive over a dark pixel (luma below darkLuma), giving a
	// self-correcting flicker.
	SignDynamic
)

// String returns the policy name used on command lines.
func (p SignPolicy) String() string {
	switch p {
	case SignConstant:
		return "constant"
	case SignDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

const (
	fireFade = 1
	darkLuma = 64
)

// fire is one chroma axis' running perturbation.
type fire struct {
	run  int32
	sign int32
}

// apply adds the active run to chroma and fades it.
func (fr *fire) apply(chroma int32) int32 {
	if fr.run > 0 {
		chroma += fr.run * fr.sign
		fr.run -= fireFade
	}
	return chroma
}

// ignite (re)starts the run with the given spark strength. The sign is
// chosen only when no run is active.
func (fr *fire) ignite(spark, chroma, luma int32, policy SignPolicy) {
	if fr.run <= 0 && policy == SignDynamic {
		if chroma > 0 && luma < darkLuma {
			fr.sign = -1
		} else {
			fr.sign = +1
		}
	}
	fr.run = spark
}

// filterPair applies fire runs, additive noise and the luma echo to both
// rows in a single left-to-right pass. The odd row carries U, the even
// row V, and each axis has its own fire.
func (f *Filter) filterPair(p encodedPair) encodedPair {
	rEven := NewStream(seed(f.entropy))
	rOdd := NewStream(seed(f.entropy))

	uFire := fire{sign: +1}
	vFire := fire{sign: +1}

	even, odd := p.even, p.odd
	echo := int(f.echoOffset)

	for i := 0; i < p.width; i++ {
		px := i * bytesPerPixel

		yEven := int32(even[px+chLuma])
		yOdd := int32(odd[px+chLuma])

		u := int32(odd[px+chChroma]) - 128
		v := int32(even[px+chChroma]) - 128

		zEven := int32(even[px+chSpark])
		zOdd := int32(odd[px+chSpark])

		u = uFire.apply(u)
		v = vFire.apply(v)

		if zOdd > 0 {
			uFire.ignite(zOdd, u, yOdd, f.signPolicy)
		}
		if zEven > 0 {
			vFire.ignite(zEven, v, yEven, f.signPolicy)
		}

		if f.lumaNoise > 0 {
			yEven += rEven.Value() % f.lumaNoise
			yOdd += rOdd.Value() % f.lumaNoise
		}

		if f.chromaNoise > 0 {
			gain := 2 * (float32(f.chromaNoise) / 256)
			u += int32(float32(u)*gain) + rOdd.Value()%f.chromaNoise
			v += int32(float32(v)*gain) + rEven.Value()%f.chromaNoise
		}

		// The tap reads luma already written earlier in this pass.
		if echo >= 1 && i >= echo {
			tap := (i - echo) * bytesPerPixel
			yEven += (yEven - int32(even[tap+chLuma])) / 2
			yOdd += (yOdd - int32(odd[tap+chLuma])) / 2
		}

		even[px+chLuma] = clampByte(yEven)
		even[px+chChroma] = clampByte(v + 128)

		odd[px+chLuma] = clampByte(yOdd)
		odd[px+chChroma] = clampByte(u + 128)

		rEven.Next()
		rOdd.Next()
	}

	return p
}

func clampInt32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampByte(v int32) uint8 {
	return uint8(clampInt32(v, 0, 255))
}
