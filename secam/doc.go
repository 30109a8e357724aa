// Package secam implements the secamiz0r filter: a per-frame RGBA effect
// that imitates an analog SECAM picture suffering from noise and "SECAM
// fire", the bright horizontal chroma streaks seen on weak signals.
//
// # Pipeline
//
// Every pair of scanlines goes through four stages, all working in the
// destination buffer:
//
//	RGBA rows → encode → detect → filter → decode → RGBA rows
//
// The stages are:
//
//   - encode converts to luma plus one chroma axis per row: V on even
//     rows, U on odd rows, each shared by two horizontal pixels.
//   - detect tracks luma volatility along the row and leaves sparks in the
//     otherwise unused third channel where it crosses the fire threshold.
//   - filter turns sparks into fading chroma runs, adds luma and chroma
//     noise and a single-tap luma echo.
//   - decode blurs luma over 4 and chroma over 8 forward pixels and
//     converts back to RGB.
//
// Alpha is copied from the source and never modified.
//
// # Usage
//
//	f, err := secam.New(640, 480)
//	if err != nil {
//	    return err
//	}
//	f.SetFireIntensity(0.4)
//	if err := f.Update(t, src, dst); err != nil {
//	    return err
//	}
//
// # Parameters
//
// Two floating-point parameters are exposed by name and index, matching
// the plugin table returned by Params:
//
//   - "Fire intensity" (default 0.125) sets the fire threshold
//     1024 - trunc(x²·256) and the fire seed trunc(x·1024).
//   - "Noise intensity" (default 0.125) sets the luma noise
//     trunc(x²·256) in [16,224], the chroma noise trunc(x·256) in [32,256]
//     and the echo offset trunc(x·8) in [2,16].
//
// Because of those lower bounds some noise is always present, even at
// zero intensity.
//
// # Deterministic Testing
//
// Each stage seeds its row streams from the filter's Entropy source. Tests
// inject a fixed generator:
//
//	opts := secam.DefaultOptions()
//	opts.Entropy = rand.NewPCG(1, 2)
//	f, _ := secam.NewWithOptions(w, h, opts)
//
// # Thread Safety
//
// A Filter is NOT safe for concurrent use. Update performs no allocation
// and no I/O, and runs to completion on the calling goroutine.
package secam
