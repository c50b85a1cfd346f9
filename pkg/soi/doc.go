// Package soi renders escape-time fractals with Simultaneous Orbit Iteration.
//
// Instead of iterating every pixel independently, the renderer tracks nine
// key orbits (corners, edge midpoints and center) of a rectangular region and
// predicts every other orbit of the region by quadratic Newton interpolation
// over those keys. Four test orbits validate the prediction after each joint
// step. While the prediction holds the region keeps iterating as a whole;
// when it breaks down, or a key orbit escapes, the region is split into four
// children seeded from the interpolated field one step before the failure.
// Small regions are finished by a scanning renderer that iterates pixels
// individually from interpolated seeds, using run-length detection to skip
// most of the work inside same-colored runs.
//
// Basic usage:
//
//	r := soi.NewRenderer(soi.WithMaxIterations(256))
//	fb := soi.NewFramebuffer(640, 480)
//	status, err := r.Render(ctx, fb, soi.Frame{
//	    Min:    complex(-2, -1.5),
//	    Max:    complex(1, 1.5),
//	    Pixels: types.Recti{W: 640, H: 480},
//	})
//
// Palette mapping is left to the caller: plotted colors are iteration counts,
// with BasinColor marking points classified as interior.
package soi
