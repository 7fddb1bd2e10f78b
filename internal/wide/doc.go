// Package wide provides a four-lane float32 vector for per-pixel compositing.
//
// F32x4 holds one three-band pixel plus its alpha. Operations are plain
// loops over a fixed-size array, which the compiler vectorizes on SSE and
// NEON targets without assembly. Comparisons yield an M32x4 and branches
// become Select:
//
//	b := wide.F32x4{r, g, bl, a}.Div(maxBand)
//	lit := b.Le(wide.SplatF32x4(0.5)).Select(dark, light)
package wide
