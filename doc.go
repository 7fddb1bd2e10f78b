// Package composite blends a stack of images into one, the way an image
// editor flattens layers.
//
// # Overview
//
// A stack is an ordered list of images, bottom first, and one blend mode
// per image above the bottom one. Mode i blends image i+1 onto the result
// of everything below it. The 25 modes are the 14 Porter-Duff operators
// (Clear, Source, Over, ..., Saturate) and the 11 separable PDF blend
// modes (Multiply, Screen, Overlay, ..., Exclusion).
//
// # Quick Start
//
//	base, _ := composite.Load("photo.jpg")
//	logo, _ := composite.Load("logo.png")
//
//	out, err := composite.Composite2(base, logo, composite.BlendOver)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = out.Save("out.png")
//
// # Normalization
//
// Images need not agree before they are stacked. Build converts them to
// a common compositing space, sample format and size, and gives an opaque
// alpha band to the topmost image lacking one (images below it are
// hidden and dropped). See Build for the exact rules.
//
// # Output
//
// The output has the largest input size, the compositing space and an
// alpha band. Samples are float unless an input is double, or in the
// common input format with WithNativeFormat. Integer results are rounded
// and clipped to their range; float results are never clipped.
//
// # Concurrency
//
// Operation.Run splits the output into 64x64 tiles and generates them on
// a worker pool. Operation.GenerateTile computes a single region on the
// caller's goroutine. An Operation is immutable and safe for concurrent
// use.
package composite
