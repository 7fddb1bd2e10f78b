package blend

// Blend composites the incoming pixel a onto the accumulator b in place.
//
// Both slices hold bands+1 normalized values with alpha last, and both must
// already be premultiplied. On return b holds the blended channels and the
// result alpha.
//
// Blend panics on an invalid mode; modes are validated before any pixel
// work starts.
func Blend(mode BlendMode, b, a []float64) {
	bands := len(b) - 1

	var aR float64
	if mode.IsSeparable() {
		aR = pdf(mode, b, a, bands)
	} else {
		aR = porterDuff(mode, b, a, bands)
	}

	b[bands] = aR
}
