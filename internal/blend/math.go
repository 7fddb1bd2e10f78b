package blend

// Premultiply scales the colour bands of px by its alpha (the last value).
func Premultiply(px []float64) {
	bands := len(px) - 1
	a := px[bands]
	for i := range bands {
		px[i] *= a
	}
}

// Unpremultiply divides the colour bands of px by its alpha. A pixel with
// zero alpha has all colour bands set to zero rather than divided.
func Unpremultiply(px []float64) {
	bands := len(px) - 1
	a := px[bands]
	if a == 0 {
		for i := range bands {
			px[i] = 0
		}
		return
	}
	for i := range bands {
		px[i] /= a
	}
}
