package color

// sRGBToLinearLUT maps every 8-bit sRGB value to linear light.
var sRGBToLinearLUT [256]float64

func init() {
	for i := range sRGBToLinearLUT {
		sRGBToLinearLUT[i] = SRGBToLinear(float64(i) / 255)
	}
}

// decodeSRGB8 converts an sRGB value on the 0-255 scale to linear light.
// Whole values in range use the table; anything else is computed.
func decodeSRGB8(v float64) float64 {
	if v >= 0 && v <= 255 {
		if i := int(v); float64(i) == v {
			return sRGBToLinearLUT[i]
		}
	}
	return SRGBToLinear(v / 255)
}
