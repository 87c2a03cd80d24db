package core

// Color is a linear RGB triple. Channels are unbounded while light is being
// accumulated and only clamped when quantized.
type Color struct {
	R, G, B float32
}

// NewColor creates a new Color
func NewColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Scale multiplies every channel by s
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Modulate returns the channel-wise product of two colors
func (c Color) Modulate(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Bytes quantizes the color to 8 bits per channel, clamping to [0, 255]
func (c Color) Bytes() (r, g, b uint8) {
	return quantize(c.R), quantize(c.G), quantize(c.B)
}

// quantize maps a channel value to a byte: min(max(v*255, 0), 255), truncated.
func quantize(v float32) uint8 {
	scaled := v * 255
	if !(scaled > 0) { // also catches NaN
		return 0
	}
	if scaled >= 255 {
		return 255
	}
	return uint8(scaled)
}
