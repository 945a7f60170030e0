package parser

// EMUPerPixel is the number of EMUs per pixel at 96 DPI (914400 EMU per inch).
const EMUPerPixel = 9525

// EMUToPixels converts drawing offsets and extents from EMU to pixels.
func EMUToPixels(emu int64) int {
	return int(emu / EMUPerPixel)
}
