package timeline

// PixelsPerMs returns the horizontal scale of a canvas.
func PixelsPerMs(canvas TimeWindow, canvasWidth float64) float64 {
	return canvasWidth / float64(canvas.Duration())
}

// MsPerPixel returns the inverse of PixelsPerMs.
func MsPerPixel(canvas TimeWindow, canvasWidth float64) float64 {
	return float64(canvas.Duration()) / canvasWidth
}

// TimeToX maps a timestamp to an x offset on the canvas. It does not clamp.
func TimeToX(canvas TimeWindow, canvasWidth float64, t int64) float64 {
	return float64(t-canvas.Start) * PixelsPerMs(canvas, canvasWidth)
}

// XToTime maps an x offset on the canvas back to a timestamp. It does not clamp.
func XToTime(canvas TimeWindow, canvasWidth float64, x float64) float64 {
	return x*MsPerPixel(canvas, canvasWidth) + float64(canvas.Start)
}
