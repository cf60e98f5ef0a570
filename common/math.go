package common

import "math"

// Fit scales a srcW x srcH rectangle to fit inside dstW x dstH, keeping its
// aspect ratio, and returns the scale and the top-left offset that centers it.
func Fit(srcW, srcH, dstW, dstH float64) (scale, offX, offY float64) {
	if srcW <= 0 || srcH <= 0 {
		return 1, 0, 0
	}
	scale = math.Min(dstW/srcW, dstH/srcH)
	offX = (dstW - srcW*scale) / 2
	offY = (dstH - srcH*scale) / 2
	return scale, offX, offY
}
