package ocr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// grayscaleVariant drops color information.
func grayscaleVariant(img image.Image) image.Image {
	return imaging.Grayscale(img)
}

// enhancedVariant applies light noise reduction, contrast enhancement, and
// a morphological close to reconnect broken strokes in low-quality scans.
func enhancedVariant(gray image.Image) image.Image {
	denoised := imaging.Blur(gray, 0.8)
	contrasted := imaging.AdjustContrast(denoised, 20)
	return closeGray(toGray(contrasted))
}

// binaryVariant thresholds the image to pure black and white using Otsu's
// method.
func binaryVariant(gray image.Image) image.Image {
	g := toGray(gray)
	level := otsuLevel(g)

	bounds := g.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if g.GrayAt(x, y).Y > level {
				out.SetGray(x, y, color.Gray{Y: 255})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return out
}

// toGray converts any image to 8-bit grayscale.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	g := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return g
}

// otsuLevel computes the global threshold maximizing between-class variance
// of the intensity histogram.
func otsuLevel(g *image.Gray) uint8 {
	var hist [256]int
	bounds := g.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 128
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[g.GrayAt(x, y).Y]++
		}
	}

	sumAll := 0.0
	for i, n := range hist {
		sumAll += float64(i) * float64(n)
	}

	var (
		best      uint8
		bestScore float64
		sumBg     float64
		weightBg  int
	)
	for t := 0; t < 256; t++ {
		weightBg += hist[t]
		if weightBg == 0 {
			continue
		}
		weightFg := total - weightBg
		if weightFg == 0 {
			break
		}
		sumBg += float64(t) * float64(hist[t])

		meanBg := sumBg / float64(weightBg)
		meanFg := (sumAll - sumBg) / float64(weightFg)
		diff := meanBg - meanFg
		score := float64(weightBg) * float64(weightFg) * diff * diff
		if score > bestScore {
			bestScore = score
			best = uint8(t)
		}
	}
	return best
}

// closeGray applies a 3x3 morphological close (dilate then erode) on a
// grayscale image.
func closeGray(g *image.Gray) *image.Gray {
	return erodeGray(dilateGray(g))
}

func dilateGray(g *image.Gray) *image.Gray {
	return morphGray(g, func(a, b uint8) bool { return a > b })
}

func erodeGray(g *image.Gray) *image.Gray {
	return morphGray(g, func(a, b uint8) bool { return a < b })
}

// morphGray picks, per pixel, the extreme value of its 3x3 neighborhood
// according to better.
func morphGray(g *image.Gray, better func(a, b uint8) bool) *image.Gray {
	bounds := g.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := g.GrayAt(x, y).Y
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < bounds.Min.X || nx >= bounds.Max.X || ny < bounds.Min.Y || ny >= bounds.Max.Y {
						continue
					}
					if n := g.GrayAt(nx, ny).Y; better(n, v) {
						v = n
					}
				}
			}
			out.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return out
}
