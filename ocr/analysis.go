package ocr

import (
	"image"
	"regexp"
	"strings"
)

// Auxiliary scoring passes run after OCR. Both attach flat scalar entries
// to the result metadata and are independent of the main content
// classifier.

var dimensionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*[xX×]\s*\d+(?:\.\d+)?`),   // 10x20
	regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*m[m²³]?\b`),               // 10mm, 5m²
	regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(?:cm|mm|meter)\b`),       // 10cm
	regexp.MustCompile(`(?i)(?:diameter|dia\.?|ø)\s*\d+(?:\.\d+)?`),   // diameter 10
}

var materialKeywords = []string{
	"beton", "concrete", "steel", "baja", "besi", "kayu", "wood",
	"semen", "cement", "agregat", "aggregate", "pasir", "sand",
	"keramik", "ceramic", "granit", "granite",
}

var specPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:mutu|grade|class)\s*K?-?\s*\d+`),  // Mutu K-300
	regexp.MustCompile(`(?i)(?:SNI|ASTM|BS|DIN)\s*[\d-]+`),       // SNI 03-2847-2013
	regexp.MustCompile(`(?i)(?:fc'?|fy)\s*=?\s*\d+\s*MPa`),       // fc' = 25 MPa
}

// analyzeTechnicalContent scans extracted text for dimension tokens,
// material names, and grade/standard codes, and records a combined
// technical score.
func analyzeTechnicalContent(text string, metadata map[string]any) {
	lower := strings.ToLower(text)

	hasDimensions := false
	for _, p := range dimensionPatterns {
		if p.MatchString(text) {
			hasDimensions = true
			break
		}
	}

	var materials []string
	for _, m := range materialKeywords {
		if strings.Contains(lower, m) {
			materials = append(materials, m)
		}
	}

	hasCodes := false
	for _, p := range specPatterns {
		if p.MatchString(text) {
			hasCodes = true
			break
		}
	}

	score := 0.0
	if hasDimensions {
		score += 0.3
	}
	if len(materials) > 0 {
		score += 0.3
	}
	if hasCodes {
		score += 0.4
	}

	metadata["has_dimensions"] = hasDimensions
	metadata["has_materials"] = len(materials) > 0
	metadata["has_codes"] = hasCodes
	metadata["materials_found"] = strings.Join(materials, ", ")
	metadata["technical_score"] = score
}

// analyzeDrawingContent estimates how likely the image is a technical
// drawing using edge density, long straight line counts, and blob counts on
// a gradient edge map. The score feeds diagnostics, not control flow.
func analyzeDrawingContent(img image.Image, metadata map[string]any) {
	gray := toGray(img)
	edges, edgeCount := edgeMap(gray)

	bounds := gray.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()
	if totalPixels == 0 {
		metadata["drawing_score"] = 0.0
		return
	}

	edgeDensity := float64(edgeCount) / float64(totalPixels)
	lines := countStraightLines(edges)
	shapes := countShapes(edges)

	// Line density normalized per megapixel, mirroring the Hough-based
	// heuristic this replaces.
	lineDensity := float64(lines) / (float64(totalPixels) / 1e6)

	score := 0.0
	if lines > 0 {
		score += 0.4
	}
	if shapes > 5 {
		score += 0.3
	}
	if lineDensity > 0.1 {
		score += 0.3
	}
	if score > 1.0 {
		score = 1.0
	}

	metadata["edge_density"] = edgeDensity
	metadata["line_count"] = lines
	metadata["shape_count"] = shapes
	metadata["line_density"] = lineDensity
	metadata["drawing_score"] = score
}

// edgeMap marks pixels whose horizontal or vertical intensity gradient
// exceeds a fixed threshold.
func edgeMap(g *image.Gray) ([][]bool, int) {
	const gradientThreshold = 48

	bounds := g.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	edges := make([][]bool, h)
	count := 0
	for y := 0; y < h; y++ {
		edges[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 {
				continue
			}
			v := int(g.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			left := int(g.GrayAt(bounds.Min.X+x-1, bounds.Min.Y+y).Y)
			up := int(g.GrayAt(bounds.Min.X+x, bounds.Min.Y+y-1).Y)
			if abs(v-left) > gradientThreshold || abs(v-up) > gradientThreshold {
				edges[y][x] = true
				count++
			}
		}
	}
	return edges, count
}

// countStraightLines counts rows and columns dominated by edge pixels,
// a stand-in for a full Hough transform that works well on axis-
// aligned drawing line work.
func countStraightLines(edges [][]bool) int {
	if len(edges) == 0 || len(edges[0]) == 0 {
		return 0
	}
	h, w := len(edges), len(edges[0])
	lines := 0

	for y := 0; y < h; y++ {
		run, longest := 0, 0
		for x := 0; x < w; x++ {
			if edges[y][x] {
				run++
				if run > longest {
					longest = run
				}
			} else {
				run = 0
			}
		}
		if longest >= w/2 && longest >= 20 {
			lines++
		}
	}
	for x := 0; x < w; x++ {
		run, longest := 0, 0
		for y := 0; y < h; y++ {
			if edges[y][x] {
				run++
				if run > longest {
					longest = run
				}
			} else {
				run = 0
			}
		}
		if longest >= h/2 && longest >= 20 {
			lines++
		}
	}
	return lines
}

// countShapes counts connected edge components above a minimum area,
// approximating the contour-based geometric shape count.
func countShapes(edges [][]bool) int {
	if len(edges) == 0 || len(edges[0]) == 0 {
		return 0
	}
	const minArea = 100

	h, w := len(edges), len(edges[0])
	visited := make([][]bool, h)
	for y := range visited {
		visited[y] = make([]bool, w)
	}

	shapes := 0
	var stack [][2]int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !edges[y][x] || visited[y][x] {
				continue
			}
			area := 0
			stack = stack[:0]
			stack = append(stack, [2]int{x, y})
			visited[y][x] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				area++
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p[0]+dx, p[1]+dy
						if nx < 0 || nx >= w || ny < 0 || ny >= h {
							continue
						}
						if edges[ny][nx] && !visited[ny][nx] {
							visited[ny][nx] = true
							stack = append(stack, [2]int{nx, ny})
						}
					}
				}
			}
			if area >= minArea {
				shapes++
			}
		}
	}
	return shapes
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
