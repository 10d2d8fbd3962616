package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	Tiles          int           // Tiles completed (1 for a sequential render)
	Workers        int           // Goroutines that rendered
	Duration       time.Duration // Wall time of the render
}

// add accumulates the pixel and sample counts of another partial result
func (s *RenderStats) add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.Tiles += other.Tiles
}

// finalize computes the derived fields once all partial results are in
func (s *RenderStats) finalize(start time.Time) {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
	s.Duration = time.Since(start)
}

// SamplesPerSecond returns throughput for logging
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of the
// buffer's (gamma encoded) bytes, in [0, 1]
func CalculateAverageLuminance(buffer *PixelBuffer) float64 {
	pixels := buffer.Width * buffer.Height
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for p := 0; p < pixels; p++ {
		r := float64(buffer.Pix[p*3]) / 255.0
		g := float64(buffer.Pix[p*3+1]) / 255.0
		b := float64(buffer.Pix[p*3+2]) / 255.0
		total += 0.2126*r + 0.7152*g + 0.0722*b
	}
	return total / float64(pixels)
}
