package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Pixels          int             // Pixels written
	CameraRays      int             // Primary rays traced
	ShadowRays      int             // Rays cast toward lights
	ReflectionRays  int             // Mirror rays traced
	RefractionRays  int             // Transparency rays traced
	MaxDepthReached int             // Deepest recursion level entered
	BandDurations   []time.Duration // Wall time per band, indexed by band
	TotalDuration   time.Duration   // Wall time of the whole render
}

// Merge adds the counters of other into s
func (s *RenderStats) Merge(other RenderStats) {
	s.Pixels += other.Pixels
	s.CameraRays += other.CameraRays
	s.ShadowRays += other.ShadowRays
	s.ReflectionRays += other.ReflectionRays
	s.RefractionRays += other.RefractionRays
	s.MaxDepthReached = max(s.MaxDepthReached, other.MaxDepthReached)
}

// TotalRays returns the number of rays of every kind
func (s RenderStats) TotalRays() int {
	return s.CameraRays + s.ShadowRays + s.ReflectionRays + s.RefractionRays
}
