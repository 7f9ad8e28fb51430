package layout

// Metrics supplies the text measurements layout depends on. The engine
// never touches fonts itself; the embedding application provides real
// measurements and tests use FixedMetrics.
type Metrics interface {
	// RuneWidth returns the advance width of a rune in layout units.
	RuneWidth(r rune) float64
	// LineHeight returns the height of one line in layout units.
	LineHeight() float64
}

// FixedMetrics is a monospace Metrics implementation: every rune is
// CharWidth wide and lines are Height tall.
type FixedMetrics struct {
	CharWidth float64
	Height    float64
}

// NewFixedMetrics returns monospace metrics with 8x16 cells.
func NewFixedMetrics() FixedMetrics {
	return FixedMetrics{CharWidth: 8, Height: 16}
}

// RuneWidth implements Metrics.
func (m FixedMetrics) RuneWidth(r rune) float64 {
	return m.CharWidth
}

// LineHeight implements Metrics.
func (m FixedMetrics) LineHeight() float64 {
	return m.Height
}
