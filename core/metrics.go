package core

// FontDescriptor identifies the font a TextMetricsProvider measures.
type FontDescriptor struct {
	Family string
	Size   int
}

// TextMetrics describes a fixed-width character cell, in pixels.
type TextMetrics struct {
	CharWidth  int
	LineHeight int
	Ascent     int
	Descent    int
}

// TextMetricsProvider measures a font. It is consulted once per session.
type TextMetricsProvider interface {
	Measure(font FontDescriptor) TextMetrics
}

// FixedMetrics is a provider that ignores the font and reports itself.
type FixedMetrics TextMetrics

func (f FixedMetrics) Measure(FontDescriptor) TextMetrics { return TextMetrics(f) }

// sanitize keeps every division in the mapper and scroller defined.
func (m TextMetrics) sanitize() TextMetrics {
	if m.CharWidth <= 0 {
		m.CharWidth = 1
	}
	if m.LineHeight <= 0 {
		m.LineHeight = 1
	}
	if m.Ascent < 0 {
		m.Ascent = 0
	}
	if m.Descent < 0 {
		m.Descent = 0
	}
	return m
}
