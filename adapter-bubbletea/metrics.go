package adapter_bubbletea

import (
	editor "github.com/ionut-t/lineedit/core"
	"github.com/ionut-t/lineedit/internal/config"
)

// CellMetrics measures a terminal cell. The font is chosen by the terminal,
// so the descriptor is ignored and the configured cell geometry is reported.
type CellMetrics config.MetricsConfig

func (c CellMetrics) Measure(editor.FontDescriptor) editor.TextMetrics {
	return editor.TextMetrics{
		CharWidth:  c.CharWidth,
		LineHeight: c.LineHeight,
		Ascent:     c.Ascent,
		Descent:    c.Descent,
	}
}
