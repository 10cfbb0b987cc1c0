package core

// SessionOptions configures the geometry shared by the session's components.
type SessionOptions struct {
	Font        FontDescriptor
	LeftPadding int // Pixels before column 0
	Overscan    int // Extra lines kept on each side of the visible window
}

// DefaultOverscan is the number of lines rendered past each viewport edge.
const DefaultOverscan = 2

// Session is the single owner of the editor's mutable state. Components get
// it by reference at construction; only the Dispatcher writes to it.
type Session struct {
	Buffer    Buffer
	Cursor    Cursor
	Selection SelectionModel
	Viewport  ViewportState

	metrics     TextMetrics
	leftPadding int
	overscan    int

	signals chan Signal
}

// NewSession measures the font once and starts with an empty document.
func NewSession(provider TextMetricsProvider, opts SessionOptions) *Session {
	return &Session{
		Buffer:      NewBuffer(),
		Selection:   SelectionModel{state: NoSelection{}},
		metrics:     provider.Measure(opts.Font).sanitize(),
		leftPadding: max(0, opts.LeftPadding),
		overscan:    max(0, opts.Overscan),
		signals:     make(chan Signal, signalBufferSize),
	}
}

func (s *Session) Metrics() TextMetrics { return s.metrics }

func (s *Session) LeftPadding() int { return s.leftPadding }

func (s *Session) Overscan() int { return s.overscan }

// Signals returns the read side of the session's notification channel.
func (s *Session) Signals() <-chan Signal { return s.signals }

// Snapshot copies the state a Renderer needs: the visible lines, never the whole buffer.
func (s *Session) Snapshot() Snapshot {
	start, end := s.Viewport.VisibleStart, s.Viewport.VisibleEnd
	lines := make([]string, 0, max(0, end-start))
	for row := start; row < end; row++ {
		lines = append(lines, s.Buffer.Line(row))
	}

	return Snapshot{
		VisibleLines: lines,
		LineCount:    s.Buffer.LineCount(),
		Cursor:       s.Cursor,
		Selection:    s.Selection.State(),
		Viewport:     s.Viewport,
		Metrics:      s.metrics,
		LeftPadding:  s.leftPadding,
	}
}
