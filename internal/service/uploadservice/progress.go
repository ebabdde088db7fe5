package uploadservice

import "sync"

type ProgressSink interface {
	Report(percent int, message string)
}

type ProgressFunc func(percent int, message string)

func (f ProgressFunc) Report(percent int, message string) {
	f(percent, message)
}

type Event struct {
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// ChanSink forwards events to a channel. Sends block, so the receiver must keep reading until Ingest returns.
type ChanSink chan<- Event

func (c ChanSink) Report(percent int, message string) {
	c <- Event{Percent: percent, Message: message}
}

// Recorder keeps every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Report(percent int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Percent: percent, Message: message})
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// monotonic clamps reports to [0,100], never lets them go backwards and drops everything after close.
type monotonic struct {
	mu     sync.Mutex
	sink   ProgressSink
	last   int
	closed bool
}

func newMonotonic(sink ProgressSink) *monotonic {
	return &monotonic{sink: sink}
}

func (m *monotonic) Report(percent int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.sink == nil {
		return
	}
	percent = max(0, min(percent, 100))
	if percent < m.last {
		percent = m.last
	}
	m.last = percent
	m.sink.Report(percent, message)
}

func (m *monotonic) close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}
