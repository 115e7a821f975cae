package testutil

import "sync"

// LineRecorder collects log lines written by a timer.
type LineRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *LineRecorder) Log(line string) {
	r.mu.Lock()
	r.lines = append(r.lines, line)
	r.mu.Unlock()
}

func (r *LineRecorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func (r *LineRecorder) Reset() {
	r.mu.Lock()
	r.lines = nil
	r.mu.Unlock()
}
