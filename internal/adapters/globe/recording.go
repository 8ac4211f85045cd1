package globe

import (
	"errors"
	"name-locator-service/internal/ports"
	"sync"
	"time"
)

// Focus is a recorded FocusCamera call.
type Focus struct {
	Lat      float64
	Lng      float64
	Altitude float64
	Duration time.Duration
}

// RecordingRenderer keeps every command it receives. It backs tests and
// headless runs where no globe is attached.
type RecordingRenderer struct {
	mu       sync.Mutex
	points   [][]ports.GlobePoint
	focuses  []Focus
	captures []string
}

func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{}
}

func (r *RecordingRenderer) SetPoints(points []ports.GlobePoint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := make([]ports.GlobePoint, len(points))
	copy(cp, points)
	r.points = append(r.points, cp)
}

func (r *RecordingRenderer) FocusCamera(lat, lng, altitude float64, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.focuses = append(r.focuses, Focus{Lat: lat, Lng: lng, Altitude: altitude, Duration: duration})
}

func (r *RecordingRenderer) CaptureFrame(filename string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.captures = append(r.captures, filename)
}

// LastPoints returns the most recent point set, or nil if none was sent.
func (r *RecordingRenderer) LastPoints() []ports.GlobePoint {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.points) == 0 {
		return nil
	}
	return r.points[len(r.points)-1]
}

func (r *RecordingRenderer) Focuses() []Focus {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Focus(nil), r.focuses...)
}

func (r *RecordingRenderer) Captures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.captures...)
}

// ErrClipboardUnavailable is returned by a MemoryClipboard set to fail.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// MemoryClipboard is an in-process clipboard sink.
type MemoryClipboard struct {
	mu     sync.Mutex
	text   string
	writes int
	fail   bool
}

func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{}
}

func (c *MemoryClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fail {
		return ErrClipboardUnavailable
	}
	c.text = text
	c.writes++
	return nil
}

// SetFailing makes subsequent writes fail (or succeed again).
func (c *MemoryClipboard) SetFailing(fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fail = fail
}

// Text returns the last copied text and the number of successful writes.
func (c *MemoryClipboard) Text() (string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.text, c.writes
}
