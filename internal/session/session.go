// Package session holds the in-memory list of derived locations and drives
// the globe renderer as records are appended or cleared.
package session

import (
	"errors"
	"name-locator-service/internal/domain"
	"name-locator-service/internal/ports"
	"strings"
	"sync"
	"time"
)

// ErrNoActiveRecord is returned by operations that need at least one record.
var ErrNoActiveRecord = errors.New("session: no active record")

// Options tunes the timings and camera parameters of a Session.
type Options struct {
	// Camera altitude used when focusing a new record.
	Altitude float64
	// Duration of the camera animation.
	FocusDuration time.Duration
	// How long the copied flag stays set after a successful copy.
	CopiedResetDelay time.Duration
	// Delay before focusing a record restored from a shareable reference,
	// giving the render surface time to initialize.
	InitDelay time.Duration
}

// DefaultOptions returns the standard globe timings.
func DefaultOptions() Options {
	return Options{
		Altitude:         1.5,
		FocusDuration:    1500 * time.Millisecond,
		CopiedResetDelay: 1500 * time.Millisecond,
		InitDelay:        1000 * time.Millisecond,
	}
}

// Timer is a cancelable pending callback.
type Timer interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Snapshot is a consistent read of the session state.
type Snapshot struct {
	Records []domain.DerivedLocation
	Copied  bool
}

// Active returns the most recently appended record.
func (s Snapshot) Active() (domain.DerivedLocation, bool) {
	if len(s.Records) == 0 {
		return domain.DerivedLocation{}, false
	}
	return s.Records[len(s.Records)-1], true
}

// Session is an append-only, insertion-ordered list of derived locations.
// The active record is always the last one appended.
//
// All state lives behind one mutex: HTTP handlers and timer callbacks run on
// different goroutines, but every transition is applied atomically.
type Session struct {
	mu sync.Mutex

	records []domain.DerivedLocation

	copied     bool
	copyGen    uint64
	focusGen   uint64
	resetTimer Timer
	focusTimer Timer

	renderer  ports.Renderer
	clipboard ports.ClipboardSink
	share     ports.ShareTarget
	opts      Options
	afterFunc afterFunc
}

// New creates an empty session. renderer, clipboard and share may be nil:
// a nil renderer discards commands, a nil clipboard fails every copy and a
// nil share target always falls back to plain links.
func New(renderer ports.Renderer, clipboard ports.ClipboardSink, share ports.ShareTarget, opts Options) *Session {
	if renderer == nil {
		renderer = nopRenderer{}
	}

	return &Session{
		renderer:  renderer,
		clipboard: clipboard,
		share:     share,
		opts:      opts,
		afterFunc: realAfterFunc,
	}
}

// Submit derives a location for text and appends it, making it the active
// record, then animates the camera to it.
// Blank text (after trimming) is ignored and Submit reports false.
// The derivation itself always sees text untrimmed.
func (s *Session) Submit(text string) (domain.DerivedLocation, bool) {
	if strings.TrimSpace(text) == "" {
		return domain.DerivedLocation{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loc := s.appendLocked(text)
	s.renderer.FocusCamera(loc.Latitude, loc.Longitude, s.opts.Altitude, s.opts.FocusDuration)

	return loc, true
}

// Clear discards every record. Clearing an empty session is a no-op apart
// from re-sending the empty point set.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.stopTimersLocked()
	s.copied = false
	s.renderer.SetPoints([]ports.GlobePoint{})
}

// Len returns the number of records.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Records returns a copy of the records in insertion order.
func (s *Session) Records() []domain.DerivedLocation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.recordsLocked()
}

// Active returns the most recently appended record.
func (s *Session) Active() (domain.DerivedLocation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.activeLocked()
}

// Copied reports whether the active digest was copied recently.
func (s *Session) Copied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.copied
}

// Snapshot returns records and the copied flag read under one lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{Records: s.recordsLocked(), Copied: s.copied}
}

// CopyResult reports the digest a copy attempt used and whether the
// clipboard accepted it.
type CopyResult struct {
	Digest string
	Copied bool
}

// CopyActiveDigest copies the digest of the active record to the clipboard
// sink and raises the copied flag until CopiedResetDelay elapses.
// A newer copy supersedes the pending reset of an older one.
// A failed copy changes nothing and reports Copied false.
func (s *Session) CopyActiveDigest() (CopyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, ok := s.activeLocked()
	if !ok {
		return CopyResult{}, ErrNoActiveRecord
	}

	res := CopyResult{Digest: active.DigestHex}
	if s.clipboard == nil {
		return res, nil
	}
	if err := s.clipboard.WriteText(active.DigestHex); err != nil {
		return res, nil
	}

	s.copied = true
	s.copyGen++
	gen := s.copyGen

	if s.resetTimer != nil {
		s.resetTimer.Stop()
	}
	s.resetTimer = s.afterFunc(s.opts.CopiedResetDelay, func() { s.resetCopied(gen) })

	res.Copied = true
	return res, nil
}

// ExportFrame asks the renderer to export the current frame, named after
// the active record.
func (s *Session) ExportFrame() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, ok := s.activeLocked()
	if !ok {
		return "", ErrNoActiveRecord
	}

	filename := FrameFilename(active.SourceText)
	s.renderer.CaptureFrame(filename)

	return filename, nil
}

// resetCopied clears the copied flag unless a newer copy happened since the
// timer for gen was scheduled.
func (s *Session) resetCopied(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.copyGen {
		return
	}
	s.copied = false
	s.resetTimer = nil
}

// focusDeferred moves the camera to loc unless the session changed since
// the focus for gen was scheduled.
func (s *Session) focusDeferred(gen uint64, loc domain.DerivedLocation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.focusGen {
		return
	}
	s.focusTimer = nil
	s.renderer.FocusCamera(loc.Latitude, loc.Longitude, s.opts.Altitude, s.opts.FocusDuration)
}

func (s *Session) appendLocked(text string) domain.DerivedLocation {
	loc := domain.Derive(text)
	s.records = append(s.records, loc)

	// A new active record invalidates the copied indicator and any pending
	// focus on an older record.
	s.stopTimersLocked()
	s.copied = false

	s.renderer.SetPoints(globePoints(s.records))
	return loc
}

func (s *Session) stopTimersLocked() {
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
	if s.focusTimer != nil {
		s.focusTimer.Stop()
		s.focusTimer = nil
	}
	s.copyGen++
	s.focusGen++
}

func (s *Session) recordsLocked() []domain.DerivedLocation {
	out := make([]domain.DerivedLocation, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Session) activeLocked() (domain.DerivedLocation, bool) {
	if len(s.records) == 0 {
		return domain.DerivedLocation{}, false
	}
	return s.records[len(s.records)-1], true
}

func globePoints(records []domain.DerivedLocation) []ports.GlobePoint {
	points := make([]ports.GlobePoint, 0, len(records))
	for _, r := range records {
		points = append(points, ports.GlobePoint{
			Lat:   r.Latitude,
			Lng:   r.Longitude,
			Label: r.SourceText,
		})
	}
	return points
}

type nopRenderer struct{}

func (nopRenderer) SetPoints([]ports.GlobePoint) {}

func (nopRenderer) FocusCamera(float64, float64, float64, time.Duration) {}

func (nopRenderer) CaptureFrame(string) {}
