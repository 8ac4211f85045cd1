package session

import (
	"fmt"
	"net/url"
	"strings"
)

// LoadQuery restores a shared location from query values. It appends a
// record only when values carry ReferenceField and the session is empty,
// then focuses the camera on it after InitDelay.
func (s *Session) LoadQuery(values url.Values) bool {
	v, ok := values[ReferenceField]
	if !ok || len(v) == 0 {
		return false
	}
	text := v[0]
	if strings.TrimSpace(text) == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) > 0 {
		return false
	}

	loc := s.appendLocked(text)
	gen := s.focusGen
	s.focusTimer = s.afterFunc(s.opts.InitDelay, func() { s.focusDeferred(gen, loc) })

	return true
}

// LoadReference is LoadQuery applied to the query of a shareable reference.
func (s *Session) LoadReference(ref string) (bool, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return false, fmt.Errorf("load reference: %w", err)
	}

	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return false, fmt.Errorf("load reference: query: %w", err)
	}

	return s.LoadQuery(values), nil
}
