package globe

import (
	"errors"
	"name-locator-service/internal/ports"
	"testing"
	"time"
)

func TestRecordingRenderer(t *testing.T) {
	r := NewRecordingRenderer()

	if r.LastPoints() != nil {
		t.Fatal("expected no points before any SetPoints call")
	}

	pts := []ports.GlobePoint{{Lat: 1, Lng: 2, Label: "a"}}
	r.SetPoints(pts)
	pts[0].Label = "mutated"

	if got := r.LastPoints(); len(got) != 1 || got[0].Label != "a" {
		t.Fatalf("LastPoints = %+v, want the points as sent", got)
	}

	r.FocusCamera(1, 2, 1.5, time.Second)
	r.CaptureFrame("a-location.png")

	if f := r.Focuses(); len(f) != 1 || f[0] != (Focus{Lat: 1, Lng: 2, Altitude: 1.5, Duration: time.Second}) {
		t.Errorf("Focuses = %+v", f)
	}
	if c := r.Captures(); len(c) != 1 || c[0] != "a-location.png" {
		t.Errorf("Captures = %v", c)
	}
}

func TestMemoryClipboard(t *testing.T) {
	c := NewMemoryClipboard()

	if err := c.WriteText("one"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.SetFailing(true)
	if err := c.WriteText("two"); !errors.Is(err, ErrClipboardUnavailable) {
		t.Fatalf("err = %v, want ErrClipboardUnavailable", err)
	}

	text, writes := c.Text()
	if text != "one" || writes != 1 {
		t.Errorf("Text = (%q, %d), want (one, 1)", text, writes)
	}
}
