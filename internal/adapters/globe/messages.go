package globe

import (
	"encoding/json"
	"name-locator-service/internal/ports"
	"time"
)

// Message types pushed to globe clients.
const (
	TypePoints    = "points"
	TypeFocus     = "focus"
	TypeCapture   = "capture"
	TypeClipboard = "clipboard"
)

// PointMessage is a single labeled point.
type PointMessage struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label"`
}

// PointsMessage replaces the point set shown by the client.
type PointsMessage struct {
	Type   string         `json:"type"`
	Points []PointMessage `json:"points"`
}

// FocusMessage animates the client camera.
type FocusMessage struct {
	Type       string  `json:"type"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Altitude   float64 `json:"altitude"`
	DurationMS int64   `json:"duration_ms"`
}

// CaptureMessage asks the client to download its current frame.
type CaptureMessage struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
}

// ClipboardMessage asks the client to copy text to its clipboard.
type ClipboardMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func newPointsMessage(points []ports.GlobePoint) PointsMessage {
	out := make([]PointMessage, 0, len(points))
	for _, p := range points {
		out = append(out, PointMessage{Lat: p.Lat, Lng: p.Lng, Label: p.Label})
	}
	return PointsMessage{Type: TypePoints, Points: out}
}

func newFocusMessage(lat, lng, altitude float64, d time.Duration) FocusMessage {
	return FocusMessage{
		Type:       TypeFocus,
		Lat:        lat,
		Lng:        lng,
		Altitude:   altitude,
		DurationMS: d.Milliseconds(),
	}
}

// encode marshals one of the message structs above; they hold only plain
// values so Marshal cannot fail.
func encode(m any) []byte {
	buf, _ := json.Marshal(m)
	return buf
}
