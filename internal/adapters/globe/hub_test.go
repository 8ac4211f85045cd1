package globe

import (
	"context"
	"encoding/json"
	"errors"
	"name-locator-service/internal/ports"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readJSON(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	_, buf, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read message: %v", err)
	}
	if err := json.Unmarshal(buf, v); err != nil {
		t.Fatalf("decode %s: %v", buf, err)
	}
}

func TestHubSendsSnapshotOnConnect(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)

	var snap PointsMessage
	readJSON(t, conn, &snap)
	if snap.Type != TypePoints {
		t.Fatalf("first message type = %q, want %q", snap.Type, TypePoints)
	}
	if snap.Points == nil || len(snap.Points) != 0 {
		t.Fatalf("initial snapshot points = %v, want empty list", snap.Points)
	}

	hub.SetPoints([]ports.GlobePoint{{Lat: 22.1672, Lng: 11.6702, Label: "test"}})

	var update PointsMessage
	readJSON(t, conn, &update)
	if len(update.Points) != 1 || update.Points[0].Label != "test" {
		t.Fatalf("update = %+v, want one point labeled test", update)
	}

	// A late joiner starts from the latest point set.
	late := dial(t, url)
	var lateSnap PointsMessage
	readJSON(t, late, &lateSnap)
	if len(lateSnap.Points) != 1 || lateSnap.Points[0].Lat != 22.1672 {
		t.Fatalf("late snapshot = %+v, want latest point set", lateSnap)
	}
}

func TestHubBroadcastsCommands(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)

	var snap PointsMessage
	readJSON(t, conn, &snap)

	hub.FocusCamera(-6.7126, -147.5378, 1.5, 1500*time.Millisecond)
	var focus FocusMessage
	readJSON(t, conn, &focus)
	if focus.Type != TypeFocus || focus.Lat != -6.7126 || focus.Lng != -147.5378 || focus.Altitude != 1.5 || focus.DurationMS != 1500 {
		t.Fatalf("focus = %+v", focus)
	}

	hub.CaptureFrame("ada-lovelace-location.png")
	var capture CaptureMessage
	readJSON(t, conn, &capture)
	if capture.Type != TypeCapture || capture.Filename != "ada-lovelace-location.png" {
		t.Fatalf("capture = %+v", capture)
	}

	if err := hub.WriteText("9f86d081"); err != nil {
		t.Fatalf("write text: %v", err)
	}
	var clip ClipboardMessage
	readJSON(t, conn, &clip)
	if clip.Type != TypeClipboard || clip.Text != "9f86d081" {
		t.Fatalf("clipboard = %+v", clip)
	}
}

func TestHubWriteTextWithoutClients(t *testing.T) {
	hub, _ := startHub(t)

	if err := hub.WriteText("digest"); !errors.Is(err, ErrNoClients) {
		t.Fatalf("err = %v, want ErrNoClients", err)
	}
}

func TestHubCommandsNeverBlock(t *testing.T) {
	// Without Run the queue fills up; callers must still return.
	hub := NewHub()

	done := make(chan struct{})
	go func() {
		for i := 0; i < queueBuffer*2; i++ {
			hub.SetPoints(nil)
			hub.FocusCamera(0, 0, 1.5, time.Second)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("renderer commands blocked with a full queue")
	}
}
