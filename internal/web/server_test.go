package web

import (
	"encoding/json"
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/san-kum/isinglab/internal/ising"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	m, err := ising.New(ising.Params{Size: 4, Temperature: 2.0, J: 1.0}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("new model failed: %v", err)
	}
	return NewServer(m, "127.0.0.1:0", log.New(io.Discard))
}

func TestParseControl(t *testing.T) {
	req, err := parseControl([]byte(`{"action":"set_temperature","value":1.5}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if req.Action != "set_temperature" || req.Value != 1.5 {
		t.Errorf("unexpected request: %+v", req)
	}

	if _, err := parseControl([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid payload")
	}
}

func TestApplyControl(t *testing.T) {
	s := newTestServer(t)

	s.applyControl(controlRequest{Action: "set_temperature", Value: 3.5})
	if got := s.model.Params().Temperature; got != 3.5 {
		t.Errorf("temperature = %f, want 3.5", got)
	}

	// Non-positive temperatures are ignored.
	s.applyControl(controlRequest{Action: "set_temperature", Value: -1})
	if got := s.model.Params().Temperature; got != 3.5 {
		t.Errorf("temperature changed to %f on invalid request", got)
	}

	s.applyControl(controlRequest{Action: "set_field", Value: 0.25})
	if got := s.model.Params().H; got != 0.25 {
		t.Errorf("field = %f, want 0.25", got)
	}

	s.applyControl(controlRequest{Action: "pause"})
	if !s.paused {
		t.Error("expected paused")
	}
	s.applyControl(controlRequest{Action: "resume"})
	if s.paused {
		t.Error("expected resumed")
	}

	s.sweeps = 10
	s.applyControl(controlRequest{Action: "reset"})
	if s.sweeps != 0 {
		t.Error("expected sweep counter reset")
	}
}

func TestTickAdvancesAndBroadcasts(t *testing.T) {
	s := newTestServer(t)

	s.tick()
	if s.sweeps != 1 {
		t.Errorf("expected 1 sweep, got %d", s.sweeps)
	}

	select {
	case data := <-s.hub.broadcast:
		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			t.Fatalf("frame is not valid JSON: %v", err)
		}
		if frame.Size != 4 {
			t.Errorf("frame size = %d, want 4", frame.Size)
		}
		if len(frame.Spins) != 16 {
			t.Errorf("frame spins length = %d, want 16", len(frame.Spins))
		}
	default:
		t.Fatal("expected a broadcast frame")
	}

	if s.latestFrame() == nil {
		t.Error("expected tick to retain the latest frame for new clients")
	}

	s.applyControl(controlRequest{Action: "pause"})
	s.tick()
	if s.sweeps != 1 {
		t.Error("paused server must not advance the lattice")
	}
}
