package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/isinglab/internal/ising"
)

//go:embed index.html
var indexHTML []byte

// Frame is one lattice state pushed to every connected browser.
type Frame struct {
	Sweep         int     `json:"sweep"`
	Size          int     `json:"size"`
	Temperature   float64 `json:"temperature"`
	H             float64 `json:"h"`
	Energy        float64 `json:"energy"`
	Magnetization float64 `json:"magnetization"`
	Spins         []int8  `json:"spins"`
}

type controlRequest struct {
	Action string  `json:"action"`
	Value  float64 `json:"value"`
}

func parseControl(data []byte) (controlRequest, error) {
	var req controlRequest
	err := json.Unmarshal(data, &req)
	return req, err
}

// Server drives one simulation and streams it to browsers.
type Server struct {
	addr   string
	hub    *hub
	logger *log.Logger

	mu     sync.Mutex
	model  *ising.Model
	sweeps int
	paused bool
	latest []byte
}

// NewServer wraps a model for serving on addr.
func NewServer(m *ising.Model, addr string, logger *log.Logger) *Server {
	return &Server{
		addr:   addr,
		hub:    newHub(logger),
		logger: logger,
		model:  m,
	}
}

// Run serves until the context is cancelled. One sweep is simulated
// per frame tick.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexHTML)
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.hub.handle(w, r, s.applyControl, s.latestFrame)
	})

	srv := &http.Server{Addr: s.addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", fmt.Sprintf("http://%s", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
			return ctx.Err()
		case err := <-errCh:
			if err == http.ErrServerClosed {
				return nil
			}
			return err
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Server) tick() {
	s.mu.Lock()
	if !s.paused {
		s.model.Sweep()
		s.sweeps++
	}
	p := s.model.Params()
	frame := Frame{
		Sweep:         s.sweeps,
		Size:          p.Size,
		Temperature:   p.Temperature,
		H:             p.H,
		Energy:        s.model.Energy(),
		Magnetization: s.model.Magnetization(),
		Spins:         s.model.Spins(),
	}
	s.mu.Unlock()

	data, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("failed to marshal frame", "err", err)
		return
	}

	s.mu.Lock()
	s.latest = data
	s.mu.Unlock()

	select {
	case s.hub.broadcast <- data:
	default:
		// Drop the frame if the hub is backed up.
	}
}

func (s *Server) latestFrame() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

func (s *Server) applyControl(req controlRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.model.Params()
	switch req.Action {
	case "set_temperature":
		if req.Value > 0 {
			p.Temperature = req.Value
			s.model.Reconfigure(p)
		}
	case "set_field":
		p.H = req.Value
		s.model.Reconfigure(p)
	case "pause":
		s.paused = true
	case "resume":
		s.paused = false
	case "reset":
		s.model.Reset()
		s.sweeps = 0
	default:
		s.logger.Warn("unknown control action", "action", req.Action)
	}
}
