// Package preview serves generated dungeons over HTTP and pushes every
// regeneration to websocket clients.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"bsp-dungeon/generation"
	"bsp-dungeon/geometry"
)

// Options configures a preview Server
type Options struct {
	Bounds     geometry.Rect
	Generation generation.Config
	Population generation.PopulationOptions
	Logger     *zap.Logger

	// NextSeed picks the seed of a regeneration that names none.
	// Defaults to the clock.
	NextSeed func() int64
}

// Server holds the current dungeon and the clients watching it
type Server struct {
	opts Options
	log  *zap.Logger
	hub  *Hub

	mu       sync.Mutex
	current  *Snapshot
	sequence uint64
}

// NewServer generates the first dungeon from seed
func NewServer(opts Options, seed int64) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.NextSeed == nil {
		opts.NextSeed = func() int64 { return time.Now().UnixNano() }
	}

	s := &Server{
		opts: opts,
		log:  opts.Logger.Named("preview"),
		hub:  NewHub(),
	}

	snapshot, err := s.Build(seed)
	if err != nil {
		return nil, err
	}
	s.current = snapshot
	return s, nil
}

// Build generates and populates the dungeon for seed without publishing it.
// Population continues the random stream the layout was drawn from.
func (s *Server) Build(seed int64) (*Snapshot, error) {
	g := generation.NewDungeonGenerator()
	g.SetSeed(seed)

	layout, err := g.Generate(s.opts.Bounds, s.opts.Generation)
	if err != nil {
		return nil, err
	}
	plan := generation.NewDungeonPopulator(g.Source(), s.opts.Population).Plan(layout)
	return NewSnapshot(layout, plan, s.opts.Generation.Propagation), nil
}

// Current returns the published dungeon
func (s *Server) Current() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Regenerate builds a dungeon for seed, publishes it and pushes it to every
// client
func (s *Server) Regenerate(seed int64) (*Snapshot, error) {
	snapshot, err := s.Build(seed)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = snapshot
	s.sequence++
	message, err := json.Marshal(Envelope{Sequence: s.sequence, Type: EventLayoutChanged, Payload: snapshot})
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(message)
	s.log.Info("dungeon regenerated",
		zap.String("generation_id", snapshot.GenerationID),
		zap.Int64("seed", seed),
		zap.Int("rooms", len(snapshot.Rooms)),
		zap.Int("clients", s.hub.Len()))
	return snapshot, nil
}

// Handler returns the HTTP routes of the preview
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /layout", s.handleLayout)
	mux.HandleFunc("POST /regenerate", s.handleRegenerate)
	mux.HandleFunc("GET /stream", s.handleStream)
	return mux
}

// ListenAndServe serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("preview server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.hub.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleLayout returns the current dungeon, or a fresh unpublished one when
// a seed is given
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("seed") == "" {
		writeJSON(w, http.StatusOK, s.Current())
		return
	}

	seed, err := parseSeed(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	snapshot, err := s.Build(seed)
	if err != nil {
		s.writeGenerationError(w, seed, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	seed := s.opts.NextSeed()
	if r.URL.Query().Get("seed") != "" {
		var err error
		if seed, err = parseSeed(r); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	snapshot, err := s.Regenerate(seed)
	if err != nil {
		s.writeGenerationError(w, seed, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.log.Warn("websocket accept failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	hello, err := json.Marshal(Envelope{Sequence: s.sequence, Type: EventCurrentLayout, Payload: s.current})
	s.mu.Unlock()
	if err != nil {
		_ = conn.Close(websocket.StatusInternalError, "encode failed")
		return
	}

	s.hub.Add(conn)
	defer s.hub.Remove(conn)
	if err := conn.Write(r.Context(), websocket.MessageText, hello); err != nil {
		return
	}

	// Clients only listen; reading keeps control frames flowing until they leave
	for {
		if _, _, err := conn.Read(r.Context()); err != nil {
			return
		}
	}
}

func (s *Server) writeGenerationError(w http.ResponseWriter, seed int64, err error) {
	s.log.Warn("generation failed", zap.Int64("seed", seed), zap.Error(err))
	if errors.Is(err, generation.ErrInvalidConfiguration) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeError(w, http.StatusUnprocessableEntity, err)
}

func parseSeed(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("seed")
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("seed must be a 64-bit integer")
	}
	return seed, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
