// Package web exposes the engine's configuration boundary over HTTP and
// WebSocket. The interactive widgets themselves live outside this module;
// this is only their attachment point.
package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/Wastetoken/Palettebuddy/internal/analyzer"
	"github.com/Wastetoken/Palettebuddy/internal/params"
	"github.com/gorilla/websocket"
)

// EngineControl is the slice of the engine the control surface needs.
type EngineControl interface {
	Params() params.Parameters
	SetParams(params.Parameters)
	Energy() analyzer.Energy
	FPS() float64
	AudioActive() bool
	AudioDevice() string
	StartAudioSync()
	StopAudioSync()
	ExportCurrent(w, h int) ([]byte, error)
}

// Server pushes status to connected clients and applies parameter updates.
type Server struct {
	engine   EngineControl
	log      *log.Logger
	upgrader websocket.Upgrader

	mu        sync.Mutex
	clients   map[*client]bool
	broadcast chan []byte
}

// NewServer wires a control server to the engine.
func NewServer(engine EngineControl, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(os.Stderr, "[palettebuddy/web] ", log.LstdFlags)
	}
	return &Server{
		engine:    engine,
		log:       logger,
		clients:   make(map[*client]bool),
		broadcast: make(chan []byte, 256),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// StatusResponse is the periodic state pushed to clients.
type StatusResponse struct {
	FPS         float64           `json:"fps"`
	Energy      analyzer.Energy   `json:"energy"`
	Params      params.Parameters `json:"params"`
	AudioActive bool              `json:"audioActive"`
	AudioDevice string            `json:"audioDevice,omitempty"`
}

// UpdateRequest carries a partial parameter update; nil fields keep their
// current value. The merged vector is clamped before it reaches the engine.
type UpdateRequest struct {
	Hue          *float64 `json:"hue,omitempty"`
	Spectra      *float64 `json:"spectra,omitempty"`
	Exposure     *float64 `json:"exposure,omitempty"`
	Distortion   *float64 `json:"distortion,omitempty"`
	Scale        *float64 `json:"scale,omitempty"`
	Pattern      *string  `json:"pattern,omitempty"`
	Seed         *int64   `json:"seed,omitempty"`
	SmudgeActive *bool    `json:"smudgeActive,omitempty"`
	SmudgeFactor *float64 `json:"smudgeFactor,omitempty"`
	Grain        *float64 `json:"grain,omitempty"`
	FineGrain    *float64 `json:"fineGrain,omitempty"`
	AudioSync    *bool    `json:"audioSync,omitempty"`
}

// Start serves the control API until the listener fails.
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/update", s.handleUpdate)
	mux.HandleFunc("/api/patterns", s.handlePatterns)
	mux.HandleFunc("/api/export", s.handleExport)
	mux.HandleFunc("/api/save", s.handleSave)
	mux.HandleFunc("/ws", s.handleWebSocket)

	go s.broadcastLoop()
	go s.statusLoop()

	addr := fmt.Sprintf(":%d", port)
	s.log.Printf("control server on http://0.0.0.0%s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) status() StatusResponse {
	return StatusResponse{
		FPS:         s.engine.FPS(),
		Energy:      s.engine.Energy(),
		Params:      s.engine.Params(),
		AudioActive: s.engine.AudioActive(),
		AudioDevice: s.engine.AudioDevice(),
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.status())
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p := s.engine.Params()
	p = MergeUpdate(p, req)
	s.engine.SetParams(p)

	if req.AudioSync != nil {
		if *req.AudioSync {
			s.engine.StartAudioSync()
		} else {
			s.engine.StopAudioSync()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// MergeUpdate folds the non-nil request fields into the vector.
func MergeUpdate(p params.Parameters, req UpdateRequest) params.Parameters {
	if req.Hue != nil {
		p.Hue = *req.Hue
	}
	if req.Spectra != nil {
		p.Spectra = *req.Spectra
	}
	if req.Exposure != nil {
		p.Exposure = *req.Exposure
	}
	if req.Distortion != nil {
		p.Distortion = *req.Distortion
	}
	if req.Scale != nil {
		p.Scale = *req.Scale
	}
	if req.Pattern != nil {
		p.Pattern = params.ParsePattern(*req.Pattern)
	}
	if req.Seed != nil {
		p.Seed = *req.Seed
	}
	if req.SmudgeActive != nil {
		p.SmudgeActive = *req.SmudgeActive
	}
	if req.SmudgeFactor != nil {
		p.SmudgeFactor = *req.SmudgeFactor
	}
	if req.Grain != nil {
		p.Grain = *req.Grain
	}
	if req.FineGrain != nil {
		p.FineGrain = *req.FineGrain
	}
	return p
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(params.PatternNames())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	width := queryInt(r, "width", 1920)
	height := queryInt(r, "height", 1080)

	data, err := s.engine.ExportCurrent(width, height)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="palettebuddy.png"`)
	w.Write(data)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	path := configPath()
	if err := SaveConfig(path, s.engine.Params()); err != nil {
		http.Error(w, fmt.Sprintf("save config: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "saved", "path": path})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func configPath() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exe), "palettebuddy-config.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".palettebuddy-config.json")
}

// SaveConfig writes the vector as indented JSON.
func SaveConfig(path string, p params.Parameters) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadConfig reads a vector saved by SaveConfig, clamped.
func LoadConfig(path string) (params.Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return params.Parameters{}, err
	}
	var p params.Parameters
	if err := json.Unmarshal(data, &p); err != nil {
		return params.Parameters{}, err
	}
	return p.Clamp(), nil
}

type client struct {
	conn   *websocket.Conn
	send   chan []byte
	server *Server
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("websocket upgrade: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 256), server: s}

	s.mu.Lock()
	s.clients[c] = true
	s.mu.Unlock()

	go c.writePump()
	go c.readPump()
}

func (s *Server) broadcastLoop() {
	for message := range s.broadcast {
		s.mu.Lock()
		for c := range s.clients {
			select {
			case c.send <- message:
			default:
				close(c.send)
				delete(s.clients, c)
			}
		}
		s.mu.Unlock()
	}
}

func (s *Server) statusLoop() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		data, err := json.Marshal(s.status())
		if err != nil {
			continue
		}
		select {
		case s.broadcast <- data:
		default:
			// drop when full; the next tick carries fresher state anyway
		}
	}
}

func (c *client) readPump() {
	defer func() {
		c.server.mu.Lock()
		delete(c.server.clients, c)
		c.server.mu.Unlock()
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
