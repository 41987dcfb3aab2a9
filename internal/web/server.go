package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	bnet "github.com/peterkuimelis/deckclash/internal/net"
	"github.com/peterkuimelis/deckclash/internal/session"
)

//go:embed static
var staticFiles embed.FS

// OpponentInfo is the JSON representation of an opponent for /api/opponents.
type OpponentInfo struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Difficulty string   `json:"difficulty"`
	MaxHealth  int      `json:"maxHealth"`
	Passives   []string `json:"passives,omitempty"`
	DeckSize   int      `json:"deckSize"`
}

// Server is the deckclash web UI server. Browsers play over a websocket that
// speaks the same messages as the TCP protocol.
type Server struct {
	mgr    *session.Manager
	logger *zap.Logger
	mux    *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(mgr *session.Manager, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		mgr:    mgr,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f)
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/opponents", s.handleOpponents)
	s.mux.HandleFunc("GET /api/battles", s.handleBattles)
	s.mux.HandleFunc("GET /api/battles/{id}", s.handleBattle)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := make([]session.CardView, 0)
	for i, c := range s.mgr.Catalog().Cards() {
		cards = append(cards, session.BuildCardView(i, c))
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleOpponents(w http.ResponseWriter, r *http.Request) {
	opps := make([]OpponentInfo, 0)
	for _, o := range s.mgr.Catalog().Opponents() {
		oi := OpponentInfo{
			ID:         o.ID,
			Name:       o.Name,
			Difficulty: o.Difficulty.String(),
			MaxHealth:  o.MaxHealth,
			DeckSize:   len(o.Deck),
		}
		for _, p := range o.Passives {
			oi.Passives = append(oi.Passives, p.Name)
		}
		opps = append(opps, oi)
	}
	writeJSON(w, http.StatusOK, opps)
}

func (s *Server) handleBattles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.mgr.List())
}

func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	sv, err := s.mgr.Snapshot(r.PathValue("id"))
	if errors.Is(err, session.ErrBattleNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sv)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	h := bnet.NewHandler(s.mgr, s.logger, r.RemoteAddr)
	defer h.Close()

	if err := wsjson.Write(ctx, wsConn, h.Welcome()); err != nil {
		s.logger.Warn("websocket write welcome", zap.Error(err))
		return
	}
	for {
		var msg bnet.ClientMessage
		if err := wsjson.Read(ctx, wsConn, &msg); err != nil {
			if websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
				s.logger.Debug("websocket read", zap.Error(err))
			}
			return
		}
		if msg.Type == bnet.MsgQuit {
			wsConn.Close(websocket.StatusNormalClosure, "bye")
			return
		}
		if err := wsjson.Write(ctx, wsConn, h.Handle(msg)); err != nil {
			s.logger.Warn("websocket write", zap.Error(err))
			return
		}
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
