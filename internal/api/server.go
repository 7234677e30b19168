// Package api provides the HTTP API for querying league state.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jtalbot/frontoffice/internal/engine"
	"github.com/jtalbot/frontoffice/internal/persistence"
	"github.com/jtalbot/frontoffice/internal/roster"
)

// Server serves the league state over HTTP.
type Server struct {
	Sim      *engine.Simulation
	Eng      *engine.Engine
	DB       *persistence.DB
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	historyLimiter := NewRateLimiter(120, time.Hour)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/players", s.handlePlayers)
	mux.HandleFunc("/api/v1/player/", s.handlePlayerRoutes(historyLimiter))
	mux.HandleFunc("/api/v1/teams", s.handleTeams)
	mux.HandleFunc("/api/v1/market", s.handleMarket)
	mux.HandleFunc("/api/v1/decisions", s.handleDecisions)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/stats", s.handleStats)

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("/api/v1/snapshot", s.adminOnly(s.handleSnapshot))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS env var to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
// GET requests pass through (for endpoints that support both GET and POST).
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled (no FRONTOFFICE_ADMIN_KEY set)", http.StatusForbidden)
				return
			}

			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}

		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	year, week := engine.YearWeek(s.Sim.CurrentTick())
	status := map[string]any{
		"name":       "Front Office",
		"tick":       s.Sim.CurrentTick(),
		"sim_time":   engine.SimTime(s.Sim.CurrentTick()),
		"year":       year,
		"week":       week,
		"stage":      engine.StageFor(week).String(),
		"speed":      s.Eng.Speed,
		"running":    s.Eng.Running,
		"players":    s.Sim.Stats.TotalPlayers,
		"accepts":    s.Sim.Stats.Accepts,
		"counters":   s.Sim.Stats.Counters,
		"rejects":    s.Sim.Stats.Rejects,
		"holdouts":   s.Sim.Stats.Holdouts,
		"shortlists": s.Sim.Stats.Shortlists,
		"avg_score":  s.Sim.Stats.AvgScore,
	}
	writeJSON(w, status)
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	posFilter := strings.ToUpper(r.URL.Query().Get("position"))

	type playerSummary struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Position  string  `json:"position"`
		Age       int     `json:"age"`
		Overall   int     `json:"overall"`
		Archetype string  `json:"archetype"`
		Rarity    float64 `json:"rarity"`
		Style     string  `json:"negotiation_style"`
	}

	var result []playerSummary
	for _, pl := range s.Sim.Players {
		if posFilter != "" && pl.Position.String() != posFilter {
			continue
		}

		summary := playerSummary{
			ID:       pl.ID.String(),
			Name:     pl.Name,
			Position: pl.Position.String(),
			Age:      pl.Age,
			Overall:  pl.Overall,
		}
		if p, ok := s.Sim.Personalities[pl.ID.String()]; ok {
			summary.Archetype = p.Archetype
			summary.Rarity = p.Rarity
			summary.Style = p.Traits.NegotiationStyle.String()
		}
		result = append(result, summary)
	}
	writeJSON(w, result)
}

// handlePlayerRoutes dispatches between player detail (GET /api/v1/player/:id)
// and decision history (GET /api/v1/player/:id/decisions).
func (s *Server) handlePlayerRoutes(historyLimiter *RateLimiter) http.HandlerFunc {
	rateLimitedHistory := RateLimitMiddleware(historyLimiter, s.handlePlayerDecisions)

	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		if len(parts) < 5 || parts[4] == "" {
			http.Error(w, "missing player id", http.StatusBadRequest)
			return
		}
		id := parts[4]

		pl, ok := s.Sim.PlayerIndex[id]
		if !ok {
			http.Error(w, "player not found", http.StatusNotFound)
			return
		}

		if len(parts) >= 6 && parts[5] == "decisions" {
			rateLimitedHistory(w, r)
			return
		}

		result := map[string]any{"player": pl}
		if p, ok := s.Sim.Personalities[id]; ok {
			result["personality"] = p
		}
		writeJSON(w, result)
	}
}

func (s *Server) handlePlayerDecisions(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}

	parts := strings.Split(r.URL.Path, "/")
	id := parts[4]

	records, err := s.DB.PlayerDecisions(id, queryLimit(r, 50, 500))
	if err != nil {
		slog.Error("decision history query failed", "error", err, "player", id)
		writeJSON(w, []persistence.DecisionRecord{})
		return
	}
	if records == nil {
		records = []persistence.DecisionRecord{}
	}
	writeJSON(w, records)
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Teams)
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	year, _ := engine.YearWeek(s.Sim.CurrentTick())

	// One position at a specific rating when asked, otherwise every
	// position at a representative rating.
	if posArg := r.URL.Query().Get("position"); posArg != "" {
		pos, err := roster.ParsePosition(strings.ToUpper(posArg))
		if err != nil {
			http.Error(w, "invalid position", http.StatusBadRequest)
			return
		}
		overall := 80
		if o := r.URL.Query().Get("overall"); o != "" {
			if n, err := strconv.Atoi(o); err == nil && n >= 40 && n <= 99 {
				overall = n
			}
		}
		writeJSON(w, s.Sim.Market.Snapshot(pos, overall, year))
		return
	}

	type marketEntry struct {
		Position string  `json:"position"`
		P25      float64 `json:"p25"`
		P50      float64 `json:"p50"`
		P75      float64 `json:"p75"`
		P90      float64 `json:"p90"`
		Supply   float64 `json:"supply_pressure"`
		Trend    string  `json:"trend"`
	}

	var result []marketEntry
	for pos := roster.Position(0); pos < roster.NumPositions; pos++ {
		mc := s.Sim.Market.Snapshot(pos, 80, year)
		result = append(result, marketEntry{
			Position: pos.String(),
			P25:      mc.APYPercentiles.P25,
			P50:      mc.APYPercentiles.P50,
			P75:      mc.APYPercentiles.P75,
			P90:      mc.APYPercentiles.P90,
			Supply:   mc.SupplyPressure,
			Trend:    mc.Trend.String(),
		})
	}
	writeJSON(w, result)
}

func (s *Server) handleDecisions(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}

	records, err := s.DB.RecentDecisions(queryLimit(r, 50, 500))
	if err != nil {
		slog.Error("decisions query failed", "error", err)
		writeJSON(w, []persistence.DecisionRecord{})
		return
	}
	if records == nil {
		records = []persistence.DecisionRecord{}
	}

	// Optional decision kind filter.
	if kind := r.URL.Query().Get("kind"); kind != "" {
		var filtered []persistence.DecisionRecord
		for _, rec := range records {
			if rec.Decision == kind {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
		if records == nil {
			records = []persistence.DecisionRecord{}
		}
	}
	writeJSON(w, records)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, 50, 500)

	events := s.Sim.Events

	// Optional category filter.
	if category := r.URL.Query().Get("category"); category != "" {
		var filtered []engine.Event
		for _, e := range events {
			if e.Category == category {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	start := 0
	if len(events) > limit {
		start = len(events) - limit
	}
	writeJSON(w, events[start:])
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	// Archetype counts sorted for stable output.
	type archetypeCount struct {
		Archetype string `json:"archetype"`
		Count     int    `json:"count"`
	}
	var archetypes []archetypeCount
	for name, count := range s.Sim.Stats.Archetypes {
		archetypes = append(archetypes, archetypeCount{Archetype: name, Count: count})
	}
	sort.Slice(archetypes, func(i, j int) bool {
		if archetypes[i].Count != archetypes[j].Count {
			return archetypes[i].Count > archetypes[j].Count
		}
		return archetypes[i].Archetype < archetypes[j].Archetype
	})

	writeJSON(w, map[string]any{
		"stats":      s.Sim.Stats,
		"archetypes": archetypes,
	})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Speed float64 `json:"speed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Speed < 0 || req.Speed > 1000 {
			http.Error(w, "speed must be 0-1000", http.StatusBadRequest)
			return
		}
		s.Eng.Speed = req.Speed
		slog.Info("speed changed", "speed", req.Speed)
	}

	writeJSON(w, map[string]float64{"speed": s.Eng.Speed})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}

	if err := s.DB.SaveLeagueState(s.Sim); err != nil {
		slog.Error("snapshot save failed", "error", err)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"tick":    s.Sim.CurrentTick(),
		"message": "snapshot saved",
	})
}

// queryLimit parses a ?limit= query parameter with a default and a cap.
func queryLimit(r *http.Request, def, max int) int {
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= max {
			return n
		}
	}
	return def
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
