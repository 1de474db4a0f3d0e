package sim

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"lyric-player-go/middleware"
	"lyric-player-go/player"
)

// Handler builds the simulator's HTTP surface:
//
//	GET  /guild/{guildId}/lyrics[?source=...]
//	POST /guild/{guildId}/control
//
// wrapped in logging, CORS (browser dashboards poll this too), and per-IP
// rate limiting.
func Handler(s *Simulator, perSecond rate.Limit, burst int) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/guild/{guildId}/lyrics", s.handleLyrics).Methods(http.MethodGet)
	router.HandleFunc("/guild/{guildId}/control", s.handleControl).Methods(http.MethodPost)
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"help": "GET /guild/{id}/lyrics for the playback snapshot, POST /guild/{id}/control with {\"action\": \"pause|resume|skip|stop\"}",
		})
	})

	limiter := middleware.NewIPRateLimiter(perSecond, burst)

	handler := middleware.LoggingMiddleware(router)
	handler = cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(handler)
	return middleware.RateLimitMiddleware(limiter)(handler)
}

func (s *Simulator) handleLyrics(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guildId"]
	snap := s.Snapshot(guildID, r.URL.Query().Get("source"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (s *Simulator) handleControl(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guildId"]

	var req player.ControlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid control body", http.StatusBadRequest)
		return
	}

	action := player.Action(req.Action)
	if !action.Valid() {
		http.Error(w, "unknown action: "+req.Action, http.StatusBadRequest)
		return
	}

	if err := s.Control(guildID, action); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
