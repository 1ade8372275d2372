// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"storereviews/internal/app"
	"storereviews/internal/domain"
)

const (
	defaultPlayCount  = 200
	defaultPlayStars  = 5
	defaultAppReviews = 20

	msgPlayMissingURL = "Please provide a Google Play Store URL."
	msgPlayFailed     = "An error occurred while fetching reviews."
	msgAppMissingURL  = "No URL provided"
)

type Handlers struct{ R *app.ReviewService }

type reviewsResponse struct {
	Reviews  []domain.Review `json:"reviews"`
	Platform domain.Platform `json:"platform"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/test", h.hello)
	s.mux.Get("/api/get-playstore-reviews", h.playStoreReviews)
	s.mux.Get("/api/get-appstore-reviews", h.appStoreReviews)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (h *Handlers) hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
}

func (h *Handlers) playStoreReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	url := q.Get("url")

	count, err := intParam(q.Get("count"), defaultPlayCount)
	if err != nil || count < 0 {
		writeError(w, http.StatusBadRequest, "count must be a non-negative integer")
		return
	}
	stars, err := intParam(q.Get("stars"), defaultPlayStars)
	if err != nil {
		writeError(w, http.StatusBadRequest, "stars must be an integer")
		return
	}

	if url == "" {
		writeError(w, http.StatusBadRequest, msgPlayMissingURL)
		return
	}

	revs, err := h.R.FetchPlayStoreReviews(r.Context(), url, count, stars)
	switch {
	case errors.Is(err, domain.ErrInvalidPlayStoreURL):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Error().Err(err).Str("url", url).Msg("play store fetch failed")
		writeError(w, http.StatusInternalServerError, msgPlayFailed)
		return
	}

	writeJSON(w, http.StatusOK, reviewsResponse{Reviews: revs, Platform: domain.PlatformPlayStore})
}

func (h *Handlers) appStoreReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	url := q.Get("url")

	// malformed values quietly fall back to the default
	howMany, err := intParam(q.Get("num_reviews"), defaultAppReviews)
	if err != nil || howMany < 0 {
		howMany = defaultAppReviews
	}

	if url == "" {
		writeError(w, http.StatusBadRequest, msgAppMissingURL)
		return
	}

	revs, err := h.R.FetchAppStoreReviews(r.Context(), url, howMany)
	switch {
	case errors.Is(err, domain.ErrInvalidAppStoreURL):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Error().Err(err).Str("url", url).Msg("app store fetch failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, reviewsResponse{Reviews: revs, Platform: domain.PlatformAppStore})
}

// intParam parses an optional integer query value; empty means def.
func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
