// Package http exposes the navigation engine over a small JSON API, intended
// for thin web or messenger front-ends that render views and post back the
// actions the user tapped.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"menuflow"
	"menuflow/internal/logging"
	"menuflow/pkg/domain"
)

// Server handles the JSON API on top of a menuflow App.
type Server struct {
	app    *menuflow.App
	logger *slog.Logger
}

// NewHandler creates the HTTP handler for the app. A nil logger silences
// request logging.
func NewHandler(app *menuflow.App, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{app: app, logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Get("/screens", s.listScreens)
	r.Get("/sessions", s.listSessions)
	r.Post("/sessions", s.createSession)
	r.Route("/sessions/{userID}", func(r chi.Router) {
		r.Get("/view", s.renderView)
		r.Post("/actions", s.applyAction)
		r.Post("/text", s.submitText)
		r.Post("/reset", s.resetSession)
		r.Delete("/", s.deleteSession)
	})
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionResponse pairs a user id with the view their session renders to.
type SessionResponse struct {
	UserID string      `json:"user_id"`
	View   domain.View `json:"view"`
}

// TextRequest is the body of POST /sessions/{userID}/text.
type TextRequest struct {
	Text string `json:"text"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listScreens(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"screens": s.app.Manifest().ScreenIDs()})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	users, err := s.app.Sessions().List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if users == nil {
		users = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"sessions": users})
}

// createSession starts an anonymous session under a generated user id.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	userID := uuid.NewString()
	view, err := s.app.Render(r.Context(), userID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, SessionResponse{UserID: userID, View: view})
}

func (s *Server) renderView(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	view, err := s.app.Render(r.Context(), userID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, SessionResponse{UserID: userID, View: view})
}

// applyAction applies one action and responds with the resulting view.
func (s *Server) applyAction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var action domain.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid action body: %w", err))
		return
	}

	if err := s.app.Apply(r.Context(), userID, action); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	view, err := s.app.Render(r.Context(), userID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, SessionResponse{UserID: userID, View: view})
}

func (s *Server) submitText(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var body TextRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid text body: %w", err))
		return
	}

	if err := s.app.SubmitText(r.Context(), userID, body.Text); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	view, err := s.app.Render(r.Context(), userID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, SessionResponse{UserID: userID, View: view})
}

func (s *Server) resetSession(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, err := s.app.Reset(r.Context(), userID); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	view, err := s.app.Render(r.Context(), userID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, SessionResponse{UserID: userID, View: view})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if err := s.app.Sessions().Delete(r.Context(), userID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error("request failed", "status", status, "err", err)
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
