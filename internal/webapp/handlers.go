package webapp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

const sessionCookie = "zus_session"

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type chatRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.client.Health(r.Context()); err != nil {
		s.requestsTotal.WithLabelValues("health", "error").Inc()
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]any{"connected": false})
		return
	}

	s.requestsTotal.WithLabelValues("health", "ok").Inc()
	s.writeJSON(w, http.StatusOK, map[string]any{"connected": true})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	session, _ := s.currentSession(r)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"logged_in": session.LoggedIn(),
		"username":  session.Username,
		"messages":  session.Messages,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.client.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		s.requestsTotal.WithLabelValues("login", "error").Inc()
		s.writeBackendError(w, err, "login failed")
		return
	}

	session, id := s.currentSession(r)
	session.Username = creds.Username
	session.Token = token

	if err := s.store.Save(r.Context(), id, session); err != nil {
		s.logger.Error("failed to save session", "error", err)
		s.writeError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	s.setSessionCookie(w, id)
	s.requestsTotal.WithLabelValues("login", "ok").Inc()
	s.writeJSON(w, http.StatusOK, map[string]any{"username": creds.Username})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.client.Register(r.Context(), creds.Username, creds.Password); err != nil {
		s.requestsTotal.WithLabelValues("register", "error").Inc()
		s.writeBackendError(w, err, "registration failed")
		return
	}

	s.requestsTotal.WithLabelValues("register", "ok").Inc()
	s.writeJSON(w, http.StatusOK, map[string]any{"registered": true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := s.store.Delete(r.Context(), cookie.Value); err != nil {
			s.logger.Warn("failed to delete session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	s.writeJSON(w, http.StatusOK, map[string]any{"logged_in": false})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		s.writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	session, id := s.currentSession(r)

	resp, err := s.client.Chat(r.Context(), session.Token, req.Prompt)
	if err != nil {
		s.requestsTotal.WithLabelValues("chat", "error").Inc()
		s.writeBackendError(w, err, "chat failed")
		return
	}

	reply := FormatChatReply(resp)

	session.Append("user", req.Prompt, s.historyLimit)
	session.Append("assistant", reply, s.historyLimit)
	if err := s.store.Save(r.Context(), id, session); err != nil {
		s.logger.Error("failed to save session", "error", err)
	}
	s.setSessionCookie(w, id)

	s.requestsTotal.WithLabelValues("chat", "ok").Inc()
	s.writeJSON(w, http.StatusOK, map[string]any{"reply": reply})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	s.proxyQuery(w, r, "products")
}

func (s *Server) handleOutlets(w http.ResponseWriter, r *http.Request) {
	s.proxyQuery(w, r, "outlets")
}

func (s *Server) proxyQuery(w http.ResponseWriter, r *http.Request, kind string) {
	session, _ := s.currentSession(r)
	query := r.URL.Query().Get("query")

	var (
		raw json.RawMessage
		err error
	)
	if kind == "products" {
		raw, err = s.client.Products(r.Context(), session.Token, query)
	} else {
		raw, err = s.client.Outlets(r.Context(), session.Token, query)
	}

	if err != nil {
		s.requestsTotal.WithLabelValues(kind, "error").Inc()
		s.writeBackendError(w, err, kind+" query failed")
		return
	}

	s.requestsTotal.WithLabelValues(kind, "ok").Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// currentSession loads the session for the request cookie, or starts a
// fresh one with a new id.
func (s *Server) currentSession(r *http.Request) (*Session, string) {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		session, err := s.store.Get(r.Context(), cookie.Value)
		if err != nil {
			s.logger.Warn("failed to load session", "error", err)
		}
		if session != nil {
			return session, cookie.Value
		}
		return &Session{}, cookie.Value
	}

	return &Session{}, uuid.NewString()
}

func (s *Server) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]any{"detail": detail})
}

func (s *Server) writeBackendError(w http.ResponseWriter, err error, fallback string) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		detail := apiErr.Detail
		if detail == "" {
			detail = fallback
		}
		s.writeError(w, apiErr.StatusCode, detail)
		return
	}

	s.writeError(w, http.StatusBadGateway, fallback)
}
