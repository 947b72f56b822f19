package http

import (
	"net/http"
	"time"
)

const refreshCookieName = "refresh_token"

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.svcs.Auth.Register(r.Context(), sanitizeInput(req.Username), sanitizeInput(req.Email), req.Password)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	access, refresh, err := s.svcs.Auth.Login(r.Context(), sanitizeInput(req.Email), req.Password)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	s.setRefreshCookie(w, refresh, s.refreshTTL)
	respondJSON(w, http.StatusOK, tokenResponse{AccessToken: access, TokenType: "Bearer"})
}

// handleRefresh exchanges the refresh cookie for a new access token. The
// token can also arrive in the body for clients that do not keep cookies.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	refresh := ""
	if cookie, err := r.Cookie(refreshCookieName); err == nil {
		refresh = cookie.Value
	}
	if refresh == "" {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := decodeJSON(w, r, &req); err == nil {
			refresh = req.RefreshToken
		}
	}
	if refresh == "" {
		respondError(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	access, err := s.svcs.Auth.Refresh(r.Context(), refresh)
	if err != nil {
		respondError(w, http.StatusForbidden, "invalid refresh token")
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{AccessToken: access, TokenType: "Bearer"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	if err := s.svcs.Auth.Logout(r.Context(), userID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	s.setRefreshCookie(w, "", -time.Hour)
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) setRefreshCookie(w http.ResponseWriter, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/api/auth",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
