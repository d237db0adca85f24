// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"

	"waterbuddy/internal/app"
)

const stateCookie = "oauth_state"

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var (
	errUnauthorized = errors.New("unauthorized")
	errSSODisabled  = errors.New("sso disabled")
)

func setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(app.SessionTTL.Seconds()),
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", HttpOnly: true, MaxAge: -1})
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	token, err := s.authSvc.Login(r.Context(), body.Username, body.Password, r.UserAgent(), r.RemoteAddr)
	switch {
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err)
		return
	case err != nil:
		writeServiceError(w, s.log, err)
		return
	}

	setSessionCookie(w, r, token)
	writeOK(w)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if err := s.authSvc.Logout(r.Context(), c.Value); err != nil {
			s.log.Warn().Err(err).Msg("logout")
		}
	}
	clearCookie(w, sessionCookie)
	writeOK(w)
}

// handleSetupUser creates the first account; it is refused once any user
// exists.
func (s *Server) handleSetupUser(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	err := s.authSvc.CreateInitialUser(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, app.ErrUsersExist):
		writeError(w, http.StatusConflict, err)
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sso_enabled":  s.oidcConfig.Enabled,
		"auth_enabled": !s.disableAuth,
	})
}

func (s *Server) handleSSOLogin(w http.ResponseWriter, r *http.Request) {
	if !s.oidcConfig.Enabled {
		writeError(w, http.StatusNotFound, errSSODisabled)
		return
	}
	state, err := randomState()
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	// Lax so the cookie survives the provider's cross-site redirect back.
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300,
	})
	http.Redirect(w, r, s.oidcConfig.OAuth2Config.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleSSOCallback(w http.ResponseWriter, r *http.Request) {
	if !s.oidcConfig.Enabled {
		writeError(w, http.StatusNotFound, errSSODisabled)
		return
	}

	q := r.URL.Query()
	state, err := r.Cookie(stateCookie)
	if err != nil || q.Get("state") == "" || q.Get("state") != state.Value {
		writeError(w, http.StatusBadRequest, errors.New("invalid state"))
		return
	}
	clearCookie(w, stateCookie)

	username, err := s.ssoUsername(r, q.Get("code"))
	if err != nil {
		s.log.Warn().Err(err).Msg("sso callback")
		writeError(w, http.StatusUnauthorized, errUnauthorized)
		return
	}

	token, err := s.authSvc.LoginWithUser(r.Context(), username, r.UserAgent(), r.RemoteAddr)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	setSessionCookie(w, r, token)
	http.Redirect(w, r, "/", http.StatusFound)
}

// ssoUsername exchanges the code and returns the verified email, or the
// subject when the provider sends no email.
func (s *Server) ssoUsername(r *http.Request, code string) (string, error) {
	oauthToken, err := s.oidcConfig.OAuth2Config.Exchange(r.Context(), code)
	if err != nil {
		return "", err
	}
	raw, ok := oauthToken.Extra("id_token").(string)
	if !ok {
		return "", errors.New("no id_token in response")
	}
	verifier := s.oidcConfig.Provider.Verifier(&oidc.Config{ClientID: s.oidcConfig.OAuth2Config.ClientID})
	idToken, err := verifier.Verify(r.Context(), raw)
	if err != nil {
		return "", err
	}

	var claims struct {
		Email string `json:"email"`
		Sub   string `json:"sub"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", err
	}
	if claims.Email != "" {
		return claims.Email, nil
	}
	return claims.Sub, nil
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
