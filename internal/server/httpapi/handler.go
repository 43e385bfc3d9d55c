package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/storeconsole/internal/api"
	"github.com/dmitrijs2005/storeconsole/internal/common"
	"github.com/dmitrijs2005/storeconsole/internal/server/auth"
)

const maxBodySize = 1 << 16

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Error: msg})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var in api.LoginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}
	if in.Username == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	ctx := r.Context()
	sess, err := s.users.Login(ctx, in.Username, []byte(in.Password))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Info(ctx, "Login rejected", "username", in.Username)
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.logger.Error(ctx, "Login failed", "username", in.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Info(ctx, "Logged in", "username", sess.User.Username, "role", sess.User.Role)
	writeJSON(w, http.StatusOK, sess.LoginResponse())
}

func (s *HTTPServer) summary(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}
	s.logger.Debug(r.Context(), "Summary requested", "username", claims.Username)
	writeJSON(w, http.StatusOK, s.ledger.Summary())
}

func (s *HTTPServer) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.PingResponse{Status: api.StatusOK})
}
