package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"librarycatalog/internal/apperror"
	"librarycatalog/package/logger"
)

const CookieName = "access_token"

// ProtectedHandle is an httprouter.Handle that also receives the
// authenticated username.
type ProtectedHandle func(w http.ResponseWriter, r *http.Request, params httprouter.Params, username string)

// Require wraps a handle with session-token authentication. The token is
// read from the access_token cookie, falling back to an
// Authorization: Bearer header.
func Require(s *Service, next ProtectedHandle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		username, err := s.ValidateToken(tokenFromRequest(r))
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				http.Error(w, "User not found", http.StatusNotFound)
				logger.Log.Info("Rejected request to " + r.URL.Path + ": " + err.Error())
				return
			}
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, "Not authenticated", http.StatusUnauthorized)
			logger.Log.Info("Rejected request to " + r.URL.Path + ": " + err.Error())
			return
		}
		next(w, r, params, username)
	}
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
