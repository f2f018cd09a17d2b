package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"hattucci/domain"
)

const (
	sessionCookie = "sesion"
	sessionTTL    = 24 * time.Hour
)

type ctxKey string

const ctxUsername ctxKey = "username"

type sessionClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"usuario"`
	jwt.RegisteredClaims
}

func (h *Handler) issueSession(cred domain.Credential) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID:   cred.ID,
		Username: cred.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   cred.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.Secret))
}

func (h *Handler) parseSession(tokenString string) (*sessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(h.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid session")
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok {
		return nil, errors.New("invalid session claims")
	}
	return claims, nil
}

// sessionToken takes the session cookie first and falls back to a bearer header.
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}

func (h *Handler) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := sessionToken(r)
		if tokenString == "" {
			respondJSON(w, http.StatusUnauthorized, failure{Error: "sesión requerida"})
			return
		}
		claims, err := h.parseSession(tokenString)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, failure{Error: "sesión inválida"})
			return
		}
		ctx := context.WithValue(r.Context(), ctxUsername, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
