package api

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"hattucci/domain"
)

// verify answers whether a username or an email is already registered.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		exists bool
		err    error
	)
	switch {
	case q.Get("usuario") != "":
		exists, err = h.credentials.UsernameExists(r.Context(), q.Get("usuario"))
	case q.Get("correo") != "":
		exists, err = h.credentials.EmailExists(r.Context(), q.Get("correo"))
	default:
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Parámetro inválido"})
		return
	}
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"existe": exists})
}

func (h *Handler) validateLoginUser(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("usuario")
	if strings.TrimSpace(username) == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Parámetro inválido"})
		return
	}
	exists, err := h.credentials.UsernameExists(r.Context(), username)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"existe": exists})
}

// register handles the registration form. Failures answer plain text so the
// page can show them verbatim.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondText(w, http.StatusBadRequest, "❌ Formulario inválido")
		return
	}
	reg := domain.Registration{
		Username: r.PostFormValue("usuario"),
		Email:    r.PostFormValue("correo"),
		Name:     r.PostFormValue("nombre"),
		LastName: r.PostFormValue("apellido"),
		Phone:    r.PostFormValue("telefono"),
		Password: r.PostFormValue("contraseña"),
	}

	_, err := h.credentials.Register(r.Context(), reg)
	var verr *domain.ValidationError
	switch {
	case err == nil:
		http.Redirect(w, r, "/login", http.StatusFound)
	case errors.As(err, &verr):
		respondText(w, http.StatusBadRequest, "❌ "+capitalize(verr.Reason))
	case errors.Is(err, domain.ErrDuplicate):
		respondText(w, http.StatusConflict, "❌ El usuario o correo ya está registrado")
	default:
		h.logger.Error("registration failed", zap.Error(err))
		respondText(w, http.StatusInternalServerError, "❌ Error al registrar")
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondText(w, http.StatusBadRequest, "❌ Formulario inválido")
		return
	}
	cred, err := h.credentials.Authenticate(r.Context(), r.PostFormValue("usuario"), r.PostFormValue("contraseña"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondText(w, http.StatusUnauthorized, "❌ Usuario no encontrado")
		return
	case errors.Is(err, domain.ErrBadCredentials):
		respondText(w, http.StatusUnauthorized, "❌ Contraseña incorrecta")
		return
	case err != nil:
		h.logger.Error("login failed", zap.Error(err))
		respondText(w, http.StatusInternalServerError, "❌ Error al iniciar sesión")
		return
	}

	token, err := h.issueSession(cred)
	if err != nil {
		h.logger.Error("sign session", zap.Error(err))
		respondText(w, http.StatusInternalServerError, "❌ Error al iniciar sesión")
		return
	}
	setSessionCookie(w, token)
	h.logger.Info("user logged in", zap.String("username", cred.Username))
	http.Redirect(w, r, "/menu", http.StatusFound)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
