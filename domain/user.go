package domain

import "strings"

// Credential is a registered back-office user. The password digest never leaves the store.
type Credential struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"usuario" db:"usuario"`
	Email    string `json:"correo" db:"correo"`
	Name     string `json:"nombre" db:"nombre"`
	LastName string `json:"apellido" db:"apellido"`
	Phone    string `json:"telefono" db:"telefono"`
	Password string `json:"-" db:"contrasena"`
}

// Registration carries the registration form fields.
type Registration struct {
	Username string
	Email    string
	Name     string
	LastName string
	Phone    string
	Password string
}

// Validate checks that every field is present and the email looks deliverable.
func (r Registration) Validate() error {
	for _, v := range []string{r.Username, r.Email, r.Name, r.LastName, r.Phone, r.Password} {
		if strings.TrimSpace(v) == "" {
			return &ValidationError{Field: "registro", Reason: "todos los campos son requeridos"}
		}
	}
	if !strings.Contains(r.Email, "@") || (!strings.Contains(r.Email, ".com") && !strings.Contains(r.Email, ".net")) {
		return &ValidationError{Field: "correo", Reason: "correo inválido"}
	}
	return nil
}
