package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"hattucci/domain"
	"hattucci/internal/database"
)

// Store keeps user identities and salted password digests.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
	cost   int
}

func New(db *sqlx.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger, cost: bcrypt.DefaultCost}
}

// UsernameExists reports whether a credential already uses username.
func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, `SELECT id FROM registro WHERE usuario = ? LIMIT 1`, strings.TrimSpace(username))
}

// EmailExists reports whether a credential already uses email.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, `SELECT id FROM registro WHERE correo = ? LIMIT 1`, strings.TrimSpace(email))
}

func (s *Store) exists(ctx context.Context, query, value string) (bool, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, query, value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup credential: %w", err)
	}
	return true, nil
}

// Register validates r, rejects a taken username or email and stores a bcrypt digest of the password.
func (s *Store) Register(ctx context.Context, r domain.Registration) (domain.Credential, error) {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	if err := r.Validate(); err != nil {
		return domain.Credential{}, err
	}

	var taken int64
	err := s.db.GetContext(ctx, &taken, `SELECT COUNT(*) FROM registro WHERE usuario = ? OR correo = ?`, r.Username, r.Email)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("check credential: %w", err)
	}
	if taken > 0 {
		return domain.Credential{}, domain.ErrDuplicate
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.cost)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("hash password: %w", err)
	}

	cred := domain.Credential{
		Username: r.Username,
		Email:    r.Email,
		Name:     r.Name,
		LastName: r.LastName,
		Phone:    r.Phone,
		Password: string(hashed),
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO registro (usuario, correo, nombre, apellido, telefono, contrasena)
        VALUES (?, ?, ?, ?, ?, ?)`, cred.Username, cred.Email, cred.Name, cred.LastName, cred.Phone, cred.Password)
	if database.IsUniqueViolation(err) {
		return domain.Credential{}, domain.ErrDuplicate
	}
	if err != nil {
		return domain.Credential{}, fmt.Errorf("insert credential: %w", err)
	}
	if cred.ID, err = res.LastInsertId(); err != nil {
		return domain.Credential{}, fmt.Errorf("read credential id: %w", err)
	}

	s.logger.Info("user registered", zap.Int64("user_id", cred.ID), zap.String("username", cred.Username))
	cred.Password = ""
	return cred, nil
}

// Authenticate returns the credential for username when password matches.
func (s *Store) Authenticate(ctx context.Context, username, password string) (domain.Credential, error) {
	var cred domain.Credential
	err := s.db.GetContext(ctx, &cred, `SELECT id, usuario, correo, nombre, apellido, telefono, contrasena
        FROM registro WHERE usuario = ?`, strings.TrimSpace(username))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Credential{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Credential{}, fmt.Errorf("load credential: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(password)) != nil {
		s.logger.Warn("login rejected", zap.String("username", cred.Username))
		return domain.Credential{}, domain.ErrBadCredentials
	}

	cred.Password = ""
	return cred, nil
}
