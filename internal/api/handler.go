package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"hattucci/domain"
	"hattucci/internal/config"
	"hattucci/internal/credentials"
	"hattucci/internal/inventory"
	"hattucci/internal/keylock"
	"hattucci/internal/purchases"
	"hattucci/internal/reports"
	"hattucci/internal/sales"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	cfg         config.Config
	logger      *zap.Logger
	credentials *credentials.Store
	inventory   *inventory.Ledger
	purchases   *purchases.Ledger
	sales       *sales.Ledger
	reports     *reports.Aggregator
}

// New constructs a Handler. Every ledger shares one key locker so purchases,
// restocks and receipts serialize on the same lot and counter keys.
func New(db *sqlx.DB, cfg config.Config, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	locks := keylock.Default()
	return &Handler{
		cfg:         cfg,
		logger:      logger,
		credentials: credentials.New(db, logger.Named("credentials")),
		inventory:   inventory.New(db, locks, logger.Named("inventory")),
		purchases:   purchases.New(db, locks, logger.Named("purchases")),
		sales:       sales.New(db, locks, logger.Named("sales")),
		reports:     reports.New(db, logger.Named("reports")),
	}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Get("/", redirectTo("/login"))
	r.Get("/health", h.health)

	r.Get("/verificar", h.verify)
	r.Get("/validar_usuario_login", h.validateLoginUser)
	r.Post("/registrar", h.register)
	r.Post("/ingresar", h.login)
	r.Get("/logout", h.logout)

	r.Group(func(pr chi.Router) {
		if h.cfg.RequireSession {
			pr.Use(h.sessionMiddleware)
		}

		pr.Post("/registrar_inventario", h.registerInventory)
		pr.Get("/obtener_inventario", h.listInventory)
		pr.Delete("/eliminar_inventario/{id}", h.deleteInventory)
		pr.Get("/inventario_por_producto", h.stockByProduct)

		pr.Post("/registrar_compra", h.registerPurchase)
		pr.Get("/obtener_compras", h.listPurchases)
		pr.Post("/filtrar_compras_dia", h.listPurchasesByDay)
		pr.Delete("/eliminar_compra/{id}", h.deletePurchase)

		pr.Post("/descontar_stock", h.processSale)

		pr.Post("/obtener_reportes_dia", h.dailyReport)
		pr.Post("/obtener_movimientos_dia", h.dailyMovements)
		pr.Get("/exportar_movimientos_dia", h.exportMovements)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			h.logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func redirectTo(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusFound)
	}
}

// Error mapping

type failure struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBadCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// fail answers {ok:false, error} with the status of err's kind. notFound
// replaces the message for not-found errors; datastore errors are logged and
// never echoed to the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	status := statusFor(err)
	msg := err.Error()
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		msg = verr.Error()
	case status == http.StatusNotFound && notFound != "":
		msg = notFound
	case status == http.StatusInternalServerError:
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		msg = "error interno del servidor"
	}
	respondJSON(w, status, failure{OK: false, Error: msg})
}

// Helpers

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: "id", Reason: "identificador inválido"}
	}
	return id, nil
}

// number accepts JSON numbers as well as numeric strings, which is what HTML
// form inputs serialize to.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("valor numérico inválido %q", s)
	}
	*n = number(f)
	return nil
}

// maxExactInteger bounds the integers a float64 holds exactly.
const maxExactInteger = 1 << 53

func (n number) integer(field string) (int64, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, &domain.ValidationError{Field: field, Reason: "debe ser un número entero"}
	}
	if math.Abs(f) > maxExactInteger {
		return 0, &domain.ValidationError{Field: field, Reason: "fuera de rango"}
	}
	return int64(f), nil
}

func decodeJSON(r *http.Request, dest interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return &domain.ValidationError{Field: "json", Reason: err.Error()}
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}
