package api

import (
	"net/http"

	"go.uber.org/zap"

	"hattucci/domain"
)

type purchaseRequest struct {
	SupplierName    string `json:"proveedor_nombre"`
	SupplierContact string `json:"proveedor_contacto"`
	Product         string `json:"producto"`
	Quantity        number `json:"cantidad"`
	UnitPrice       number `json:"precio_unitario"`
	RegisteredOn    string `json:"fecha_registro"`
	ExpiresOn       string `json:"fecha_vencimiento"`
}

type dayRequest struct {
	Day string `json:"dia"`
}

// registerPurchase records a supplier acquisition and feeds its quantity into
// the matching inventory lot.
func (h *Handler) registerPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	qty, err := req.Quantity.integer("cantidad")
	if err != nil {
		h.fail(w, r, err, "")
		return
	}

	res, err := h.purchases.Record(r.Context(), domain.PurchaseInput{
		SupplierName:    req.SupplierName,
		SupplierContact: req.SupplierContact,
		Product:         req.Product,
		Quantity:        qty,
		UnitPrice:       float64(req.UnitPrice),
		RegisteredOn:    req.RegisteredOn,
		ExpiresOn:       req.ExpiresOn,
	})
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	if res.Inserted {
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true, "insert": true})
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true, "update": true})
}

func (h *Handler) listPurchases(w http.ResponseWriter, r *http.Request) {
	records, err := h.purchases.List(r.Context())
	if err != nil {
		h.logger.Error("list purchases", zap.Error(err))
		records = []domain.PurchaseRecord{}
	}
	respondJSON(w, http.StatusOK, records)
}

func (h *Handler) listPurchasesByDay(w http.ResponseWriter, r *http.Request) {
	var req dayRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	day, err := domain.ParseDay("dia", req.Day)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	records, err := h.purchases.ListByDay(r.Context(), day)
	if err != nil {
		h.logger.Error("list purchases by day", zap.String("day", day), zap.Error(err))
		records = []domain.PurchaseRecord{}
	}
	respondJSON(w, http.StatusOK, records)
}

// deletePurchase removes a purchase and withdraws its quantity from the lot it fed.
func (h *Handler) deletePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	if err := h.purchases.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "Compra no encontrada")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
