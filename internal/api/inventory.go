package api

import (
	"net/http"

	"go.uber.org/zap"

	"hattucci/domain"
)

type inventoryRequest struct {
	Product   string `json:"producto"`
	ExpiresOn string `json:"vencimiento"`
	Stock     number `json:"stock"`
	SalePrice number `json:"precio_venta"`
}

// registerInventory adds stock to the lot identified by product, sale price
// and expiration day, creating it when it does not exist yet.
func (h *Handler) registerInventory(w http.ResponseWriter, r *http.Request) {
	var req inventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	stock, err := req.Stock.integer("stock")
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	if stock == 0 {
		h.fail(w, r, &domain.ValidationError{Field: "stock", Reason: "es requerido"}, "")
		return
	}

	key := domain.LotKey{Product: req.Product, SalePrice: float64(req.SalePrice), ExpiresOn: req.ExpiresOn}
	rec, err := h.inventory.Upsert(r.Context(), key, stock)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	if rec.Created {
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true, "insert": true})
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true, "update": true})
}

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	lots, err := h.inventory.List(r.Context())
	if err != nil {
		h.logger.Error("list inventory", zap.Error(err))
		lots = []domain.InventoryLot{}
	}
	respondJSON(w, http.StatusOK, lots)
}

func (h *Handler) deleteInventory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	if err := h.inventory.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "Producto no encontrado")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// stockByProduct sums the stock of every lot of a product expiring on fecha.
func (h *Handler) stockByProduct(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	total, err := h.inventory.StockTotal(r.Context(), q.Get("producto"), q.Get("fecha"))
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"total": total})
}
