package api

import (
	"net/http"
	"strconv"
	"strings"

	"hattucci/domain"
)

type saleLineRequest struct {
	ID       number `json:"id"`
	Name     string `json:"nombre"`
	Quantity number `json:"cantidad"`
	Total    number `json:"total"`
}

type saleRequest struct {
	Lines   []saleLineRequest `json:"venta"`
	Receipt string            `json:"comprobante"`
}

type saleResponse struct {
	OK          bool    `json:"ok"`
	Correlative *string `json:"correlativo"`
}

// processSale depletes stock for every line of a sale and records it. A BOLETA
// receipt is numbered from the correlative counter.
func (h *Handler) processSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}

	lines := make([]domain.SaleLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		id, err := l.ID.integer("id")
		if err != nil {
			h.fail(w, r, err, "")
			return
		}
		qty, err := l.Quantity.integer("cantidad")
		if err != nil {
			h.fail(w, r, err, "")
			return
		}
		lines = append(lines, domain.SaleLine{
			InventoryID: id,
			ProductName: l.Name,
			Quantity:    qty,
			LineTotal:   float64(l.Total),
		})
	}

	receiptType := strings.TrimSpace(req.Receipt)
	if receiptType == "" {
		receiptType = domain.ReceiptNone
	}
	receipt, err := h.sales.Process(r.Context(), lines, receiptType)
	if err != nil {
		h.fail(w, r, err, "Producto no encontrado en inventario")
		return
	}

	resp := saleResponse{OK: true}
	if receipt.Number != nil {
		n := strconv.FormatInt(*receipt.Number, 10)
		resp.Correlative = &n
	}
	respondJSON(w, http.StatusOK, resp)
}
