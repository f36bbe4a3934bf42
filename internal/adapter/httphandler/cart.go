package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/storefront/internal/core/port"
)

// Every cart route requires the X-Customer-ID and Authorization headers.
// GET v1/cart (200 OK, 401)
// PUT v1/cart/{code} JSON {"amount": n} (204 No content, 400, 401)
// DELETE v1/cart/{code} (204 No content, 401, 404)
// POST v1/checkout (201 Created, 401, 409 Conflict, 502)

type CartHandler struct {
	cart port.CartManager
}

func RegisterCart(r chi.Router, cart port.CartManager) {
	h := CartHandler{cart}
	r.Get("/v1/cart", h.GetCart)
	r.Put("/v1/cart/{code}", h.PutItem)
	r.Delete("/v1/cart/{code}", h.DeleteItem)
	r.Post("/v1/checkout", h.PostCheckout)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	summary, err := h.cart.GetCart(r.Context(), shopperFromRequest(r))
	if err != nil {
		respondError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, cartFromSummary(summary))
}

func (h CartHandler) PutItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutItem"
	log := slog.With("op", op)

	code, err := parseIDParam(r, "code")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product code")
		return
	}

	var item CartItem
	if err := decodeJSON(w, r, &item); err != nil {
		log.Warn("failed to parse JSON", "err", err)
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		return
	}

	err = h.cart.AddToCart(r.Context(), shopperFromRequest(r), code, item.Amount)
	if err != nil {
		respondError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	code, err := parseIDParam(r, "code")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product code")
		return
	}

	if err := h.cart.RemoveFromCart(r.Context(), shopperFromRequest(r), code); err != nil {
		respondError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostCheckout"
	log := slog.With("op", op)

	if err := h.cart.Checkout(r.Context(), shopperFromRequest(r)); err != nil {
		respondError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
