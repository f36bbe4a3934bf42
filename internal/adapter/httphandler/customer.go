package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/storefront/internal/core/port"
)

// POST v1/customers JSON (201 Created, 400, 502)
// PUT v1/customers/{id} JSON (200 OK, 400, 502)
// GET v1/customers/{id} (200 OK, 404)

type CustomersHandler struct {
	customers port.CustomerManager
}

func RegisterCustomers(r chi.Router, customers port.CustomerManager) {
	h := CustomersHandler{customers}
	r.Post("/v1/customers", h.PostCustomer)
	r.Put("/v1/customers/{id}", h.PutCustomer)
	r.Get("/v1/customers/{id}", h.GetCustomer)
}

func (h CustomersHandler) PostCustomer(w http.ResponseWriter, r *http.Request) {
	const op = "CustomersHandler.PostCustomer"
	log := slog.With("op", op)

	var c Customer
	if err := decodeJSON(w, r, &c); err != nil {
		log.Warn("failed to parse JSON", "err", err)
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		return
	}
	c.ID = 0

	saved, err := h.customers.SaveCustomer(r.Context(), c.toDomain())
	if err != nil {
		respondError(w, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, customerFromDomain(saved))
	log.Info("customer created", "id", saved.ID)
}

func (h CustomersHandler) PutCustomer(w http.ResponseWriter, r *http.Request) {
	const op = "CustomersHandler.PutCustomer"
	log := slog.With("op", op)

	id, err := parseIDParam(r, "id")
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	var c Customer
	if err := decodeJSON(w, r, &c); err != nil {
		log.Warn("failed to parse JSON", "err", err)
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		return
	}
	c.ID = id

	saved, err := h.customers.SaveCustomer(r.Context(), c.toDomain())
	if err != nil {
		respondError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, customerFromDomain(saved))
}

func (h CustomersHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	const op = "CustomersHandler.GetCustomer"
	log := slog.With("op", op)

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	c, err := h.customers.GetCustomer(r.Context(), id)
	if err != nil {
		respondError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, customerFromDomain(c))
}
