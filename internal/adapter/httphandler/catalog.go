package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET v1/catalog?filter=text&sort=lowestPrice|biggestPrice (200 OK, 502 Bad gateway)
// GET v1/products/{id} (200 OK, 400 Bad request, 404 Not found)
// POST v1/products JSON Headers Authorization (201 Created, 400, 401)

type CatalogHandler struct {
	viewer  port.CatalogViewer
	creator port.ProductCreator
}

func RegisterCatalog(
	r chi.Router, viewer port.CatalogViewer, creator port.ProductCreator,
) {
	h := CatalogHandler{viewer, creator}
	r.Get("/v1/catalog", h.GetCatalog)
	r.Get("/v1/products/{id}", h.GetProduct)
	r.Post("/v1/products", h.PostProduct)
}

func (h CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCatalog"
	log := slog.With("op", op)

	q := catalog.Query{
		Filter: r.URL.Query().Get("filter"),
		Sort:   domain.ParseSortDirective(r.URL.Query().Get("sort")),
	}

	views, err := h.viewer.ViewCatalog(r.Context(), shopperFromRequest(r), q)
	if err != nil {
		respondError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, categoriesFromViews(views))
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	v, err := h.viewer.ViewProduct(r.Context(), id)
	if err != nil {
		respondError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, productFromView(v))
}

func (h CatalogHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PostProduct"
	log := slog.With("op", op)

	var p NewProduct
	if err := decodeJSON(w, r, &p); err != nil {
		log.Warn("failed to parse JSON", "err", err)
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		return
	}

	token := shopperFromRequest(r).Token
	if err := h.creator.CreateProduct(r.Context(), token, p.toDomain()); err != nil {
		respondError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	log.Info("product created", "name", p.Name)
}
