package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/keepstockhq/keepstock-backend/api/responses"
	"github.com/keepstockhq/keepstock-backend/internal/inventory"
	pkgerrors "github.com/keepstockhq/keepstock-backend/pkg/errors"
	"github.com/keepstockhq/keepstock-backend/pkg/logger"
)

// ProductList returns the full read-only catalog.
func ProductList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireIdentity(w, r, logg); !ok {
			return
		}

		products, err := svc.Products(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// ProductBySKU looks up one catalog entry.
func ProductBySKU(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireIdentity(w, r, logg); !ok {
			return
		}

		sku := chi.URLParam(r, "sku")
		if sku == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "sku is required"))
			return
		}

		product, err := svc.ProductBySKU(r.Context(), sku)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// StoreList returns the known store locations.
func StoreList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireIdentity(w, r, logg); !ok {
			return
		}

		stores, err := svc.Stores(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stores)
	}
}
