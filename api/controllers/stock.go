package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/keepstockhq/keepstock-backend/api/responses"
	"github.com/keepstockhq/keepstock-backend/api/validators"
	"github.com/keepstockhq/keepstock-backend/internal/inventory"
	pkgerrors "github.com/keepstockhq/keepstock-backend/pkg/errors"
	"github.com/keepstockhq/keepstock-backend/pkg/logger"
)

type createStockRequest struct {
	SKU       string `json:"sku" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	BoxNumber string `json:"box_number" validate:"required"`
}

type updateStockRequest struct {
	Quantity  *int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
	BoxNumber *string `json:"box_number,omitempty" validate:"omitempty,min=1"`
}

// StockList returns the store's stock items, optionally filtered by the
// q query parameter.
func StockList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r, logg)
		if !ok {
			return
		}

		items, err := svc.SearchStockItems(r.Context(), identity.Store, r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// StockCreate appends a stock item to the store's collection.
func StockCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r, logg)
		if !ok {
			return
		}

		var body createStockRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.AddStockItem(r.Context(), identity.Store, body.SKU, body.Quantity, body.BoxNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// StockUpdate merges quantity/box number changes into one of the
// store's own items.
func StockUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r, logg)
		if !ok {
			return
		}

		id := chi.URLParam(r, "id")
		var body updateStockRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.UpdateStockItem(r.Context(), identity.Store, id, inventory.StockPatch{
			Quantity:  body.Quantity,
			BoxNumber: body.BoxNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "stock item not found"))
			return
		}
		responses.WriteSuccess(w, map[string]bool{"updated": true})
	}
}

// StockDelete removes one of the store's own stock items. Deleting an
// unknown id succeeds: delete is idempotent by contract.
func StockDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r, logg)
		if !ok {
			return
		}

		if err := svc.DeleteStockItem(r.Context(), identity.Store, chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
