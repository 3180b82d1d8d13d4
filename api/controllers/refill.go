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

type createRefillRequest struct {
	BoxNumber string `json:"box_number" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type updateRefillRequest struct {
	Quantity  *int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
	BoxNumber *string `json:"box_number,omitempty" validate:"omitempty,min=1"`
}

// RefillList returns the store's refill events.
func RefillList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r, logg)
		if !ok {
			return
		}

		items, err := svc.StoreRefillItems(r.Context(), identity.Store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// RefillCreate records a refill event against an existing box.
func RefillCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r, logg)
		if !ok {
			return
		}

		var body createRefillRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.AddRefillItem(r.Context(), identity.Store, body.BoxNumber, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// RefillUpdate merges changes into one of the store's own refill
// events.
func RefillUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r, logg)
		if !ok {
			return
		}

		id := chi.URLParam(r, "id")
		var body updateRefillRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.UpdateRefillItem(r.Context(), identity.Store, id, inventory.RefillPatch{
			Quantity:  body.Quantity,
			BoxNumber: body.BoxNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "refill item not found"))
			return
		}
		responses.WriteSuccess(w, map[string]bool{"updated": true})
	}
}

// RefillDelete removes one of the store's own refill events; unknown
// ids are a successful no-op.
func RefillDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r, logg)
		if !ok {
			return
		}

		if err := svc.DeleteRefillItem(r.Context(), identity.Store, chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
