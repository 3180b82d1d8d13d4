package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/keepstockhq/keepstock-backend/api/responses"
	"github.com/keepstockhq/keepstock-backend/internal/inventory"
	pkgerrors "github.com/keepstockhq/keepstock-backend/pkg/errors"
	"github.com/keepstockhq/keepstock-backend/pkg/logger"
)

// BoxList returns the store's distinct box numbers.
func BoxList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r, logg)
		if !ok {
			return
		}

		boxes, err := svc.UniqueBoxNumbers(r.Context(), identity.Store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, boxes)
	}
}

// BoxNext allocates the next sequential box number for the store.
func BoxNext(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r, logg)
		if !ok {
			return
		}

		box, err := svc.NextBoxNumber(r.Context(), identity.Store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if box == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "could not derive store code"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"box_number": box})
	}
}

// BoxRecent returns the first stock entry of each recently created box.
func BoxRecent(svc inventory.Service, logg *logger.Logger, limit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r, logg)
		if !ok {
			return
		}

		items, err := svc.RecentBoxes(r.Context(), identity.Store, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// BoxLabel returns the printable label payload for one box.
func BoxLabel(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r, logg)
		if !ok {
			return
		}

		boxNumber := chi.URLParam(r, "boxNumber")
		if boxNumber == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "box number is required"))
			return
		}

		label, err := svc.LabelForBox(r.Context(), identity.Store, boxNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, label)
	}
}
