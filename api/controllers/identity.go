package controllers

import (
	"net/http"

	"github.com/keepstockhq/keepstock-backend/api/middleware"
	"github.com/keepstockhq/keepstock-backend/api/responses"
	pkgauth "github.com/keepstockhq/keepstock-backend/pkg/auth"
	pkgerrors "github.com/keepstockhq/keepstock-backend/pkg/errors"
	"github.com/keepstockhq/keepstock-backend/pkg/logger"
)

// requireIdentity pulls the authenticated principal off the request.
// Routes behind the auth middleware always carry one; the error path
// only fires if a handler is wired outside it.
func requireIdentity(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (pkgauth.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return pkgauth.Identity{}, false
	}
	return identity, true
}
