package httpapi

import (
	"errors"
	"net/http"

	"github.com/languagesphere/server/internal/common"
	"github.com/languagesphere/server/internal/server/services"
	"github.com/languagesphere/server/internal/webutil"
)

// apiError translates service-layer errors into the HTTP error taxonomy.
// Anything unrecognized falls through as a 500 and gets logged by the
// handler adapter.
func apiError(err error) error {
	var verr *services.ValidationError

	switch {
	case errors.As(err, &verr):
		return webutil.ErrBadRequestWrap("Validation error", err).WithDetails(verr.Fields)
	case errors.Is(err, common.ErrorAlreadyExists):
		return webutil.ErrBadRequestWrap("User already exists with this email", err)
	case errors.Is(err, common.ErrorInvalidCredentials):
		return webutil.ErrUnauthorizedWrap("Invalid email or password", err)
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return webutil.ErrUnauthorizedWrap("Invalid or expired token", err)
	case errors.Is(err, common.ErrorPaymentRequired):
		return webutil.NewHTTPErrorWrap(http.StatusForbidden, "Payment required to access PDF", err)
	case errors.Is(err, services.ErrPDFNotFound):
		return webutil.ErrNotFoundWrap("PDF file not found", err)
	case errors.Is(err, common.ErrorNotFound):
		return webutil.ErrNotFoundWrap("User not found", err)
	case errors.Is(err, common.ErrorInvalidRequest):
		return webutil.ErrBadRequestWrap(err.Error(), err)
	}
	return err
}
