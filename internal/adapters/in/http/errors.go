package http

import (
	"errors"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
)

// statusForError maps workflow errors onto HTTP status codes: validation and
// business-rule violations are 400, missing objects 404, transitions the
// caller is not allowed to make 403. Anything unrecognized is a 500 and the
// message is withheld from the client.
func statusForError(err error) int {
	var (
		notFound        *errs.ObjectNotFoundError
		valueInvalid    *errs.ValueIsInvalidError
		valueRequired   *errs.ValueIsRequiredError
		valueOutOfRange *errs.ValueIsOutOfRangeError
		invalidItem     *services.InvalidItemError
		duplicateItem   *services.DuplicateItemError
		insufficient    *services.InsufficientStockError
		priceMismatch   *commands.PriceMismatchError
		missingShipping *order.MissingShippingInfoError
		forbidden       *order.ForbiddenTransitionError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmptyCart),
		errors.As(err, &invalidItem),
		errors.As(err, &duplicateItem),
		errors.As(err, &insufficient),
		errors.As(err, &priceMismatch),
		errors.As(err, &missingShipping),
		errors.Is(err, order.ErrAlreadyCancelled),
		errors.Is(err, order.ErrInvalidStatus),
		errors.As(err, &valueInvalid),
		errors.As(err, &valueRequired),
		errors.As(err, &valueOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrAlreadyFinalized),
		errors.As(err, &forbidden),
		errors.Is(err, commands.ErrNotOrderOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// failure builds the error envelope for a workflow error. Internal errors get
// a generic message so persistence details never leak to clients.
func failure(err error) (int, Envelope) {
	code := statusForError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}
	return code, Envelope{Success: false, Message: message}
}
