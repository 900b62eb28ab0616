package main

import (
	"errors"
	"net/http"

	cartapp "github.com/ReactByHarsh/Apex-Perfumes/internal/cart/app"
	catalogapp "github.com/ReactByHarsh/Apex-Perfumes/internal/catalog/app"
	checkoutapp "github.com/ReactByHarsh/Apex-Perfumes/internal/checkout/app"
	"github.com/ReactByHarsh/Apex-Perfumes/internal/identity"
	orderapp "github.com/ReactByHarsh/Apex-Perfumes/internal/order/app"
	profileapp "github.com/ReactByHarsh/Apex-Perfumes/internal/profile/app"
	wishlistapp "github.com/ReactByHarsh/Apex-Perfumes/internal/wishlist/app"
)

// httpStatusFromErr maps application errors onto HTTP responses. Anything
// unrecognized is a 500 with the detail withheld from the client.
func httpStatusFromErr(err error) (status int, code string, msg string) {
	switch {
	case errors.Is(err, identity.ErrUnauthorized),
		errors.Is(err, cartapp.ErrIdentityRequired):
		return http.StatusUnauthorized, "UNAUTHORIZED", "authentication required"

	case errors.Is(err, catalogapp.ErrNotFound),
		errors.Is(err, orderapp.ErrNotFound),
		errors.Is(err, profileapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "not found"

	case errors.Is(err, orderapp.ErrNotCancelable),
		errors.Is(err, cartapp.ErrSizeChangeIncomplete):
		return http.StatusConflict, "CONFLICT", err.Error()

	case errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrInvalidQuantity),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput),
		errors.Is(err, profileapp.ErrInvalidInput),
		errors.Is(err, wishlistapp.ErrInvalidInput),
		errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()

	case errors.Is(err, checkoutapp.ErrPaymentFailed):
		return http.StatusBadGateway, "PAYMENT_FAILED", "payment order creation failed"

	case errors.Is(err, cartapp.ErrRemoteUnavailable),
		errors.Is(err, cartapp.ErrPartialMerge):
		return http.StatusServiceUnavailable, "UNAVAILABLE", "service temporarily unavailable"

	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}
