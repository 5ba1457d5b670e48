package http

import "github.com/finpay/gateway/internal/errs"

// errUnauthorized builds a 401 taxonomy error for transport-level
// authentication failures the service layer never sees.
func errUnauthorized(message string) error {
	return errs.New(errs.KindUnauthorized, message)
}

// errValidation builds a 400 taxonomy error for malformed request bodies.
func errValidation(message string) error {
	return errs.New(errs.KindValidation, message)
}
