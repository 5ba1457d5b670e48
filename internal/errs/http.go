package errs

import "net/http"

// HTTPStatus maps a taxonomy error to the HTTP status code of the uniform
// error response. The mapping is total over [Kind].
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized, KindTokenExpired:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	default: // KindInternal, KindUpstream
		return http.StatusInternalServerError
	}
}

// HTTPMessage returns the client-safe message for err. Internal and upstream
// failures always produce a generic message; their detail is for logs only.
func HTTPMessage(err error) string {
	switch KindOf(err) {
	case KindInternal, KindUpstream:
		return "internal server error"
	default:
		return MessageOf(err)
	}
}
