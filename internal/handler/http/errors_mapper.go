package http

import (
	"net/http"

	"github.com/finpay/gateway/internal/errs"
	"github.com/finpay/gateway/internal/logger"
	"github.com/finpay/gateway/internal/utils"
	"github.com/finpay/gateway/models"
)

// respondError writes the uniform error body for a taxonomy error. The
// status code and the client-safe message both come from the error's kind;
// internal detail never leaves the server.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := errs.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
	} else {
		log.Warn().Err(err).Msg("request rejected")
	}

	utils.WriteJSON(w, models.NewErrorResponse(errs.HTTPMessage(err)), status)
}
