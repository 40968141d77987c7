package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sengkeat-dex/Tokenize/fault"
	"github.com/sengkeat-dex/Tokenize/metrics"
	"github.com/sengkeat-dex/Tokenize/models"
)

// respondError maps ledger errors onto HTTP statuses. Anything that is
// not a business rule violation is reported as a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case fault.IsErrNotFound(err):
		c.JSON(http.StatusNotFound, models.Fail(err.Error()))
	case fault.IsErrExists(err), errors.Is(err, fault.ErrAssetNotHeld):
		c.JSON(http.StatusConflict, models.Fail(err.Error()))
	case fault.IsErrInvalid(err):
		c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("ledger operation failed")
		c.JSON(http.StatusInternalServerError, models.Fail("internal error"))
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
}

func observe(m *metrics.Registry, operation string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	switch {
	case err == nil:
	case fault.IsErrNotFound(err):
		result = "not_found"
	case fault.IsErrExists(err):
		result = "exists"
	case fault.IsErrInvalid(err):
		result = "invalid"
	default:
		result = "error"
	}
	m.LedgerOperations.WithLabelValues(operation, result).Inc()
}
