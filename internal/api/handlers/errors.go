package handlers

import (
	"errors"
	"net/http"

	"trinity-backtest/internal/api/models"
	"trinity-backtest/internal/backtest"
	"trinity-backtest/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func respondError(c *gin.Context, status int, code string, err error) {
	_ = c.Error(err)
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

func badRequest(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
}

// simulationError maps core errors onto HTTP responses.
func simulationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, backtest.ErrNoPeriods):
		respondError(c, http.StatusUnprocessableEntity, "NO_PERIODS", err)
	case errors.Is(err, backtest.ErrMissingYear):
		respondError(c, http.StatusUnprocessableEntity, "MISSING_YEAR", err)
	case errors.Is(err, model.ErrInsufficientData):
		respondError(c, http.StatusUnprocessableEntity, "INSUFFICIENT_DATA", err)
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("simulation failed")
		respondError(c, http.StatusInternalServerError, "SIMULATION_ERROR", err)
	}
}
