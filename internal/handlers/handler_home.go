package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/merchant_payments/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// refreshedAtReporter is implemented by rate stores that track their last refresh.
type refreshedAtReporter interface {
	RefreshedAt() time.Time
}

// getHealth godoc
// @Summary Show the status of server.
// @Description Liveness plus the age of the conversion rate snapshot.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func getHealth(rateStore portssvc.RateStoreSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "OK"}
		if r, ok := rateStore.(refreshedAtReporter); ok {
			if at := r.RefreshedAt(); !at.IsZero() {
				body["ratesRefreshedAt"] = at.UTC().Format(time.RFC3339)
			}
		}
		c.JSON(http.StatusOK, body)
	}
}
