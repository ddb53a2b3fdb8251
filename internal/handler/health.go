package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/infra"

	"github.com/gin-gonic/gin"
)

// Health returns a JSON health check response.
// Pings the document store; never exposes credentials or internals.
func Health(store infra.DocumentStore, driver string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		storeStatus := "connected"
		if store.Ping(ctx) != nil {
			storeStatus = "error"
		}

		status := http.StatusOK
		if storeStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":     status == http.StatusOK,
			"store":  storeStatus,
			"driver": driver,
		})
	}
}
