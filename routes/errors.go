package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carebridge-backend/models"
)

// fail maps a downstream error to a status code and sends a fixed client
// message. Error detail stays in the server log.
func (h *Handlers) fail(c *gin.Context, err error, clientMessage string) {
	h.Logger.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrUpstreamTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, models.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"error": clientMessage})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
