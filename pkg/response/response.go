package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pactumlogic/pactum-server/pkg/apperror"
)

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
