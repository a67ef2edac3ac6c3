package response

import (
	"log"
	"net/http"

	"anoa.com/skinannotator/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	idStr, ok := userIDStr.(string)
	if !ok {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// ResponseError standardized error response. Server errors are logged with the
// operation name and answered with a generic message.
func ResponseError(c *gin.Context, op string, err error) {
	code := apperror.MapErrorToStatus(err)

	if code >= http.StatusInternalServerError {
		log.Printf("[%s] internal error: %v", op, err)
		c.JSON(code, gin.H{"error": "server error"})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
