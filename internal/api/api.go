// Package api wires HTTP handlers for the learning service: account
// management, the Learn/Practice/Review session endpoints, placement,
// the tutor chat, and speech synthesis.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vocabpool/internal/coreerr"
	"vocabpool/internal/logging"
)

var log = logging.Named("api")

// respondError maps a service-layer error to an HTTP response, using the
// status coreerr derives for typed errors and 500 for anything else.
func respondError(c *gin.Context, err error) {
	status := coreerr.StatusOf(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// userIDFromContext extracts the authenticated user's ID, set by
// middleware.AuthMiddleware.
func userIDFromContext(c *gin.Context) uuid.UUID {
	return c.MustGet("user_id").(uuid.UUID)
}

// respondSession implements the get_*_session contract: a failed
// admission precondition is not a transport error, it's a 200 carrying
// available=false and the machine-readable reason. Any other error still
// goes through respondError.
func respondSession(c *gin.Context, session interface{}, err error) {
	if err != nil {
		if e, ok := coreerr.As(err); ok && e.Code() == coreerr.CodePreconditionUnmet {
			c.JSON(http.StatusOK, gin.H{"available": false, "reason": e.Reason()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
