package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/utils"
)

type tokenValidator interface {
	ValidateToken(tokenString string) (models.Credentials, error)
}

type Authentication struct {
	validator tokenValidator
}

func NewAuthentication(validator tokenValidator) Authentication {
	return Authentication{validator: validator}
}

// Middleware resolves the caller's credentials from the Authorization header
// and stores them in the request context for the handlers.
func (a Authentication) Middleware(c *gin.Context) {
	token, err := parseAuthorizationBearerHeader(c.GetHeader("Authorization"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	creds, err := a.validator.ValidateToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	ctx := utils.StoreCredentialsInContext(c.Request.Context(), creds)
	logger := utils.LoggerFromContext(ctx).With(
		"user_id", creds.ActorIdentity.UserId.String(),
		"role", string(creds.Role),
	)
	c.Request = c.Request.WithContext(utils.StoreLoggerInContext(ctx, logger))
	c.Next()
}

func parseAuthorizationBearerHeader(header string) (string, error) {
	if header == "" {
		return "", models.UnAuthorizedError
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", models.UnAuthorizedError
	}
	return token, nil
}
