package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdrill/exercise-backend/dto"
	"github.com/opsdrill/exercise-backend/utils"
)

func handleGetCredentials() func(c *gin.Context) {
	return func(c *gin.Context) {
		creds, found := utils.CredentialsFromCtx(c.Request.Context())
		if !found {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.JSON(http.StatusOK, gin.H{"credentials": dto.AdaptCredentialDto(creds)})
	}
}
