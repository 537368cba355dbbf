package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdrill/exercise-backend/dto"
	"github.com/opsdrill/exercise-backend/pure_utils"
	"github.com/opsdrill/exercise-backend/usecases"
)

func handleListNotifications(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := usecasesWithCreds(ctx, uc).NewNotificationUsecase()
		notifications, err := usecase.ListMyNotifications(ctx)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"notifications": pure_utils.Map(notifications, dto.AdaptNotificationDto),
		})
	}
}
