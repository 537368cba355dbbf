package api

import (
	"context"

	"github.com/opsdrill/exercise-backend/usecases"
	"github.com/opsdrill/exercise-backend/utils"
)

func usecasesWithCreds(ctx context.Context, uc usecases.Usecases) *usecases.UsecasesWithCreds {
	creds, found := utils.CredentialsFromCtx(ctx)
	if !found {
		panic("no credentials in context")
	}
	withCreds := uc.NewUsecasesWithCreds(creds)
	return &withCreds
}
