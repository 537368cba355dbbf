package dto

import (
	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
)

type Credentials struct {
	UserId string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func AdaptCredentialDto(creds models.Credentials) Credentials {
	return Credentials{
		UserId: creds.ActorIdentity.UserId.String(),
		Email:  creds.ActorIdentity.Email,
		Role:   string(creds.Role),
	}
}

func AdaptCredential(dto Credentials) models.Credentials {
	userId, _ := uuid.Parse(dto.UserId)
	return models.Credentials{
		ActorIdentity: models.Identity{
			UserId: userId,
			Email:  dto.Email,
		},
		Role: models.RoleFrom(dto.Role),
	}
}
