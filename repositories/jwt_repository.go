package repositories

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/opsdrill/exercise-backend/dto"
	"github.com/opsdrill/exercise-backend/models"
)

type ExerciseJwtRepository struct {
	signingSecret []byte
}

func NewJwtRepository(signingSecret []byte) *ExerciseJwtRepository {
	return &ExerciseJwtRepository{signingSecret: signingSecret}
}

// Claims embeds jwt.RegisteredClaims to get the standard fields like expiry.
type Claims struct {
	Credentials dto.Credentials `json:"credentials"`
	jwt.RegisteredClaims
}

var validationAlgo = jwt.SigningMethodHS256

func (repo *ExerciseJwtRepository) EncodeToken(expirationTime time.Time,
	creds models.Credentials,
) (string, error) {
	claims := &Claims{
		Credentials: dto.AdaptCredentialDto(creds),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			Issuer:    "exercise-backend",
		},
	}

	token := jwt.NewWithClaims(validationAlgo, claims)
	return token.SignedString(repo.signingSecret)
}

func (repo *ExerciseJwtRepository) ValidateToken(tokenString string) (models.Credentials, error) {
	keyFunc := func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Wrapf(models.UnAuthorizedError,
				"unexpected signing method: %v", token.Header["alg"])
		}
		return repo.signingSecret, nil
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, keyFunc)
	if err != nil {
		return models.Credentials{}, errors.Join(
			models.UnAuthorizedError,
			errors.Wrap(err, "error parsing jwt token claims"),
		)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return dto.AdaptCredential(claims.Credentials), nil
	}
	return models.Credentials{}, errors.Wrap(models.UnAuthorizedError, "invalid token")
}
