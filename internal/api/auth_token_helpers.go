package api

import (
	"errors"
	"time"

	"github.com/astrahealth/astra/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

func (handler *Handler) buildToken(user models.User) (string, error) {
	now := time.Now()
	claims := authClaims{
		UserID: user.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(defaultAuthTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if user.Email != nil {
		claims.Email = *user.Email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) parseToken(raw string) (authClaims, error) {
	var claims authClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil {
		return authClaims{}, err
	}
	if !token.Valid || claims.UserID == "" {
		return authClaims{}, errors.New("invalid token")
	}
	return claims, nil
}
