package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

func CreateJWTToken(externalID string, username string, role string, project string, jwtSecretKey string) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["externalID"] = externalID
	claims["username"] = username
	claims["role"] = role
	claims["project"] = project
	claims["exp"] = time.Now().Add(time.Hour * 24).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecretKey))
}

func ExtractTokenUser(c echo.Context) (string, string, string) {
	user, ok := c.Get("user").(*jwt.Token)
	if !ok || !user.Valid {
		return "", "", ""
	}

	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ""
	}

	externalID, _ := claims["externalID"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return externalID, username, role
}
