package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

// JWTAuth guards a route group with a bearer token check. The parsed token
// is stored on the context under "user" for utils.ExtractTokenUser.
func JWTAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == "" || tokenString == header {
				return writeAuthError(c)
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return writeAuthError(c)
			}

			c.Set("user", token)

			return next(c)
		}
	}
}

func writeAuthError(c echo.Context) error {
	errorResponse := map[string]interface{}{
		"status":  "error",
		"message": "Invalid or expired JWT",
		"errors":  nil,
	}
	return c.JSON(http.StatusUnauthorized, errorResponse)
}
