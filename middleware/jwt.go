package middleware

import (
	"errors"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret"
	}
	return []byte(secret)
}

// GenerateToken issues the JWT returned by the login endpoint. Clients may
// present it in the socket.io handshake auth data.
func GenerateToken(userID, username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"UserID":   userID,
		"Username": username,
	})
	return token.SignedString(jwtSecret())
}

func parseToken(raw string) (userID, username string, err error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid JWT")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid JWT claims")
	}
	userID, _ = claims["UserID"].(string)
	username, _ = claims["Username"].(string)
	if userID == "" {
		return "", "", errors.New("JWT missing user id")
	}
	return userID, username, nil
}

// JWT_decoder extracts and validates the Bearer token of an HTTP request.
func JWT_decoder(c *gin.Context) (userID, username string, err error) {
	header := c.GetHeader("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return "", "", errors.New("missing Bearer token")
	}
	return parseToken(raw)
}

// Socketio_JWT_decoder extracts and validates the token carried in the
// socket.io handshake auth data, under the 'authorization' key with the
// 'Bearer ' prefix.
func Socketio_JWT_decoder(authData map[string]interface{}) (userID, username string, err error) {
	header, ok := authData["authorization"].(string)
	if !ok {
		return "", "", errors.New("missing authorization field")
	}
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		raw = header
	}
	return parseToken(raw)
}
