// Package identity resolves the acting user from JWT claims stored in the
// request context. Routes that allow anonymous use get an (identity, ok)
// pair instead of an error, so a missing or invalid token degrades to "no
// identity" rather than failing the request.
package identity

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified (id, username) pair extracted from a bearer token.
type Identity struct {
	UserID   uint
	Username string
}

// FromContext returns the identity attached by the auth middleware, or
// ok=false when the request is anonymous.
func FromContext(c *fiber.Ctx) (Identity, bool) {
	token, tokOK := c.Locals("user").(*jwt.Token)
	if !tokOK || token == nil {
		return Identity{}, false
	}
	id, err := fromToken(token)
	if err != nil {
		return Identity{}, false
	}
	return id, true
}

// Require returns the identity or an error for routes where jwtware already
// enforced a valid token.
func Require(c *fiber.Ctx) (Identity, error) {
	id, ok := FromContext(c)
	if !ok {
		return Identity{}, errors.New("no authenticated identity in context")
	}
	return id, nil
}

func fromToken(token *jwt.Token) (Identity, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, errors.New("missing sub claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return Identity{}, errors.New("malformed sub claim")
	}

	username, _ := claims["username"].(string)
	return Identity{UserID: uint(userID), Username: username}, nil
}
