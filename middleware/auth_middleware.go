package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/proffinder/backend/models"
)

// Principal is the authenticated identity attached to the request after
// the auth chain runs. It always reflects the user's current record,
// not the state baked into the token.
type Principal struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

const principalKey = "principal"

// UserFinder resolves a token's user id to the current user record.
type UserFinder interface {
	FindUserByID(id uuid.UUID) (*models.User, error)
}

// Protected verifies the bearer token's signature and expiry. It must
// be followed by AttachPrincipal before any role gate.
func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Token invalid"})
}

// AttachPrincipal re-fetches the token's user from the store so the
// role and identity seen by downstream gates reflect current state. A
// token for a deleted user stops working here.
func AttachPrincipal(users UserFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
		}
		claims := token.Claims.(jwt.MapClaims)
		idStr, _ := claims["user_id"].(string)

		userID, err := uuid.Parse(idStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Token invalid"})
		}

		user, err := users.FindUserByID(userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Token invalid"})
		}

		SetPrincipal(c, &Principal{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
		return c.Next()
	}
}

// SetPrincipal attaches a principal to the request context.
func SetPrincipal(c *fiber.Ctx, p *Principal) {
	c.Locals(principalKey, p)
}

// RoleRequired restricts a route to the given allow-list. It reads the
// principal attached by AttachPrincipal, so it can only be wired after
// the full auth chain.
func RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFrom(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
		}
		for _, role := range roles {
			if principal.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
	}
}

// PrincipalFrom returns the authenticated principal for the request.
func PrincipalFrom(c *fiber.Ctx) (*Principal, bool) {
	principal, ok := c.Locals(principalKey).(*Principal)
	return principal, ok
}
