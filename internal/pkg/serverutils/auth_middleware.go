package serverutils

import (
	"context"
	"strings"

	"sticky-notes-be/internal/entity"
	"sticky-notes-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localUserID = "user_id"
	localEmail  = "email"
	localToken  = "token"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.Identity, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// BearerToken returns the token from the Authorization header, with or
// without the "Bearer " prefix.
func BearerToken(ctx *fiber.Ctx) string {
	header := strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization))
	if strings.EqualFold(header, "Bearer") {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		header = header[7:]
	}
	return strings.TrimSpace(header)
}

// BlacklistGate runs on every route and turns away revoked tokens before any
// handler sees them.
func BlacklistGate(checker RevocationChecker) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := BearerToken(ctx)
		if token == "" {
			return ctx.Next()
		}

		revoked, err := checker.IsRevoked(ctx.Context(), token)
		if err != nil {
			return err
		}
		if revoked {
			return apperror.Unauthorized("Unauthorized - Token is blacklisted")
		}
		return ctx.Next()
	}
}

// JwtMiddleware requires a valid bearer token and stores the caller's
// identity in Locals for the handlers behind it.
func JwtMiddleware(auth Authenticator) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := BearerToken(ctx)

		identity, err := auth.Authenticate(ctx.Context(), token)
		if err != nil {
			return err
		}

		ctx.Locals(localUserID, identity.Id)
		ctx.Locals(localEmail, identity.Email)
		ctx.Locals(localToken, token)
		return ctx.Next()
	}
}

// UserID is only valid behind JwtMiddleware.
func UserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, ok := ctx.Locals(localUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, apperror.Unauthorized("Unauthorized")
	}
	return id, nil
}

func AuthToken(ctx *fiber.Ctx) string {
	token, _ := ctx.Locals(localToken).(string)
	return token
}
