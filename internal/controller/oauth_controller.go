package controller

import (
	"time"

	"sticky-notes-be/internal/pkg/logger"
	"sticky-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateTTL    = 10 * time.Minute
	oauthCookiePath  = "/api/users/google"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	service service.IOAuthService
	logger  logger.ILogger
}

func NewOAuthController(service service.IOAuthService, log logger.ILogger) IOAuthController {
	return &oauthController{service: service, logger: log}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users/google")
	h.Get("/login", c.Login)
	h.Get("/callback", c.Callback)
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	url, state, err := c.service.GetLoginURL()
	if err != nil {
		return err
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     oauthCookiePath,
		Expires:  time.Now().Add(oauthStateTTL),
		HTTPOnly: true,
		Secure:   ctx.Protocol() == "https",
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	c.logger.Debug("OAUTH", "Redirecting to Google consent", nil)
	return ctx.Redirect(url, fiber.StatusTemporaryRedirect)
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	expected := ctx.Cookies(oauthStateCookie)
	ctx.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Path:     oauthCookiePath,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	res, err := c.service.HandleCallback(ctx.Context(), ctx.Query("code"), ctx.Query("state"), expected)
	if err != nil {
		return err
	}

	c.logger.Info("OAUTH", "Google callback signed in", map[string]interface{}{"email": res.Email})
	return ctx.JSON(res)
}
