package controller

import (
	"sticky-notes-be/internal/dto"
	"sticky-notes-be/internal/pkg/serverutils"
	"sticky-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	VerifyOtp(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Signup(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	GoogleSignIn(ctx *fiber.Ctx) error

	// Password reset
	SendOtp(ctx *fiber.Ctx) error
	VerifyResetOtp(ctx *fiber.Ctx) error
	ResetPassword(ctx *fiber.Ctx) error
}

type userController struct {
	authService    service.IAuthService
	otpLimiter     fiber.Handler
	authMiddleware fiber.Handler
}

func NewUserController(authService service.IAuthService, otpLimiter fiber.Handler, authMiddleware fiber.Handler) IUserController {
	return &userController{
		authService:    authService,
		otpLimiter:     otpLimiter,
		authMiddleware: authMiddleware,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users")
	h.Post("/register", c.Register)
	h.Post("/verify-otp", c.VerifyOtp)
	h.Post("/login", c.Login)
	h.Post("/signup", c.Signup)
	h.Post("/logout", c.authMiddleware, c.Logout)
	h.Post("/google-signin", c.GoogleSignIn)

	h.Post("/send-otp", c.otpLimiter, c.SendOtp)
	h.Post("/verify-reset-otp", c.VerifyResetOtp)
	h.Post("/reset-password", c.ResetPassword)
	h.Patch("/reset/password", c.ResetPassword)
}

func (c *userController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.authService.Register(ctx.Context(), &req); err != nil {
		return err
	}
	return serverutils.Message(ctx, fiber.StatusCreated, "OTP sent successfully")
}

func (c *userController) VerifyOtp(ctx *fiber.Ctx) error {
	var req dto.VerifyOtpRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	email, err := c.authService.ConfirmRegistration(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.MessageEmailResponse{
		Message: "OTP verified successfully",
		Email:   email,
	})
}

func (c *userController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *userController) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.authService.SetPassword(ctx.Context(), &req); err != nil {
		return err
	}
	return serverutils.Message(ctx, fiber.StatusOK, "Password set successfully")
}

func (c *userController) Logout(ctx *fiber.Ctx) error {
	if err := c.authService.Logout(ctx.Context(), serverutils.AuthToken(ctx)); err != nil {
		return err
	}
	return serverutils.Message(ctx, fiber.StatusOK, "Logged out successfully")
}

func (c *userController) GoogleSignIn(ctx *fiber.Ctx) error {
	var req dto.GoogleSignInRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.authService.GoogleSignIn(ctx.Context(), req.Token)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *userController) SendOtp(ctx *fiber.Ctx) error {
	var req dto.SendOtpRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.authService.RequestReset(ctx.Context(), &req); err != nil {
		return err
	}
	return serverutils.Message(ctx, fiber.StatusOK, "OTP sent successfully")
}

func (c *userController) VerifyResetOtp(ctx *fiber.Ctx) error {
	var req dto.VerifyResetOtpRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	email, err := c.authService.VerifyReset(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.MessageEmailResponse{
		Message: "OTP verified successfully",
		Email:   email,
	})
}

func (c *userController) ResetPassword(ctx *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.authService.ResetPassword(ctx.Context(), &req); err != nil {
		return err
	}
	return serverutils.Message(ctx, fiber.StatusOK, "Password reset successfully")
}
