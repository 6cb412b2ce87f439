package serverutils

import (
	"time"

	"sticky-notes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const (
	OtpLimiterMax    = 5
	OtpLimiterWindow = 15 * time.Minute
)

// OtpLimiter allows OtpLimiterMax requests per client IP per window. A nil
// storage keeps counters in process memory.
func OtpLimiter(storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        OtpLimiterMax,
		Expiration: OtpLimiterWindow,
		KeyGenerator: func(ctx *fiber.Ctx) string {
			return "send-otp:" + ctx.IP()
		},
		LimitReached: func(ctx *fiber.Ctx) error {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(
				ErrorResponse(fiber.StatusTooManyRequests, "Too many OTP requests. Please try again later."),
			)
		},
		Storage: storage,
	})
}

// RequestLogger logs one line per request. Errors are rendered here so the
// logged status matches what the client receives.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()

		if err := ctx.Next(); err != nil {
			if herr := ctx.App().Config().ErrorHandler(ctx, err); herr != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.Info("HTTP", "Request handled", map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     ctx.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         ctx.IP(),
		})
		return nil
	}
}
