package bootstrap

import (
	"context"

	"sticky-notes-be/internal/config"
	"sticky-notes-be/internal/controller"
	"sticky-notes-be/internal/pkg/googleauth"
	"sticky-notes-be/internal/pkg/hasher"
	"sticky-notes-be/internal/pkg/logger"
	"sticky-notes-be/internal/pkg/mailer"
	"sticky-notes-be/internal/pkg/serverutils"
	"sticky-notes-be/internal/repository/contract"
	"sticky-notes-be/internal/repository/memory"
	"sticky-notes-be/internal/repository/redisrepo"
	"sticky-notes-be/internal/repository/unitofwork"
	"sticky-notes-be/internal/service"
	"sticky-notes-be/pkg/database"
	"sticky-notes-be/pkg/events"
	pktNats "sticky-notes-be/pkg/nats"
	"sticky-notes-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	UserController  controller.IUserController
	NoteController  controller.INoteController
	OAuthController controller.IOAuthController

	// Global middleware dependencies
	BlacklistService service.IBlacklistService

	// Background Services (nil when NATS is not configured)
	ConsumerService service.IConsumerService

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		cfg.SMTP.SenderName,
		sysLogger,
	)

	c := &Container{Logger: sysLogger}

	// 2. Ephemeral stores: Redis when reachable, in-process otherwise
	var (
		otpRepo       contract.OtpRepository
		blacklistRepo contract.TokenBlacklistRepository
		limiterStore  fiber.Storage
	)
	rdb := connectRedis(cfg.App.RedisURL, sysLogger)
	if rdb != nil {
		otpRepo = redisrepo.NewOtpRepository(rdb)
		blacklistRepo = redisrepo.NewTokenBlacklistRepository(rdb)
		limiterStore = store.NewRedisStorage(rdb, "limiter:")
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	} else {
		otpRepo = memory.NewOtpRepository()
		blacklistRepo = memory.NewTokenBlacklistRepository(redisrepo.BlacklistTTL)
	}

	// 3. Event Bus
	var publisher events.Publisher
	if natsPub := connectPublisher(cfg.App.NatsURL, sysLogger); natsPub != nil {
		publisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}
	if natsSub := connectSubscriber(cfg.App.NatsURL, sysLogger); natsSub != nil {
		c.ConsumerService = service.NewConsumerService(natsSub, sysLogger)
		c.closers = append(c.closers, natsSub.Close)
	}

	// 4. Services
	otpService := service.NewOtpService(otpRepo, emailService, sysLogger)
	blacklistService := service.NewBlacklistService(blacklistRepo)
	authService := service.NewAuthService(
		uowFactory,
		otpService,
		blacklistService,
		hasher.NewBcryptHasher(hasher.DefaultCost),
		googleauth.NewVerifier(cfg.Google.ClientID),
		publisher,
		sysLogger,
		cfg.Auth.JWTSecret,
	)
	noteService := service.NewNoteService(uowFactory, publisher, sysLogger)
	oauthService := service.NewOAuthService(
		authService,
		cfg.Google.ClientID,
		cfg.Google.ClientSecret,
		cfg.Google.RedirectURL,
		sysLogger,
	)

	// 5. Controllers
	authMiddleware := serverutils.JwtMiddleware(authService)
	otpLimiter := serverutils.OtpLimiter(limiterStore)

	c.BlacklistService = blacklistService
	c.UserController = controller.NewUserController(authService, otpLimiter, authMiddleware)
	c.NoteController = controller.NewNoteController(noteService, authMiddleware)
	c.OAuthController = controller.NewOAuthController(oauthService, sysLogger)
	return c
}

// Close releases the broker and cache connections opened by NewContainer.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func connectRedis(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		log.Warn("BOOTSTRAP", "REDIS_URL not set, using in-memory OTP and blacklist stores", nil)
		return nil
	}
	rdb, err := database.NewRedisClient(context.Background(), url)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to connect to Redis, using in-memory stores", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return rdb
}

func connectPublisher(url string, log logger.ILogger) *pktNats.Publisher {
	if url == "" {
		return nil
	}
	pub, err := pktNats.NewPublisher(url)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return pub
}

func connectSubscriber(url string, log logger.ILogger) *pktNats.Subscriber {
	if url == "" {
		return nil
	}
	sub, err := pktNats.NewSubscriber(url, log)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to connect to NATS Subscriber", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return sub
}
