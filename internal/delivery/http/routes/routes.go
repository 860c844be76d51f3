package routes

import (
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Suly-ms/ThisIsNotFine/internal/config"
	"github.com/Suly-ms/ThisIsNotFine/internal/database"
	"github.com/Suly-ms/ThisIsNotFine/internal/delivery/http/handler"
	"github.com/Suly-ms/ThisIsNotFine/internal/delivery/http/middleware"
	"github.com/Suly-ms/ThisIsNotFine/internal/infrastructure/mail"
	"github.com/Suly-ms/ThisIsNotFine/internal/infrastructure/redisstore"
	"github.com/Suly-ms/ThisIsNotFine/internal/infrastructure/storage"
	"github.com/Suly-ms/ThisIsNotFine/internal/pkg/sessiontoken"
	"github.com/Suly-ms/ThisIsNotFine/internal/repository"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/auth"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/identity"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/moderation"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/profile"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/school"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/search"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/verification"
)

// Register wires repositories, services, middleware and handlers onto the
// Fiber app.
func Register(app *fiber.App, cfg config.Config, db database.DB, redisClient *redis.Client, logger zerolog.Logger) {
	if app == nil {
		return
	}

	tokens := sessiontoken.NewHMACService(cfg.Session.Secret, cfg.Session.TTL)
	sessions := redisstore.NewRedisSessionStore(redisClient, cfg.Session.TTL)
	limiter := redisstore.NewLoginLimiter(redisClient, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow, logger)
	mailer := mail.NewMailer(cfg.SMTP, logger)
	cvs := storage.NewCVStorage(cfg.Upload)

	accountRepo := repository.NewPostgresAccountRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)
	schoolRepo := repository.NewPostgresSchoolRepository(db)
	studentRepo := repository.NewPostgresStudentSearchRepository(db)

	identitySvc := identity.NewService(accountRepo, mailer, cfg.Auth.MinPasswordLen, logger)
	verificationSvc := verification.NewService(accountRepo, profileRepo, sessions)
	authSvc := auth.NewService(accountRepo, sessions)
	moderationSvc := moderation.NewService(accountRepo, sessions)
	profileSvc := profile.NewService(accountRepo, profileRepo, sessions, cfg.Auth.MinPasswordLen)
	schoolSvc := school.NewService(schoolRepo, studentRepo)
	searchSvc := search.NewService(studentRepo)

	authMw := middleware.NewAuthMiddleware(tokens, authSvc, cfg.Session.CookieName)
	rateMw := middleware.NewRateLimitMiddleware(limiter)
	cookies := handler.NewSessionCookie(tokens, cfg.Session.CookieName, cfg.Session.TTL, cfg.App.IsProduction())

	handler.NewHealthHandler(db).RegisterRoutes(app)

	api := app.Group("/api")
	handler.NewAuthHandler(identitySvc, verificationSvc, authSvc, cookies, rateMw).RegisterRoutes(api)
	handler.NewSchoolHandler(schoolSvc, authMw).RegisterRoutes(api)

	authed := api.Group("", authMw.RequireAuth())
	handler.NewProfileHandler(profileSvc, cvs, cookies).RegisterRoutes(authed)
	handler.NewSearchHandler(searchSvc).RegisterRoutes(authed)

	admin := api.Group("/admin", authMw.RequireAdmin())
	handler.NewAdminHandler(verificationSvc, moderationSvc).RegisterRoutes(admin)
}
