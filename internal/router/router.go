package router

import (
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"seminar/internal/config"
	"seminar/internal/errors"
	"seminar/internal/handler"
	"seminar/internal/metrics"
	"seminar/internal/service"
)

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Seminar *handler.SeminarHandler
	Health  *handler.HealthHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	h Handlers,
	log zerolog.Logger,
) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = NewValidator()

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())

	e.GET("/healthz", h.Health.Healthz)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	public := api.Group("")
	if cfg.RateLimit.SigninRPS > 0 {
		public.Use(authRateLimiter(cfg.RateLimit))
	}
	public.POST("/signup", h.Auth.SignUp)
	public.POST("/signin", h.Auth.SignIn)
	api.GET("/seminar/:id", h.Seminar.GetSeminar)

	// Secured routes (require a valid, non-revoked bearer token)
	secured := api.Group("", JWTMiddleware(authService))

	secured.GET("/me", h.Auth.Me)
	secured.POST("/logout", h.Auth.Logout)

	secured.GET("/user/:id", h.User.GetUser)
	secured.PUT("/user/me", h.User.EditMe)
	secured.POST("/user/participant", h.User.RegisterParticipant)

	secured.POST("/seminar", h.Seminar.CreateSeminar)
	secured.PUT("/seminar", h.Seminar.ModifySeminar)
	secured.GET("/seminar", h.Seminar.ListSeminars)
	secured.POST("/seminar/:id/user", h.Seminar.ApplySeminar)
	secured.DELETE("/seminar/:id/user", h.Seminar.DropSeminar)
}

// JWTMiddleware authenticates bearer tokens through the auth service, so
// revoked tokens are rejected too. A request without an Authorization header
// is answered with 403, any other token failure with 401.
func JWTMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ContextKeyClaims,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := authService.Authenticate(c.Request().Context(), token)
			if err != nil {
				return nil, err
			}
			c.Set(handler.ContextKeyToken, token)
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return errors.Forbidden(errors.MsgUnidentifiedUser)
			}
			if se, ok := errors.AsSeminarError(err); ok {
				return se
			}
			return errors.Unauthorized(errors.MsgInvalidToken)
		},
	})
}

func authRateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	burst := cfg.Burst
	if burst <= 0 {
		burst = int(cfg.SigninRPS) + 1
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.SigninRPS),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, errors.ErrorResponse{
				Error: "too many requests",
				Code:  "RATE_LIMITED",
			})
		},
	})
}

// RequestLogger logs one zerolog event per request.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			var ev *zerolog.Event
			switch {
			case v.Status >= 500:
				ev = log.Error().Err(v.Error)
			case v.Status >= 400:
				ev = log.Warn()
			default:
				ev = log.Info()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
