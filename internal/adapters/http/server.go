package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"revamp/internal/infrastructure/logging"
	"revamp/internal/ports/input"
	"revamp/internal/ports/output"
)

// Options wires the HTTP server to the application.
type Options struct {
	Address     string
	Debug       bool
	CORSOrigins []string
	AdminEmail  string
	// FilesDir, when set, is served under /files for local storage.
	FilesDir string
	// Location renders dates in CSV exports and event responses.
	Location *time.Location

	Users         input.UserUseCase
	Events        input.EventUseCase
	Registrations input.RegistrationUseCase
	Payments      input.PaymentUseCase
	Notifications input.NotificationUseCase
	Ambassadors   input.AmbassadorUseCase

	Verifier   output.IdentityVerifier
	Translator output.T
	Reporter   logging.Reporter
	Logger     *zap.Logger
}

type Server struct {
	opts *Options
	app  *echo.Echo
}

func NewServer(opts *Options) *Server {
	if opts.Reporter == nil {
		opts.Reporter = logging.NopReporter{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	s := &Server{opts: opts, app: echo.New()}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.Debug = s.opts.Debug
	s.app.Validator = newValidator()
	s.app.HTTPErrorHandler = newHTTPErrorHandler(s.opts.Translator, s.opts.Reporter, s.opts.Logger)

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(requestLogger(s.opts.Logger))
	if !s.opts.Debug {
		s.app.Use(middleware.Recover())
	}
	if len(s.opts.CORSOrigins) > 0 {
		s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.opts.CORSOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}

	s.app.GET("/health", health)
	if s.opts.FilesDir != "" {
		s.app.Static("/files", s.opts.FilesDir)
	}

	h := &handlers{opts: s.opts}
	v1 := s.app.Group("/v1", authMiddleware(s.opts.Verifier))
	admin := v1.Group("/admin", adminMiddleware(s.opts.AdminEmail, s.opts.Users))

	h.registerUserAPI(v1)
	h.registerEventAPI(v1)
	h.registerPaymentAPI(v1)
	h.registerAdminAPI(admin)
}

// Start blocks until the server stops. A graceful Stop returns nil.
func (s *Server) Start() error {
	s.opts.Logger.Info("http server listening", zap.String("address", s.opts.Address))
	if err := s.app.Start(s.opts.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}

type handlers struct {
	opts *Options
}
