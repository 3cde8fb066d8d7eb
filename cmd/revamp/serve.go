package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"revamp/internal/adapters/discord"
	httpadapter "revamp/internal/adapters/http"
	"revamp/internal/adapters/scheduler"
	"revamp/internal/application"
	"revamp/internal/config"
	"revamp/internal/infrastructure/database"
	"revamp/internal/infrastructure/email"
	"revamp/internal/infrastructure/identity"
	"revamp/internal/infrastructure/logging"
	"revamp/internal/infrastructure/payment"
	"revamp/internal/infrastructure/storage"
	"revamp/internal/ports/output"
	"revamp/pkg/tz"
)

const shutdownTimeout = 15 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the reminder worker and the Discord bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateServe(); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
}

func serve(ctx context.Context) error {
	if migrateOnStart {
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return err
		}
	}

	c, err := newCore(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	files, filesDir, closeFiles, err := newStorage(ctx)
	if err != nil {
		return err
	}
	defer closeFiles()

	verifier, err := newVerifier(ctx)
	if err != nil {
		return err
	}

	var reporter logging.Reporter = logging.NopReporter{}
	if cfg.RollbarToken != "" {
		rb := logging.NewRollbarReporter(cfg.RollbarToken, cfg.Env, version, logger)
		defer rb.Close()
		reporter = rb
	}

	var mailer output.Mailer = email.NewConsole(logger)
	if cfg.Mail.SendgridKey != "" {
		mailer = email.NewSendgrid(cfg.Mail.SendgridKey, "REvamp", cfg.Mail.From)
	}
	mails := application.NewMailComposer(mailer, c.translator, cfg.DefaultLocale, tz.Kolkata, logger)

	var (
		bot       *discord.Bot
		announcer output.Announcer
	)
	if cfg.Discord.Token != "" {
		if bot, err = discord.NewBot(cfg.Discord.Token, cfg.Discord.ChannelID, cfg.AppURL, tz.Kolkata, logger); err != nil {
			return err
		}
		announcer = bot.Announcer()
	}

	users := c.userService(files)
	events := application.NewEventService(
		c.eventRepo, c.registrationRepo, files, announcer, c.gamification, c.tx, c.clock, tz.Kolkata, logger)
	registrations := application.NewRegistrationService(
		c.eventRepo, c.registrationRepo, c.notifications, mails, c.tx, c.clock)
	payments := application.NewPaymentService(
		c.eventRepo, c.registrationRepo, c.paymentRepo,
		payment.NewRazorpay(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret),
		c.notifications, mails, c.tx, c.clock)
	ambassadors := application.NewAmbassadorService(
		c.ambassadorRepo, c.userRepo, files, c.notifications, c.tx, c.clock)
	reminders := application.NewReminderService(
		c.eventRepo, c.registrationRepo, c.notifications, mails, c.clock, logger)

	srv := httpadapter.NewServer(&httpadapter.Options{
		Address:       ":" + cfg.Port,
		Debug:         cfg.Debug,
		CORSOrigins:   cfg.CORSOrigins,
		AdminEmail:    cfg.AdminEmail,
		FilesDir:      filesDir,
		Location:      tz.Kolkata,
		Users:         users,
		Events:        events,
		Registrations: registrations,
		Payments:      payments,
		Notifications: c.notifications,
		Ambassadors:   ambassadors,
		Verifier:      verifier,
		Translator:    c.translator,
		Reporter:      reporter,
		Logger:        logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server", zap.Duration("timeout", shutdownTimeout))
		return srv.Stop(shutdownCtx)
	})
	g.Go(func() error {
		return scheduler.New(reminders, cfg.ReminderInterval, logger).Run(gctx)
	})
	if bot != nil {
		bot.SetEvents(events)
		g.Go(func() error { return bot.Run(gctx) })
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("stopped")
	return nil
}

// newStorage returns the file store, the directory to serve under /files
// (local backend only) and a close func.
func newStorage(ctx context.Context) (output.FileStorage, string, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageGCS:
		gcs, err := storage.NewGCS(ctx, cfg.Storage.Bucket, cfg.Storage.PublicURL, cfg.Auth.CredentialsFile)
		if err != nil {
			return nil, "", nil, err
		}
		return gcs, "", func() { _ = gcs.Close() }, nil
	default:
		publicURL := cfg.Storage.PublicURL
		if publicURL == "" {
			publicURL = "http://localhost:" + cfg.Port + "/files"
		}
		local, err := storage.NewLocal(cfg.Storage.LocalDir, publicURL)
		if err != nil {
			return nil, "", nil, err
		}
		return local, local.Dir(), func() {}, nil
	}
}

func newVerifier(ctx context.Context) (output.IdentityVerifier, error) {
	switch cfg.Auth.Mode {
	case config.AuthJWT:
		logger.Warn("using locally signed tokens; do not use in production")
		return identity.NewJWT(cfg.Auth.JWTSecret, 24*time.Hour), nil
	case config.AuthFirebase:
		return identity.NewFirebase(ctx, cfg.Auth.FirebaseProjectID, cfg.Auth.CredentialsFile)
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Auth.Mode)
	}
}
