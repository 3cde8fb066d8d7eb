package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"revamp/internal/application"
	"revamp/internal/clock"
	"revamp/internal/infrastructure/database"
	"revamp/internal/infrastructure/i18n"
	"revamp/internal/ports/output"
)

// core holds the repositories and services every command shares.
type core struct {
	pool             *pgxpool.Pool
	clock            clock.Clock
	tx               *database.Transactor
	translator       *i18n.Translator
	userRepo         *database.UserRepository
	eventRepo        *database.EventRepository
	registrationRepo *database.RegistrationRepository
	paymentRepo      *database.PaymentRepository
	ambassadorRepo   *database.AmbassadorRepository
	notifications    *application.NotificationService
	gamification     *application.GamificationService
}

func newCore(ctx context.Context) (*core, error) {
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	c := &core{
		pool:             pool,
		clock:            clock.NewSystem(),
		tx:               database.NewTransactor(pool),
		translator:       i18n.NewTranslator(cfg.DefaultLocale, logger),
		userRepo:         database.NewUserRepository(pool),
		eventRepo:        database.NewEventRepository(pool),
		registrationRepo: database.NewRegistrationRepository(pool),
		paymentRepo:      database.NewPaymentRepository(pool),
		ambassadorRepo:   database.NewAmbassadorRepository(pool),
	}
	c.notifications = application.NewNotificationService(
		database.NewNotificationRepository(pool), c.translator, cfg.DefaultLocale, c.clock)
	c.gamification = application.NewGamificationService(c.userRepo, c.notifications)
	return c, nil
}

func (c *core) userService(storage output.FileStorage) *application.UserService {
	return application.NewUserService(
		c.userRepo, c.registrationRepo, c.ambassadorRepo, storage,
		c.gamification, c.notifications, c.tx, c.clock,
	)
}

func (c *core) Close() {
	c.pool.Close()
}
