package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"revamp/internal/clock"
	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/input"
	"revamp/internal/ports/output"
)

var _ input.AmbassadorUseCase = (*AmbassadorService)(nil)

type AmbassadorService struct {
	ambassadorRepo output.AmbassadorRepository
	userRepo       output.UserRepository
	storage        output.FileStorage
	notifier       *NotificationService
	tx             output.Transactor
	clock          clock.Clock
}

func NewAmbassadorService(
	ambassadorRepo output.AmbassadorRepository,
	userRepo output.UserRepository,
	storage output.FileStorage,
	notifier *NotificationService,
	tx output.Transactor,
	clk clock.Clock,
) *AmbassadorService {
	return &AmbassadorService{
		ambassadorRepo: ambassadorRepo,
		userRepo:       userRepo,
		storage:        storage,
		notifier:       notifier,
		tx:             tx,
		clock:          clk,
	}
}

// Apply files an ambassador application. A user may hold only one pending
// or approved application.
func (s *AmbassadorService) Apply(ctx context.Context, uid string, answers entities.ApplicationAnswers, video *input.Upload) (*entities.AmbassadorApplication, error) {
	if _, err := s.userRepo.FindByUID(ctx, uid); err != nil {
		return nil, err
	}
	latest, err := s.ambassadorRepo.FindLatestByUserID(ctx, uid)
	switch {
	case err == nil:
		if latest.Status != domain.ApplicationRejected {
			return nil, domain.ErrApplicationExists
		}
	case !errors.Is(err, domain.ErrApplicationNotFound):
		return nil, fmt.Errorf("find application: %w", err)
	}

	app := &entities.AmbassadorApplication{
		ID:     uuid.NewString(),
		UserID: uid,
		Answers: entities.ApplicationAnswers{
			Why:        strings.TrimSpace(answers.Why),
			What:       strings.TrimSpace(answers.What),
			Experience: strings.TrimSpace(answers.Experience),
		},
		Status:    domain.ApplicationPending,
		AppliedAt: s.clock.Now(),
	}
	var stored *storedObject
	if video != nil {
		if err := validateUpload(*video, videoTypes, maxVideoSize); err != nil {
			return nil, err
		}
		if stored, err = store(ctx, s.storage, "ambassador-applications", uid, *video); err != nil {
			return nil, err
		}
		app.VideoURL = stored.URL
	}
	if err := s.ambassadorRepo.Create(ctx, app); err != nil {
		return nil, stored.discard(ctx, err)
	}
	return app, nil
}

// Review approves or rejects a pending application. Approval promotes the
// applicant to the ambassador role.
func (s *AmbassadorService) Review(ctx context.Context, id string, approve bool) (*entities.AmbassadorApplication, error) {
	var app *entities.AmbassadorApplication
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if app, err = s.ambassadorRepo.FindByID(ctx, id); err != nil {
			return err
		}
		if app.Status != domain.ApplicationPending {
			return domain.ErrApplicationNotPending
		}
		app.Status = domain.ApplicationRejected
		key := "notification.ambassador_rejected"
		if approve {
			app.Status = domain.ApplicationApproved
			key = "notification.ambassador_approved"
		}
		app.ReviewedAt = s.clock.Now()
		if err := s.ambassadorRepo.UpdateStatus(ctx, app.ID, app.Status, app.ReviewedAt); err != nil {
			return fmt.Errorf("update application: %w", err)
		}
		if approve {
			user, err := s.userRepo.FindByUID(ctx, app.UserID)
			if err != nil {
				return err
			}
			if !user.IsAdmin() {
				user.Role = domain.RoleAmbassador
				user.UpdatedAt = app.ReviewedAt
				if err := s.userRepo.Update(ctx, user); err != nil {
					return fmt.Errorf("update user: %w", err)
				}
			}
		}
		return s.notifier.Notify(ctx, app.UserID, domain.NotificationGeneral, key, nil)
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}
