package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"revamp/internal/clock"
	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/input"
	"revamp/internal/ports/output"
)

var _ input.UserUseCase = (*UserService)(nil)

type UserService struct {
	userRepo         output.UserRepository
	registrationRepo output.RegistrationRepository
	ambassadorRepo   output.AmbassadorRepository
	storage          output.FileStorage
	gamification     *GamificationService
	notifier         *NotificationService
	tx               output.Transactor
	clock            clock.Clock
}

func NewUserService(
	userRepo output.UserRepository,
	registrationRepo output.RegistrationRepository,
	ambassadorRepo output.AmbassadorRepository,
	storage output.FileStorage,
	gamification *GamificationService,
	notifier *NotificationService,
	tx output.Transactor,
	clk clock.Clock,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		registrationRepo: registrationRepo,
		ambassadorRepo:   ambassadorRepo,
		storage:          storage,
		gamification:     gamification,
		notifier:         notifier,
		tx:               tx,
		clock:            clk,
	}
}

// CreateProfile registers a new student and credits the signup bonus.
func (s *UserService) CreateProfile(ctx context.Context, uid, email string, in input.CreateProfileInput) (*entities.User, error) {
	if err := entities.ValidateDomains(in.PrimaryDomain, in.Domains); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	user := &entities.User{
		UID:                uid,
		Email:              email,
		Name:               strings.TrimSpace(in.Name),
		College:            strings.TrimSpace(in.College),
		Year:               in.Year,
		PrimaryDomain:      in.PrimaryDomain,
		Domains:            in.Domains,
		Points:             domain.PointsSignup,
		Tier:               domain.TierForPoints(domain.PointsSignup),
		Badges:             []string{},
		LastActiveAt:       now,
		Role:               domain.RoleStudent,
		VerificationStatus: domain.VerificationPending,
		StudentIDNumber:    strings.TrimSpace(in.StudentIDNumber),
		PhotoURL:           in.PhotoURL,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return s.notifier.Notify(ctx, uid, domain.NotificationGeneral, "notification.welcome", map[string]any{
			"Name":   user.Name,
			"Points": domain.PointsSignup,
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, uid string) (*entities.User, error) {
	return s.userRepo.FindByUID(ctx, uid)
}

func (s *UserService) UpdateProfile(ctx context.Context, uid string, in input.UpdateProfileInput) (*entities.User, error) {
	user, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.College != nil {
		user.College = strings.TrimSpace(*in.College)
	}
	if in.Year != nil {
		user.Year = *in.Year
	}
	if in.PhotoURL != nil {
		user.PhotoURL = *in.PhotoURL
	}
	if in.PrimaryDomain != nil || in.Domains != nil {
		if in.PrimaryDomain != nil {
			user.PrimaryDomain = *in.PrimaryDomain
		}
		if in.Domains != nil {
			user.Domains = in.Domains
		}
		if err := entities.ValidateDomains(user.PrimaryDomain, user.Domains); err != nil {
			return nil, err
		}
	}
	user.LastActiveAt = s.clock.Now()
	user.UpdatedAt = user.LastActiveAt
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// UploadCollegeID stores the student's college ID and, the first time,
// credits the onboarding bonus with the First Steps badge.
func (s *UserService) UploadCollegeID(ctx context.Context, uid string, file input.Upload) (*entities.User, error) {
	if err := validateUpload(file, collegeIDTypes, maxImageSize); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	stored, err := store(ctx, s.storage, "college-ids", uid, file)
	if err != nil {
		return nil, err
	}
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		user.CollegeIDURL = stored.URL
		user.VerificationStatus = domain.VerificationPending
		user.UpdatedAt = s.clock.Now()
		if err := s.userRepo.Update(ctx, user); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		added, err := s.gamification.AwardBadge(ctx, uid, domain.BadgeFirstSteps)
		if err != nil || !added {
			return err
		}
		_, err = s.gamification.AwardPoints(ctx, uid, domain.PointsOnboarding)
		return err
	})
	if err != nil {
		return nil, stored.discard(ctx, err)
	}
	return s.userRepo.FindByUID(ctx, uid)
}

// Perks lists the perks unlocked at the user's tier.
func (s *UserService) Perks(ctx context.Context, uid string) ([]domain.Perk, error) {
	user, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	perks := make([]domain.Perk, 0, len(domain.Perks))
	for _, p := range domain.Perks {
		if user.Tier.Unlocks(p.Tier) {
			perks = append(perks, p)
		}
	}
	return perks, nil
}

func (s *UserService) ListUsers(ctx context.Context, search string) ([]entities.User, error) {
	return s.userRepo.List(ctx, strings.TrimSpace(search))
}

func (s *UserService) GetUserDetail(ctx context.Context, uid string) (*input.UserDetail, error) {
	user, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	regs, err := s.registrationRepo.ListByUserID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	detail := &input.UserDetail{
		User:      user,
		Events:    []entities.RegistrationWithEvent{},
		Workshops: []entities.RegistrationWithEvent{},
	}
	for _, r := range regs {
		if r.Event.IsWorkshop() {
			detail.Workshops = append(detail.Workshops, r)
		} else {
			detail.Events = append(detail.Events, r)
		}
	}
	app, err := s.ambassadorRepo.FindLatestByUserID(ctx, uid)
	switch {
	case err == nil:
		detail.Application = app
	case !errors.Is(err, domain.ErrApplicationNotFound):
		return nil, fmt.Errorf("find application: %w", err)
	}
	return detail, nil
}

// UpdateUser applies an admin edit. The tier always follows the points.
func (s *UserService) UpdateUser(ctx context.Context, uid string, in input.AdminUserUpdate) (*entities.User, error) {
	if in.Role != nil && !domain.IsValidRole(*in.Role) {
		return nil, domain.ErrInvalidRole
	}
	if in.VerificationStatus != nil && !domain.IsValidVerification(*in.VerificationStatus) {
		return nil, domain.ErrInvalidVerification
	}
	if in.Points != nil && *in.Points < 0 {
		return nil, domain.ErrInvalidPoints
	}
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByUID(ctx, uid)
		if err != nil {
			return err
		}
		if in.Role != nil || in.VerificationStatus != nil {
			if in.Role != nil {
				user.Role = *in.Role
			}
			if in.VerificationStatus != nil {
				user.VerificationStatus = *in.VerificationStatus
			}
			user.UpdatedAt = s.clock.Now()
			if err := s.userRepo.Update(ctx, user); err != nil {
				return fmt.Errorf("update user: %w", err)
			}
		}
		if in.Points != nil {
			if err := s.userRepo.SetPoints(ctx, uid, *in.Points); err != nil {
				return fmt.Errorf("set points: %w", err)
			}
			return s.gamification.SyncTier(ctx, uid)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.userRepo.FindByUID(ctx, uid)
}

// RecomputeTiers re-derives every stored tier from points.
func (s *UserService) RecomputeTiers(ctx context.Context) (int, error) {
	users, err := s.userRepo.List(ctx, "")
	if err != nil {
		return 0, err
	}
	changed := 0
	for _, u := range users {
		if domain.TierForPoints(u.Points) == u.Tier {
			continue
		}
		if err := s.gamification.SyncTier(ctx, u.UID); err != nil {
			return changed, fmt.Errorf("sync tier %s: %w", u.UID, err)
		}
		changed++
	}
	return changed, nil
}

// GrantAdmin gives uid the admin role.
func (s *UserService) GrantAdmin(ctx context.Context, uid string) error {
	role := domain.RoleAdmin
	_, err := s.UpdateUser(ctx, uid, input.AdminUserUpdate{Role: &role})
	return err
}
