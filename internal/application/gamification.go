package application

import (
	"context"
	"fmt"

	"revamp/internal/domain"
	"revamp/internal/ports/output"
)

// GamificationService credits points and badges and keeps the stored tier
// in line with the points total.
type GamificationService struct {
	userRepo output.UserRepository
	notifier *NotificationService
}

func NewGamificationService(userRepo output.UserRepository, notifier *NotificationService) *GamificationService {
	return &GamificationService{userRepo: userRepo, notifier: notifier}
}

func (s *GamificationService) AwardPoints(ctx context.Context, uid string, delta int) (int, error) {
	total, err := s.userRepo.AddPoints(ctx, uid, delta)
	if err != nil {
		return 0, fmt.Errorf("add points: %w", err)
	}
	if err := s.SyncTier(ctx, uid); err != nil {
		return 0, err
	}
	return total, nil
}

// AwardBadge grants badge once and reports whether it was newly granted.
func (s *GamificationService) AwardBadge(ctx context.Context, uid, badge string) (bool, error) {
	added, err := s.userRepo.AddBadge(ctx, uid, badge)
	if err != nil {
		return false, fmt.Errorf("add badge: %w", err)
	}
	if !added {
		return false, nil
	}
	err = s.notifier.Notify(ctx, uid, domain.NotificationBadge, "notification.badge", map[string]any{
		"Badge": badgeName(badge),
	})
	return true, err
}

// SyncTier stores the tier derived from the user's points and notifies
// the user on promotion.
func (s *GamificationService) SyncTier(ctx context.Context, uid string) error {
	user, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		return err
	}
	tier := domain.TierForPoints(user.Points)
	if tier == user.Tier {
		return nil
	}
	if err := s.userRepo.SetTier(ctx, uid, tier); err != nil {
		return fmt.Errorf("set tier: %w", err)
	}
	if tier.Rank() <= user.Tier.Rank() {
		return nil
	}
	return s.notifier.Notify(ctx, uid, domain.NotificationBadge, "notification.tier_up", map[string]any{
		"Tier": string(tier),
	})
}

func badgeName(badge string) string {
	switch badge {
	case domain.BadgeFirstSteps:
		return "First Steps"
	case domain.BadgeFirstEvent:
		return "First Event"
	}
	return badge
}
