package input

import (
	"context"

	"revamp/internal/domain"
	"revamp/internal/domain/entities"
)

type CreateProfileInput struct {
	Name            string   `json:"name" validate:"required,min=2"`
	College         string   `json:"college" validate:"required"`
	Year            int      `json:"year" validate:"required,min=1,max=5"`
	PrimaryDomain   string   `json:"primaryDomain" validate:"required"`
	Domains         []string `json:"domains" validate:"required,min=1,max=3"`
	StudentIDNumber string   `json:"studentIdNumber"`
	PhotoURL        string   `json:"photoURL" validate:"omitempty,url"`
}

type UpdateProfileInput struct {
	Name          *string  `json:"name" validate:"omitempty,min=2"`
	College       *string  `json:"college"`
	Year          *int     `json:"year" validate:"omitempty,min=1,max=5"`
	PrimaryDomain *string  `json:"primaryDomain"`
	Domains       []string `json:"domains" validate:"omitempty,min=1,max=3"`
	PhotoURL      *string  `json:"photoURL" validate:"omitempty,url"`
}

// AdminUserUpdate changes fields only admins may set. Nil means unchanged.
type AdminUserUpdate struct {
	Role               *string `json:"role"`
	Points             *int    `json:"points"`
	VerificationStatus *string `json:"verificationStatus"`
}

type UserDetail struct {
	User        *entities.User
	Events      []entities.RegistrationWithEvent
	Workshops   []entities.RegistrationWithEvent
	Application *entities.AmbassadorApplication
}

type UserUseCase interface {
	CreateProfile(ctx context.Context, uid, email string, in CreateProfileInput) (*entities.User, error)
	GetProfile(ctx context.Context, uid string) (*entities.User, error)
	UpdateProfile(ctx context.Context, uid string, in UpdateProfileInput) (*entities.User, error)
	UploadCollegeID(ctx context.Context, uid string, file Upload) (*entities.User, error)
	Perks(ctx context.Context, uid string) ([]domain.Perk, error)
	ListUsers(ctx context.Context, search string) ([]entities.User, error)
	GetUserDetail(ctx context.Context, uid string) (*UserDetail, error)
	UpdateUser(ctx context.Context, uid string, in AdminUserUpdate) (*entities.User, error)
}
