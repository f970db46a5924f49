package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, u *User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name                string
	Email               string
	DateOfBirth         time.Time
	RetirementAge       float64
	YearlyWithdrawalPct float64
	ExpectedDeathAge    float64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	if params.RetirementAge <= 0 {
		return nil, fmt.Errorf("retirement age must be positive, got %v", params.RetirementAge)
	}

	u := &User{
		Name:                params.Name,
		Email:               params.Email,
		DateOfBirth:         params.DateOfBirth,
		RetirementAge:       params.RetirementAge,
		YearlyWithdrawalPct: params.YearlyWithdrawalPct,
		ExpectedDeathAge:    params.ExpectedDeathAge,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) Update(ctx context.Context, u *User) error {
	return s.repo.UpdateUser(ctx, u)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteUser(ctx, id)
}
