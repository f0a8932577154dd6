package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"mailtriage/internal/model"
	"mailtriage/internal/repository"
	"mailtriage/pkg/util"
)

type Service struct {
	reviewerRepo *repository.ReviewerRepository
	jwtSecret    string
}

func NewService(reviewerRepo *repository.ReviewerRepository, jwtSecret string) *Service {
	return &Service{
		reviewerRepo: reviewerRepo,
		jwtSecret:    jwtSecret,
	}
}

// Register creates a new reviewer account.
func (s *Service) Register(ctx context.Context, email, password string) (*model.Reviewer, error) {
	existing, err := s.reviewerRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already exists")
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	rv := &model.Reviewer{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.reviewerRepo.CreateReviewer(ctx, rv); err != nil {
		return nil, err
	}

	return rv, nil
}

// Login checks reviewer credentials and returns a JWT.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	rv, err := s.reviewerRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", errors.New("invalid email or password")
	}

	if !util.CheckPassword(password, rv.PasswordHash) {
		return "", errors.New("invalid email or password")
	}

	token, err := util.GenerateJWT(rv.ID, rv.Email, s.jwtSecret)
	if err != nil {
		return "", err
	}

	return token, nil
}
