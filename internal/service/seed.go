package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
	"github.com/wholesale-hub/wholesale-service/internal/repository"
)

const (
	seedLoginID  = "tester"
	seedPassword = "test1234"
)

// DefaultCategories are created on an empty catalog.
var DefaultCategories = []string{
	"Tops", "Outerwear", "Pants", "Skirts", "Dresses", "Sets", "Accessories", "Shoes",
}

// Seeder populates an empty database with the test wholesaler and the
// default categories.
type Seeder struct {
	auth       *AuthService
	users      repository.UserRepository
	categories repository.CategoryRepository
	logger     *zap.Logger
}

// NewSeeder constructs the seeder.
func NewSeeder(auth *AuthService, users repository.UserRepository, categories repository.CategoryRepository, logger *zap.Logger) *Seeder {
	return &Seeder{auth: auth, users: users, categories: categories, logger: logger}
}

// Run seeds each table only when it is empty.
func (s *Seeder) Run(ctx context.Context) error {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if userCount == 0 {
		if _, err := s.auth.Signup(ctx, seedLoginID, seedPassword, domain.RoleWholesaler); err != nil {
			return err
		}
		s.logger.Info("seeded test wholesaler")
	}

	categoryCount, err := s.categories.Count(ctx)
	if err != nil {
		return err
	}
	if categoryCount == 0 {
		for _, name := range DefaultCategories {
			if err := s.categories.Create(ctx, &domain.Category{Name: name}); err != nil {
				return err
			}
		}
		s.logger.Info("seeded default categories", zap.Int("count", len(DefaultCategories)))
	}
	return nil
}
