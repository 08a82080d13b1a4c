package service

import (
	"context"
	"strings"

	"github.com/medforce/fieldtrack/internal/directory/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("directory.service"),
		repo: p.Repo,
	}
}

func (s *Service) ResolveIdentity(ctx context.Context, raw string) (*domain.User, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	user, err := s.repo.FindByEmail(ctx, s.db, raw)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	return s.repo.FindByName(ctx, s.db, raw)
}

func (s *Service) ManagedRepresentatives(ctx context.Context, managerIdentity string) ([]domain.User, error) {
	managerIdentity = strings.TrimSpace(managerIdentity)
	if managerIdentity == "" {
		return nil, nil
	}
	return s.repo.ListByAssignedManager(ctx, s.db, managerIdentity)
}
