package animals

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Animal, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Animal, error) {
	return s.repo.GetByID(ctx, id)
}

// Create guarda el animal con auditoría tomada de username (nunca del body).
func (s *Service) Create(ctx context.Context, username string, in AnimalInput) (Animal, error) {
	username = strings.TrimSpace(username)
	if username == "" || in.Breed == nil || in.Weight == nil {
		return Animal{}, ErrInvalidInput
	}

	now := s.now().UTC()
	a := Animal{
		Breed:     *in.Breed,
		Weight:    *in.Weight,
		Name:      in.Name,
		CreatedAt: now,
		CreatedBy: &username,
		UpdatedAt: now,
		UpdatedBy: &username,
	}

	return s.repo.Create(ctx, a)
}

// Update reemplaza breed/weight. name solo cambia si vino en el body (null lo borra).
func (s *Service) Update(ctx context.Context, id int64, username string, in AnimalInput) (Animal, error) {
	username = strings.TrimSpace(username)
	if username == "" || in.Breed == nil || in.Weight == nil {
		return Animal{}, ErrInvalidInput
	}

	a := Animal{
		ID:        id,
		Breed:     *in.Breed,
		Weight:    *in.Weight,
		Name:      in.Name,
		UpdatedAt: s.now().UTC(),
		UpdatedBy: &username,
	}

	return s.repo.Update(ctx, a, in.NameSet)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// SetPhoto asocia un archivo ya guardado al animal y re-estampa updatedBy/updatedAt.
func (s *Service) SetPhoto(ctx context.Context, id int64, username, filename string) (Animal, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(filename) == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.SetPhoto(ctx, id, filename, username, s.now().UTC())
}
