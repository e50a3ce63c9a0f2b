package mock

import (
	"context"

	"github.com/fwojciec/medibot"
)

var _ medibot.DirectoryService = (*DirectoryService)(nil)

// DirectoryService is a mock implementation of medibot.DirectoryService.
type DirectoryService struct {
	InitializeFn           func(ctx context.Context, seed []*medibot.Doctor) error
	FindBySymptomFn        func(ctx context.Context, query string) ([]*medibot.SymptomMatch, error)
	FindBySpecializationFn func(ctx context.Context, label string) ([]*medibot.SpecialistListing, error)
	ListSpecializationsFn  func(ctx context.Context) ([]string, error)
	CountDoctorsFn         func(ctx context.Context) (int, error)
}

func (s *DirectoryService) Initialize(ctx context.Context, seed []*medibot.Doctor) error {
	return s.InitializeFn(ctx, seed)
}

func (s *DirectoryService) FindBySymptom(ctx context.Context, query string) ([]*medibot.SymptomMatch, error) {
	return s.FindBySymptomFn(ctx, query)
}

func (s *DirectoryService) FindBySpecialization(ctx context.Context, label string) ([]*medibot.SpecialistListing, error) {
	return s.FindBySpecializationFn(ctx, label)
}

func (s *DirectoryService) ListSpecializations(ctx context.Context) ([]string, error) {
	return s.ListSpecializationsFn(ctx)
}

func (s *DirectoryService) CountDoctors(ctx context.Context) (int, error) {
	return s.CountDoctorsFn(ctx)
}
