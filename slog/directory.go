// Package slog provides logging decorators for medibot services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/medibot"
)

// Ensure LoggingDirectoryService implements medibot.DirectoryService.
var _ medibot.DirectoryService = (*LoggingDirectoryService)(nil)

// LoggingDirectoryService wraps a DirectoryService with logging.
type LoggingDirectoryService struct {
	next   medibot.DirectoryService
	logger *slog.Logger
}

// NewLoggingDirectoryService creates a new LoggingDirectoryService.
func NewLoggingDirectoryService(next medibot.DirectoryService, logger *slog.Logger) *LoggingDirectoryService {
	return &LoggingDirectoryService{next: next, logger: logger}
}

// Initialize delegates to the wrapped service and logs the seed size.
func (s *LoggingDirectoryService) Initialize(ctx context.Context, seed []*medibot.Doctor) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("directory initialize",
			"seed", len(seed),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Initialize(ctx, seed)
}

// FindBySymptom delegates to the wrapped service and logs the match count.
func (s *LoggingDirectoryService) FindBySymptom(ctx context.Context, query string) (matches []*medibot.SymptomMatch, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find by symptom",
			"query", query,
			"count", len(matches),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindBySymptom(ctx, query)
}

// FindBySpecialization delegates to the wrapped service and logs the result count.
func (s *LoggingDirectoryService) FindBySpecialization(ctx context.Context, label string) (listings []*medibot.SpecialistListing, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find by specialization",
			"label", label,
			"count", len(listings),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindBySpecialization(ctx, label)
}

// ListSpecializations delegates to the wrapped service.
func (s *LoggingDirectoryService) ListSpecializations(ctx context.Context) (labels []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("list specializations",
			"count", len(labels),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListSpecializations(ctx)
}

// CountDoctors delegates to the wrapped service.
func (s *LoggingDirectoryService) CountDoctors(ctx context.Context) (int, error) {
	return s.next.CountDoctors(ctx)
}
