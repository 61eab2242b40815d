package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driven"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driving"
	"github.com/custodia-labs/moviegraph-clean/internal/logger"
)

// Ensure CleanService implements the interface.
var _ driving.Cleaner = (*CleanService)(nil)

// writeOrder is the order output files are written in.
var writeOrder = []domain.TableRole{domain.RolePeople, domain.RoleMovies, domain.RoleStars}

// CleanService runs the cleaning pipeline: load, transform, write.
type CleanService struct {
	loader   driven.TableLoader
	factory  driven.StageFactory
	settings driving.SettingsService
	writers  map[domain.OutputFormat]driven.TableWriter
	newRunID func() string
}

// CleanOption configures a CleanService.
type CleanOption func(*CleanService)

// WithRunIDFunc replaces the run id generator.
func WithRunIDFunc(fn func() string) CleanOption {
	return func(s *CleanService) {
		if fn != nil {
			s.newRunID = fn
		}
	}
}

// NewCleanService creates a new clean service.
// settings is optional; without it every stage gets a nil config.
// One writer per output format is kept; a later writer replaces an earlier
// one of the same format.
func NewCleanService(
	loader driven.TableLoader,
	factory driven.StageFactory,
	settings driving.SettingsService,
	writers []driven.TableWriter,
	opts ...CleanOption,
) *CleanService {
	s := &CleanService{
		loader:   loader,
		factory:  factory,
		settings: settings,
		writers:  make(map[domain.OutputFormat]driven.TableWriter, len(writers)),
		newRunID: uuid.NewString,
	}
	for _, w := range writers {
		s.writers[w.Format()] = w
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Clean executes one run. The first error aborts it; files already written
// by an aborted run stay in place.
func (s *CleanService) Clean(ctx context.Context, req domain.CleanRequest) (*domain.CleanResult, error) {
	if req.InputDir == "" || req.OutputDir == "" {
		return nil, fmt.Errorf("%w: input and output directories are required", domain.ErrInvalidInput)
	}
	if err := req.Options.Validate(); err != nil {
		return nil, err
	}
	if s.loader == nil || s.factory == nil {
		return nil, errors.New("clean service not configured")
	}

	writer, ok := s.writers[req.Options.OutputFormat]
	if !ok {
		return nil, fmt.Errorf("%w: no writer for %s", domain.ErrUnsupportedType, req.Options.OutputFormat)
	}

	result := &domain.CleanResult{
		RunID: s.newRunID(),
		Rows:  make(map[domain.TableRole]int, len(writeOrder)),
	}
	logger.SetRunID(result.RunID)
	defer logger.SetRunID("")

	logger.Info("cleaning %s into %s (aggregate=%t normalize=%t format=%s)",
		req.InputDir, req.OutputDir, req.Options.Aggregate, req.Options.Normalize, req.Options.OutputFormat)

	pipeline, err := s.factory.Assemble(req.Options, s.stageConfig)
	if err != nil {
		return nil, fmt.Errorf("assemble pipeline: %w", err)
	}

	logger.Section("Load")
	ds, err := s.loader.Load(ctx, req.InputDir)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", req.InputDir, err)
	}

	logger.Section("Transform")
	result.Stages, err = pipeline.Run(ctx, ds)
	if err != nil {
		return result, err
	}

	logger.Section("Write")
	for _, role := range writeOrder {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		table := ds.Table(role)
		path, err := writer.Write(ctx, req.OutputDir, role, table)
		if err != nil {
			return result, fmt.Errorf("write %s: %w", role.OutputFile(), err)
		}
		result.Files = append(result.Files, path)
		result.Rows[role] = table.Len()
		logger.Debug("wrote %s (%d rows)", path, table.Len())
	}

	logger.Info("done: stages %v, %d files", result.Stages, len(result.Files))
	return result, nil
}

// stageConfig returns the per-stage config from settings, if any.
func (s *CleanService) stageConfig(name string) map[string]any {
	if s.settings == nil {
		return nil
	}
	return s.settings.StageConfig(name)
}
