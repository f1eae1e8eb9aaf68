package app

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"exportgen/internal/domain"
	"exportgen/internal/export"
	"exportgen/internal/infra/repos/runs"
	"exportgen/internal/logging"
	"exportgen/internal/registry"
	"exportgen/internal/validation"
)

type ExportService struct {
	runRepo     runs.Repository
	genRegistry *registry.GeneratorRegistry
	validator   *validation.Validator
	logger      *logging.Logger
}

func NewExportService(
	runRepo runs.Repository,
	genRegistry *registry.GeneratorRegistry,
	logger *logging.Logger,
) *ExportService {
	return &ExportService{
		runRepo:     runRepo,
		genRegistry: genRegistry,
		validator:   validation.NewValidator(genRegistry),
		logger:      logger.WithComponent("export"),
	}
}

// Build validates a blueprint and turns it into a ready export engine:
// generator specs resolved through the registry, percent fractions parsed
// exactly, and the export file constructed (which runs the sizing checks).
func (s *ExportService) Build(bp *domain.Blueprint) (*export.ExportFile, error) {
	if err := s.validator.ValidateBlueprint(bp); err != nil {
		return nil, fmt.Errorf("blueprint validation failed: %w", err)
	}

	tables := make([]export.Table, 0, len(bp.Tables))
	for _, tableSpec := range bp.Tables {
		columns := make([]export.Column, 0, len(tableSpec.Columns))
		for _, colSpec := range tableSpec.Columns {
			factory, err := s.genRegistry.Get(colSpec.Generator.Type)
			if err != nil {
				return nil, fmt.Errorf("table %s, column %s: %w", tableSpec.ID, colSpec.Name, err)
			}
			gen, err := factory.New(colSpec.Generator)
			if err != nil {
				return nil, fmt.Errorf("table %s, column %s: %w", tableSpec.ID, colSpec.Name, err)
			}
			columns = append(columns, export.NewColumn(colSpec.Name, colSpec.Size, colSpec.SQLType, gen))
		}

		percent, err := decimal.NewFromString(tableSpec.PercentSize)
		if err != nil {
			return nil, fmt.Errorf("table %s: invalid percent_size: %w", tableSpec.ID, err)
		}

		tables = append(tables, export.NewTable(tableSpec.ID, columns, tableSpec.Delimiter, percent))
	}

	ef, err := export.NewExportFile(tables, bp.DataSizeBytes, bp.NumberOfFiles)
	if err != nil {
		return nil, fmt.Errorf("invalid export configuration: %w", err)
	}
	return ef, nil
}

// GenerateFiles builds the blueprint's export, writes all output files under
// outDir and records the run. The returned run carries the final status;
// the error mirrors a failed status.
func (s *ExportService) GenerateFiles(bp *domain.Blueprint, outDir string) (*domain.Run, error) {
	ef, err := s.Build(bp)
	if err != nil {
		return nil, err
	}

	run := &domain.Run{
		BlueprintID:   bp.ID,
		BlueprintName: bp.Name,
		OutDir:        outDir,
		DataSizeBytes: bp.DataSizeBytes,
		NumberOfFiles: bp.NumberOfFiles,
		Status:        domain.RunStatusRunning,
		StartedAt:     time.Now(),
	}
	if err := s.runRepo.Create(run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	s.logger.Infow("run.started", map[string]any{
		"run_id":    run.ID,
		"blueprint": bp.Name,
		"out_dir":   outDir,
		"files":     bp.NumberOfFiles,
	})

	start := time.Now()
	genErr := ef.GenerateAllFiles(outDir)
	completed := time.Now()
	run.CompletedAt = &completed

	if genErr != nil {
		run.Status = domain.RunStatusFailed
		run.Error = genErr.Error()
		if err := s.runRepo.Update(run); err != nil {
			s.logger.Errorw("run.update_failed", map[string]any{"run_id": run.ID, "error": err.Error()})
		}
		s.logger.Errorw("run.failed", map[string]any{"run_id": run.ID, "error": genErr.Error()})
		return run, genErr
	}

	stats := domain.RunStats{
		FilesWritten:    bp.NumberOfFiles,
		FileSizeBytes:   ef.FileSizeBytes(),
		TablesPerFile:   len(ef.Tables()),
		DurationSeconds: completed.Sub(start).Seconds(),
	}
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return nil, err
	}
	run.Status = domain.RunStatusSuccess
	run.Stats = statsJSON
	if err := s.runRepo.Update(run); err != nil {
		return nil, fmt.Errorf("failed to update run: %w", err)
	}

	s.logger.Infow("run.finished", map[string]any{
		"run_id":   run.ID,
		"files":    stats.FilesWritten,
		"duration": stats.DurationSeconds,
	})
	return run, nil
}

// GenerateText builds the export and returns a single file's worth of text
// without touching the filesystem or the run history.
func (s *ExportService) GenerateText(bp *domain.Blueprint) (string, error) {
	ef, err := s.Build(bp)
	if err != nil {
		return "", err
	}
	return ef.GenerateExport()
}

// SchemaJSON builds the export and returns its schema as JSON text.
func (s *ExportService) SchemaJSON(bp *domain.Blueprint) (string, error) {
	ef, err := s.Build(bp)
	if err != nil {
		return "", err
	}
	return ef.SchemaJSONString()
}

func (s *ExportService) GetRun(id string) (*domain.Run, error) {
	return s.runRepo.Get(id)
}

func (s *ExportService) ListRuns(limit int, status string) ([]*domain.Run, error) {
	return s.runRepo.List(limit, status)
}
