package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheerioskun/charbrowser/internal/models"
	"github.com/spf13/afero"
)

// DefaultFileName is the export file name used when none is given
const DefaultFileName = "characters.json"

// Service writes result sets to JSON files
type Service struct {
	fs afero.Fs
}

// NewService creates a new export service
func NewService(fs afero.Fs) *Service {
	return &Service{
		fs: fs,
	}
}

// ExportOptions contains configuration for export operations
type ExportOptions struct {
	DestinationPath string
	Overwrite       bool
}

// ExportSummary contains information about the export operation
type ExportSummary struct {
	CharacterCount  int
	Query           models.FilterState
	DestinationPath string
}

// Document is the on-disk shape of an export
type Document struct {
	ExportedAt time.Time          `json:"exported_at"`
	Query      models.FilterState `json:"query"`
	Total      int                `json:"total"`
	Characters []models.Character `json:"characters"`
}

// GetExportSummary calculates what would be exported without writing anything
func (s *Service) GetExportSummary(rs *models.ResultSet, destPath string) (*ExportSummary, error) {
	if rs == nil {
		return nil, fmt.Errorf("no results loaded")
	}

	return &ExportSummary{
		CharacterCount:  rs.Len(),
		Query:           rs.Query,
		DestinationPath: destPath,
	}, nil
}

// ExportResults writes the result set to opts.DestinationPath as indented JSON
func (s *Service) ExportResults(rs *models.ResultSet, opts ExportOptions) (*ExportSummary, error) {
	summary, err := s.GetExportSummary(rs, opts.DestinationPath)
	if err != nil {
		return nil, err
	}

	// Create destination directory if it doesn't exist
	destDir := filepath.Dir(opts.DestinationPath)
	if err := s.fs.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", destDir, err)
	}

	// Check if destination exists and handle overwrite
	if !opts.Overwrite {
		if exists, err := afero.Exists(s.fs, opts.DestinationPath); err != nil {
			return nil, fmt.Errorf("failed to check if destination exists: %w", err)
		} else if exists {
			return nil, fmt.Errorf("destination file exists and overwrite is disabled: %s", opts.DestinationPath)
		}
	}

	doc := Document{
		ExportedAt: time.Now().UTC(),
		Query:      rs.Query,
		Total:      rs.Total,
		Characters: rs.Characters,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := afero.WriteFile(s.fs, opts.DestinationPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}

	return summary, nil
}

// GetDefaultExportPath returns DefaultFileName in the current working directory
func GetDefaultExportPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return filepath.Join(cwd, DefaultFileName), nil
}

// ValidateExportPath performs basic validation on the export path
func (s *Service) ValidateExportPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("export path cannot be empty")
	}

	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return fmt.Errorf("export path must end in .json")
	}

	// Check if parent directory exists
	parentDir := filepath.Dir(path)
	if ok, err := afero.DirExists(s.fs, parentDir); err != nil {
		return fmt.Errorf("failed to check parent directory: %w", err)
	} else if !ok {
		return fmt.Errorf("parent directory does not exist: %s", parentDir)
	}

	return nil
}
