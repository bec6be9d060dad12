package integrity

import (
	"osu-db-tool/core/osudb"
	"osu-db-tool/feature/integrity/checks"

	"go.uber.org/zap"
)

// Report is the result of a full installation check.
type Report struct {
	MissingStructure []string                `json:"missing_structure"`
	Stores           []checks.StoreResult    `json:"stores"`
	MissingBeatmaps  []checks.MissingBeatmap `json:"missing_beatmaps"`
}

// Healthy reports whether no problem was found.
func (r *Report) Healthy() bool {
	if len(r.MissingStructure) > 0 || len(r.MissingBeatmaps) > 0 {
		return false
	}
	for _, s := range r.Stores {
		if s.Error != "" {
			return false
		}
	}
	return true
}

// Service handles integrity checks.
type Service struct {
	paths  osudb.Paths
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(paths osudb.Paths, logger *zap.Logger) *Service {
	return &Service{
		paths:  paths,
		logger: logger,
	}
}

// CheckStructure returns the required files and directories that are missing.
func (s *Service) CheckStructure() ([]string, error) {
	return checks.CheckStructure(s.paths)
}

// FixStructure creates the missing directories.
func (s *Service) FixStructure(missing []string) error {
	return checks.FixStructure(s.paths, s.logger, missing)
}

// CheckStores decodes every store file.
func (s *Service) CheckStores() []checks.StoreResult {
	return checks.CheckStores(s.paths)
}

// Run performs every check. songsDir is the resolved beatmap directory; when empty the
// beatmap file check is skipped.
func (s *Service) Run(songsDir string) (*Report, error) {
	missing, err := s.CheckStructure()
	if err != nil {
		return nil, err
	}
	report := &Report{
		MissingStructure: missing,
		Stores:           s.CheckStores(),
	}

	if songsDir == "" {
		return report, nil
	}
	l, err := osudb.LoadListing(s.paths.Listing())
	if err != nil {
		// Already reported by CheckStores or CheckStructure.
		s.logger.Debug("Skipping beatmap file check", zap.Error(err))
		return report, nil
	}
	report.MissingBeatmaps, err = checks.CheckBeatmapFiles(l, songsDir)
	if err != nil {
		return nil, err
	}
	return report, nil
}
