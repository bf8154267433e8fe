package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/synnheal/stepcalc/internal/model"
)

const (
	// ReportsFileName is the file a report directory keeps its reports in.
	ReportsFileName = "reports.yaml"
	// ShardDirPrefix prefixes the per-shard report directories.
	ShardDirPrefix = "shard_"

	reportsFileVersion = 1
)

// ErrReportVersion is returned for report files written by a newer format.
var ErrReportVersion = errors.New("unsupported report file version")

// ReportStore persists batch reports.
type ReportStore interface {
	SaveReports(dir m.Path, reports []m.Report) error
	LoadReports(dir m.Path) ([]m.Report, error)
	// ShardDirs lists the shard report directories below dir in name order.
	ShardDirs(dir m.Path) ([]m.Path, error)
}

type reportFile struct {
	Version int        `yaml:"version"`
	Reports []m.Report `yaml:"reports"`
}

// LocalReportStore keeps reports as YAML on the local disk.
type LocalReportStore struct{}

// NewReportStore constructs a LocalReportStore.
func NewReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveReports replaces dir/reports.yaml with the given reports.
func (s *LocalReportStore) SaveReports(dir m.Path, reports []m.Report) error {
	if err := os.MkdirAll(string(dir), 0o755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(reportFile{Version: reportsFileVersion, Reports: reports})
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}

	tmp, err := os.CreateTemp(string(dir), ReportsFileName+".*")
	if err != nil {
		return fmt.Errorf("create reports file: %w", err)
	}

	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write reports file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write reports file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(string(dir), ReportsFileName)); err != nil {
		return fmt.Errorf("replace reports file: %w", err)
	}

	return nil
}

// LoadReports reads dir/reports.yaml. A missing file wraps os.ErrNotExist.
func (s *LocalReportStore) LoadReports(dir m.Path) ([]m.Report, error) {
	path := filepath.Join(string(dir), ReportsFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reports: %w", err)
	}

	var file reportFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode reports %s: %w", path, err)
	}

	if file.Version > reportsFileVersion {
		return nil, fmt.Errorf("%w: %d in %s", ErrReportVersion, file.Version, path)
	}

	for i := range file.Reports {
		file.Reports[i].Problem.Source = file.Reports[i].Source
	}

	return file.Reports, nil
}

// ShardDirs returns the shard_* subdirectories of dir.
func (s *LocalReportStore) ShardDirs(dir m.Path) ([]m.Path, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	var shards []m.Path

	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), ShardDirPrefix) {
			shards = append(shards, m.Path(filepath.Join(string(dir), entry.Name())))
		}
	}

	return shards, nil
}

// ShardDir returns the report directory of one shard below dir.
func ShardDir(dir m.Path, index int) m.Path {
	return m.Path(filepath.Join(string(dir), fmt.Sprintf("%s%d", ShardDirPrefix, index)))
}
