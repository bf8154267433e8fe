// Package adapter contains the file system adapters of the stepcalc CLI.
package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/synnheal/stepcalc/internal/model"
)

const recursiveSuffix = "/..."

// ProblemSource loads batch problems from problem files.
type ProblemSource interface {
	// Get resolves every path (file, directory or dir/... pattern) and returns
	// the problems of all matched files in walk order.
	Get(paths []m.Path) ([]m.Problem, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

type problemFile struct {
	Problems []m.Problem `yaml:"problems"`
}

// LocalProblemSource reads YAML problem files from the local disk.
type LocalProblemSource struct{}

// NewLocalProblemSource constructs a LocalProblemSource.
func NewLocalProblemSource() *LocalProblemSource {
	return &LocalProblemSource{}
}

// Get loads problems from the given paths. With no paths it scans ./... .
func (s *LocalProblemSource) Get(paths []m.Path) ([]m.Problem, error) {
	if len(paths) == 0 {
		paths = []m.Path{"." + recursiveSuffix}
	}

	seen := make(map[string]struct{})

	var problems []m.Problem

	for _, path := range paths {
		root, recursive := splitPattern(string(path))

		files, err := s.collect(root, recursive)
		if err != nil {
			return nil, err
		}

		for _, file := range files {
			if _, ok := seen[file]; ok {
				continue
			}

			seen[file] = struct{}{}

			loaded, err := s.load(file)
			if err != nil {
				return nil, err
			}

			problems = append(problems, loaded...)
		}
	}

	return problems, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (s *LocalProblemSource) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

func (s *LocalProblemSource) collect(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("problem path %s: %w", root, err)
	}

	if !info.IsDir() {
		return []string{filepath.Clean(root)}, nil
	}

	var files []string

	err = s.Walk(m.Path(root), recursive, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			// hidden directories hold reports and VCS data
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if isProblemFile(path) {
			files = append(files, filepath.Clean(path))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}

func (s *LocalProblemSource) load(path string) ([]m.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problem file: %w", err)
	}

	var file problemFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode problem file %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	for i := range file.Problems {
		problem := &file.Problems[i]
		problem.Source = m.Path(path)

		if problem.ID == "" {
			problem.ID = fmt.Sprintf("%s#%d", base, i+1)
		}
	}

	slog.Debug("loaded problem file", "path", path, "problems", len(file.Problems))

	return file.Problems, nil
}

func splitPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}

	if strings.HasSuffix(pattern, recursiveSuffix) {
		root := strings.TrimSuffix(pattern, recursiveSuffix)
		if root == "" {
			root = string(filepath.Separator)
		}

		return root, true
	}

	return pattern, false
}

func isProblemFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}

	return false
}
