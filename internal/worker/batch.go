package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Hyperpolymath/My-newsroom/internal/model"
)

// Analyzer runs the fusion pipeline for one scenario file.
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.Report, error)
}

// FuseJob analyzes a single scenario file.
type FuseJob struct {
	Path     string
	Analyzer Analyzer
}

// Execute runs the analysis.
func (j *FuseJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.AnalyzeFile(ctx, j.Path)
	if err != nil {
		return &FuseResult{Path: j.Path, Error: err}
	}
	return &FuseResult{Path: j.Path, Report: report}
}

// FuseResult is the outcome of one scenario analysis.
type FuseResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the analysis error, if any.
func (r *FuseResult) GetError() error {
	return r.Error
}

// BatchProcessor fuses many scenario files concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessPaths analyzes the given scenario files concurrently.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*FuseResult {
	if len(paths) == 0 {
		return []*FuseResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&FuseJob{Path: path, Analyzer: b.analyzer})
	}

	results := pool.Wait()

	fuseResults := make([]*FuseResult, len(results))
	for i, result := range results {
		fuseResults[i] = result.(*FuseResult)
	}

	return fuseResults
}

// ProcessInput resolves the input to scenario paths and analyzes them: a
// directory is walked for YAML scenarios; a .txt file is read as a path list
// (one per line, # comments); anything else is treated as a single scenario.
func (b *BatchProcessor) ProcessInput(ctx context.Context, input string) ([]*FuseResult, error) {
	paths, err := ResolveScenarioPaths(input)
	if err != nil {
		return nil, err
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ResolveScenarioPaths expands a batch input into an ordered, deduplicated
// list of scenario file paths.
func ResolveScenarioPaths(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if info.IsDir() {
		return collectScenarioDir(input)
	}
	if strings.HasSuffix(input, ".txt") {
		return readPathList(input)
	}
	return []string{input}, nil
}

// collectScenarioDir gathers *.yaml and *.yml files in a directory, sorted
// for a deterministic processing order.
func collectScenarioDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files (*.yaml, *.yml) in %s", dir)
	}

	sort.Strings(paths)
	return paths, nil
}

// readPathList reads scenario paths from a list file, one per line, skipping
// blanks and # comments and dropping duplicates.
func readPathList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan list file: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario paths in %s", path)
	}

	return paths, nil
}
