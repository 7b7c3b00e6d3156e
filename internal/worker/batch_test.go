package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Hyperpolymath/My-newsroom/internal/model"
)

// mockAnalyzer implements Analyzer for testing
type mockAnalyzer struct {
	shouldError map[string]bool
}

func (m *mockAnalyzer) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	if m.shouldError[path] {
		return nil, errors.New("analysis failed")
	}
	return &model.Report{Subject: filepath.Base(path)}, nil
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	analyzer := &mockAnalyzer{}
	processor := NewBatchProcessor(analyzer, 2)

	paths := []string{"a.yaml", "b.yaml", "c.yaml"}
	results := processor.ProcessPaths(context.Background(), paths)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Path, res.Error)
		}
		if res.Report == nil {
			t.Errorf("missing report for %s", res.Path)
		}
	}
}

func TestBatchProcessor_ProcessPaths_Errors(t *testing.T) {
	analyzer := &mockAnalyzer{
		shouldError: map[string]bool{"bad.yaml": true},
	}
	processor := NewBatchProcessor(analyzer, 2)

	results := processor.ProcessPaths(context.Background(), []string{"good.yaml", "bad.yaml"})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	errorCount := 0
	for _, res := range results {
		if res.GetError() != nil {
			errorCount++
			if res.Path != "bad.yaml" {
				t.Errorf("unexpected error path %s", res.Path)
			}
		}
	}
	if errorCount != 1 {
		t.Errorf("expected 1 error, got %d", errorCount)
	}
}

func TestBatchProcessor_ProcessPaths_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockAnalyzer{}, 2)

	results := processor.ProcessPaths(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestResolveScenarioPaths_Directory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml", "skip.json", "c.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := ResolveScenarioPaths(dir)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.yml"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "c.yaml"),
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d", len(want), len(paths))
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("path %d: expected %s, got %s", i, p, paths[i])
		}
	}
}

func TestResolveScenarioPaths_EmptyDirectory(t *testing.T) {
	if _, err := ResolveScenarioPaths(t.TempDir()); err == nil {
		t.Error("expected error for directory without scenarios")
	}
}

func TestResolveScenarioPaths_ListFile(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "batch.txt")
	content := `# comment
one.yaml

two.yaml
one.yaml
`
	if err := os.WriteFile(list, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := ResolveScenarioPaths(list)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("expected 2 deduplicated paths, got %d: %v", len(paths), paths)
	}
	if paths[0] != "one.yaml" || paths[1] != "two.yaml" {
		t.Errorf("unexpected paths: %v", paths)
	}
}

func TestResolveScenarioPaths_SingleFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := ResolveScenarioPaths(file)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(paths) != 1 || paths[0] != file {
		t.Errorf("unexpected paths: %v", paths)
	}
}

func TestResolveScenarioPaths_Missing(t *testing.T) {
	if _, err := ResolveScenarioPaths("/nonexistent/path.yaml"); err == nil {
		t.Error("expected error for missing input")
	}
}

func TestFuseJob_Execute(t *testing.T) {
	job := &FuseJob{Path: "s.yaml", Analyzer: &mockAnalyzer{}}
	result := job.Execute(context.Background())

	fuseResult, ok := result.(*FuseResult)
	if !ok {
		t.Fatal("expected *FuseResult")
	}
	if fuseResult.GetError() != nil {
		t.Errorf("unexpected error: %v", fuseResult.GetError())
	}
	if fuseResult.Report == nil {
		t.Error("expected a report")
	}
}
