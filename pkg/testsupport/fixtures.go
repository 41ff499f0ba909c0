package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-argdoc/pkg/optspec"
)

// MustLoadCategorySpec reads and decodes an argument_specs fixture.
func MustLoadCategorySpec(t *testing.T, path string) optspec.CategorySpec {
	t.Helper()

	spec, err := LoadCategorySpec(path)
	if err != nil {
		t.Fatalf("load category spec: %v", err)
	}
	return spec
}

// LoadCategorySpec returns a CategorySpec without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadCategorySpec(path string) (optspec.CategorySpec, error) {
	if path == "" {
		return nil, errors.New("testsupport: spec path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read spec: %w", err)
	}
	spec, err := optspec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: decode spec: %w", err)
	}
	return spec, nil
}

// Role lists the files written by WriteRole. Empty fields are skipped so tests
// can model missing inputs.
type Role struct {
	ArgumentSpecs string
	Metadata      string
	Badges        string
	Template      string
}

// RolePaths are the absolute locations WriteRole used under its root.
type RolePaths struct {
	Root          string
	ArgumentSpecs string
	Metadata      string
	Badges        string
	Template      string
	Output        string
}

// WriteRole lays out a role directory (meta/*.yml, .ci/README.md.j2) under
// root and returns the resulting paths, including where README.md belongs.
func WriteRole(t *testing.T, root string, role Role) RolePaths {
	t.Helper()

	paths := RolePaths{
		Root:          root,
		ArgumentSpecs: filepath.Join(root, "meta", "argument_specs.yml"),
		Metadata:      filepath.Join(root, "meta", "main.yml"),
		Badges:        filepath.Join(root, "meta", "badges.yml"),
		Template:      filepath.Join(root, ".ci", "README.md.j2"),
		Output:        filepath.Join(root, "README.md"),
	}

	writeIfSet(t, paths.ArgumentSpecs, role.ArgumentSpecs)
	writeIfSet(t, paths.Metadata, role.Metadata)
	writeIfSet(t, paths.Badges, role.Badges)
	writeIfSet(t, paths.Template, role.Template)
	return paths
}

func writeIfSet(t *testing.T, path, content string) {
	t.Helper()

	if content == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
