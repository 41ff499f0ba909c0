package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-argdoc/pkg/orchestrator"
	"github.com/goliatone/go-argdoc/pkg/source"
	"github.com/goliatone/go-argdoc/pkg/testsupport"
)

const (
	argumentSpecs = "argument_specs:\n  main:\n    options:\n      name: {type: str}\n"
	metadata      = "galaxy_info: {role_name: nginx}\n"
)

func appOptions(paths testsupport.RolePaths, remoteURL string) []orchestrator.Option {
	return []orchestrator.Option{
		orchestrator.WithPaths(orchestrator.Paths{
			ArgumentSpecs: paths.ArgumentSpecs,
			Metadata:      paths.Metadata,
			Badges:        paths.Badges,
			Output:        paths.Output,
		}),
		orchestrator.WithResolverOptions(
			source.WithLocalPath(paths.Template),
			source.WithCachePath(paths.Template),
			source.WithRemoteURL(remoteURL),
		),
	}
}

func TestApp_OfflineMissingTemplateFails(t *testing.T) {
	paths := testsupport.WriteRole(t, t.TempDir(), testsupport.Role{
		ArgumentSpecs: argumentSpecs,
		Metadata:      metadata,
	})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	var logs bytes.Buffer
	err := newApp(&logs, appOptions(paths, srv.URL)...).Run([]string{"argdoc", "-o"})
	if !errors.Is(err, source.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if _, statErr := os.Stat(paths.Output); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("README must not be written, stat err = %v", statErr)
	}
	if hits.Load() != 0 {
		t.Fatalf("offline mode must not fetch")
	}
}

func TestApp_RemoteRendersReadme(t *testing.T) {
	paths := testsupport.WriteRole(t, t.TempDir(), testsupport.Role{
		ArgumentSpecs: argumentSpecs,
		Metadata:      metadata,
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# {{ meta.galaxy_info.role_name }}"))
	}))
	defer srv.Close()

	var logs bytes.Buffer
	if err := newApp(&logs, appOptions(paths, srv.URL)...).Run([]string{"argdoc"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(paths.Output)
	if err != nil {
		t.Fatalf("read README: %v", err)
	}
	if string(data) != "# nginx" {
		t.Fatalf("unexpected README %q", data)
	}
	if !strings.Contains(logs.String(), "successfully rendered") {
		t.Fatalf("expected success log, got %q", logs.String())
	}
}

func TestApp_RenderFailureExitsCleanly(t *testing.T) {
	paths := testsupport.WriteRole(t, t.TempDir(), testsupport.Role{
		ArgumentSpecs: argumentSpecs,
		Metadata:      metadata,
		Template:      "{% if %}",
	})

	var logs bytes.Buffer
	if err := newApp(&logs, appOptions(paths, "")...).Run([]string{"argdoc", "--offline"}); err != nil {
		t.Fatalf("render failures must not fail the run, got %v", err)
	}
	if !strings.Contains(logs.String(), "README was not updated") {
		t.Fatalf("expected warning, got %q", logs.String())
	}
}

func TestApp_RejectsPositionalArguments(t *testing.T) {
	var logs bytes.Buffer
	if err := newApp(&logs).Run([]string{"argdoc", "extra"}); err == nil {
		t.Fatalf("expected error for positional arguments")
	}
}

func TestApp_HelpNamesTemplateDialect(t *testing.T) {
	var help bytes.Buffer
	app := newApp(&bytes.Buffer{})
	app.Writer = &help

	if err := app.Run([]string{"argdoc", "--help"}); err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, want := range []string{"pongo2", "Django", "default:\"x\"", "dict.items()"} {
		if !strings.Contains(help.String(), want) {
			t.Fatalf("help output missing %q:\n%s", want, help.String())
		}
	}
}
