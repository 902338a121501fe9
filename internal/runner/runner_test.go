package runner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mendersoftware/autoversion/internal/autotag"
	"github.com/mendersoftware/autoversion/internal/core"
	"github.com/mendersoftware/autoversion/internal/engine"
)

func TestRun_CheckAggregatesAcrossFiles(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("docs/a.md", []byte("version 1.0.0 here\n"))
	fs.SetFile("docs/sub/b.md", []byte("<!--AUTOVERSION: \"v%\"/mender-->\nv2.0.0\n"))
	fs.SetFile("docs/sub/c.md", []byte("nothing to see\n"))
	fs.SetFile("docs/node_modules/skip.md", []byte("9.9.9\n"))

	result, err := Run(context.Background(), fs, Options{Root: "docs"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.FilesProcessed != 3 {
		t.Errorf("files processed = %d, want 3", result.FilesProcessed)
	}
	if len(result.Findings) != 1 {
		t.Fatalf("findings = %v, want 1", result.Findings)
	}
	if result.Findings[0].Path != "docs/a.md" || result.Findings[0].Match != "1.0.0" {
		t.Errorf("finding = %+v", result.Findings[0])
	}
	if !result.HasComponent("mender") {
		t.Errorf("components = %v, want mender present", result.Components)
	}
	if result.HasComponent("integration") {
		t.Errorf("components = %v, integration must not be present", result.Components)
	}
}

func TestRun_UpdateRewritesOnlyTaggedFiles(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("docs/a.md", []byte("<!--AUTOVERSION: \"-b %\"/integration-->\ngit clone -b 1.2.3\n"))
	fs.SetFile("docs/b.md", []byte("plain prose\n"))

	_, err := Run(context.Background(), fs, Options{
		Root:   "docs",
		Update: &engine.Update{Component: "integration", Version: "4.5.6"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, _ := fs.GetFile("docs/a.md")
	if !strings.Contains(string(a), "git clone -b 4.5.6") {
		t.Errorf("docs/a.md not rewritten:\n%s", a)
	}
	b, _ := fs.GetFile("docs/b.md")
	if string(b) != "plain prose\n" {
		t.Errorf("docs/b.md changed:\n%s", b)
	}
}

func TestRun_MalformedTagAbortsRun(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("docs/bad.md", []byte("<!--AUTOVERSION: \"no placeholder\"/mender-->\n"))

	_, err := Run(context.Background(), fs, Options{Root: "docs"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, autotag.ErrMalformedTag) {
		t.Errorf("error %v does not wrap ErrMalformedTag", err)
	}
	if !strings.Contains(err.Error(), "docs/bad.md:1:") {
		t.Errorf("error %q missing file:line prefix", err.Error())
	}
}

func TestRun_EmptyTree(t *testing.T) {
	fs := core.NewMockFileSystem()

	result, err := Run(context.Background(), fs, Options{Root: "docs"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FilesProcessed != 0 || len(result.Findings) != 0 || len(result.Components) != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}
