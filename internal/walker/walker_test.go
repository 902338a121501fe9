package walker

import (
	"context"
	"errors"
	"testing"

	"github.com/mendersoftware/autoversion/internal/core"
)

func collect(t *testing.T, w *Walker, root string) []string {
	t.Helper()
	var paths []string
	err := w.Walk(context.Background(), root, func(path string) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	return paths
}

func TestWalk_FiltersExtensionsAndExcludes(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("docs/readme.md", []byte("a"))
	fs.SetFile("docs/sub/guide.markdown", []byte("b"))
	fs.SetFile("docs/sub/diagram.png", []byte("c"))
	fs.SetFile("docs/node_modules/pkg/readme.md", []byte("d"))
	fs.SetFile("docs/03.Open-source-licenses/licenses.md", []byte("e"))
	fs.SetFile("docs/notes.txt", []byte("f"))

	w := New(fs, nil, nil)
	got := collect(t, w, "docs")

	want := map[string]bool{
		"docs/readme.md":          true,
		"docs/sub/guide.markdown": true,
	}
	if len(got) != len(want) {
		t.Fatalf("walked %v, want %d files", got, len(want))
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected file %q in walk", p)
		}
	}
}

func TestWalk_CustomExtensions(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("docs/page.mdx", []byte("a"))
	fs.SetFile("docs/page.md", []byte("b"))

	w := New(fs, []string{".mdx"}, nil)
	got := collect(t, w, "docs")
	if len(got) != 1 || got[0] != "docs/page.mdx" {
		t.Errorf("walked %v, want only docs/page.mdx", got)
	}
}

func TestWalk_CustomExcludes(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("docs/keep/a.md", []byte("a"))
	fs.SetFile("docs/drafts/b.md", []byte("b"))

	w := New(fs, nil, []string{"drafts"})
	got := collect(t, w, "docs")
	if len(got) != 1 || got[0] != "docs/keep/a.md" {
		t.Errorf("walked %v, want only docs/keep/a.md", got)
	}
}

func TestWalk_MissingRootIsNotFatal(t *testing.T) {
	fs := core.NewMockFileSystem()
	w := New(fs, nil, nil)
	if got := collect(t, w, "nowhere"); len(got) != 0 {
		t.Errorf("walked %v, want nothing", got)
	}
}

func TestWalk_CallbackErrorStopsWalk(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("docs/a.md", []byte("a"))
	fs.SetFile("docs/b.md", []byte("b"))

	sentinel := errors.New("stop")
	var calls int
	err := New(fs, nil, nil).Walk(context.Background(), "docs", func(string) error {
		calls++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want %v", err, sentinel)
	}
	if calls != 1 {
		t.Errorf("callback ran %d times after error, want 1", calls)
	}
}

func TestWalk_CancelledContext(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("docs/a.md", []byte("a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(fs, nil, nil).Walk(ctx, "docs", func(string) error {
		t.Fatal("callback ran on cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
