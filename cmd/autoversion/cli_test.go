package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupDocs(t *testing.T, files map[string]string) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("AUTOVERSION_DIR", "")
	for path, content := range files {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				t.Fatal(err)
			}
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRunCLI_CheckCleanTree(t *testing.T) {
	setupDocs(t, map[string]string{
		"readme.md": "<!--AUTOVERSION: \"v%\"/mender-->\nv1.2.3 is the current release\n",
	})

	if err := runCLI([]string{"autoversion", "check", "--quiet"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunCLI_CheckFindsUntaggedVersion(t *testing.T) {
	setupDocs(t, map[string]string{
		"readme.md": "install version 1.2.3 from the downloads page\n",
	})

	err := runCLI([]string{"autoversion", "check", "--quiet"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "errors found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunCLI_UpdateRewritesDocs(t *testing.T) {
	setupDocs(t, map[string]string{
		"docs/install.md": "<!--AUTOVERSION: \"-b %\"/integration-->\ngit clone -b 1.2.3 repo\n",
	})

	err := runCLI([]string{"autoversion", "-C", "docs", "update",
		"--component", "integration", "--version", "4.5.6"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile("docs/install.md")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "git clone -b 4.5.6 repo") {
		t.Errorf("document not rewritten:\n%s", data)
	}
}

func TestRunCLI_UpdateRequiresComponentAndVersion(t *testing.T) {
	setupDocs(t, nil)

	err := runCLI([]string{"autoversion", "update"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "--component and --version are required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunCLI_UpdateUnknownComponent(t *testing.T) {
	setupDocs(t, map[string]string{
		"readme.md": "<!--AUTOVERSION: \"v%\"/mender-->\nv1.2.3\n",
	})

	err := runCLI([]string{"autoversion", "update",
		"--component", "no-such-component", "--version", "1.0.0"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "was not found anywhere in the docs content") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunCLI_UpdateFromManifest(t *testing.T) {
	setupDocs(t, map[string]string{
		"readme.md":    "<!--AUTOVERSION: \"v%\"/mender-connect-->\nv1.0.0\n",
		"package.json": `{"name": "mender-connect", "version": "2.3.1"}`,
	})

	err := runCLI([]string{"autoversion", "update",
		"--component", "mender-connect", "--from-file", "package.json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile("readme.md")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "v2.3.1") {
		t.Errorf("document not rewritten from manifest:\n%s", data)
	}
}

func TestRunCLI_UpdatePokyVersion(t *testing.T) {
	setupDocs(t, map[string]string{
		"readme.md": "<!--AUTOVERSION: \"-b %\"/poky-->\ngit clone -b dunfell\n",
	})

	if err := runCLI([]string{"autoversion", "update", "--poky-version", "kirkstone"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile("readme.md")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "git clone -b kirkstone") {
		t.Errorf("poky branch not rewritten:\n%s", data)
	}
}

func TestRunCLI_InitCreatesConfig(t *testing.T) {
	setupDocs(t, nil)

	if err := runCLI([]string{"autoversion", "init", "--root", "docs"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(".autoversion.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "root: docs") {
		t.Errorf("config missing root:\n%s", data)
	}

	err = runCLI([]string{"autoversion", "init", "--root", "other"})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected already-exists error, got %v", err)
	}
}

func TestRunCLI_MalformedTagAbortsWithLocation(t *testing.T) {
	setupDocs(t, map[string]string{
		"readme.md": "<!--AUTOVERSION: \"broken\"/mender-->\n",
	})

	err := runCLI([]string{"autoversion", "check", "--quiet"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "readme.md:1:") {
		t.Errorf("error %q missing file:line prefix", err.Error())
	}
}
