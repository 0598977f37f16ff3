// ABOUTME: Integration tests for tagpages CLI commands.
// ABOUTME: Tests the build, tags, and history workflow against a temp site.

package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var tagpagesBin string

func TestMain(m *testing.M) {
	// Build tagpages binary
	cmd := exec.Command("go", "build", "-o", "bin/tagpages", "./cmd/tagpages")
	cmd.Dir = ".."
	if err := cmd.Run(); err != nil {
		panic(err)
	}

	wd, _ := os.Getwd()
	tagpagesBin = filepath.Join(wd, "..", "bin", "tagpages")

	os.Exit(m.Run())
}

func newSite(t *testing.T) string {
	t.Helper()
	source := t.TempDir()
	posts := map[string]string{
		"2024-01-01-intro.md":    "---\ntitle: Intro\ntags: [Go, C++ Tips]\n---\nHello\n",
		"2024-02-01-followup.md": "---\ntitle: Follow-up\ntags: [Go]\n---\nMore\n",
	}
	for name, content := range posts {
		path := filepath.Join(source, "_posts", name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return source
}

func TestBuildSkipsOutsideProduction(t *testing.T) {
	source := newSite(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")

	out, err := runTagpages("development", source, dbPath, "build")
	if err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Not a production build") {
		t.Errorf("expected skip notice: %s", out)
	}
	if _, err := os.Stat(filepath.Join(source, "tags")); !os.IsNotExist(err) {
		t.Error("expected no tags directory outside production")
	}
}

func TestBuildTagsHistory(t *testing.T) {
	source := newSite(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")

	// Build
	out, err := runTagpages("production", source, dbPath, "build")
	if err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Wrote 2 tag pages") {
		t.Errorf("expected 'Wrote 2 tag pages' in output: %s", out)
	}

	data, err := os.ReadFile(filepath.Join(source, "tags", "go", "index.md"))
	if err != nil {
		t.Fatalf("expected go tag page: %v", err)
	}
	if string(data) != "---\nlayout: tag\ntitle: \"Tag: Go\"\ntag: Go\n---\n" {
		t.Errorf("unexpected tag page content: %q", data)
	}
	if _, err := os.Stat(filepath.Join(source, "tags", "c-tips", "index.md")); err != nil {
		t.Errorf("expected c-tips tag page: %v", err)
	}

	// Tag list
	out, _ = runTagpages("production", source, dbPath, "tags", "list")
	if !strings.Contains(out, "C++ Tips") || !strings.Contains(out, "tags/c-tips") {
		t.Errorf("expected tag with slug in list: %s", out)
	}

	// Tag listing
	out, _ = runTagpages("production", source, dbPath, "tags", "show", "Go", "--raw")
	if !strings.Contains(out, "Intro") || !strings.Contains(out, "Follow-up") {
		t.Errorf("expected both posts in listing: %s", out)
	}

	out, _ = runTagpages("production", source, dbPath, "tags", "show", "c++ tips")
	if !strings.Contains(out, `Did you mean "C++ Tips"?`) {
		t.Errorf("expected slug match hint: %s", out)
	}

	// History
	out, err = runTagpages("production", source, dbPath, "history")
	if err != nil {
		t.Fatalf("history failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2 pages") {
		t.Errorf("expected recorded build in history: %s", out)
	}

	idPrefix := strings.Fields(out)[0]
	out, err = runTagpages("production", source, dbPath, "history", "show", idPrefix)
	if err != nil {
		t.Fatalf("history show failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, filepath.Join(source, "tags", "go", "index.md")) {
		t.Errorf("expected written path in build details: %s", out)
	}

	// Latest build without an ID
	out, err = runTagpages("production", source, dbPath, "history", "show")
	if err != nil {
		t.Fatalf("history show failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, filepath.Join(source, "tags", "c-tips", "index.md")) {
		t.Errorf("expected latest build details: %s", out)
	}
}

func TestHistoryShowUnknownBuild(t *testing.T) {
	source := newSite(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")

	out, err := runTagpages("production", source, dbPath, "history", "show", "ffffffff")
	if err == nil {
		t.Fatalf("expected error for unknown build: %s", out)
	}
	if !strings.Contains(out, "failed to get build") {
		t.Errorf("expected error message: %s", out)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	source := newSite(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")
	page := filepath.Join(source, "tags", "go", "index.md")

	if out, err := runTagpages("production", source, dbPath, "build", "--no-history"); err != nil {
		t.Fatalf("first build failed: %v\n%s", err, out)
	}
	first, _ := os.ReadFile(page)

	if out, err := runTagpages("production", source, dbPath, "build", "--no-history"); err != nil {
		t.Fatalf("second build failed: %v\n%s", err, out)
	}
	second, _ := os.ReadFile(page)

	if string(first) != string(second) {
		t.Errorf("expected identical pages, got %q and %q", first, second)
	}
}

func runTagpages(env, source, dbPath string, args ...string) (string, error) {
	allArgs := append([]string{"--source", source, "--db", dbPath}, args...)
	cmd := exec.Command(tagpagesBin, allArgs...) //nolint:gosec // Running our own test binary is expected in integration tests
	cmd.Env = append(withoutEnv(os.Environ(), "JEKYLL_ENV"), "JEKYLL_ENV="+env)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func withoutEnv(environ []string, key string) []string {
	out := make([]string, 0, len(environ))
	for _, kv := range environ {
		if !strings.HasPrefix(kv, key+"=") {
			out = append(out, kv)
		}
	}
	return out
}
