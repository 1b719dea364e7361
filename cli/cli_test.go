package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

// setupNotes writes a small notes tree and an empty config file, and
// returns the notes root and the flags that isolate a run from the user's
// own config and database.
func setupNotes(t *testing.T) (string, []string) {
	t.Helper()
	tmp := t.TempDir()
	root := filepath.Join(tmp, "notes")
	files := map[string]string{
		"guides/install.md": "---\ntitle: Install Guide\n---\n# Install Guide\n\n## Linux\n",
		"cooking.md":        "---\ntitle: Pasta\n---\n# Boil water\n",
	}
	for rel, content := range files {
		p := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(cfg, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return root, []string{"--config", cfg, "--db", filepath.Join(tmp, "sift.db"), "--log-level", "error"}
}

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	flagTitleOnly, flagAll, flagLimit, flagDir = false, false, 0, ""
	flagInteractive, flagWrite, flagNoWatch = false, false, false
	flagLogFile = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := execute()
	return out.String(), err
}

func TestQuery_PrintsBestMatch(t *testing.T) {
	root, base := setupNotes(t)
	out, err := run(t, append([]string{"query", "--dir", root, "install"}, base...)...)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	want := filepath.Join(root, "guides", "install.md")
	if strings.TrimSpace(out) != want {
		t.Errorf("query printed %q, want %q", out, want)
	}
}

func TestQuery_NoMatch(t *testing.T) {
	root, base := setupNotes(t)
	_, err := run(t, append([]string{"query", "--dir", root, "zzqqxxvv"}, base...)...)
	if !errors.Is(err, errNoMatch) {
		t.Fatalf("err = %v, want errNoMatch", err)
	}
}

func TestQuery_All(t *testing.T) {
	root, base := setupNotes(t)
	out, err := run(t, append([]string{"query", "--dir", root, "--all", "install"}, base...)...)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasSuffix(lines[0], filepath.Join("guides", "install.md")) {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[0], "\t") {
		t.Errorf("expected score column in %q", lines[0])
	}
}

func TestTOC_ShowsMatchUnderSections(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "guide.md")
	doc := "# Guide\n\n## Install\n\n### Linux\n\n## Configure\n"
	if err := os.WriteFile(file, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	_, base := setupNotes(t)

	out, err := run(t, append([]string{"toc", file, "linux"}, base...)...)
	if err != nil {
		t.Fatalf("toc failed: %v", err)
	}
	plain := ansi.Strip(out)
	for _, want := range []string{"Guide", "Install", "Linux"} {
		if !strings.Contains(plain, want) {
			t.Errorf("output missing %q:\n%s", want, plain)
		}
	}
	if strings.Contains(plain, "Configure") {
		t.Errorf("unrelated section shown:\n%s", plain)
	}

	if _, err := run(t, append([]string{"toc", file, "zzqqxxvv"}, base...)...); !errors.Is(err, errNoMatch) {
		t.Errorf("err = %v, want errNoMatch", err)
	}
}

func TestTag_AddListRemove(t *testing.T) {
	root, base := setupNotes(t)
	note := filepath.Join(root, "guides", "install.md")

	if _, err := run(t, append([]string{"tag", "add", "work", note, "--dir", root}, base...)...); err != nil {
		t.Fatalf("tag add failed: %v", err)
	}
	out, err := run(t, append([]string{"tag", "ls", "work"}, base...)...)
	if err != nil {
		t.Fatalf("tag ls failed: %v", err)
	}
	if strings.TrimSpace(out) != "/notes/guides/install.html" {
		t.Errorf("tag ls = %q", out)
	}

	if _, err := run(t, append([]string{"tag", "rm", "work", "/notes/guides/install.html"}, base...)...); err != nil {
		t.Fatalf("tag rm failed: %v", err)
	}
	out, _ = run(t, append([]string{"tag", "ls", "work"}, base...)...)
	if strings.TrimSpace(out) != "" {
		t.Errorf("tag still listed: %q", out)
	}
}

func TestTag_UserTagIsSearchable(t *testing.T) {
	root, base := setupNotes(t)
	note := filepath.Join(root, "cooking.md")
	if _, err := run(t, append([]string{"tag", "add", "weeknight", note, "--dir", root}, base...)...); err != nil {
		t.Fatalf("tag add failed: %v", err)
	}
	out, err := run(t, append([]string{"query", "--dir", root, "weeknight"}, base...)...)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if strings.TrimSpace(out) != note {
		t.Errorf("query printed %q, want %q", out, note)
	}
}

func TestSettings(t *testing.T) {
	_, base := setupNotes(t)

	if _, err := run(t, append([]string{"settings", "limit", "7"}, base...)...); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	out, err := run(t, append([]string{"settings", "limit"}, base...)...)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if strings.TrimSpace(out) != "7" {
		t.Errorf("limit = %q, want 7", out)
	}

	for _, args := range [][]string{
		{"settings", "limit", "0"},
		{"settings", "limit", "2.5"},
		{"settings", "threshold", "1.5"},
		{"settings", "colour", "1"},
	} {
		if _, err := run(t, append(args, base...)...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestUUID_Write(t *testing.T) {
	_, base := setupNotes(t)
	file := filepath.Join(t.TempDir(), "note.md")
	if err := os.WriteFile(file, []byte("# Note\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, append([]string{"uuid", file}, base...)...)
	if err != nil {
		t.Fatalf("uuid failed: %v", err)
	}
	if !strings.Contains(out, "not written") {
		t.Errorf("dry run output = %q", out)
	}
	content, _ := os.ReadFile(file)
	if strings.Contains(string(content), "uuid:") {
		t.Fatal("dry run modified the file")
	}

	if _, err := run(t, append([]string{"uuid", "-w", file}, base...)...); err != nil {
		t.Fatalf("uuid -w failed: %v", err)
	}
	content, _ = os.ReadFile(file)
	if !strings.HasPrefix(string(content), "---\nuuid: ") || !strings.HasSuffix(string(content), "# Note\n") {
		t.Errorf("unexpected content:\n%s", content)
	}
}

func TestNoteKey(t *testing.T) {
	root, _ := setupNotes(t)

	tests := []struct {
		name string
		path string
		want string
		err  bool
	}{
		{"web path", "/notes/cooking.html", "/notes/cooking.html", false},
		{"file", filepath.Join(root, "cooking.md"), "/notes/cooking.html", false},
		{"dir", filepath.Join(root, "guides"), "/notes/guides", false},
		{"root", root, "/notes", false},
		{"outside", filepath.Dir(root), "", true},
		{"missing", filepath.Join(root, "nope.md"), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := noteKey(root, tt.path)
			if tt.err {
				if err == nil {
					t.Errorf("expected an error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("noteKey: %v", err)
			}
			if got != tt.want {
				t.Errorf("noteKey = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogFile(t *testing.T) {
	root, base := setupNotes(t)
	logPath := filepath.Join(t.TempDir(), "sift.log")
	args := append([]string{"query", "--dir", root, "install"}, base...)
	args = append(args, "--log-level", "info", "--log-file", logPath)

	if _, err := run(t, args...); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if logFile != nil {
		t.Error("log file left open after the command returned")
	}
	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "loaded notes") {
		t.Errorf("log file missing loader entry:\n%s", content)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, base := setupNotes(t)
	args := append([]string{"settings"}, base...)
	args = append(args, "--log-level", "loud")
	if _, err := run(t, args...); err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("err = %v, want invalid log level", err)
	}
}
