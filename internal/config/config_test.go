package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maxepunk/ALN-Ecosystem/internal/errors"
)

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	def := DefaultConfig()
	if cfg.ElementsDatabaseID != def.ElementsDatabaseID {
		t.Errorf("ElementsDatabaseID = %q, want default", cfg.ElementsDatabaseID)
	}
	if cfg.ArchiveCutoffDays != 14 {
		t.Errorf("ArchiveCutoffDays = %d, want 14", cfg.ArchiveCutoffDays)
	}
}

func TestLoad_Overlay(t *testing.T) {
	dir := t.TempDir()
	content := `{"tokens_path": "out/tokens.json", "archive_cutoff_days": 7}`
	if err := os.WriteFile(filepath.Join(dir, "aln.config.json"), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TokensPath != "out/tokens.json" {
		t.Errorf("TokensPath = %q, want overlay value", cfg.TokensPath)
	}
	if cfg.ArchiveCutoffDays != 7 {
		t.Errorf("ArchiveCutoffDays = %d, want 7", cfg.ArchiveCutoffDays)
	}
	// Untouched fields keep defaults
	if cfg.ImagesDir != DefaultConfig().ImagesDir {
		t.Errorf("ImagesDir = %q, want default", cfg.ImagesDir)
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "aln.config.json"), []byte("{nope"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Load should fail on malformed JSON")
	}
}

func TestMerge_DisabledTools(t *testing.T) {
	base := &Config{DisabledTools: []string{"aln_push", "aln_sync"}}
	overlay := &Config{DisabledTools: []string{"aln_sync", " aln_gaps "}}

	merged := Merge(base, overlay)

	want := []string{"aln_push", "aln_sync", "aln_gaps"}
	if len(merged.DisabledTools) != len(want) {
		t.Fatalf("DisabledTools = %v, want %v", merged.DisabledTools, want)
	}
	for i, s := range want {
		if merged.DisabledTools[i] != s {
			t.Errorf("DisabledTools[%d] = %q, want %q", i, merged.DisabledTools[i], s)
		}
	}
}

func TestLoadToken_FromEnv(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "secret_abc")

	token, err := LoadToken(t.TempDir())
	if err != nil {
		t.Fatalf("LoadToken failed: %v", err)
	}
	if token != "secret_abc" {
		t.Errorf("token = %q, want secret_abc", token)
	}
}

func TestLoadToken_FromDotfile(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "")
	os.Unsetenv("NOTION_TOKEN")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("NOTION_TOKEN=secret_dotfile\n"), 0600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	token, err := LoadToken(dir)
	if err != nil {
		t.Fatalf("LoadToken failed: %v", err)
	}
	if token != "secret_dotfile" {
		t.Errorf("token = %q, want secret_dotfile", token)
	}
}

func TestLoadToken_Missing(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "")
	os.Unsetenv("NOTION_TOKEN")

	_, err := LoadToken(t.TempDir())
	if !errors.Is(err, errors.ErrMissingCredential) {
		t.Fatalf("err = %v, want MISSING_CREDENTIAL", err)
	}
}
