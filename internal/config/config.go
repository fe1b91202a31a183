package config

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/maxepunk/ALN-Ecosystem/internal/errors"
)

// Config holds pipeline configuration: database identifiers and the output
// paths the downstream consumers (web app, scanner firmware, backend) read.
type Config struct {
	// Document-database identifiers for the three collections.
	ElementsDatabaseID   string `json:"elements_database_id"`
	CharactersDatabaseID string `json:"characters_database_id"`
	TimelineDatabaseID   string `json:"timeline_database_id"`

	// TokensPath is where the generated tokens.json is written.
	TokensPath string `json:"tokens_path"`

	// Asset directories checked when resolving token media.
	ImagesDir string `json:"images_dir"`
	AudioDir  string `json:"audio_dir"`
	VideosDir string `json:"videos_dir"`

	// SDImagesDir is the second display-image output, the path the scanner
	// firmware reads from its SD card image.
	SDImagesDir string `json:"sd_images_dir"`

	// CacheDir is the root of the knowledge-graph cache tree
	// (graph/, current-state/, analysis/, work-session/, index.json).
	CacheDir string `json:"cache_dir"`

	// LogsDir and ArchiveCutoffDays configure log archival.
	LogsDir           string `json:"logs_dir"`
	ArchiveCutoffDays int    `json:"archive_cutoff_days"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration. The database IDs are the
// production collections; paths are relative to the ecosystem root.
func DefaultConfig() *Config {
	return &Config{
		ElementsDatabaseID:   "18c2f33d-583f-8020-91bc-d84c7dd94306",
		CharactersDatabaseID: "18c2f33d-583f-8060-a6ab-de32ff06bca2",
		TimelineDatabaseID:   "1b52f33d-583f-80de-ae5a-d20020c120dd",
		TokensPath:           "ALN-TokenData/tokens.json",
		ImagesDir:            "aln-memory-scanner/assets/images",
		AudioDir:             "aln-memory-scanner/assets/audio",
		VideosDir:            "backend/public/videos",
		SDImagesDir:          "esp32-sd/images",
		CacheDir:             ".aln/token-gen-cache",
		LogsDir:              "logs",
		ArchiveCutoffDays:    14,
	}
}

// Load loads configuration from baseDir/aln.config.json, merged over the
// defaults. A missing file is not an error; the defaults apply.
func Load(baseDir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, "aln.config.json"))
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	overlay := &Config{}
	if err := json.Unmarshal(data, overlay); err != nil {
		return nil, err
	}

	return Merge(DefaultConfig(), overlay), nil
}

// Merge combines base and overlay configs. Overlay values win when non-zero;
// DisabledTools are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := *base

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&result.ElementsDatabaseID, overlay.ElementsDatabaseID)
	override(&result.CharactersDatabaseID, overlay.CharactersDatabaseID)
	override(&result.TimelineDatabaseID, overlay.TimelineDatabaseID)
	override(&result.TokensPath, overlay.TokensPath)
	override(&result.ImagesDir, overlay.ImagesDir)
	override(&result.AudioDir, overlay.AudioDir)
	override(&result.VideosDir, overlay.VideosDir)
	override(&result.SDImagesDir, overlay.SDImagesDir)
	override(&result.CacheDir, overlay.CacheDir)
	override(&result.LogsDir, overlay.LogsDir)

	if overlay.ArchiveCutoffDays != 0 {
		result.ArchiveCutoffDays = overlay.ArchiveCutoffDays
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return &result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// LoadToken resolves the document-database bearer token: the NOTION_TOKEN
// environment variable wins; otherwise a .env dotfile under baseDir is
// consulted. Absence is a fatal setup error carrying remediation steps.
func LoadToken(baseDir string) (string, error) {
	if token := os.Getenv("NOTION_TOKEN"); token != "" {
		return token, nil
	}

	envPath := filepath.Join(baseDir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		// Load does not overwrite variables already set in the environment.
		if err := godotenv.Load(envPath); err != nil {
			return "", errors.NewInternal(err)
		}
		if token := os.Getenv("NOTION_TOKEN"); token != "" {
			return token, nil
		}
	}

	return "", errors.NewMissingCredential()
}
