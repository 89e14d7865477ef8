package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/comic/internal/atomicfile"
	"github.com/aidanlsb/comic/internal/paths"
)

// ComicFileName is the vault-level settings file.
const ComicFileName = "comic.yaml"

// Defaults for comic.yaml.
const (
	DefaultComicTitle      = "My comic"
	DefaultUpdateSchedule  = 14
	DefaultEpisodeFolder   = "publishing/episodes"
	DefaultCharacterFolder = "characters"
	DefaultPlotFolder      = "plot"
)

var (
	// ErrComicConfigCorrupt is returned alongside default settings when
	// comic.yaml exists but cannot be decoded.
	ErrComicConfigCorrupt = errors.New("comic.yaml is corrupted")
	// ErrUnknownKey is returned by Get/Set for unrecognized settings.
	ErrUnknownKey = errors.New("unknown setting")
	// ErrInvalidSetting is returned by Set for values that do not parse.
	ErrInvalidSetting = errors.New("invalid setting value")
)

// ComicConfig holds the per-vault comic settings stored in comic.yaml.
type ComicConfig struct {
	// ComicTitle is the display label used in prompts and headings.
	ComicTitle string `yaml:"comicTitle"`

	// UpdateSchedule is the number of days between episode releases.
	UpdateSchedule int `yaml:"updateSchedule"`

	// EpisodeFolder is where new episode notes are created.
	EpisodeFolder string `yaml:"episodeFolder"`

	// CharacterFolder is where new character notes are created.
	CharacterFolder string `yaml:"characterFolder"`

	// PlotFolder scopes the notes that count as plot events.
	PlotFolder string `yaml:"plotFolder"`

	// Chapters lists chapter names in reading order.
	Chapters []string `yaml:"chapters"`

	// SlugFilenames slugifies note file names instead of keeping titles as typed.
	SlugFilenames bool `yaml:"slugFilenames,omitempty"`
}

// DefaultComicConfig returns settings with every default applied.
func DefaultComicConfig() *ComicConfig {
	return &ComicConfig{
		ComicTitle:      DefaultComicTitle,
		UpdateSchedule:  DefaultUpdateSchedule,
		EpisodeFolder:   DefaultEpisodeFolder,
		CharacterFolder: DefaultCharacterFolder,
		PlotFolder:      DefaultPlotFolder,
		Chapters:        []string{},
	}
}

// ComicConfigPath returns the comic.yaml path for a vault.
func ComicConfigPath(vaultPath string) string {
	return filepath.Join(vaultPath, ComicFileName)
}

// LoadComicConfig loads comic.yaml from the vault root, layering the file
// over the defaults. A missing file yields the defaults. A file that cannot
// be decoded also yields the defaults, together with an error wrapping
// ErrComicConfigCorrupt; the returned config is usable in both cases.
func LoadComicConfig(vaultPath string) (*ComicConfig, error) {
	cfg := DefaultComicConfig()

	data, err := os.ReadFile(ComicConfigPath(vaultPath))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", ComicFileName, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultComicConfig(), fmt.Errorf("%w: %v", ErrComicConfigCorrupt, err)
	}
	cfg.normalize()
	return cfg, nil
}

// SaveComicConfig writes comic.yaml atomically.
func SaveComicConfig(vaultPath string, cfg *ComicConfig) error {
	if cfg == nil {
		cfg = DefaultComicConfig()
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", ComicFileName, err)
	}
	if err := atomicfile.WriteFile(ComicConfigPath(vaultPath), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ComicFileName, err)
	}
	return nil
}

// CreateDefaultComicConfig writes a default comic.yaml unless one exists.
// Returns true if a file was created.
func CreateDefaultComicConfig(vaultPath string) (bool, error) {
	if _, err := os.Stat(ComicConfigPath(vaultPath)); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(vaultPath, 0o755); err != nil {
		return false, fmt.Errorf("failed to create vault directory: %w", err)
	}
	if err := SaveComicConfig(vaultPath, DefaultComicConfig()); err != nil {
		return false, err
	}
	return true, nil
}

// normalize replaces values that would break folder scoping or scheduling.
func (c *ComicConfig) normalize() {
	if c.UpdateSchedule < 0 {
		c.UpdateSchedule = DefaultUpdateSchedule
	}
	c.EpisodeFolder = strings.TrimSuffix(paths.NormalizeFolder(c.EpisodeFolder), "/")
	c.CharacterFolder = strings.TrimSuffix(paths.NormalizeFolder(c.CharacterFolder), "/")
	c.PlotFolder = strings.TrimSuffix(paths.NormalizeFolder(c.PlotFolder), "/")
	if c.Chapters == nil {
		c.Chapters = []string{}
	}
}

// ComicKeys returns the recognized comic.yaml keys in sorted order.
func ComicKeys() []string {
	keys := []string{"comicTitle", "updateSchedule", "episodeFolder", "characterFolder", "plotFolder", "chapters", "slugFilenames"}
	sort.Strings(keys)
	return keys
}

// Get returns a setting rendered as text. Chapters are comma-separated.
func (c *ComicConfig) Get(key string) (string, error) {
	switch key {
	case "comicTitle":
		return c.ComicTitle, nil
	case "updateSchedule":
		return strconv.Itoa(c.UpdateSchedule), nil
	case "episodeFolder":
		return c.EpisodeFolder, nil
	case "characterFolder":
		return c.CharacterFolder, nil
	case "plotFolder":
		return c.PlotFolder, nil
	case "chapters":
		return strings.Join(c.Chapters, ", "), nil
	case "slugFilenames":
		return strconv.FormatBool(c.SlugFilenames), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Set parses and assigns a setting. Chapters take a comma-separated list.
func (c *ComicConfig) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "comicTitle":
		c.ComicTitle = value
	case "updateSchedule":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: updateSchedule must be a non-negative number of days, got %q", ErrInvalidSetting, value)
		}
		c.UpdateSchedule = n
	case "episodeFolder":
		c.EpisodeFolder = value
	case "characterFolder":
		c.CharacterFolder = value
	case "plotFolder":
		c.PlotFolder = value
	case "chapters":
		c.Chapters = []string{}
		for _, ch := range strings.Split(value, ",") {
			if ch = strings.TrimSpace(ch); ch != "" {
				c.Chapters = append(c.Chapters, ch)
			}
		}
	case "slugFilenames":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: slugFilenames must be true or false, got %q", ErrInvalidSetting, value)
		}
		c.SlugFilenames = b
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	c.normalize()
	return nil
}
