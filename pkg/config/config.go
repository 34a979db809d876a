/*
Package config manages the TOML configuration for the glidetype engine.

Every tunable the engine consults lives here as an explicit field: scoring
weights, confidence thresholds, timing cutoffs and swipe geometry weights.
Nothing reads ad-hoc key/value blobs at runtime.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/glidetype/glidetype/internal/utils"
)

// Config holds the entire engine configuration.
type Config struct {
	Suggest     SuggestConfig     `toml:"suggest"`
	Swipe       SwipeConfig       `toml:"swipe"`
	Autocorrect AutocorrectConfig `toml:"autocorrect"`
	Timing      TimingConfig      `toml:"timing"`
	Dict        DictConfig        `toml:"dict"`
	Server      ServerConfig      `toml:"server"`
}

// SuggestConfig controls typed-prefix candidate generation and context ranking.
type SuggestConfig struct {
	MaxResults    int     `toml:"max_results"`
	FuzzyTarget   int     `toml:"fuzzy_target"`   // add fuzzy matches when prefix hits fall below this
	EditPenalty   float64 `toml:"edit_penalty"`   // score deducted per edit
	UserBoost     float64 `toml:"user_boost"`     // added for learned words
	UnigramWeight float64 `toml:"unigram_weight"` // raw frequency weight
	BigramWeight  float64 `toml:"bigram_weight"`
	TrigramWeight float64 `toml:"trigram_weight"`
	MaxPrefixLen  int     `toml:"max_prefix_len"`
}

// SwipeConfig controls gesture decoding.
type SwipeConfig struct {
	MaxResults     int     `toml:"max_results"`
	MaxSkeletonLen int     `toml:"max_skeleton_len"`
	EditPenalty    float64 `toml:"edit_penalty"`    // per edit between word letters and skeleton
	MaxEdits       int     `toml:"max_edits"`       // skeleton edit budget for non-subsequence words
	SubseqBonus    float64 `toml:"subseq_bonus"`    // word letters are an in-order subsequence of skeleton
	ShapeWeight    float64 `toml:"shape_weight"`    // reward for path length matching the word's key travel
	LengthPenalty  float64 `toml:"length_penalty"`  // per letter of word/skeleton length mismatch
	ScoreFloor     float64 `toml:"score_floor"`     // below this the decoder emits the raw skeleton word
	MinWordLength  int     `toml:"min_word_length"` // shortest dictionary word considered for a gesture
}

// AutocorrectConfig controls the confidence gate.
type AutocorrectConfig struct {
	MinWordLength  int     `toml:"min_word_length"` // never autocorrect shorter words
	RequiredBase   float64 `toml:"required_base"`   // required confidence at MinWordLength
	RequiredStep   float64 `toml:"required_step"`   // relaxation per extra character
	RequiredFloor  float64 `toml:"required_floor"`  // never relax below this
	MaxCorrectEdit int     `toml:"max_correct_edit"`
}

// TimingConfig controls the fast-typing detector.
type TimingConfig struct {
	WindowSize       int   `toml:"window_size"`        // keystrokes in the rolling window
	FastKeyMillis    int64 `toml:"fast_key_millis"`    // mean inter-key interval below this is fast
	FastSpaceMillis  int64 `toml:"fast_space_millis"`  // separator following previous one this fast is rushed
	StaleResetMillis int64 `toml:"stale_reset_millis"` // pause after which the window self-resets
}

// DictConfig holds dictionary loading options.
type DictConfig struct {
	MaxWords         int `toml:"max_words"`
	MinFreqThreshold int `toml:"min_frequency_threshold"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxLimit     int    `toml:"max_limit"`
	DefaultLimit int    `toml:"default_limit"`
	DefaultLang  string `toml:"default_lang"`
}

// DefaultConfig returns a Config with defaults validated against the engine
// test scenarios. The numeric thresholds are tuning points, not contracts.
func DefaultConfig() *Config {
	return &Config{
		Suggest: SuggestConfig{
			MaxResults:    24,
			FuzzyTarget:   5,
			EditPenalty:   3.0,
			UserBoost:     2.0,
			UnigramWeight: 1.0,
			BigramWeight:  2.5,
			TrigramWeight: 4.0,
			MaxPrefixLen:  48,
		},
		Swipe: SwipeConfig{
			MaxResults:     8,
			MaxSkeletonLen: 64,
			EditPenalty:    2.0,
			MaxEdits:       3,
			SubseqBonus:    4.0,
			ShapeWeight:    5.0,
			LengthPenalty:  0.8,
			ScoreFloor:     2.0,
			MinWordLength:  2,
		},
		Autocorrect: AutocorrectConfig{
			MinWordLength:  3,
			RequiredBase:   3.0,
			RequiredStep:   0.5,
			RequiredFloor:  1.0,
			MaxCorrectEdit: 1,
		},
		Timing: TimingConfig{
			WindowSize:       5,
			FastKeyMillis:    180,
			FastSpaceMillis:  350,
			StaleResetMillis: 3000,
		},
		Dict: DictConfig{
			MaxWords:         50000,
			MinFreqThreshold: 0,
		},
		Server: ServerConfig{
			MaxLimit:     64,
			DefaultLimit: 10,
			DefaultLang:  "en",
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// ~/.config/glidetype, then the executable dir, then builtin defaults.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primary := filepath.Join(homeDir, ".config", "glidetype")
	if err := utils.EnsureDir(primary); err == nil {
		return primary, nil
	}
	return utils.GetExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadWithPriority loads config with priority: custom path from a --config
// flag, then the default path, then builtin defaults. Never fails hard; a
// broken file logs a warning and falls back.
func LoadWithPriority(customPath string) (*Config, string) {
	if customPath != "" {
		if cfg, err := Load(customPath); err == nil {
			log.Debugf("Loaded config from custom path: %s", customPath)
			return cfg, customPath
		} else {
			log.Warnf("Failed to load config from %s: %v. Trying default path...", customPath, err)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using builtin defaults...", err)
		return DefaultConfig(), ""
	}
	cfg, err := Init(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	return cfg, defaultPath
}

// Init loads config from file or creates a default one if missing.
func Init(path string) (*Config, error) {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		log.Warnf("Failed to create config directory: %v. Using builtin defaults...", err)
		return DefaultConfig(), nil
	}
	if !utils.FileExists(path) {
		cfg := DefaultConfig()
		if err := Save(cfg, path); err != nil {
			log.Warnf("Failed to create default config at %s: %v", path, err)
		} else {
			log.Debugf("Created default config file at: %s", path)
		}
		return cfg, nil
	}
	return Load(path)
}

// Load reads a TOML config file. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config into a TOML file.
func Save(cfg *Config, path string) error {
	return utils.SaveTOMLFile(cfg, path)
}
