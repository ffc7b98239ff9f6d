// Package config holds the settings of a statistics run and loads them from
// a YAML profile.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/revelaction/vocstat/vocab"

	"gopkg.in/yaml.v3"
)

// TrainName is the dataset name reserved for the training corpora.
const TrainName = "train"

// ConfigurationError reports settings that cannot work together. It is
// raised before any corpus is read.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Config describes one run. Test corpora and names are comma separated lists
// in the CLI; here they are already split.
type Config struct {
	Src string `yaml:"src"`
	Trg string `yaml:"trg"`

	SrcTests []string `yaml:"src_test"`
	TrgTests []string `yaml:"trg_test"`
	Names    []string `yaml:"names"`

	SharedVocab bool `yaml:"shared_vocab"`
	SrcLimit    int  `yaml:"src_limit"`
	TrgLimit    int  `yaml:"trg_limit"`

	// SrcVocab and TrgVocab are reference vocabulary files.
	SrcVocab string `yaml:"src_vocab"`
	TrgVocab string `yaml:"trg_vocab"`

	Subword bool `yaml:"subword"`
	Table   bool `yaml:"table"`
	JSON    bool `yaml:"json"`

	// Unks and UnkSentences are side file prefixes; .src and .tgt are
	// appended.
	Unks         string `yaml:"unks"`
	UnkSentences string `yaml:"unk_sentences"`
}

// Default returns a configuration with unlimited vocabularies.
func Default() Config {
	return Config{
		SrcLimit: vocab.Unlimited,
		TrgLimit: vocab.Unlimited,
	}
}

// Load reads a YAML profile. Keys absent from the file keep their default
// value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("IO error: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("YAML decoding error in %s: %w", path, err)
	}

	return cfg, nil
}

// SplitList splits a comma separated flag value. An empty value yields no
// elements.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// Paired reports whether the test lists can be reported as named
// source/target datasets.
func (c Config) Paired() bool {
	return len(c.SrcTests) == len(c.TrgTests) && len(c.TestNames()) == len(c.SrcTests)
}

// TestNames returns the configured names, or test1..testN when no names are
// given and both test lists have the same length.
func (c Config) TestNames() []string {
	if len(c.Names) > 0 || len(c.SrcTests) != len(c.TrgTests) {
		return c.Names
	}

	names := make([]string, len(c.SrcTests))
	for i := range names {
		names[i] = fmt.Sprintf("test%d", i+1)
	}
	return names
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Src == "" {
		return &ConfigurationError{Field: "src", Reason: "source training corpus is required"}
	}

	if c.Trg == "" {
		return &ConfigurationError{Field: "trg", Reason: "target training corpus is required"}
	}

	if err := validateLimit("src-limit", c.SrcLimit); err != nil {
		return err
	}

	if err := validateLimit("trg-limit", c.TrgLimit); err != nil {
		return err
	}

	if c.SharedVocab && c.SrcLimit != c.TrgLimit {
		return &ConfigurationError{
			Field:  "shared-vocab",
			Reason: fmt.Sprintf("source and target limits must be equal, got %d and %d", c.SrcLimit, c.TrgLimit),
		}
	}

	if len(c.Names) > 0 && (len(c.Names) != len(c.SrcTests) || len(c.Names) != len(c.TrgTests)) {
		return &ConfigurationError{
			Field:  "names",
			Reason: fmt.Sprintf("%d names for %d source and %d target test corpora", len(c.Names), len(c.SrcTests), len(c.TrgTests)),
		}
	}

	seen := map[string]bool{}
	for _, name := range c.Names {
		if name == TrainName {
			return &ConfigurationError{Field: "names", Reason: fmt.Sprintf("%q is reserved for the training corpora", TrainName)}
		}
		if seen[name] {
			return &ConfigurationError{Field: "names", Reason: fmt.Sprintf("duplicate test dataset name %q", name)}
		}
		seen[name] = true
	}

	if (c.Unks != "" || c.UnkSentences != "") && c.SrcVocab == "" && c.TrgVocab == "" {
		return &ConfigurationError{Field: "unks", Reason: "unknown word outputs need a reference vocabulary"}
	}

	if c.Table && c.JSON {
		return &ConfigurationError{Field: "json", Reason: "choose either table or json output"}
	}

	return nil
}

func validateLimit(field string, limit int) error {
	if limit == vocab.Unlimited || limit > 0 {
		return nil
	}
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf("must be %d (unlimited) or positive, got %d", vocab.Unlimited, limit)}
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
