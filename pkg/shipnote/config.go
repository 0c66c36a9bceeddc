package shipnote

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Source modes for history collection.
const (
	SourceCommits = "commits" // one entry per commit in the range
	SourcePRs     = "prs"     // one entry per merged pull request
)

// Config is the immutable run configuration: repository identity,
// source mode and rendering filters. The credential travels alongside
// but never leaves the process.
type Config struct {
	// Repo is the "owner/name" slug of the repository being released.
	Repo string `yaml:"repo" validate:"required,contains=/"`

	// Source selects the history strategy. A run uses exactly one.
	Source string `yaml:"source" validate:"oneof=commits prs"`

	// Draft and Prerelease forward to the created release.
	Draft      bool `yaml:"draft"`
	Prerelease bool `yaml:"prerelease"`

	// Exclude holds doublestar globs; commit-mode records touching only
	// excluded paths stay out of the notes.
	Exclude []string `yaml:"exclude"`

	// Retries enables the backoff wrapper around publishing. Zero keeps
	// the single-attempt baseline.
	Retries uint64 `yaml:"retries"`

	// WorkDir is the local checkout the git client operates in.
	WorkDir string `yaml:"-"`

	// Token is the opaque bearer credential for the hosting API.
	Token string `yaml:"-"`
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		Source:  SourceCommits,
		WorkDir: ".",
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks the configuration before the pipeline starts.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, _, err := c.ownerName(); err != nil {
		return err
	}
	return nil
}

func (c Config) ownerName() (string, string, error) {
	owner, name, found := strings.Cut(c.Repo, "/")
	if !found || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("repo must be \"owner/name\", got %q", c.Repo)
	}
	return owner, name, nil
}
