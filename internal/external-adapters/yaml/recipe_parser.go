// Package yaml provides YAML-based release recipe parsing and loading.
package yaml

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ochairo/crossbuild/internal/domain/entities"
)

// Defaults applied to fields a recipe leaves empty
const (
	DefaultNativeArch = "x86_64"
	DefaultInstaller  = "rustup"
	DefaultNative     = "cargo"
	DefaultCross      = "cross"
	DefaultTargetDir  = "target"
	DefaultCacheDir   = ".cache"
)

// yamlRecipe represents the raw YAML structure
type yamlRecipe struct {
	Name         string        `yaml:"name"`
	BinaryPrefix string        `yaml:"binary_prefix"`
	NativeArch   string        `yaml:"native_arch"`
	Toolchain    yamlToolchain `yaml:"toolchain"`
	TargetDir    string        `yaml:"target_dir"`
	CacheDir     string        `yaml:"cache_dir"`
	Platforms    []string      `yaml:"platforms"`
}

type yamlToolchain struct {
	Installer string `yaml:"installer"`
	Native    string `yaml:"native"`
	Cross     string `yaml:"cross"`
}

// RecipeParser parses YAML release recipes
type RecipeParser struct{}

// NewRecipeParser creates a new YAML parser
func NewRecipeParser() *RecipeParser {
	return &RecipeParser{}
}

// ParseFile parses a YAML recipe file into a ReleaseRecipe entity
func (p *RecipeParser) ParseFile(filePath string) (*entities.ReleaseRecipe, error) {
	//nolint:gosec // G304: filePath is the recipe chosen by the operator
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read file %s: %w", entities.ErrConfiguration, filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a ReleaseRecipe entity
func (p *RecipeParser) Parse(data []byte) (*entities.ReleaseRecipe, error) {
	var yamlDef yamlRecipe
	if err := yaml.Unmarshal(data, &yamlDef); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %w", entities.ErrConfiguration, err)
	}

	if err := validate(&yamlDef); err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrConfiguration, err)
	}

	platforms := make([]entities.Triple, len(yamlDef.Platforms))
	for i, triple := range yamlDef.Platforms {
		platforms[i] = entities.Triple(triple)
	}

	return &entities.ReleaseRecipe{
		Name:         yamlDef.Name,
		BinaryPrefix: yamlDef.BinaryPrefix,
		NativeArch:   orDefault(yamlDef.NativeArch, DefaultNativeArch),
		Toolchain: entities.ToolchainConfig{
			Installer: orDefault(yamlDef.Toolchain.Installer, DefaultInstaller),
			Native:    orDefault(yamlDef.Toolchain.Native, DefaultNative),
			Cross:     orDefault(yamlDef.Toolchain.Cross, DefaultCross),
		},
		TargetDir: orDefault(yamlDef.TargetDir, DefaultTargetDir),
		CacheDir:  orDefault(yamlDef.CacheDir, DefaultCacheDir),
		Platforms: platforms,
	}, nil
}

func validate(def *yamlRecipe) error {
	if def.Name == "" {
		return fmt.Errorf("recipe must have a name")
	}
	if def.BinaryPrefix == "" {
		return fmt.Errorf("recipe %s must set binary_prefix", def.Name)
	}
	// The prefix becomes a glob; it has to match literally
	if strings.ContainsAny(def.BinaryPrefix, `*?[]{}\/`) {
		return fmt.Errorf("binary_prefix %q must not contain glob or path characters", def.BinaryPrefix)
	}
	if len(def.Platforms) == 0 {
		return fmt.Errorf("recipe %s lists no platforms", def.Name)
	}

	seen := make(map[string]bool, len(def.Platforms))
	for _, p := range def.Platforms {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("recipe %s has an empty platform entry", def.Name)
		}
		if seen[p] {
			return fmt.Errorf("platform %s is listed twice", p)
		}
		seen[p] = true
	}

	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
