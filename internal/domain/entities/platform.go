package entities

import (
	"path/filepath"
	"strings"
)

// Triple identifies a compilation target (e.g. "x86_64-unknown-linux-gnu")
type Triple string

// Arch returns the architecture prefix, the text before the first hyphen
func (t Triple) Arch() string {
	arch, _, _ := strings.Cut(string(t), "-")
	return arch
}

func (t Triple) String() string {
	return string(t)
}

// ContainerPlatform identifies a container image platform (e.g. "linux/arm/v7")
type ContainerPlatform string

func (p ContainerPlatform) String() string {
	return string(p)
}

// Path returns the platform as a relative filesystem path
func (p ContainerPlatform) Path() string {
	return filepath.FromSlash(string(p))
}

// BuilderKind selects which build program compiles a target
type BuilderKind string

const (
	// BuilderNative builds with the host toolchain
	BuilderNative BuilderKind = "native"
	// BuilderCross builds with the cross-compilation wrapper
	BuilderCross BuilderKind = "cross"
)

// PlatformPlan is the resolved work for a single target triple
type PlatformPlan struct {
	Triple            Triple
	ContainerPlatform ContainerPlatform
	Builder           BuilderKind
	TargetDir         string // Build tool output root, exported as CARGO_TARGET_DIR
	OutputDir         string // <target dir>/<triple>/release
	StagingDir        string // <cache dir>/<container platform>
}
