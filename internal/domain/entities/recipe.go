package entities

// ReleaseRecipe describes which targets a release builds and where the
// resulting binaries are staged
type ReleaseRecipe struct {
	Name         string
	BinaryPrefix string // Only release outputs starting with this prefix are staged
	NativeArch   string // Architecture prefix the native toolchain can target directly
	Toolchain    ToolchainConfig
	TargetDir    string // Build tool output root, relative to the project dir
	CacheDir     string // Staging root, relative to the project dir
	Platforms    []Triple
}

// ToolchainConfig names the external programs used for a release
type ToolchainConfig struct {
	Installer string // e.g. "rustup"
	Native    string // e.g. "cargo"
	Cross     string // e.g. "cross"
}

// Program returns the build program for the given builder kind
func (t ToolchainConfig) Program(kind BuilderKind) (string, bool) {
	switch kind {
	case BuilderNative:
		return t.Native, t.Native != ""
	case BuilderCross:
		return t.Cross, t.Cross != ""
	default:
		return "", false
	}
}

// HasPlatform reports whether the recipe lists the given triple
func (r *ReleaseRecipe) HasPlatform(triple Triple) bool {
	for _, p := range r.Platforms {
		if p == triple {
			return true
		}
	}
	return false
}
