package yaml

import (
	"testing"
)

// FuzzRecipeParser tests the YAML parser against random/malformed inputs
// to detect crashes, panics, or unexpected behavior.
//
// Run with: go test -fuzz=FuzzRecipeParser -fuzztime=30s
func FuzzRecipeParser(f *testing.F) {
	f.Add(builtinRecipe)

	f.Add([]byte(`name: minimal
binary_prefix: app-
platforms:
  - aarch64-unknown-linux-gnu
`))

	f.Add([]byte(`name: custom
binary_prefix: tool-
native_arch: aarch64
toolchain:
  installer: rustup
  native: cargo
  cross: cross
target_dir: /tmp/target
cache_dir: staging
platforms:
  - aarch64-unknown-linux-gnu
  - x86_64-unknown-linux-gnu
`))

	// Seed with edge cases
	f.Add([]byte(``))                                             // Empty input
	f.Add([]byte(`name: ""` + "\n"))                              // Empty name
	f.Add([]byte(`{}`))                                           // Empty JSON-style YAML
	f.Add([]byte(`[]`))                                           // Array instead of object
	f.Add([]byte("name: test\n  bad"))                            // Invalid indentation
	f.Add([]byte("name: a\nbinary_prefix: '*'\nplatforms: [x]"))  // Glob prefix
	f.Add([]byte("name: a\nbinary_prefix: b\nplatforms: [x, x]")) // Duplicate platforms

	parser := NewRecipeParser()

	f.Fuzz(func(t *testing.T, data []byte) {
		recipe, err := parser.Parse(data)
		if err != nil {
			return
		}
		if recipe.Name == "" || recipe.BinaryPrefix == "" || len(recipe.Platforms) == 0 {
			t.Fatalf("Parse() accepted an incomplete recipe: %+v", recipe)
		}
	})
}
