package cli

import (
	"context"
	"fmt"

	"github.com/ochairo/crossbuild/internal/version"
)

// VersionCmd represents the 'crossbuild version' command
type VersionCmd struct{}

// Run executes the version command
func (c *VersionCmd) Run(_ context.Context, app *App) error {
	fmt.Fprintln(app.Out, version.String())
	return nil
}
