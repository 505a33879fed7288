package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/ochairo/crossbuild/internal/config"
	"github.com/ochairo/crossbuild/internal/domain/entities"
	"github.com/ochairo/crossbuild/internal/external-adapters/logging"
	"github.com/ochairo/crossbuild/internal/version"
)

// Globals are flags accepted by every command
type Globals struct {
	Quiet bool `short:"q" help:"Only print warnings and errors."`
	Debug bool `short:"d" help:"Enable debug output."`
}

// RootCmd is the crossbuild command tree
type RootCmd struct {
	Globals `embed:""`

	Build   BuildCmd   `cmd:"" help:"Build every platform and stage the binaries."`
	Plan    PlanCmd    `cmd:"" help:"Print the resolved platform plan."`
	Verify  VerifyCmd  `cmd:"" help:"Check the staging tree is complete."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// App carries what every command needs once flags are parsed
type App struct {
	Config config.Config
	Logger *logging.Logger
	Out    io.Writer
	Err    io.Writer
	Quiet  bool
}

// Execute parses args and runs the selected command
func Execute(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var root RootCmd
	parser, err := kong.New(&root,
		kong.Name(version.Name),
		kong.Description("Cross-compiles release binaries and stages them per container platform."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err != nil {
		return err
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return fmt.Errorf("%w: %w", entities.ErrConfiguration, err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	logger, err := newLogger(stderr, cfg.LogLevel, root.Globals)
	if err != nil {
		return err
	}

	app := &App{
		Config: cfg,
		Logger: logger,
		Out:    stdout,
		Err:    stderr,
		Quiet:  root.Quiet,
	}
	return kongCtx.Run(app)
}

// newLogger builds the stderr logger. --debug and --quiet override the
// configured level.
func newLogger(out io.Writer, levelName string, globals Globals) (*logging.Logger, error) {
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrConfiguration, err)
	}

	switch {
	case globals.Debug:
		level = logrus.DebugLevel
	case globals.Quiet:
		level = logrus.WarnLevel
	}

	return logging.New(out, level), nil
}
