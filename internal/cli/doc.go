// Parses flags and runs the crossbuild commands.
//
// crossbuild accepts the following global flags:
//
//	-q, --quiet     Only print warnings and errors.
//	-d, --debug     Enable debug output.
//
// Commands:
//
//	build     Build every platform in the release recipe and stage the binaries.
//	plan      Print the resolved platform plan without running anything.
//	verify    Check that the staging tree holds the same binaries for every platform.
//	version   Show version information.
//
// Settings come from CROSSBUILD_* environment variables (see package config);
// flags override them. Log lines go to stderr, progress and summaries to stdout.
package cli
