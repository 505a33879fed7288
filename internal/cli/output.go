package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/ochairo/crossbuild/internal/domain/entities"
)

var (
	bold    = color.New(color.Bold)
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed, color.Bold)
	faint   = color.New(color.Faint)
	warning = color.New(color.FgYellow)
)

func printPlan(w io.Writer, recipe *entities.ReleaseRecipe, plans []entities.PlatformPlan) {
	_, _ = bold.Fprintf(w, "📋 Release plan for %s (%d platforms)\n", recipe.Name, len(plans))
	for i, plan := range plans {
		program, _ := recipe.Toolchain.Program(plan.Builder)
		fmt.Fprintf(w, "  %d. %-32s → %s\n", i+1, plan.Triple, plan.ContainerPlatform)
		_, _ = faint.Fprintf(w, "     builder: %s (%s)\n", plan.Builder, program)
		_, _ = faint.Fprintf(w, "     output:  %s\n", plan.OutputDir)
		_, _ = faint.Fprintf(w, "     staging: %s\n", plan.StagingDir)
	}
}

func printPlatformResult(w io.Writer, p entities.PlatformResult) {
	_, _ = success.Fprintf(w, "✅ %s → %s", p.Plan.Triple, p.Plan.ContainerPlatform)
	fmt.Fprintf(w, " (%d binaries, %s)\n", len(p.Artifacts), p.TotalDuration.Round(time.Second))
	for _, a := range p.Artifacts {
		_, _ = faint.Fprintf(w, "     %s (%d bytes)\n", a.Name, a.Size)
	}
	if p.ChecksumPath != "" {
		_, _ = faint.Fprintf(w, "     checksums: %s\n", p.ChecksumPath)
	}
	if p.SignaturePath != "" {
		_, _ = faint.Fprintf(w, "     signature: %s\n", p.SignaturePath)
	}
}

func printSummary(w io.Writer, result *entities.ReleaseResult) {
	fmt.Fprintln(w)
	if result.Success() {
		_, _ = success.Fprintf(w, "✅ Release %s staged: %d platforms, %d binaries in %s\n",
			result.Recipe, len(result.Platforms), result.ArtifactCount(), result.Duration.Round(time.Second))
		return
	}

	if result.Failed != nil {
		_, _ = failure.Fprintf(w, "❌ Release %s failed on %s\n", result.Recipe, result.Failed.Triple)
	} else {
		_, _ = failure.Fprintf(w, "❌ Release %s failed\n", result.Recipe)
	}
	if len(result.Platforms) > 0 {
		fmt.Fprintf(w, "   %d platforms staged before the failure\n", len(result.Platforms))
	}
	if len(result.RolledBack) > 0 {
		_, _ = warning.Fprintf(w, "   rolled back %d staged files\n", len(result.RolledBack))
	}
}

// PrintError writes err to w
func PrintError(w io.Writer, err error) {
	_, _ = failure.Fprintf(w, "Error: %v\n", err)
}
