package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/ochairo/crossbuild/internal/domain/entities"
	"github.com/ochairo/crossbuild/internal/domain/interfaces"
	"github.com/ochairo/crossbuild/internal/domain/services"
)

// Mock implementations for testing
type callLog struct {
	calls []string
}

func (c *callLog) add(format string, args ...interface{}) {
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
}

type mockToolchain struct {
	log    *callLog
	failOn entities.Triple
	err    error
}

func (m *mockToolchain) AddTarget(_ context.Context, triple entities.Triple) error {
	m.log.add("add %s", triple)
	if triple == m.failOn {
		return m.err
	}
	return nil
}

type mockBuilder struct {
	log    *callLog
	failOn entities.Triple
	err    error
}

func (m *mockBuilder) Build(_ context.Context, plan entities.PlatformPlan) error {
	m.log.add("build %s %s", plan.Builder, plan.Triple)
	if plan.Triple == m.failOn {
		return m.err
	}
	return nil
}

type mockFinder struct {
	names []string
	err   error
}

func (m *mockFinder) FindBinaries(dir, _ string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	paths := make([]string, len(m.names))
	for i, name := range m.names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

type mockStager struct {
	log     *callLog
	removed []string
}

func (m *mockStager) EnsureDir(dir string) error {
	m.log.add("mkdir %s", dir)
	return nil
}

func (m *mockStager) Stage(_ context.Context, dir string, binaries []string) ([]entities.StagedArtifact, error) {
	staged := make([]entities.StagedArtifact, len(binaries))
	for i, src := range binaries {
		name := filepath.Base(src)
		m.log.add("stage %s", filepath.Join(dir, name))
		staged[i] = entities.StagedArtifact{Name: name, Source: src, Path: filepath.Join(dir, name)}
	}
	return staged, nil
}

func (m *mockStager) Remove(paths []string) error {
	m.removed = append(m.removed, paths...)
	return nil
}

type mockChecksums struct {
	err error
}

func (m *mockChecksums) WriteChecksums(dir string, _ []entities.StagedArtifact) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return filepath.Join(dir, "SHA256SUMS"), nil
}

type mockSigner struct {
	signed []string
}

func (m *mockSigner) SignFile(path string) (string, error) {
	m.signed = append(m.signed, path)
	return path + ".asc", nil
}

func testRecipe(platforms ...entities.Triple) *entities.ReleaseRecipe {
	if len(platforms) == 0 {
		platforms = []entities.Triple{
			"x86_64-unknown-linux-gnu",
			"armv7-unknown-linux-gnueabihf",
			"aarch64-unknown-linux-gnu",
		}
	}
	return &entities.ReleaseRecipe{
		Name:         "dd-wrt-wol",
		BinaryPrefix: "dd-wrt-",
		NativeArch:   "x86_64",
		Toolchain:    entities.ToolchainConfig{Installer: "rustup", Native: "cargo", Cross: "cross"},
		TargetDir:    "target",
		CacheDir:     ".cache",
		Platforms:    platforms,
	}
}

type fixture struct {
	log       *callLog
	toolchain *mockToolchain
	builder   *mockBuilder
	finder    *mockFinder
	stager    *mockStager
	checksums *mockChecksums
	root      string
}

func newFixture(t *testing.T) *fixture {
	log := &callLog{}
	return &fixture{
		log:       log,
		toolchain: &mockToolchain{log: log},
		builder:   &mockBuilder{log: log},
		finder:    &mockFinder{names: []string{"dd-wrt-api", "dd-wrt-cli"}},
		stager:    &mockStager{log: log},
		checksums: &mockChecksums{},
		root:      t.TempDir(),
	}
}

func (f *fixture) orchestrator(recipe *entities.ReleaseRecipe, signer *mockSigner, config ReleaseOrchestratorConfig) *ReleaseOrchestrator {
	o := NewReleaseOrchestrator(
		recipe,
		services.NewPlanningService(f.root),
		f.toolchain,
		f.builder,
		f.finder,
		f.stager,
		f.checksums,
		nil,
		nil,
		config,
	)
	if signer != nil {
		o.signer = signer
	}
	return o
}

// Test successful release workflow
func TestReleaseOrchestrator_Run_Success(t *testing.T) {
	f := newFixture(t)
	orch := f.orchestrator(testRecipe(), nil, ReleaseOrchestratorConfig{})

	result, err := orch.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected successful release, got error: %v", err)
	}

	cache := filepath.Join(f.root, ".cache")
	want := []string{
		"add x86_64-unknown-linux-gnu",
		"build native x86_64-unknown-linux-gnu",
		"mkdir " + filepath.Join(cache, "linux", "amd64"),
		"stage " + filepath.Join(cache, "linux", "amd64", "dd-wrt-api"),
		"stage " + filepath.Join(cache, "linux", "amd64", "dd-wrt-cli"),
		"add armv7-unknown-linux-gnueabihf",
		"build cross armv7-unknown-linux-gnueabihf",
		"mkdir " + filepath.Join(cache, "linux", "arm", "v7"),
		"stage " + filepath.Join(cache, "linux", "arm", "v7", "dd-wrt-api"),
		"stage " + filepath.Join(cache, "linux", "arm", "v7", "dd-wrt-cli"),
		"add aarch64-unknown-linux-gnu",
		"build cross aarch64-unknown-linux-gnu",
		"mkdir " + filepath.Join(cache, "linux", "arm64"),
		"stage " + filepath.Join(cache, "linux", "arm64", "dd-wrt-api"),
		"stage " + filepath.Join(cache, "linux", "arm64", "dd-wrt-cli"),
	}
	assertCalls(t, f.log.calls, want)

	if !result.Success() {
		t.Errorf("Success() = false, error = %v", result.Error)
	}
	if len(result.Platforms) != 3 {
		t.Fatalf("Platforms = %d, want 3", len(result.Platforms))
	}
	if result.ArtifactCount() != 6 {
		t.Errorf("ArtifactCount() = %d, want 6", result.ArtifactCount())
	}
	if result.Platforms[1].Plan.ContainerPlatform != "linux/arm/v7" {
		t.Errorf("Platforms[1] = %v, want linux/arm/v7", result.Platforms[1].Plan.ContainerPlatform)
	}
	if result.Platforms[0].ChecksumPath != "" {
		t.Errorf("ChecksumPath = %q, want none without checksums", result.Platforms[0].ChecksumPath)
	}
}

// An unmapped architecture fails before any program runs
func TestReleaseOrchestrator_Run_PlanError(t *testing.T) {
	f := newFixture(t)
	orch := f.orchestrator(testRecipe("x86_64-unknown-linux-gnu", "mips-unknown-linux-gnu"), nil, ReleaseOrchestratorConfig{})

	result, err := orch.Run(context.Background())
	if !errors.Is(err, entities.ErrConfiguration) {
		t.Fatalf("Run() error = %v, want ErrConfiguration", err)
	}
	if len(f.log.calls) != 0 {
		t.Errorf("Expected no calls, got %v", f.log.calls)
	}
	if entities.ExitCode(err) != 1 {
		t.Errorf("ExitCode() = %d, want 1", entities.ExitCode(err))
	}
	if result.Success() {
		t.Error("Success() = true for a failed plan")
	}
}

// Test build failure aborts the remaining platforms
func TestReleaseOrchestrator_Run_BuildFailure(t *testing.T) {
	f := newFixture(t)
	f.builder.failOn = "armv7-unknown-linux-gnueabihf"
	f.builder.err = &entities.CommandError{Kind: entities.ErrBuild, Program: "cross", ExitCode: 7}
	orch := f.orchestrator(testRecipe(), nil, ReleaseOrchestratorConfig{})

	result, err := orch.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error for build failure, got nil")
	}
	if !errors.Is(err, entities.ErrBuild) {
		t.Errorf("Run() error = %v, want ErrBuild", err)
	}
	if got := entities.ExitCode(err); got != 7 {
		t.Errorf("ExitCode() = %d, want 7", got)
	}

	last := f.log.calls[len(f.log.calls)-1]
	if last != "build cross armv7-unknown-linux-gnueabihf" {
		t.Errorf("last call = %q, want the failed build", last)
	}
	for _, call := range f.log.calls {
		if call == "add aarch64-unknown-linux-gnu" {
			t.Error("aarch64 should not be attempted after armv7 failed")
		}
	}

	if result.Failed == nil || result.Failed.Triple != "armv7-unknown-linux-gnueabihf" {
		t.Errorf("Failed = %+v, want armv7", result.Failed)
	}
	if len(result.Platforms) != 1 {
		t.Errorf("Platforms = %d, want only x86_64 staged", len(result.Platforms))
	}
	if len(f.stager.removed) != 0 {
		t.Errorf("removed = %v, want nothing without rollback", f.stager.removed)
	}
}

// Test toolchain failure
func TestReleaseOrchestrator_Run_ToolchainFailure(t *testing.T) {
	f := newFixture(t)
	f.toolchain.failOn = "x86_64-unknown-linux-gnu"
	f.toolchain.err = &entities.CommandError{Kind: entities.ErrToolchain, Program: "rustup", ExitCode: 1}
	orch := f.orchestrator(testRecipe(), nil, ReleaseOrchestratorConfig{})

	_, err := orch.Run(context.Background())
	if !errors.Is(err, entities.ErrToolchain) {
		t.Fatalf("Run() error = %v, want ErrToolchain", err)
	}
	assertCalls(t, f.log.calls, []string{"add x86_64-unknown-linux-gnu"})
}

func TestReleaseOrchestrator_Run_Rollback(t *testing.T) {
	f := newFixture(t)
	f.builder.failOn = "aarch64-unknown-linux-gnu"
	f.builder.err = &entities.CommandError{Kind: entities.ErrBuild, Program: "cross", ExitCode: 101}
	orch := f.orchestrator(testRecipe(), nil, ReleaseOrchestratorConfig{
		WriteChecksums:    true,
		RollbackOnFailure: true,
	})

	result, err := orch.Run(context.Background())
	if entities.ExitCode(err) != 101 {
		t.Fatalf("ExitCode() = %d, want 101 (err = %v)", entities.ExitCode(err), err)
	}

	cache := filepath.Join(f.root, ".cache")
	want := []string{
		filepath.Join(cache, "linux", "amd64", "dd-wrt-api"),
		filepath.Join(cache, "linux", "amd64", "dd-wrt-cli"),
		filepath.Join(cache, "linux", "amd64", "SHA256SUMS"),
		filepath.Join(cache, "linux", "arm", "v7", "dd-wrt-api"),
		filepath.Join(cache, "linux", "arm", "v7", "dd-wrt-cli"),
		filepath.Join(cache, "linux", "arm", "v7", "SHA256SUMS"),
	}
	assertCalls(t, f.stager.removed, want)
	assertCalls(t, result.RolledBack, want)
}

func TestReleaseOrchestrator_Run_Signing(t *testing.T) {
	f := newFixture(t)
	signer := &mockSigner{}
	orch := f.orchestrator(testRecipe("aarch64-unknown-linux-gnu"), signer, ReleaseOrchestratorConfig{})

	result, err := orch.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	manifest := filepath.Join(f.root, ".cache", "linux", "arm64", "SHA256SUMS")
	assertCalls(t, signer.signed, []string{manifest})
	if result.Platforms[0].ChecksumPath != manifest {
		t.Errorf("ChecksumPath = %q, want %q", result.Platforms[0].ChecksumPath, manifest)
	}
	if result.Platforms[0].SignaturePath != manifest+".asc" {
		t.Errorf("SignaturePath = %q, want %q", result.Platforms[0].SignaturePath, manifest+".asc")
	}
}

func TestReleaseOrchestrator_Run_ChecksumFailure(t *testing.T) {
	f := newFixture(t)
	f.checksums.err = fmt.Errorf("%w: disk full", entities.ErrStaging)
	orch := f.orchestrator(testRecipe(), nil, ReleaseOrchestratorConfig{WriteChecksums: true})

	_, err := orch.Run(context.Background())
	if !errors.Is(err, entities.ErrStaging) {
		t.Fatalf("Run() error = %v, want ErrStaging", err)
	}
}

func TestReleaseOrchestrator_Run_Only(t *testing.T) {
	f := newFixture(t)
	orch := f.orchestrator(testRecipe(), nil, ReleaseOrchestratorConfig{
		Only: []entities.Triple{"aarch64-unknown-linux-gnu"},
	})

	result, err := orch.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Platforms) != 1 || result.Platforms[0].Plan.Triple != "aarch64-unknown-linux-gnu" {
		t.Errorf("Platforms = %+v, want only aarch64", result.Platforms)
	}
	if f.log.calls[0] != "add aarch64-unknown-linux-gnu" {
		t.Errorf("first call = %q, want aarch64 target", f.log.calls[0])
	}
}

func TestReleaseOrchestrator_Run_Cancelled(t *testing.T) {
	f := newFixture(t)
	orch := f.orchestrator(testRecipe(), nil, ReleaseOrchestratorConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orch.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if len(f.log.calls) != 0 {
		t.Errorf("Expected no calls, got %v", f.log.calls)
	}
}

func TestReleaseOrchestrator_Run_NoBinariesWarns(t *testing.T) {
	f := newFixture(t)
	f.finder.names = nil
	logger := &interfaces.MemoryLogger{}
	orch := NewReleaseOrchestrator(
		testRecipe("x86_64-unknown-linux-gnu"),
		services.NewPlanningService(f.root),
		f.toolchain, f.builder, f.finder, f.stager, f.checksums, nil,
		logger,
		ReleaseOrchestratorConfig{},
	)

	result, err := orch.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.ArtifactCount() != 0 {
		t.Errorf("ArtifactCount() = %d, want 0", result.ArtifactCount())
	}
	if len(logger.Messages("no binaries matched")) != 1 {
		t.Error("Expected a warning when nothing matches the prefix")
	}
}

func TestReleaseOrchestrator_Plan(t *testing.T) {
	f := newFixture(t)
	orch := f.orchestrator(testRecipe(), nil, ReleaseOrchestratorConfig{})

	plans, err := orch.Plan()
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(plans) != 3 {
		t.Fatalf("Plan() = %d plans, want 3", len(plans))
	}
	if plans[0].Builder != entities.BuilderNative || plans[2].Builder != entities.BuilderCross {
		t.Errorf("builders = %s, %s, want native, cross", plans[0].Builder, plans[2].Builder)
	}
	if len(f.log.calls) != 0 {
		t.Errorf("Plan() should not run anything, got %v", f.log.calls)
	}
}

func assertCalls(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d entries %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}
