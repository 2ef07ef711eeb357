package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildgate/internal/types"
)

func samplePlan() types.BuildPlan {
	return types.BuildPlan{
		BuildMode:       types.BuildModeBundled,
		EnabledFeatures: []string{"offscreenRendering"},
		RequiredShims:   []string{"execfile-compat"},
		ResolvedVersions: map[string]types.ResolvedComponent{
			"nativeLib": {Version: "9.5.2", Source: types.BuildModeBundled},
			"python":    {Version: "3.11.4", Source: types.BuildModeSystem},
		},
		Platform: types.PlatformProfile{
			OS: "linux", ModuleExt: ".so", SharedLibExt: ".so", LibSubdir: ".libs",
		},
		Diagnostics: []string{"component nativeLib: 9.5.2 (bundled, not detected)"},
	}
}

func TestWritePlanAndReadBack(t *testing.T) {
	dir := t.TempDir()
	plan := samplePlan()

	require.NoError(t, NewPlanFileAdapter().WritePlan(dir, plan))
	loaded, err := NewOutputReaderAdapter().ReadPlan(filepath.Join(dir, "build.plan"))
	require.NoError(t, err)

	if diff := cmp.Diff(plan, loaded); diff != "" {
		t.Fatalf("plan round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFeaturesLock(t *testing.T) {
	dir := t.TempDir()
	gates := []types.FeatureGate{
		{ID: "streamTracer", Default: true},
		{ID: "offscreenRendering", Default: false},
	}

	require.NoError(t, NewPlanFileAdapter().WriteFeaturesLock(dir, gates, samplePlan()))
	data, err := os.ReadFile(filepath.Join(dir, "features.lock"))
	require.NoError(t, err)
	assert.Equal(t, "offscreenRendering=on\nstreamTracer=off\n", string(data))
}

func TestReadFeaturesLock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "features.lock")
	require.NoError(t, os.WriteFile(path, []byte("a=on\nb=off\n"), 0o644))

	entries, err := NewOutputReaderAdapter().ReadFeaturesLock(path)
	require.NoError(t, err)
	want := []types.FeatureLockEntry{
		{ID: "a", Enabled: true},
		{ID: "b", Enabled: false},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", diff)
	}
}

func TestReadFeaturesLockMalformed(t *testing.T) {
	path := writeTempFile(t, "features.lock", "=on\n")
	_, err := NewOutputReaderAdapter().ReadFeaturesLock(path)
	require.Error(t, err)
}

func TestWriteReportAndReadBack(t *testing.T) {
	dir := t.TempDir()
	records := []types.RuleRecord{
		{RuleIndex: 0, AppliesTo: "nativeLib", Effect: types.EffectDisableFeature, Detail: "streamTracer"},
	}

	require.NoError(t, NewPlanFileAdapter().WriteReport(dir, records))
	loaded, err := NewOutputReaderAdapter().ReadReport(filepath.Join(dir, "resolution.report"))
	require.NoError(t, err)

	if diff := cmp.Diff(records, loaded); diff != "" {
		t.Fatalf("report round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWritePlanEmptyDir(t *testing.T) {
	err := NewPlanFileAdapter().WritePlan("  ", samplePlan())
	require.Error(t, err)
}

func TestWritePlanDeterministic(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	plan := samplePlan()

	require.NoError(t, NewPlanFileAdapter().WritePlan(dirA, plan))
	require.NoError(t, NewPlanFileAdapter().WritePlan(dirB, plan))

	a, err := os.ReadFile(filepath.Join(dirA, "build.plan"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dirB, "build.plan"))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
