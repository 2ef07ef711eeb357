package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildgate/internal/adapters"
	"buildgate/internal/core"
	"buildgate/internal/shims"
	"buildgate/internal/types"
	"buildgate/tests/testutil"
)

// TestResolveFlow exercises the full resolution pipeline against the
// sample fixtures:
//
//	load manifest -> validate -> load probe -> resolve -> write outputs -> read back
func TestResolveFlow(t *testing.T) {
	root := testutil.RepoRoot(t)

	manifests := adapters.NewManifestFileAdapter()
	manifest, err := manifests.LoadManifest(filepath.Join(root, "fixtures", "manifest-sample.yaml"))
	require.NoError(t, err)

	compiler := core.NewManifestCompiler()
	require.NoError(t, compiler.ValidateManifest(t.Context(), manifest))

	probes := adapters.NewProbeFileAdapter()
	probe, err := probes.LoadProbe(filepath.Join(root, "fixtures", "probe-sample.yaml"))
	require.NoError(t, err)

	resolver := core.NewPlanResolver()
	output, err := resolver.Resolve(t.Context(), manifest, probe, probe.OS)
	require.NoError(t, err)

	// Both probed versions sit inside their windows, so everything
	// stays on the system install.
	assert.Equal(t, types.BuildModeSystem, output.Plan.BuildMode)
	assert.Equal(t, types.ResolvedComponent{Version: "9.4.1", Source: types.BuildModeSystem},
		output.Plan.ResolvedVersions["nativeLib"])
	assert.Equal(t, types.ResolvedComponent{Version: "3.11.4", Source: types.BuildModeSystem},
		output.Plan.ResolvedVersions["python"])
	assert.Equal(t, []string{"offscreenRendering"}, output.Plan.EnabledFeatures)
	assert.Equal(t, []string{"execfile-compat", "print-function"}, output.Plan.RequiredShims)
	assert.Len(t, output.Records, 4)

	outDir := t.TempDir()
	plans := adapters.NewPlanFileAdapter()
	require.NoError(t, plans.WritePlan(outDir, output.Plan))
	require.NoError(t, plans.WriteFeaturesLock(outDir, manifest.Features, output.Plan))
	require.NoError(t, plans.WriteReport(outDir, output.Records))

	lock, err := os.ReadFile(filepath.Join(outDir, "features.lock"))
	require.NoError(t, err)
	assert.Equal(t, "offscreenRendering=on\nstreamTracer=off\n", string(lock))

	reader := adapters.NewOutputReaderAdapter()
	rereadPlan, err := reader.ReadPlan(filepath.Join(outDir, "build.plan"))
	require.NoError(t, err)
	assert.Equal(t, output.Plan, rereadPlan)

	records, err := reader.ReadReport(filepath.Join(outDir, "resolution.report"))
	require.NoError(t, err)
	assert.Equal(t, output.Records, records)
}

// TestPatchFlow runs the shim pass over the fixture artifact with a
// plan resolved from the sample fixtures.
func TestPatchFlow(t *testing.T) {
	root := testutil.RepoRoot(t)

	manifests := adapters.NewManifestFileAdapter()
	manifest, err := manifests.LoadManifest(filepath.Join(root, "fixtures", "manifest-sample.yaml"))
	require.NoError(t, err)

	probes := adapters.NewProbeFileAdapter()
	probe, err := probes.LoadProbe(filepath.Join(root, "fixtures", "probe-sample.yaml"))
	require.NoError(t, err)

	resolver := core.NewPlanResolver()
	output, err := resolver.Resolve(t.Context(), manifest, probe, probe.OS)
	require.NoError(t, err)

	source, err := os.ReadFile(filepath.Join(root, "fixtures", "artifacts", "startup.py"))
	require.NoError(t, err)
	artifactPath := filepath.Join(t.TempDir(), "startup.py")
	require.NoError(t, os.WriteFile(artifactPath, source, 0o644))

	registry, err := shims.NewRegistry(manifest.Shims)
	require.NoError(t, err)
	applicable, err := registry.Applicable(output.Plan, "")
	require.NoError(t, err)
	require.Len(t, applicable, 2)

	artifacts := adapters.NewArtifactFileAdapter()
	artifact, err := artifacts.ReadArtifact(artifactPath)
	require.NoError(t, err)
	for _, entry := range applicable {
		artifact, err = registry.Apply(entry.Spec.ID, artifact)
		require.NoError(t, err)
	}
	require.NoError(t, artifacts.WriteArtifact(artifact))

	patched, err := os.ReadFile(artifactPath)
	require.NoError(t, err)
	assert.Contains(t, string(patched), "exec(open(rc).read())")
	assert.NotContains(t, string(patched), "execfile(")
	assert.Contains(t, string(patched), "from __future__ import print_function")

	// The future import lands after the shebang and coding lines.
	lines := strings.Split(string(patched), "\n")
	require.Greater(t, len(lines), 2)
	assert.Equal(t, "#!/usr/bin/env python", lines[0])
	assert.Equal(t, "# -*- coding: utf-8 -*-", lines[1])
	assert.Equal(t, "from __future__ import print_function", lines[2])
}
