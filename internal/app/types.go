package app

import "buildgate/internal/types"

type ValidateRequest struct {
	ManifestPath string
}

type ValidateResult struct {
	Name       string
	Components int
	Rules      int
}

type ResolveRequest struct {
	ManifestPath string
	ProbePath    string
	TargetOS     string
	OutputDir    string

	// Live captures a fresh probe via the manifest's probe commands
	// instead of reading ProbePath.
	Live bool
}

type ResolveResult struct {
	Name      string
	BuildMode types.BuildMode
	OutputDir string
	Plan      types.BuildPlan
}

type PatchRequest struct {
	ManifestPath string
	PlanPath     string
	Artifacts    []string

	// RuntimeVersion overrides the plan's resolved runtime version
	// when checking shim applicability.
	RuntimeVersion string

	// DryRun applies shims without writing patched artifacts back.
	DryRun bool
}

// PatchOutcome reports one artifact's trip through the shim pass.
type PatchOutcome struct {
	Path    string
	Applied []string
	Changed bool
	Err     error
}

type PatchResult struct {
	Shims    []string
	Outcomes []PatchOutcome
	Failed   int
}

type ProbeRequest struct {
	ManifestPath string
	OutputPath   string
}

type ProbeResult struct {
	OutputPath string
	Detected   int
}

type InspectRequest struct {
	OutputDir string
}

type InspectComponent struct {
	Name    string
	Version string
	Source  types.BuildMode
}

type InspectResult struct {
	BuildMode  types.BuildMode
	TargetOS   string
	Components []InspectComponent
	Features   []types.FeatureLockEntry
	Shims      []string
	Records    []types.RuleRecord
}
