package types

// ResolvedComponent records the version a component resolved to and
// whether it came from the system or the pinned bundled fallback.
type ResolvedComponent struct {
	Version string    `yaml:"version"`
	Source  BuildMode `yaml:"source"`
}

// BuildPlan is the resolver's output: global build mode, the feature
// set after rule evaluation, the shims the build must apply, and the
// version each component resolved to. Plans are derived values; a new
// resolution pass always produces a new plan.
type BuildPlan struct {
	BuildMode        BuildMode                    `yaml:"build_mode"`
	EnabledFeatures  []string                     `yaml:"enabled_features"`
	RequiredShims    []string                     `yaml:"required_shims"`
	ResolvedVersions map[string]ResolvedComponent `yaml:"resolved_versions"`
	Platform         PlatformProfile              `yaml:"platform"`
	Diagnostics      []string                     `yaml:"diagnostics,omitempty"`
}

// RuleRecord captures one compatibility rule match for the resolution
// report.
type RuleRecord struct {
	RuleIndex int        `yaml:"rule"`
	AppliesTo string     `yaml:"applies_to"`
	Effect    EffectKind `yaml:"effect"`
	Detail    string     `yaml:"detail,omitempty"`
}

// FeatureLockEntry is one line of the features.lock output.
type FeatureLockEntry struct {
	ID      string
	Enabled bool
}
