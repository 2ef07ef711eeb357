package types

type Metadata struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Owners      []string `yaml:"owners"`
	Description string   `yaml:"description,omitempty"`
}

// ComponentDescriptor declares an external dependency the build needs:
// a version window it accepts from the host, and optionally a pinned
// version to build from bundled sources when the host cannot satisfy
// it. MaxVersion is exclusive unless MaxInclusive is set; an empty
// MaxVersion leaves the window open-ended.
type ComponentDescriptor struct {
	Name           string        `yaml:"name"`
	Kind           ComponentKind `yaml:"kind"`
	MinVersion     string        `yaml:"min_version"`
	MaxVersion     string        `yaml:"max_version,omitempty"`
	MaxInclusive   bool          `yaml:"max_inclusive,omitempty"`
	PinnedFallback string        `yaml:"pinned_fallback,omitempty"`

	// ProbeCommand is the command the live probe runs to detect the
	// installed version (stdout, first line).  Empty means the
	// component can only be supplied via a captured probe file.
	ProbeCommand []string `yaml:"probe_command,omitempty"`
}

// FeatureGate declares an optional capability. Gates with Default set
// seed the enabled set before compatibility rules run.
type FeatureGate struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description,omitempty"`
	Default     bool   `yaml:"default"`
}

// CompatibilityRule maps a component/version predicate to an effect on
// the build plan. Rules are evaluated in declaration order; for rules
// touching the same feature the last match wins. Exactly one of
// Feature, Mode, Shim, or Reason is meaningful depending on Effect.
type CompatibilityRule struct {
	AppliesTo string       `yaml:"applies_to"`
	Predicate string       `yaml:"predicate,omitempty"`
	Effect    EffectKind   `yaml:"effect"`
	Feature   string       `yaml:"feature,omitempty"`
	Mode      BuildMode    `yaml:"mode,omitempty"`
	Shim      string       `yaml:"shim,omitempty"`
	Reason    string       `yaml:"reason,omitempty"`
}

// ShimSpec binds a shim id to the runtime component and version range
// it patches for. The apply behavior itself is registered in code.
type ShimSpec struct {
	ID          string `yaml:"id"`
	AppliesTo   string `yaml:"applies_to"`
	Predicate   string `yaml:"predicate,omitempty"`
	Description string `yaml:"description,omitempty"`
}

type Manifest struct {
	APIVersion string                `yaml:"api_version"`
	Metadata   Metadata              `yaml:"metadata"`
	Platforms  []PlatformProfile     `yaml:"platforms,omitempty"`
	Components []ComponentDescriptor `yaml:"components"`
	Features   []FeatureGate         `yaml:"features,omitempty"`
	Rules      []CompatibilityRule   `yaml:"rules,omitempty"`
	Shims      []ShimSpec            `yaml:"shims,omitempty"`
}
