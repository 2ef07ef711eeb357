package types

// ComponentKind selects the version grammar used for a component.
// Native components follow Debian version semantics, runtimes follow
// PEP 440.
type ComponentKind string

const (
	ComponentKindNative  ComponentKind = "native"
	ComponentKindRuntime ComponentKind = "runtime"
)

type BuildMode string

const (
	BuildModeSystem  BuildMode = "system"
	BuildModeBundled BuildMode = "bundled"
)

type EffectKind string

const (
	EffectEnableFeature    EffectKind = "enable-feature"
	EffectDisableFeature   EffectKind = "disable-feature"
	EffectRequireBuildMode EffectKind = "require-build-mode"
	EffectRequireShim      EffectKind = "require-shim"
	EffectFail             EffectKind = "fail"
)

type ConstraintOp string

const (
	ConstraintOpNone   ConstraintOp = ""
	ConstraintOpEq     ConstraintOp = "="
	ConstraintOpEq2    ConstraintOp = "=="
	ConstraintOpNe     ConstraintOp = "!="
	ConstraintOpCompat ConstraintOp = "~="
	ConstraintOpGte    ConstraintOp = ">="
	ConstraintOpLte    ConstraintOp = "<="
	ConstraintOpGt     ConstraintOp = ">"
	ConstraintOpLt     ConstraintOp = "<"
)
