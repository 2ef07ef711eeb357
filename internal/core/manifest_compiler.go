package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildgate/internal/types"
)

// ManifestCompiler validates the static configuration before a
// resolution pass: descriptors, feature gates, rules, and shim specs
// must be internally consistent so the resolver can treat them as
// trusted read-only input.
type ManifestCompiler struct{}

var validComponentKinds = map[types.ComponentKind]struct{}{
	types.ComponentKindNative:  {},
	types.ComponentKindRuntime: {},
}

var validBuildModes = map[types.BuildMode]struct{}{
	types.BuildModeSystem:  {},
	types.BuildModeBundled: {},
}

var validEffects = map[types.EffectKind]struct{}{
	types.EffectEnableFeature:    {},
	types.EffectDisableFeature:   {},
	types.EffectRequireBuildMode: {},
	types.EffectRequireShim:      {},
	types.EffectFail:             {},
}

func NewManifestCompiler() ManifestCompiler {
	return ManifestCompiler{}
}

func (c ManifestCompiler) ValidateManifest(ctx context.Context, manifest types.Manifest) error {
	assert.NotEmpty(ctx, manifest.APIVersion, "api_version must be set")
	assert.NotEmpty(ctx, manifest.Metadata.Name, "metadata.name must be set")
	assert.NotEmpty(ctx, manifest.Metadata.Version, "metadata.version must be set")
	if len(manifest.Metadata.Owners) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("metadata.owners must not be empty")
	}
	if len(manifest.Components) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("components must not be empty")
	}

	componentKinds := map[string]types.ComponentKind{}
	for _, desc := range manifest.Components {
		if err := c.validateComponent(desc); err != nil {
			return err
		}
		if _, exists := componentKinds[desc.Name]; exists {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate component: %s", desc.Name))
		}
		componentKinds[desc.Name] = desc.Kind
	}

	featureIDs := map[string]struct{}{}
	for _, gate := range manifest.Features {
		if gate.ID == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("feature id must not be empty")
		}
		if _, exists := featureIDs[gate.ID]; exists {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate feature: %s", gate.ID))
		}
		featureIDs[gate.ID] = struct{}{}
	}

	shimIDs := map[string]struct{}{}
	for _, shim := range manifest.Shims {
		if err := validateShimSpec(shim, componentKinds); err != nil {
			return err
		}
		if _, exists := shimIDs[shim.ID]; exists {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate shim: %s", shim.ID))
		}
		shimIDs[shim.ID] = struct{}{}
	}

	for i, rule := range manifest.Rules {
		if err := validateRule(i, rule, componentKinds, featureIDs, shimIDs); err != nil {
			return err
		}
	}

	for _, profile := range manifest.Platforms {
		if profile.OS == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("platform os must not be empty")
		}
	}
	return nil
}

func (c ManifestCompiler) validateComponent(desc types.ComponentDescriptor) error {
	if desc.Name == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("component name must not be empty")
	}
	if _, ok := validComponentKinds[desc.Kind]; !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("component %s: unsupported kind %q", desc.Name, desc.Kind))
	}
	cache := newVersionCache(desc.Kind)
	if err := cache.parse(desc.MinVersion); err != nil {
		return componentError(desc.Name, "min_version", err)
	}
	if desc.MaxVersion != "" {
		if err := cache.parse(desc.MaxVersion); err != nil {
			return componentError(desc.Name, "max_version", err)
		}
		cmp, err := cache.compare(desc.MinVersion, desc.MaxVersion)
		if err != nil {
			return err
		}
		if cmp > 0 || (cmp == 0 && !desc.MaxInclusive) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("component %s: empty version window %s", desc.Name, rangeString(desc)))
		}
	}
	if desc.PinnedFallback == "" {
		return nil
	}
	if err := cache.parse(desc.PinnedFallback); err != nil {
		return componentError(desc.Name, "pinned_fallback", err)
	}
	ok, err := cache.inRange(desc.PinnedFallback, desc.MinVersion, desc.MaxVersion, desc.MaxInclusive)
	if err != nil {
		return err
	}
	if !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("component %s: pinned_fallback %s outside %s",
				desc.Name, desc.PinnedFallback, rangeString(desc)))
	}
	return nil
}

func validateRule(index int, rule types.CompatibilityRule, components map[string]types.ComponentKind, features map[string]struct{}, shims map[string]struct{}) error {
	kind, ok := components[rule.AppliesTo]
	if !ok {
		return ruleError(index, fmt.Sprintf("unknown component %q", rule.AppliesTo))
	}
	if _, ok := validEffects[rule.Effect]; !ok {
		return ruleError(index, fmt.Sprintf("unsupported effect %q", rule.Effect))
	}
	constraints, err := ParsePredicate(rule.Predicate)
	if err != nil {
		return err
	}
	cache := newVersionCache(kind)
	for _, constraint := range constraints {
		if constraint.Op == types.ConstraintOpCompat && kind != types.ComponentKindRuntime {
			return ruleError(index, "~= predicate on a native component")
		}
		if err := cache.parse(constraint.Version); err != nil {
			return err
		}
	}
	switch rule.Effect {
	case types.EffectEnableFeature, types.EffectDisableFeature:
		if _, ok := features[rule.Feature]; !ok {
			return ruleError(index, fmt.Sprintf("unknown feature %q", rule.Feature))
		}
	case types.EffectRequireBuildMode:
		if _, ok := validBuildModes[rule.Mode]; !ok {
			return ruleError(index, fmt.Sprintf("unsupported build mode %q", rule.Mode))
		}
	case types.EffectRequireShim:
		if _, ok := shims[rule.Shim]; !ok {
			return ruleError(index, fmt.Sprintf("unknown shim %q", rule.Shim))
		}
	case types.EffectFail:
		if rule.Reason == "" {
			return ruleError(index, "fail effect requires a reason")
		}
	}
	return nil
}

func validateShimSpec(shim types.ShimSpec, components map[string]types.ComponentKind) error {
	if shim.ID == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("shim id must not be empty")
	}
	kind, ok := components[shim.AppliesTo]
	if !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("shim %s: unknown component %q", shim.ID, shim.AppliesTo))
	}
	if kind != types.ComponentKindRuntime {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("shim %s: %s is not a runtime component", shim.ID, shim.AppliesTo))
	}
	constraints, err := ParsePredicate(shim.Predicate)
	if err != nil {
		return err
	}
	cache := newVersionCache(kind)
	for _, constraint := range constraints {
		if err := cache.parse(constraint.Version); err != nil {
			return err
		}
	}
	return nil
}

func componentError(name string, field string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("component %s: invalid %s", name, field)).
		WithCause(cause)
}

func ruleError(index int, detail string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("rule %d: %s", index, detail))
}
