package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"buildgate/internal/policies"
	"buildgate/internal/shared"
	"buildgate/internal/types"
)

// PlanResolver derives a BuildPlan from the manifest's descriptors and
// rules plus a captured probe of the host. Resolution is a pure
// function of its inputs: identical manifest, probe, and target OS
// always yield an identical plan, and no partial plan escapes a fatal
// error.
type PlanResolver struct{}

func NewPlanResolver() PlanResolver {
	return PlanResolver{}
}

// ResolveOutput pairs the plan with the rule records matched while
// producing it.
type ResolveOutput struct {
	Plan    types.BuildPlan
	Records []types.RuleRecord
}

func (r PlanResolver) Resolve(ctx context.Context, manifest types.Manifest, probe types.ProbeResult, targetOS string) (ResolveOutput, error) {
	platform, err := ResolvePlatform(manifest, targetOS)
	if err != nil {
		return ResolveOutput{}, err
	}

	caches := map[types.ComponentKind]*versionCache{
		types.ComponentKindNative:  newVersionCache(types.ComponentKindNative),
		types.ComponentKindRuntime: newVersionCache(types.ComponentKindRuntime),
	}

	resolved := map[string]types.ResolvedComponent{}
	kinds := map[string]types.ComponentKind{}
	var diagnostics []string

	for _, desc := range manifest.Components {
		cache, ok := caches[desc.Kind]
		if !ok {
			return ResolveOutput{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unsupported component kind: %s", desc.Kind))
		}
		component, notes, err := r.resolveComponent(desc, probe, cache)
		if err != nil {
			return ResolveOutput{}, err
		}
		resolved[desc.Name] = component
		kinds[desc.Name] = desc.Kind
		diagnostics = append(diagnostics, notes...)
	}

	// All-or-nothing: one bundled fallback flips the whole build to
	// bundled sources. Mixing system and bundled ABIs per component is
	// deliberately not supported.
	mode := types.BuildModeSystem
	for _, component := range resolved {
		if component.Source != types.BuildModeSystem {
			mode = types.BuildModeBundled
			break
		}
	}

	policy := policies.NewCompatPolicy(manifest.Features)
	for i, rule := range manifest.Rules {
		component, ok := resolved[rule.AppliesTo]
		if !ok {
			continue
		}
		constraints, err := ParsePredicate(rule.Predicate)
		if err != nil {
			return ResolveOutput{}, err
		}
		match, err := satisfies(caches[kinds[rule.AppliesTo]], component.Version, constraints)
		if err != nil {
			return ResolveOutput{}, err
		}
		if !match {
			continue
		}
		if err := policy.Apply(i, rule, component.Version, mode); err != nil {
			return ResolveOutput{}, err
		}
	}

	disabled := policy.DisabledFeatures()
	var disabledIDs []string
	for id := range disabled {
		disabledIDs = append(disabledIDs, id)
	}
	sort.Strings(disabledIDs)
	for _, id := range disabledIDs {
		idx := disabled[id]
		rule := manifest.Rules[idx]
		diagnostics = append(diagnostics, fmt.Sprintf(
			"feature %s disabled by rule %d (%s %s)", id, idx, rule.AppliesTo, rule.Predicate))
	}

	plan := types.BuildPlan{
		BuildMode:        mode,
		EnabledFeatures:  policy.EnabledFeatures(),
		RequiredShims:    policy.RequiredShims(),
		ResolvedVersions: resolved,
		Platform:         platform,
		Diagnostics:      diagnostics,
	}
	log.Ctx(ctx).Debug().
		Str("build_mode", string(mode)).
		Int("components", len(resolved)).
		Int("shims", len(plan.RequiredShims)).
		Msg("resolver completed")
	return ResolveOutput{Plan: plan, Records: policy.Records()}, nil
}

// resolveComponent picks the effective version for one descriptor:
// the detected system version when it falls inside the acceptance
// window, otherwise the pinned bundled fallback. A probe entry that
// fails to parse is rejected with a note and treated as absent.
func (r PlanResolver) resolveComponent(desc types.ComponentDescriptor, probe types.ProbeResult, cache *versionCache) (types.ResolvedComponent, []string, error) {
	var notes []string
	detected, found := lookupProbe(probe, desc.Name)
	if found {
		if err := cache.parse(detected); err != nil {
			notes = append(notes, fmt.Sprintf(
				"component %s: rejected probe entry %q (unparseable)", desc.Name, detected))
			found = false
		}
	}
	if found {
		ok, err := cache.inRange(detected, desc.MinVersion, desc.MaxVersion, desc.MaxInclusive)
		if err != nil {
			return types.ResolvedComponent{}, nil, err
		}
		if ok {
			notes = append(notes, fmt.Sprintf("component %s: %s (system)", desc.Name, detected))
			return types.ResolvedComponent{Version: detected, Source: types.BuildModeSystem}, notes, nil
		}
	}

	if desc.PinnedFallback == "" {
		detail := "absent"
		if found {
			detail = fmt.Sprintf("detected %s", detected)
		}
		return types.ResolvedComponent{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("unsatisfiable dependency: %s %s, acceptable %s, no pinned fallback",
				desc.Name, detail, rangeString(desc)))
	}
	if err := cache.parse(desc.PinnedFallback); err != nil {
		return types.ResolvedComponent{}, nil, err
	}
	if found {
		notes = append(notes, fmt.Sprintf(
			"component %s: %s (bundled, detected %s outside %s)",
			desc.Name, desc.PinnedFallback, detected, rangeString(desc)))
	} else {
		notes = append(notes, fmt.Sprintf(
			"component %s: %s (bundled, not detected)", desc.Name, desc.PinnedFallback))
	}
	return types.ResolvedComponent{Version: desc.PinnedFallback, Source: types.BuildModeBundled}, notes, nil
}

func lookupProbe(probe types.ProbeResult, name string) (string, bool) {
	if version, ok := probe.Components[name]; ok {
		return version, true
	}
	version, ok := probe.Components[shared.NormalizeComponentName(name)]
	return version, ok
}

func rangeString(desc types.ComponentDescriptor) string {
	out := ">=" + desc.MinVersion
	if desc.MaxVersion == "" {
		return out
	}
	if desc.MaxInclusive {
		return out + " <=" + desc.MaxVersion
	}
	return out + " <" + desc.MaxVersion
}
