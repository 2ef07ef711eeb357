package policies

import (
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildgate/internal/types"
)

// CompatPolicy accumulates rule effects while the resolver walks the
// compatibility rule table in declaration order. Feature effects
// overwrite earlier ones, so the last matching rule for a feature id
// wins regardless of which version range it matched on.
type CompatPolicy struct {
	features    map[string]bool
	disabledBy  map[string]int
	shims       map[string]struct{}
	records     []types.RuleRecord
}

// NewCompatPolicy seeds the feature state from the manifest's gates:
// gates with Default set start enabled, the rest start disabled.
func NewCompatPolicy(gates []types.FeatureGate) *CompatPolicy {
	policy := &CompatPolicy{
		features:   map[string]bool{},
		disabledBy: map[string]int{},
		shims:      map[string]struct{}{},
	}
	for _, gate := range gates {
		policy.features[gate.ID] = gate.Default
	}
	return policy
}

// Apply folds one matched rule into the policy state. ruleIndex is the
// rule's position in the manifest, used for records and diagnostics.
// computedMode is the global build mode from component resolution;
// a require-build-mode rule demanding the opposite is a fatal conflict.
func (p *CompatPolicy) Apply(ruleIndex int, rule types.CompatibilityRule, resolvedVersion string, computedMode types.BuildMode) error {
	record := types.RuleRecord{
		RuleIndex: ruleIndex,
		AppliesTo: rule.AppliesTo,
		Effect:    rule.Effect,
	}
	switch rule.Effect {
	case types.EffectEnableFeature:
		p.features[rule.Feature] = true
		delete(p.disabledBy, rule.Feature)
		record.Detail = rule.Feature
	case types.EffectDisableFeature:
		p.features[rule.Feature] = false
		p.disabledBy[rule.Feature] = ruleIndex
		record.Detail = rule.Feature
	case types.EffectRequireShim:
		p.shims[rule.Shim] = struct{}{}
		record.Detail = rule.Shim
	case types.EffectRequireBuildMode:
		if rule.Mode != computedMode {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf(
					"build mode conflict: rule %d (%s %s) requires %s but resolution computed %s",
					ruleIndex, rule.AppliesTo, resolvedVersion, rule.Mode, computedMode))
		}
		record.Detail = string(rule.Mode)
	case types.EffectFail:
		return errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg(rule.Reason)
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported rule effect: %s", rule.Effect))
	}
	p.records = append(p.records, record)
	return nil
}

// EnabledFeatures returns the sorted ids of features that survived
// rule evaluation enabled.
func (p *CompatPolicy) EnabledFeatures() []string {
	var out []string
	for id, enabled := range p.features {
		if enabled {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// DisabledFeatures maps each disabled feature id to the rule index
// that disabled it last.
func (p *CompatPolicy) DisabledFeatures() map[string]int {
	out := make(map[string]int, len(p.disabledBy))
	for id, idx := range p.disabledBy {
		out[id] = idx
	}
	return out
}

// RequiredShims returns the sorted shim ids collected from matched
// require-shim rules.
func (p *CompatPolicy) RequiredShims() []string {
	var out []string
	for id := range p.shims {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Records returns the matched rules in evaluation order.
func (p *CompatPolicy) Records() []types.RuleRecord {
	return append([]types.RuleRecord(nil), p.records...)
}
