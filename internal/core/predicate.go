package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildgate/internal/types"
)

// opTokens is the ordered list of constraint operators tried during
// parsing. Longer tokens must precede shorter ones to avoid false
// matches (e.g. ">=" before ">").
var opTokens = []types.ConstraintOp{
	types.ConstraintOpGte,
	types.ConstraintOpLte,
	types.ConstraintOpCompat,
	types.ConstraintOpNe,
	types.ConstraintOpEq2,
	types.ConstraintOpEq,
	types.ConstraintOpGt,
	types.ConstraintOpLt,
}

// ParsePredicate splits a comma-separated predicate expression such as
// ">=9.2.0, <9.6.0" into constraints that must all hold. An empty
// expression yields no constraints and matches any version.
func ParsePredicate(raw string) ([]types.Constraint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var out []types.Constraint
	for _, term := range strings.Split(raw, ",") {
		constraint, err := parseTerm(term)
		if err != nil {
			return nil, err
		}
		out = append(out, constraint)
	}
	return out, nil
}

func parseTerm(term string) (types.Constraint, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return types.Constraint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid predicate: empty term")
	}
	for _, op := range opTokens {
		if strings.HasPrefix(term, string(op)) {
			version := strings.TrimSpace(strings.TrimPrefix(term, string(op)))
			if version == "" {
				return types.Constraint{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("invalid predicate: missing version in %q", term))
			}
			return types.Constraint{Op: op, Version: version}, nil
		}
	}
	return types.Constraint{}, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid predicate: no operator in %q", term))
}

// MatchesPredicate reports whether a version satisfies a predicate
// expression under the kind's grammar. Used by callers outside the
// resolver pass, such as shim applicability checks.
func MatchesPredicate(kind types.ComponentKind, version string, predicate string) (bool, error) {
	constraints, err := ParsePredicate(predicate)
	if err != nil {
		return false, err
	}
	return satisfies(newVersionCache(kind), version, constraints)
}

// satisfies reports whether a version meets every constraint under the
// cache's grammar. The ~= operator is only meaningful for runtime
// components and is delegated to PEP 440 specifier matching.
func satisfies(cache *versionCache, version string, constraints []types.Constraint) (bool, error) {
	for _, constraint := range constraints {
		ok, err := satisfiesOne(cache, version, constraint)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func satisfiesOne(cache *versionCache, version string, constraint types.Constraint) (bool, error) {
	if constraint.Op == types.ConstraintOpCompat {
		if cache.kind != types.ComponentKindRuntime {
			return false, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("~= is only supported for runtime components")
		}
		spec, err := cache.pepSpec("~= " + constraint.Version)
		if err != nil {
			return false, err
		}
		parsed, err := cache.pepVersion(version)
		if err != nil {
			return false, err
		}
		return spec.Check(parsed), nil
	}

	cmp, err := cache.compare(version, constraint.Version)
	if err != nil {
		return false, err
	}
	switch constraint.Op {
	case types.ConstraintOpEq, types.ConstraintOpEq2:
		return cmp == 0, nil
	case types.ConstraintOpNe:
		return cmp != 0, nil
	case types.ConstraintOpGte:
		return cmp >= 0, nil
	case types.ConstraintOpLte:
		return cmp <= 0, nil
	case types.ConstraintOpGt:
		return cmp > 0, nil
	case types.ConstraintOpLt:
		return cmp < 0, nil
	default:
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported constraint operator: %q", constraint.Op))
	}
}
