package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"

	"buildgate/internal/types"
)

// versionCache memoizes parsed version objects for one component kind
// so predicate evaluation and range checks parse each string once per
// resolution pass.
type versionCache struct {
	kind types.ComponentKind
	deb  map[string]debversion.Version
	pep  map[string]pep440.Version
	spec map[string]pep440.Specifiers
}

func newVersionCache(kind types.ComponentKind) *versionCache {
	return &versionCache{
		kind: kind,
		deb:  map[string]debversion.Version{},
		pep:  map[string]pep440.Version{},
		spec: map[string]pep440.Specifiers{},
	}
}

// debVersion returns a parsed Debian version, caching the result.
func (c *versionCache) debVersion(value string) (debversion.Version, error) {
	if parsed, ok := c.deb[value]; ok {
		return parsed, nil
	}
	parsed, err := debversion.NewVersion(value)
	if err != nil {
		return debversion.Version{}, parseError(value, err)
	}
	c.deb[value] = parsed
	return parsed, nil
}

// pepVersion returns a parsed PEP 440 version, caching the result.
func (c *versionCache) pepVersion(value string) (pep440.Version, error) {
	if parsed, ok := c.pep[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.Parse(value)
	if err != nil {
		return pep440.Version{}, parseError(value, err)
	}
	c.pep[value] = parsed
	return parsed, nil
}

// pepSpec returns parsed PEP 440 specifiers, caching the result.
func (c *versionCache) pepSpec(value string) (pep440.Specifiers, error) {
	if parsed, ok := c.spec[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.NewSpecifiers(value)
	if err != nil {
		return pep440.Specifiers{}, parseError(value, err)
	}
	c.spec[value] = parsed
	return parsed, nil
}

// parse validates a version string under the cache's grammar.
func (c *versionCache) parse(value string) error {
	if value == "" {
		return parseError(value, nil)
	}
	switch c.kind {
	case types.ComponentKindNative:
		_, err := c.debVersion(value)
		return err
	case types.ComponentKindRuntime:
		_, err := c.pepVersion(value)
		return err
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported component kind: %s", c.kind))
	}
}

// compare returns -1, 0, or 1 comparing two version strings under the
// cache's grammar. Malformed input surfaces as a parse error rather
// than a silent tie.
func (c *versionCache) compare(a string, b string) (int, error) {
	switch c.kind {
	case types.ComponentKindNative:
		v1, err := c.debVersion(a)
		if err != nil {
			return 0, err
		}
		v2, err := c.debVersion(b)
		if err != nil {
			return 0, err
		}
		return v1.Compare(v2), nil
	case types.ComponentKindRuntime:
		v1, err := c.pepVersion(a)
		if err != nil {
			return 0, err
		}
		v2, err := c.pepVersion(b)
		if err != nil {
			return 0, err
		}
		return v1.Compare(v2), nil
	default:
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported component kind: %s", c.kind))
	}
}

// inRange checks min <= v < max, or <= max when maxInclusive. An empty
// max leaves the window open-ended.
func (c *versionCache) inRange(v string, min string, max string, maxInclusive bool) (bool, error) {
	cmp, err := c.compare(v, min)
	if err != nil {
		return false, err
	}
	if cmp < 0 {
		return false, nil
	}
	if max == "" {
		return true, nil
	}
	cmp, err = c.compare(v, max)
	if err != nil {
		return false, err
	}
	if maxInclusive {
		return cmp <= 0, nil
	}
	return cmp < 0, nil
}

func parseError(value string, cause error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid version: %q", value))
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return builder
}
