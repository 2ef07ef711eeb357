// Package shims holds compatibility patches applied to source
// artifacts when a build plan requires them. Every patcher is
// idempotent: applying it to an already-patched artifact returns the
// artifact unchanged, detected via a content marker or structural
// check rather than an error.
package shims

import (
	"fmt"
	"unicode/utf8"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildgate/internal/core"
	"buildgate/internal/types"
)

// ApplyFunc transforms artifact content. It must be idempotent and
// return an error only when the content cannot be patched safely.
type ApplyFunc func(content string) (string, error)

// Entry pairs a shim's declaration with its patcher.
type Entry struct {
	Spec  types.ShimSpec
	apply ApplyFunc
}

// Registry maps shim ids to entries. Built-in patchers are bound to
// manifest shim specs by id at construction.
type Registry struct {
	entries []Entry
	byID    map[string]int
}

// NewRegistry binds each manifest shim spec to its built-in patcher.
// A spec whose id has no registered patcher is a configuration error.
func NewRegistry(specs []types.ShimSpec) (*Registry, error) {
	registry := &Registry{byID: map[string]int{}}
	for _, spec := range specs {
		fn, ok := builtinPatchers[spec.ID]
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("no patcher registered for shim %q", spec.ID))
		}
		if err := registry.Register(spec, fn); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Register adds a shim entry. Duplicate ids are rejected.
func (r *Registry) Register(spec types.ShimSpec, fn ApplyFunc) error {
	if spec.ID == "" || fn == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("shim registration requires an id and a patcher")
	}
	if _, exists := r.byID[spec.ID]; exists {
		return errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("duplicate shim: %s", spec.ID))
	}
	r.byID[spec.ID] = len(r.entries)
	r.entries = append(r.entries, Entry{Spec: spec, apply: fn})
	return nil
}

// Applicable returns the entries for the plan's required shims whose
// runtime predicate matches. The runtime version is read from the
// plan's resolved versions; runtimeOverride substitutes it when the
// caller patches for a different interpreter than the plan was
// resolved against.
func (r *Registry) Applicable(plan types.BuildPlan, runtimeOverride string) ([]Entry, error) {
	var out []Entry
	for _, id := range plan.RequiredShims {
		idx, ok := r.byID[id]
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("plan requires unknown shim %q", id))
		}
		entry := r.entries[idx]
		version := runtimeOverride
		if version == "" {
			resolved, ok := plan.ResolvedVersions[entry.Spec.AppliesTo]
			if !ok {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg(fmt.Sprintf("shim %s: plan has no resolved version for %s",
						id, entry.Spec.AppliesTo))
			}
			version = resolved.Version
		}
		match, err := core.MatchesPredicate(types.ComponentKindRuntime, version, entry.Spec.Predicate)
		if err != nil {
			return nil, err
		}
		if match {
			out = append(out, entry)
		}
	}
	return out, nil
}

// Apply runs one shim against an artifact and returns the patched
// copy. The input artifact is never mutated. Errors are per-artifact
// shim errors; callers collect them and continue with the next
// artifact.
func (r *Registry) Apply(id string, artifact types.SourceArtifact) (types.SourceArtifact, error) {
	idx, ok := r.byID[id]
	if !ok {
		return types.SourceArtifact{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("unknown shim %q", id))
	}
	if !utf8.ValidString(artifact.Content) {
		return types.SourceArtifact{}, shimError(id, artifact.Path, "content is not valid UTF-8")
	}
	patched, err := r.entries[idx].apply(artifact.Content)
	if err != nil {
		return types.SourceArtifact{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("shim %s: cannot patch %s", id, artifact.Path)).
			WithCause(err)
	}
	return types.SourceArtifact{Path: artifact.Path, Content: patched}, nil
}

// IDs returns the registered shim ids in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry.Spec.ID)
	}
	return out
}

func shimError(id string, path string, detail string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("shim %s: cannot patch %s: %s", id, path, detail))
}
