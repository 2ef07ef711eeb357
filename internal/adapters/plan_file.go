package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"buildgate/internal/types"
)

// PlanFileAdapter writes resolver outputs: build.plan (the full plan),
// features.lock (one feature per line), and resolution.report (the
// matched rule records). All outputs are deterministically ordered so
// identical resolutions produce identical files.
type PlanFileAdapter struct{}

func NewPlanFileAdapter() PlanFileAdapter {
	return PlanFileAdapter{}
}

func (a PlanFileAdapter) WritePlan(dir string, plan types.BuildPlan) error {
	path, err := a.ensurePath(dir, "build.plan")
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(plan)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to serialize build plan").
			WithCause(err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (a PlanFileAdapter) WriteFeaturesLock(dir string, gates []types.FeatureGate, plan types.BuildPlan) error {
	path, err := a.ensurePath(dir, "features.lock")
	if err != nil {
		return err
	}
	enabled := map[string]struct{}{}
	for _, id := range plan.EnabledFeatures {
		enabled[id] = struct{}{}
	}
	ids := make([]string, 0, len(gates))
	for _, gate := range gates {
		ids = append(ids, gate.ID)
	}
	sort.Strings(ids)
	var lines []string
	for _, id := range ids {
		state := "off"
		if _, ok := enabled[id]; ok {
			state = "on"
		}
		lines = append(lines, fmt.Sprintf("%s=%s", id, state))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}

func (a PlanFileAdapter) WriteReport(dir string, records []types.RuleRecord) error {
	path, err := a.ensurePath(dir, "resolution.report")
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to serialize resolution report").
			WithCause(err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (a PlanFileAdapter) ensurePath(dir string, name string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(dir, name), nil
}
