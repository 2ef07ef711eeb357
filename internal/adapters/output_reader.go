package adapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"buildgate/internal/types"
)

// OutputReaderAdapter reads resolver outputs back for inspection.
type OutputReaderAdapter struct{}

func NewOutputReaderAdapter() OutputReaderAdapter {
	return OutputReaderAdapter{}
}

func (a OutputReaderAdapter) ReadPlan(path string) (types.BuildPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.BuildPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("build plan not found").
			WithCause(err)
	}
	var plan types.BuildPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return types.BuildPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse build plan").
			WithCause(err)
	}
	return plan, nil
}

func (a OutputReaderAdapter) ReadFeaturesLock(path string) ([]types.FeatureLockEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("features lock not found").
			WithCause(err)
	}
	var entries []types.FeatureLockEntry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("malformed features lock line: %q", line))
		}
		entries = append(entries, types.FeatureLockEntry{
			ID:      parts[0],
			Enabled: parts[1] == "on",
		})
	}
	return entries, nil
}

func (a OutputReaderAdapter) ReadReport(path string) ([]types.RuleRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("resolution report not found").
			WithCause(err)
	}
	var records []types.RuleRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse resolution report").
			WithCause(err)
	}
	return records, nil
}
