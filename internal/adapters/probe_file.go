package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"buildgate/internal/types"
)

// ProbeFileAdapter reads and writes captured probe results so a probe
// taken on one host can drive later resolution passes unchanged.
type ProbeFileAdapter struct{}

func NewProbeFileAdapter() ProbeFileAdapter {
	return ProbeFileAdapter{}
}

func (a ProbeFileAdapter) LoadProbe(path string) (types.ProbeResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ProbeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("probe file not found").
			WithCause(err)
	}
	var probe types.ProbeResult
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return types.ProbeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse probe yaml").
			WithCause(err)
	}
	if probe.Components == nil {
		probe.Components = map[string]string{}
	}
	return probe, nil
}

func (a ProbeFileAdapter) SaveProbe(path string, probe types.ProbeResult) error {
	data, err := yaml.Marshal(probe)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to serialize probe").
			WithCause(err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create probe directory").
				WithCause(err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
