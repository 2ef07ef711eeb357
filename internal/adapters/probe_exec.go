package adapters

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog/log"

	"buildgate/internal/shared"
	"buildgate/internal/types"
)

// ExecProbeAdapter detects installed component versions by running
// each descriptor's probe command and reading the first line of its
// output. A component whose command is missing, fails, or prints
// nothing is reported absent rather than failing the capture; the
// resolver decides whether absence is fatal.
type ExecProbeAdapter struct{}

func NewExecProbeAdapter() ExecProbeAdapter {
	return ExecProbeAdapter{}
}

func (a ExecProbeAdapter) Capture(ctx context.Context, components []types.ComponentDescriptor) (types.ProbeResult, error) {
	probe := types.ProbeResult{
		OS:         runtime.GOOS,
		Components: map[string]string{},
	}
	for _, desc := range components {
		if len(desc.ProbeCommand) == 0 {
			continue
		}
		version, err := a.runProbe(ctx, desc.ProbeCommand)
		if err != nil {
			log.Ctx(ctx).Debug().
				Str("component", desc.Name).
				Err(err).
				Msg("probe command failed, component reported absent")
			continue
		}
		if version == "" {
			continue
		}
		probe.Components[desc.Name] = version
	}
	return probe, nil
}

func (a ExecProbeAdapter) runProbe(ctx context.Context, command []string) (string, error) {
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", shared.CommandError(out, err)
	}
	return shared.FirstLine(string(out)), nil
}
