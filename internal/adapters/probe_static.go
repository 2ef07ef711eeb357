package adapters

import (
	"context"

	"buildgate/internal/types"
)

// StaticProbeAdapter serves a fixed probe result. Used by tests and by
// library callers that capture the environment themselves.
type StaticProbeAdapter struct {
	Result types.ProbeResult
}

func NewStaticProbeAdapter(result types.ProbeResult) StaticProbeAdapter {
	return StaticProbeAdapter{Result: result}
}

func (a StaticProbeAdapter) Capture(_ context.Context, _ []types.ComponentDescriptor) (types.ProbeResult, error) {
	return a.Result, nil
}
