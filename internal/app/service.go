package app

import (
	"time"

	"buildgate/internal/adapters"
	"buildgate/internal/ports"
)

type Service struct {
	Manifests ports.ManifestPort
	Probes    ports.ProbeSourcePort
	LiveProbe ports.ProbeCapturePort
	Plans     ports.PlanWriterPort
	Outputs   ports.OutputReaderPort
	Artifacts ports.ArtifactPort
	Clock     func() time.Time
}

func NewService() Service {
	return Service{
		Manifests: adapters.NewManifestFileAdapter(),
		Probes:    adapters.NewProbeFileAdapter(),
		LiveProbe: adapters.NewExecProbeAdapter(),
		Plans:     adapters.NewPlanFileAdapter(),
		Outputs:   adapters.NewOutputReaderAdapter(),
		Artifacts: adapters.NewArtifactFileAdapter(),
		Clock:     time.Now,
	}
}
