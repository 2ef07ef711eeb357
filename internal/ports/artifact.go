package ports

import "buildgate/internal/types"

type ArtifactPort interface {
	ReadArtifact(path string) (types.SourceArtifact, error)
	WriteArtifact(artifact types.SourceArtifact) error
}
