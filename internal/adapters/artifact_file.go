package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildgate/internal/types"
)

// ArtifactFileAdapter moves source artifacts between disk and the shim
// pass. Writes preserve the original file mode when the file exists.
type ArtifactFileAdapter struct{}

func NewArtifactFileAdapter() ArtifactFileAdapter {
	return ArtifactFileAdapter{}
}

func (a ArtifactFileAdapter) ReadArtifact(path string) (types.SourceArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SourceArtifact{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("artifact not found").
			WithCause(err)
	}
	return types.SourceArtifact{Path: path, Content: string(data)}, nil
}

func (a ArtifactFileAdapter) WriteArtifact(artifact types.SourceArtifact) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(artifact.Path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(artifact.Path, []byte(artifact.Content), mode); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write artifact").
			WithCause(err)
	}
	return nil
}
