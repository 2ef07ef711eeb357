package ports

import "buildgate/internal/types"

type ManifestPort interface {
	LoadManifest(path string) (types.Manifest, error)
}
