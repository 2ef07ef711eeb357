package types

// SourceArtifact is a source file handed to the shim pass. Shims
// transform Content; the patch collaborator decides where the result
// is written.
type SourceArtifact struct {
	Path    string
	Content string
}
