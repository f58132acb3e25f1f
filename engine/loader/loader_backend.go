package loader

import (
	"io"
)

// loaderBackend loads collision geometry from one file format.
type loaderBackend interface {
	// Load imports the file at path.
	Load(path string) (*ImportedWorld, error)

	// LoadReader imports from a stream.
	//
	// Parameters:
	//   - r: the reader providing the asset
	//   - isGLB: true if the reader provides GLB binary data
	LoadReader(r io.Reader, isGLB bool) (*ImportedWorld, error)
}
