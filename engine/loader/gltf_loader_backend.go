package loader

import (
	"io"
)

type gltfLoaderBackendImpl struct {
	importer gltfImporter
}

var _ loaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates the glTF/GLB backend.
//
// Parameters:
//   - prefix: mesh or node name prefix to keep; empty keeps every mesh
//
// Returns:
//   - loaderBackend: the backend
func newGLTFLoaderBackend(prefix string) loaderBackend {
	return &gltfLoaderBackendImpl{
		importer: newGLTFImporter(prefix),
	}
}

func (b *gltfLoaderBackendImpl) Load(path string) (*ImportedWorld, error) {
	return b.importer.Import(path)
}

func (b *gltfLoaderBackendImpl) LoadReader(r io.Reader, isGLB bool) (*ImportedWorld, error) {
	return b.importer.ImportReader(r, isGLB)
}
