package loader

import (
	"fmt"
	"io"
)

type gltfImporterImpl struct {
	prefix string
}

// gltfImporter orchestrates parsing and surface extraction for one glTF/GLB source.
type gltfImporter interface {
	// Import loads a glTF/GLB file and extracts its collision surfaces.
	Import(path string) (*ImportedWorld, error)

	// ImportReader loads a glTF document from a reader and extracts its collision surfaces.
	ImportReader(r io.Reader, isGLB bool) (*ImportedWorld, error)
}

var _ gltfImporter = &gltfImporterImpl{}

func newGLTFImporter(prefix string) gltfImporter {
	return &gltfImporterImpl{prefix: prefix}
}

func (imp *gltfImporterImpl) Import(path string) (*ImportedWorld, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return imp.importFromParser(parser, path)
}

func (imp *gltfImporterImpl) ImportReader(r io.Reader, isGLB bool) (*ImportedWorld, error) {
	parser := newGLTFParser()
	if err := parser.ParseReader(r, isGLB); err != nil {
		return nil, fmt.Errorf("failed to parse from reader: %w", err)
	}
	return imp.importFromParser(parser, "")
}

func (imp *gltfImporterImpl) importFromParser(parser gltfParser, fallbackName string) (*ImportedWorld, error) {
	doc := parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document after parsing")
	}

	surfaces, err := newGLTFSurfaceExtractor(parser, imp.prefix).ExtractSurfaces()
	if err != nil {
		return nil, fmt.Errorf("surface extraction failed: %w", err)
	}

	return &ImportedWorld{
		Name:     gltfWorldName(doc, fallbackName),
		Surfaces: surfaces,
	}, nil
}

// gltfWorldName prefers the default scene's name, then the fallback.
func gltfWorldName(doc *gltfDocument, fallback string) string {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		if name := doc.Scenes[*doc.Scene].Name; name != "" {
			return name
		}
	}
	if fallback != "" {
		return fallback
	}
	return "unnamed_world"
}
