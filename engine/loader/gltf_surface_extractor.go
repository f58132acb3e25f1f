package loader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-nav/engine/collision"
	"github.com/go-gl/mathgl/mgl32"
)

type gltfSurfaceExtractorImpl struct {
	parser gltfParser
	prefix string
}

// gltfSurfaceExtractor flattens the default scene of a parsed document into world-space
// collision surfaces, one per mesh-bearing node.
type gltfSurfaceExtractor interface {
	// ExtractSurfaces walks the scene graph and returns the surfaces of every mesh whose mesh
	// or node name matches the prefix. Primitives that are not triangle lists, strips or fans
	// are skipped.
	ExtractSurfaces() ([]collision.Surface, error)
}

var _ gltfSurfaceExtractor = &gltfSurfaceExtractorImpl{}

func newGLTFSurfaceExtractor(parser gltfParser, prefix string) gltfSurfaceExtractor {
	return &gltfSurfaceExtractorImpl{parser: parser, prefix: prefix}
}

func (e *gltfSurfaceExtractorImpl) ExtractSurfaces() ([]collision.Surface, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	var surfaces []collision.Surface
	visited := make([]bool, len(doc.Nodes))

	var walk func(nodeIndex int, parent mgl32.Mat4) error
	walk = func(nodeIndex int, parent mgl32.Mat4) error {
		if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) {
			return fmt.Errorf("node index %d out of range", nodeIndex)
		}
		if visited[nodeIndex] {
			return fmt.Errorf("node %d appears twice in the scene graph", nodeIndex)
		}
		visited[nodeIndex] = true

		node := &doc.Nodes[nodeIndex]
		world := parent.Mul4(gltfNodeLocal(node))

		if node.Mesh != nil {
			surf, ok, err := e.extractNodeMesh(node, *node.Mesh, world)
			if err != nil {
				return fmt.Errorf("node %d: %w", nodeIndex, err)
			}
			if ok {
				surfaces = append(surfaces, surf)
			}
		}
		for _, child := range node.Children {
			if err := walk(child, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range gltfRootNodes(doc) {
		if err := walk(root, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	return surfaces, nil
}

func (e *gltfSurfaceExtractorImpl) extractNodeMesh(node *gltfNode, meshIndex int, world mgl32.Mat4) (collision.Surface, bool, error) {
	doc := e.parser.Document()
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return collision.Surface{}, false, fmt.Errorf("mesh index %d out of range", meshIndex)
	}
	mesh := &doc.Meshes[meshIndex]

	if e.prefix != "" && !strings.HasPrefix(mesh.Name, e.prefix) && !strings.HasPrefix(node.Name, e.prefix) {
		return collision.Surface{}, false, nil
	}

	var tris []collision.Triangle
	for primIdx := range mesh.Primitives {
		primTris, err := e.extractPrimitive(&mesh.Primitives[primIdx], world)
		if err != nil {
			return collision.Surface{}, false, fmt.Errorf("mesh %d primitive %d: %w", meshIndex, primIdx, err)
		}
		tris = append(tris, primTris...)
	}
	if len(tris) == 0 {
		return collision.Surface{}, false, nil
	}

	name := node.Name
	if name == "" {
		name = mesh.Name
	}
	if name == "" {
		name = fmt.Sprintf("mesh_%d", meshIndex)
	}
	return collision.NewSurface(name, tris), true, nil
}

func (e *gltfSurfaceExtractorImpl) extractPrimitive(prim *gltfPrimitive, world mgl32.Mat4) ([]collision.Triangle, error) {
	mode := gltfPrimitiveModeTriangles
	if prim.Mode != nil {
		mode = *prim.Mode
	}
	if mode != gltfPrimitiveModeTriangles && mode != gltfPrimitiveModeTriangleStrip && mode != gltfPrimitiveModeTriangleFan {
		return nil, nil
	}

	posAccessor, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := e.parser.ReadPositions(posAccessor)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}
	for i, pos := range positions {
		positions[i] = world.Mul4x1(pos.Vec4(1)).Vec3()
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = e.parser.ReadIndices(*prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return nil, fmt.Errorf("index %d exceeds vertex count %d", idx, len(positions))
		}
	}

	tri := func(a, b, c uint32) collision.Triangle {
		return collision.Triangle{A: positions[a], B: positions[b], C: positions[c]}
	}

	var tris []collision.Triangle
	switch mode {
	case gltfPrimitiveModeTriangles:
		for i := 0; i+2 < len(indices); i += 3 {
			tris = append(tris, tri(indices[i], indices[i+1], indices[i+2]))
		}
	case gltfPrimitiveModeTriangleStrip:
		for i := 0; i+2 < len(indices); i++ {
			if i%2 == 0 {
				tris = append(tris, tri(indices[i], indices[i+1], indices[i+2]))
			} else {
				tris = append(tris, tri(indices[i+1], indices[i], indices[i+2]))
			}
		}
	case gltfPrimitiveModeTriangleFan:
		for i := 1; i+1 < len(indices); i++ {
			tris = append(tris, tri(indices[0], indices[i], indices[i+1]))
		}
	}
	return tris, nil
}

// gltfRootNodes returns the root nodes of the default scene. Documents without scenes use
// every node that is nobody's child.
func gltfRootNodes(doc *gltfDocument) []int {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Nodes
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return roots
}

// gltfNodeLocal returns the node's local transform: its matrix, or T * R * S.
func gltfNodeLocal(node *gltfNode) mgl32.Mat4 {
	if node.Matrix != nil {
		return mgl32.Mat4(*node.Matrix)
	}
	m := mgl32.Ident4()
	if t := node.Translation; t != nil {
		m = mgl32.Translate3D(t[0], t[1], t[2])
	}
	if r := node.Rotation; r != nil {
		q := mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
		m = m.Mul4(q.Normalize().Mat4())
	}
	if s := node.Scale; s != nil {
		m = m.Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
	}
	return m
}
