package loader

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-nav/engine/collision"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quadPositions = []mgl32.Vec3{{-1, 0, -1}, {1, 0, -1}, {1, 0, 1}, {-1, 0, 1}}
var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

// geometry packs positions followed by indices, padded to 4 bytes.
func geometry(t *testing.T) (data []byte, posLen, idxLen int) {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, binary.Write(buf, binary.LittleEndian, quadPositions))
	posLen = buf.Len()
	require.NoError(t, binary.Write(buf, binary.LittleEndian, quadIndices))
	idxLen = buf.Len() - posLen
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
	return buf.Bytes(), posLen, idxLen
}

// fixtureDoc describes a scene with a root node translated by (10, 0, 0) holding:
//   - "Ground": mesh "COL_floor", translated to y=2
//   - "Decor": mesh "Statue", matrix scale 2 and y=5
//
// Both meshes share the unit quad geometry. bufferURI is empty for GLB.
func fixtureDoc(t *testing.T, bufferURI string, byteLength, posLen, idxLen int) []byte {
	t.Helper()
	buffer := map[string]any{"byteLength": byteLength}
	if bufferURI != "" {
		buffer["uri"] = bufferURI
	}
	prim := map[string]any{"attributes": map[string]int{"POSITION": 0}, "indices": 1}
	doc := map[string]any{
		"asset":  map[string]any{"version": "2.0"},
		"scene":  0,
		"scenes": []any{map[string]any{"name": "campus", "nodes": []int{2}}},
		"nodes": []any{
			map[string]any{"name": "Ground", "mesh": 0, "translation": []float32{0, 2, 0}},
			map[string]any{"name": "Decor", "mesh": 1, "matrix": []float32{2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 2, 0, 0, 5, 0, 1}},
			map[string]any{"name": "Root", "children": []int{0, 1}, "translation": []float32{10, 0, 0}},
		},
		"meshes": []any{
			map[string]any{"name": "COL_floor", "primitives": []any{prim}},
			map[string]any{"name": "Statue", "primitives": []any{prim}},
		},
		"accessors": []any{
			map[string]any{"bufferView": 0, "componentType": gltfComponentTypeFloat, "count": len(quadPositions), "type": "VEC3"},
			map[string]any{"bufferView": 1, "componentType": gltfComponentTypeUnsignedShort, "count": len(quadIndices), "type": "SCALAR"},
		},
		"bufferViews": []any{
			map[string]any{"buffer": 0, "byteOffset": 0, "byteLength": posLen},
			map[string]any{"buffer": 0, "byteOffset": posLen, "byteLength": idxLen},
		},
		"buffers": []any{buffer},
	}
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	return out
}

func writeGLTF(t *testing.T, dir, name string) string {
	t.Helper()
	data, posLen, idxLen := geometry(t)
	uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(data)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, fixtureDoc(t, uri, len(data), posLen, idxLen), 0o644))
	return path
}

func buildGLB(t *testing.T) []byte {
	t.Helper()
	bin, posLen, idxLen := geometry(t)
	js := fixtureDoc(t, "", len(bin), posLen, idxLen)
	for len(js)%4 != 0 {
		js = append(js, ' ')
	}

	out := new(bytes.Buffer)
	total := gltfGLBHeaderSize + 8 + len(js) + 8 + len(bin)
	for _, v := range []uint32{gltfGLBMagic, gltfGLBVersion, uint32(total), uint32(len(js)), gltfGLBChunkJSON} {
		require.NoError(t, binary.Write(out, binary.LittleEndian, v))
	}
	out.Write(js)
	for _, v := range []uint32{uint32(len(bin)), gltfGLBChunkBIN} {
		require.NoError(t, binary.Write(out, binary.LittleEndian, v))
	}
	out.Write(bin)
	return out.Bytes()
}

func surfaceByName(t *testing.T, surfaces []collision.Surface, name string) collision.Surface {
	t.Helper()
	for _, s := range surfaces {
		if s.Name == name {
			return s
		}
	}
	require.Failf(t, "surface not found", "%q", name)
	return collision.Surface{}
}

func TestLoadGLTFAppliesHierarchy(t *testing.T) {
	path := writeGLTF(t, t.TempDir(), "campus.gltf")
	l := NewLoader()

	world, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "campus", world.Name)
	require.Len(t, world.Surfaces, 2)
	assert.Equal(t, 4, world.TriangleCount())

	ground := surfaceByName(t, world.Surfaces, "Ground")
	assert.Equal(t, mgl32.Vec3{9, 2, -1}, ground.Min)
	assert.Equal(t, mgl32.Vec3{11, 2, 1}, ground.Max)

	decor := surfaceByName(t, world.Surfaces, "Decor")
	assert.Equal(t, mgl32.Vec3{8, 5, -2}, decor.Min)
	assert.Equal(t, mgl32.Vec3{12, 5, 2}, decor.Max)

	again, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, world, again, "second load is served from the cache")
	assert.Same(t, world, l.Get(path))
}

func TestMeshPrefixFilter(t *testing.T) {
	path := writeGLTF(t, t.TempDir(), "campus.gltf")
	world, err := NewLoader(WithMeshPrefix("COL_")).Load(path)
	require.NoError(t, err)
	require.Len(t, world.Surfaces, 1)
	assert.Equal(t, "Ground", world.Surfaces[0].Name)

	hit, ok := collision.Cast(collision.Down(mgl32.Vec3{10, 10, 0}), world.Surfaces)
	require.True(t, ok)
	assert.InDelta(t, 2, hit.Point.Y(), 1e-5, "decor is filtered out")
}

func TestLoadGLB(t *testing.T) {
	glb := buildGLB(t)

	world, err := NewLoader().LoadReader("mem", bytes.NewReader(glb), true)
	require.NoError(t, err)
	assert.Len(t, world.Surfaces, 2)

	path := filepath.Join(t.TempDir(), "campus.glb")
	require.NoError(t, os.WriteFile(path, glb, 0o644))
	world, err = NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, world.TriangleCount())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader()

	_, err := l.Load(filepath.Join(dir, "campus.obj"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = l.Load(filepath.Join(dir, "missing.gltf"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = l.LoadReader("v1", bytes.NewReader([]byte(`{"asset":{"version":"1.0"}}`)), false)
	assert.ErrorIs(t, err, ErrInvalidGLTFVersion)

	_, err = l.LoadReader("junk", bytes.NewReader([]byte("nope, not a glb")), true)
	assert.ErrorIs(t, err, ErrInvalidGLB)

	data, posLen, idxLen := geometry(t)
	short := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(data[:posLen/2])
	_, err = l.LoadReader("short", bytes.NewReader(fixtureDoc(t, short, posLen/2, posLen, idxLen)), false)
	assert.ErrorIs(t, err, ErrBufferOverrun)
}

func TestLoadFilesParallel(t *testing.T) {
	dir := t.TempDir()
	a := writeGLTF(t, dir, "a.gltf")
	b := writeGLTF(t, dir, "b.gltf")
	l := NewLoader(WithWorkers(2), WithMeshPrefix("COL_"))

	surfaces, err := l.LoadFiles(context.Background(), []string{a, b})
	require.NoError(t, err)
	assert.Len(t, surfaces, 2)

	_, err = l.LoadFiles(context.Background(), []string{a, filepath.Join(dir, "missing.glb")})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewLoader().LoadFiles(ctx, []string{a})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadAsyncPublishes(t *testing.T) {
	path := writeGLTF(t, t.TempDir(), "campus.gltf")
	l := NewLoader()
	set := collision.NewSet()

	done := make(chan error, 1)
	l.LoadAsync(context.Background(), []string{path}, set, func(err error) { done <- err })

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("async load did not finish")
	}
	assert.True(t, set.Loaded())
	assert.Equal(t, 4, set.TriangleCount())
}

func TestLoadAsyncFailureKeepsSetEmpty(t *testing.T) {
	l := NewLoader()
	set := collision.NewSet()

	done := make(chan error, 1)
	l.LoadAsync(context.Background(), []string{filepath.Join(t.TempDir(), "missing.gltf")}, set, func(err error) { done <- err })

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("async load did not finish")
	}
	assert.False(t, set.Loaded())
}

func TestCachedWorld(t *testing.T) {
	w := &ImportedWorld{Name: "preset", Surfaces: []collision.Surface{collision.NewSurface("s", nil)}}
	got, err := NewLoader(WithWorld("preset.glb", w)).Load("preset.glb")
	require.NoError(t, err)
	assert.Same(t, w, got)
}

func TestNodeLocalRotation(t *testing.T) {
	s := float32(math.Sqrt2 / 2)
	node := &gltfNode{Rotation: &[4]float32{0, s, 0, s}}
	p := gltfNodeLocal(node).Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	assert.InDelta(t, -1, p.X(), 1e-5)
	assert.InDelta(t, 0, p.Z(), 1e-5)
}

func TestTriangleStripAndFan(t *testing.T) {
	data, posLen, _ := geometry(t)
	for _, mode := range []int{gltfPrimitiveModeTriangleStrip, gltfPrimitiveModeTriangleFan} {
		p := &gltfParserImpl{document: &gltfDocument{
			Asset:       gltfAsset{Version: "2.0"},
			Nodes:       []gltfNode{{Name: "strip", Mesh: intPtr(0)}},
			Meshes:      []gltfMesh{{Primitives: []gltfPrimitive{{Attributes: map[string]int{"POSITION": 0}, Mode: intPtr(mode)}}}},
			Accessors:   []gltfAccessor{{BufferView: intPtr(0), ComponentType: gltfComponentTypeFloat, Count: 4, Type: "VEC3"}},
			BufferViews: []gltfBufferView{{Buffer: 0, ByteLength: posLen}},
			Buffers:     []gltfBuffer{{ByteLength: len(data), Data: data}},
		}}
		surfaces, err := newGLTFSurfaceExtractor(p, "").ExtractSurfaces()
		require.NoError(t, err)
		require.Len(t, surfaces, 1)
		assert.Len(t, surfaces[0].Triangles, 2, "mode %d", mode)
	}
}

func intPtr(v int) *int { return &v }
