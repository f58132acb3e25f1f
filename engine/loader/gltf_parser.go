package loader

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrInvalidGLTFVersion = errors.New("invalid glTF version: must be 2.x")
	ErrInvalidGLB         = errors.New("invalid GLB container")
	ErrMissingJSONChunk   = errors.New("GLB file missing JSON chunk")
	ErrInvalidBufferURI   = errors.New("invalid buffer URI")
	ErrBufferOverrun      = errors.New("accessor reads past the end of its buffer")
	ErrUnsupportedData    = errors.New("unsupported accessor data")
)

type gltfParserImpl struct {
	baseDir  string
	document *gltfDocument
	binChunk []byte
}

// gltfParser loads a glTF/GLB document and reads typed accessor data from its buffers.
type gltfParser interface {
	// Parse loads a .gltf or .glb file. GLB is detected by extension or magic number.
	Parse(path string) error

	// ParseReader parses a document from a stream. External buffer URIs resolve against
	// the working directory.
	ParseReader(r io.Reader, isGLB bool) error

	// Document returns the parsed document, or nil before a successful parse.
	Document() *gltfDocument

	// ReadPositions reads a VEC3 FLOAT accessor.
	ReadPositions(accessorIndex int) ([]mgl32.Vec3, error)

	// ReadIndices reads a SCALAR accessor of unsigned byte, short or int components.
	ReadIndices(accessorIndex int) ([]uint32, error)
}

var _ gltfParser = &gltfParserImpl{}

func newGLTFParser() gltfParser {
	return &gltfParserImpl{}
}

func (p *gltfParserImpl) Document() *gltfDocument {
	return p.document
}

func (p *gltfParserImpl) Parse(path string) error {
	p.baseDir = filepath.Dir(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	isGLB := strings.EqualFold(filepath.Ext(path), ".glb") ||
		(len(data) >= 4 && binary.LittleEndian.Uint32(data) == gltfGLBMagic)
	return p.parse(data, isGLB)
}

func (p *gltfParserImpl) ParseReader(r io.Reader, isGLB bool) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	return p.parse(data, isGLB)
}

func (p *gltfParserImpl) parse(data []byte, isGLB bool) error {
	jsonData := data
	if isGLB {
		var err error
		jsonData, p.binChunk, err = splitGLB(data)
		if err != nil {
			return err
		}
	}

	var doc gltfDocument
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("failed to parse glTF JSON: %w", err)
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return ErrInvalidGLTFVersion
	}
	if err := p.loadBuffers(&doc); err != nil {
		return fmt.Errorf("failed to load buffers: %w", err)
	}

	p.document = &doc
	return nil
}

// splitGLB returns the JSON and optional BIN chunk of a GLB container.
func splitGLB(data []byte) (jsonChunk, binChunk []byte, err error) {
	if len(data) < gltfGLBHeaderSize {
		return nil, nil, fmt.Errorf("%w: file too small", ErrInvalidGLB)
	}
	if binary.LittleEndian.Uint32(data[0:4]) != gltfGLBMagic {
		return nil, nil, fmt.Errorf("%w: bad magic", ErrInvalidGLB)
	}
	if binary.LittleEndian.Uint32(data[4:8]) != gltfGLBVersion {
		return nil, nil, fmt.Errorf("%w: unsupported version", ErrInvalidGLB)
	}

	rest := data[gltfGLBHeaderSize:]
	for len(rest) >= 8 {
		length := int(binary.LittleEndian.Uint32(rest[0:4]))
		kind := binary.LittleEndian.Uint32(rest[4:8])
		rest = rest[8:]
		if length > len(rest) {
			return nil, nil, fmt.Errorf("%w: truncated chunk", ErrInvalidGLB)
		}
		switch kind {
		case gltfGLBChunkJSON:
			jsonChunk = rest[:length]
		case gltfGLBChunkBIN:
			binChunk = rest[:length]
		}
		rest = rest[length:]
	}

	if jsonChunk == nil {
		return nil, nil, ErrMissingJSONChunk
	}
	return jsonChunk, binChunk, nil
}

func (p *gltfParserImpl) loadBuffers(doc *gltfDocument) error {
	for i := range doc.Buffers {
		buf := &doc.Buffers[i]

		switch {
		case buf.URI == "" && i == 0 && p.binChunk != nil:
			buf.Data = p.binChunk
		case buf.URI == "":
			return fmt.Errorf("buffer %d has no URI and no GLB binary chunk", i)
		case strings.HasPrefix(buf.URI, "data:"):
			data, err := decodeDataURI(buf.URI)
			if err != nil {
				return fmt.Errorf("buffer %d: %w", i, err)
			}
			buf.Data = data
		default:
			data, err := os.ReadFile(filepath.Join(p.baseDir, buf.URI))
			if err != nil {
				return fmt.Errorf("buffer %d: failed to load %q: %w", i, buf.URI, err)
			}
			buf.Data = data
		}

		if len(buf.Data) < buf.ByteLength {
			return fmt.Errorf("buffer %d: %w", i, ErrBufferOverrun)
		}
	}
	return nil
}

// decodeDataURI decodes data:[<mediatype>];base64,<data>.
func decodeDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, ErrInvalidBufferURI
	}
	if !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("%w: only base64 data URIs are supported", ErrInvalidBufferURI)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return data, nil
}

// elements returns the bytes of each accessor element, honouring bufferView stride.
func (p *gltfParserImpl) elements(accessorIndex, elementSize int) ([][]byte, error) {
	if p.document == nil {
		return nil, errors.New("no document loaded")
	}
	doc := p.document
	if accessorIndex < 0 || accessorIndex >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", accessorIndex)
	}
	acc := &doc.Accessors[accessorIndex]
	if acc.Sparse != nil {
		return nil, fmt.Errorf("%w: sparse accessor %d", ErrUnsupportedData, accessorIndex)
	}
	if acc.BufferView == nil || *acc.BufferView < 0 || *acc.BufferView >= len(doc.BufferViews) {
		return nil, fmt.Errorf("accessor %d has no valid bufferView", accessorIndex)
	}
	bv := &doc.BufferViews[*acc.BufferView]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("bufferView %d has no valid buffer", *acc.BufferView)
	}
	data := doc.Buffers[bv.Buffer].Data

	stride := elementSize
	if bv.ByteStride != nil && *bv.ByteStride > 0 {
		stride = *bv.ByteStride
	}
	start := bv.ByteOffset + acc.ByteOffset

	out := make([][]byte, acc.Count)
	for i := range out {
		off := start + i*stride
		if off < 0 || off+elementSize > len(data) {
			return nil, fmt.Errorf("accessor %d element %d: %w", accessorIndex, i, ErrBufferOverrun)
		}
		out[i] = data[off : off+elementSize]
	}
	return out, nil
}

func (p *gltfParserImpl) ReadPositions(accessorIndex int) ([]mgl32.Vec3, error) {
	if p.document == nil || accessorIndex < 0 || accessorIndex >= len(p.document.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", accessorIndex)
	}
	acc := &p.document.Accessors[accessorIndex]
	if acc.Type != gltfAccessorTypeVec3 || acc.ComponentType != gltfComponentTypeFloat {
		return nil, fmt.Errorf("%w: want VEC3 FLOAT, got %s %d", ErrUnsupportedData, acc.Type, acc.ComponentType)
	}

	elems, err := p.elements(accessorIndex, 12)
	if err != nil {
		return nil, err
	}
	out := make([]mgl32.Vec3, len(elems))
	for i, e := range elems {
		out[i] = mgl32.Vec3{
			math.Float32frombits(binary.LittleEndian.Uint32(e[0:4])),
			math.Float32frombits(binary.LittleEndian.Uint32(e[4:8])),
			math.Float32frombits(binary.LittleEndian.Uint32(e[8:12])),
		}
	}
	return out, nil
}

func (p *gltfParserImpl) ReadIndices(accessorIndex int) ([]uint32, error) {
	if p.document == nil || accessorIndex < 0 || accessorIndex >= len(p.document.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", accessorIndex)
	}
	acc := &p.document.Accessors[accessorIndex]
	if acc.Type != gltfAccessorTypeScalar {
		return nil, fmt.Errorf("%w: index accessor is %s", ErrUnsupportedData, acc.Type)
	}

	var size int
	switch acc.ComponentType {
	case gltfComponentTypeUnsignedByte:
		size = 1
	case gltfComponentTypeUnsignedShort:
		size = 2
	case gltfComponentTypeUnsignedInt:
		size = 4
	default:
		return nil, fmt.Errorf("%w: index component type %d", ErrUnsupportedData, acc.ComponentType)
	}

	elems, err := p.elements(accessorIndex, size)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, len(elems))
	for i, e := range elems {
		switch size {
		case 1:
			out[i] = uint32(e[0])
		case 2:
			out[i] = uint32(binary.LittleEndian.Uint16(e))
		case 4:
			out[i] = binary.LittleEndian.Uint32(e)
		}
	}
	return out, nil
}
