// Package mesh packs flattened vpath polylines into vertex and index data
// ready for upload to a WebGPU vertex buffer.
//
// Vertices are two float32 coordinates at shader location 0, indices are
// uint16. Outline produces a line list for the polyline edges; Fan produces
// a triangle list that fills a convex polygon.
package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/vpath"
)

// VertexStride is the size of one Vertex in bytes.
const VertexStride = 8

// MaxVertices is the largest vertex count addressable by uint16 indices.
const MaxVertices = math.MaxUint16 + 1

var (
	// ErrTooManyVertices is returned when a mesh would need indices beyond
	// uint16.
	ErrTooManyVertices = errors.New("mesh: vertex count exceeds uint16 index range")

	// ErrNonFinite is returned for points that are NaN or overflow float32.
	ErrNonFinite = errors.New("mesh: non-finite vertex position")

	// ErrDegenerate is returned by Fan for polygons with fewer than three
	// distinct vertices.
	ErrDegenerate = errors.New("mesh: polygon needs at least three vertices")

	// ErrNotConvex is returned by Fan for polygons that turn both ways.
	ErrNotConvex = errors.New("mesh: polygon is not convex")
)

// Vertex is the GPU vertex format.
type Vertex struct {
	Position [2]float32
}

// Mesh is indexed geometry with its primitive topology.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
	Topology gputypes.PrimitiveTopology
}

// VertexLayout describes Vertex for a render pipeline.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
		},
	}
}

// Primitive returns the primitive state for drawing m.
func (m *Mesh) Primitive() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology: m.Topology,
		CullMode: gputypes.CullModeNone,
	}
}

// IndexFormat returns the index element format of every Mesh.
func (m *Mesh) IndexFormat() gputypes.IndexFormat {
	return gputypes.IndexFormatUint16
}

// VertexUsage returns the buffer usage for uploading VertexBytes.
func VertexUsage() gputypes.BufferUsage {
	return gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
}

// IndexUsage returns the buffer usage for uploading IndexBytes.
func IndexUsage() gputypes.BufferUsage {
	return gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst
}

// VertexBytes returns the vertices in little-endian buffer layout.
func (m *Mesh) VertexBytes() []byte {
	buf := make([]byte, 0, len(m.Vertices)*VertexStride)
	for _, v := range m.Vertices {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v.Position[0]))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v.Position[1]))
	}
	return buf
}

// IndexBytes returns the indices in little-endian buffer layout, padded
// to a multiple of four bytes as buffer writes require.
func (m *Mesh) IndexBytes() []byte {
	buf := make([]byte, 0, (len(m.Indices)*2+3)&^3)
	for _, i := range m.Indices {
		buf = binary.LittleEndian.AppendUint16(buf, i)
	}
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	return buf
}

// Bounds returns the minimum and maximum vertex coordinates. ok is false
// for an empty mesh.
func (m *Mesh) Bounds() (lo, hi [2]float32, ok bool) {
	if len(m.Vertices) == 0 {
		return lo, hi, false
	}
	lo, hi = m.Vertices[0].Position, m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		for k := range 2 {
			lo[k] = min(lo[k], v.Position[k])
			hi[k] = max(hi[k], v.Position[k])
		}
	}
	return lo, hi, true
}

// ToClipSpace maps pixel coordinates in a width×height viewport (origin
// top-left, Y down) to normalized device coordinates in place.
func (m *Mesh) ToClipSpace(width, height float32) {
	for i := range m.Vertices {
		p := &m.Vertices[i].Position
		p[0] = p[0]/width*2 - 1
		p[1] = 1 - p[1]/height*2
	}
}

// Outline builds a line list with one line per polyline edge, including
// the closing edge of closed polylines.
func Outline(pls []vpath.Polyline) (*Mesh, error) {
	m := &Mesh{Topology: gputypes.PrimitiveTopologyLineList}
	for _, pl := range pls {
		n := len(pl.Points)
		if n < 2 {
			continue
		}
		base := len(m.Vertices)
		if base+n > MaxVertices {
			return nil, fmt.Errorf("%w: %d", ErrTooManyVertices, base+n)
		}
		for _, p := range pl.Points {
			v, err := vertex(p)
			if err != nil {
				return nil, err
			}
			m.Vertices = append(m.Vertices, v)
		}
		for i := 1; i < n; i++ {
			m.Indices = append(m.Indices, uint16(base+i-1), uint16(base+i))
		}
		if pl.Closed && n > 2 {
			m.Indices = append(m.Indices, uint16(base+n-1), uint16(base))
		}
	}
	return m, nil
}

// Fan triangulates a convex polygon as a fan around its last vertex. A
// repeated closing point is ignored. Convexity is checked on the float32
// vertices that will be uploaded.
func Fan(pl vpath.Polyline) (*Mesh, error) {
	pts := pl.Points
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	n := len(pts)
	if n < 3 {
		return nil, ErrDegenerate
	}
	if n > MaxVertices {
		return nil, fmt.Errorf("%w: %d", ErrTooManyVertices, n)
	}

	m := &Mesh{
		Vertices: make([]Vertex, 0, n),
		Indices:  make([]uint16, 0, 3*(n-2)),
		Topology: gputypes.PrimitiveTopologyTriangleList,
	}
	for _, p := range pts {
		v, err := vertex(p)
		if err != nil {
			return nil, err
		}
		m.Vertices = append(m.Vertices, v)
	}
	if !convex(m.Vertices) {
		return nil, ErrNotConvex
	}
	apex := uint16(n - 1)
	for i := range n - 2 {
		m.Indices = append(m.Indices, uint16(i), uint16(i+1), apex)
	}
	return m, nil
}

// Pentagon returns a filled regular pentagon in normalized device
// coordinates, useful as a pipeline smoke test.
func Pentagon() *Mesh {
	return &Mesh{
		Vertices: []Vertex{
			{Position: [2]float32{-0.0868241, 0.49240386}},
			{Position: [2]float32{-0.49513406, 0.06958647}},
			{Position: [2]float32{-0.21918549, -0.44939706}},
			{Position: [2]float32{0.35966998, -0.3473291}},
			{Position: [2]float32{0.44147372, 0.2347359}},
		},
		Indices:  []uint16{0, 1, 4, 1, 2, 4, 2, 3, 4},
		Topology: gputypes.PrimitiveTopologyTriangleList,
	}
}

func vertex(p vpath.Point) (Vertex, error) {
	x, y := float32(p.X), float32(p.Y)
	if !finite32(x) || !finite32(y) {
		return Vertex{}, fmt.Errorf("%w: (%g, %g)", ErrNonFinite, p.X, p.Y)
	}
	return Vertex{Position: [2]float32{x, y}}, nil
}

// convexEpsilon is the relative cross product below which a corner counts
// as straight.
const convexEpsilon = 1e-5

// convex reports whether every corner of the closed polygon vs turns the
// same way. Straight corners are ignored.
func convex(vs []Vertex) bool {
	n := len(vs)
	var seen, negative bool
	for i := range n {
		a, b, c := vs[i].Position, vs[(i+1)%n].Position, vs[(i+2)%n].Position
		e1x, e1y := b[0]-a[0], b[1]-a[1]
		e2x, e2y := c[0]-b[0], c[1]-b[1]
		cross := e1x*e2y - e1y*e2x
		if math32.Abs(cross) <= convexEpsilon*math32.Hypot(e1x, e1y)*math32.Hypot(e2x, e2y) {
			continue
		}
		if !seen {
			seen, negative = true, math32.Signbit(cross)
		} else if math32.Signbit(cross) != negative {
			return false
		}
	}
	return true
}

func finite32(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
