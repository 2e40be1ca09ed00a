package mesh

const floatSize = 4

// Attribute is one float32 vertex attribute, e.g. a vec3 position at location 0.
type Attribute struct {
	Location uint32
	Size     int32 // number of float components, 1..4
}

// Layout describes tightly interleaved float32 vertices.
type Layout []Attribute

// Stride is the size in bytes of one vertex.
func (l Layout) Stride() int32 {
	var n int32
	for _, a := range l {
		n += a.Size
	}
	return n * floatSize
}

// Offset is the byte offset of attribute i within a vertex.
func (l Layout) Offset(i int) int {
	var n int32
	for _, a := range l[:i] {
		n += a.Size
	}
	return int(n) * floatSize
}

// Components is the number of floats per vertex.
func (l Layout) Components() int {
	return int(l.Stride() / floatSize)
}

var (
	// PositionLayout: vec3 position.
	PositionLayout = Layout{{Location: 0, Size: 3}}
	// ColorLayout: vec3 position, vec3 colour.
	ColorLayout = Layout{{Location: 0, Size: 3}, {Location: 1, Size: 3}}
	// TexturedLayout: vec3 position, vec3 colour, vec2 texture coordinates.
	TexturedLayout = Layout{{Location: 0, Size: 3}, {Location: 1, Size: 3}, {Location: 2, Size: 2}}
)

// Triangle is a single triangle in normalized device coordinates.
var Triangle = []float32{
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
	0.0, 0.5, 0.0,
}

// ColoredTriangle carries red, green and blue corners.
var ColoredTriangle = []float32{
	// positions      // colors
	-0.5, -0.5, 0.0, 1.0, 0.0, 0.0, // bottom left
	0.5, -0.5, 0.0, 0.0, 1.0, 0.0, // bottom right
	0.0, 0.5, 0.0, 0.0, 0.0, 1.0, // top
}

// TexturedQuad is a rectangle drawn as two indexed triangles.
var TexturedQuad = []float32{
	// positions      // colors       // texture coords
	0.5, 0.5, 0.0, 1.0, 0.0, 0.0, 1.0, 1.0, // top right
	0.5, -0.5, 0.0, 0.0, 1.0, 0.0, 1.0, 0.0, // bottom right
	-0.5, -0.5, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0, // bottom left
	-0.5, 0.5, 0.0, 1.0, 1.0, 0.0, 0.0, 1.0, // top left
}

var TexturedQuadIndices = []uint32{
	0, 1, 3, // first triangle
	1, 2, 3, // second triangle
}
