package scene

import "math"

// Vec3 is a point or direction in scene units.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// RGB is a linear color triple in [0,1].
type RGB struct {
	R, G, B float64
}

// Material carries the two uniforms the translucency program consumes.
// OpacityMultiplier values above the shader's solid threshold push the
// shading toward fully solid paint.
type Material struct {
	Color             RGB
	OpacityMultiplier float64
}

// Sphere is a bounding volume used for culling.
type Sphere struct {
	Center Vec3
	Radius float64
}

// Mesh holds CPU-side vertex data in the exact layout the translucency
// program expects: position, alpha, side and progress per vertex, plus a
// triangle index buffer. The backing slices are allocated once and rewritten
// in place; Dirty marks them for re-upload.
type Mesh struct {
	Positions []float32 // xyz per vertex
	Alphas    []float32
	Sides     []float32
	Progress  []float32
	Indices   []uint32

	Material Material
	Bounds   Sphere
	Visible  bool
	Dirty    bool
}

// NewMesh preallocates buffers for vertexCount vertices and indexCount
// indices.
func NewMesh(vertexCount, indexCount int, material Material) *Mesh {
	return &Mesh{
		Positions: make([]float32, vertexCount*3),
		Alphas:    make([]float32, vertexCount),
		Sides:     make([]float32, vertexCount),
		Progress:  make([]float32, vertexCount),
		Indices:   make([]uint32, indexCount),
		Material:  material,
		Visible:   true,
		Dirty:     true,
	}
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// RecomputeBounds refits the bounding sphere to the current positions.
func (m *Mesh) RecomputeBounds() {
	if len(m.Positions) == 0 {
		m.Bounds = Sphere{}
		return
	}

	minX, minY, minZ := math.Inf(1), math.Inf(1), math.Inf(1)
	maxX, maxY, maxZ := math.Inf(-1), math.Inf(-1), math.Inf(-1)
	for i := 0; i+2 < len(m.Positions); i += 3 {
		x := float64(m.Positions[i])
		y := float64(m.Positions[i+1])
		z := float64(m.Positions[i+2])
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		minZ = math.Min(minZ, z)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
		maxZ = math.Max(maxZ, z)
	}

	center := Vec3{(minX + maxX) / 2, (minY + maxY) / 2, (minZ + maxZ) / 2}
	dx := maxX - center.X
	dy := maxY - center.Y
	dz := maxZ - center.Z
	m.Bounds = Sphere{
		Center: center,
		Radius: math.Sqrt(dx*dx + dy*dy + dz*dz),
	}
}

// Node is a container transform in the retained scene graph. Rotation is
// about the z axis; Scale is uniform.
type Node struct {
	Position Vec3
	Rotation float64
	Scale    float64
	Visible  bool

	Meshes   []*Mesh
	Children []*Node
}

func NewNode() *Node {
	return &Node{Scale: 1, Visible: true}
}

func (n *Node) Add(child *Node) {
	n.Children = append(n.Children, child)
}

func (n *Node) AddMesh(m *Mesh) {
	n.Meshes = append(n.Meshes, m)
}

// EachMesh visits every mesh in the subtree, visible or not.
func (n *Node) EachMesh(visit func(*Mesh)) {
	for _, m := range n.Meshes {
		visit(m)
	}
	for _, child := range n.Children {
		child.EachMesh(visit)
	}
}

// Walk visits every visible node depth-first with its accumulated world
// transform. Hidden subtrees are skipped entirely.
func (n *Node) Walk(visit func(node *Node, worldPos Vec3, worldRot, worldScale float64)) {
	n.walk(Vec3{}, 0, 1, visit)
}

func (n *Node) walk(pos Vec3, rot, scale float64, visit func(*Node, Vec3, float64, float64)) {
	if !n.Visible {
		return
	}

	sin, cos := math.Sincos(rot)
	world := pos.Add(Vec3{
		X: scale * (n.Position.X*cos - n.Position.Y*sin),
		Y: scale * (n.Position.X*sin + n.Position.Y*cos),
		Z: scale * n.Position.Z,
	})
	worldRot := rot + n.Rotation
	worldScale := scale * n.Scale

	visit(n, world, worldRot, worldScale)
	for _, child := range n.Children {
		child.walk(world, worldRot, worldScale, visit)
	}
}
