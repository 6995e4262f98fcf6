package mesh

import (
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/flyview/pkg/math"
)

// LoadGLTF reads a .gltf or .glb file and merges every triangle primitive of
// the default scene into one mesh in scene space.
func LoadGLTF(path string) (*Data, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading gltf %s", path)
	}
	d, err := FromGLTF(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "building mesh from %s", path)
	}
	return d, nil
}

// FromGLTF converts a decoded glTF document.
func FromGLTF(doc *gltf.Document) (*Data, error) {
	out := &Data{}

	var visit func(node int, parent math.Mat4, depth int) error
	visit = func(node int, parent math.Mat4, depth int) error {
		if node < 0 || node >= len(doc.Nodes) || depth > 64 {
			return errors.Errorf("invalid node %d", node)
		}
		n := doc.Nodes[node]
		world := parent.Mul(nodeMatrix(n))
		if n.Mesh != nil {
			if err := appendMesh(doc, int(*n.Mesh), world, out); err != nil {
				return errors.Wrapf(err, "node %q", n.Name)
			}
		}
		for _, c := range n.Children {
			if err := visit(int(c), world, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	switch {
	case len(doc.Scenes) > 0:
		scene := 0
		if doc.Scene != nil {
			scene = int(*doc.Scene)
		}
		if scene >= len(doc.Scenes) {
			return nil, errors.Errorf("default scene %d out of range", scene)
		}
		for _, n := range doc.Scenes[scene].Nodes {
			if err := visit(int(n), math.Identity(), 0); err != nil {
				return nil, err
			}
		}
	default:
		for i := range doc.Meshes {
			if err := appendMesh(doc, i, math.Identity(), out); err != nil {
				return nil, err
			}
		}
	}

	if len(out.Indices) == 0 {
		return nil, errors.New("no triangles")
	}
	return out, nil
}

func nodeMatrix(n *gltf.Node) math.Mat4 {
	var m math.Mat4
	for i, v := range n.Matrix {
		m[i] = float32(v)
	}
	if m != (math.Mat4{}) && m != math.Identity() {
		return m
	}
	s := math.V3([3]float32{float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2])})
	if s.IsZero() {
		s = math.Vec3{X: 1, Y: 1, Z: 1}
	}
	t := math.V3([3]float32{float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2])})
	r := math.Q4([4]float32{float32(n.Rotation[0]), float32(n.Rotation[1]), float32(n.Rotation[2]), float32(n.Rotation[3])})
	return math.Compose(t, r, s)
}

func appendMesh(doc *gltf.Document, index int, world math.Mat4, out *Data) error {
	if index < 0 || index >= len(doc.Meshes) {
		return errors.Errorf("mesh %d out of range", index)
	}
	m := doc.Meshes[index]
	normalMatrix := world.NormalMatrix()

	for pi, p := range m.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := p.Attributes[gltf.POSITION]
		if !ok {
			return errors.Errorf("mesh %q primitive %d has no positions", m.Name, pi)
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return errors.Wrapf(err, "reading mesh %q positions", m.Name)
		}

		var normals [][3]float32
		if idx, ok := p.Attributes[gltf.NORMAL]; ok {
			if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
				return errors.Wrapf(err, "reading mesh %q normals", m.Name)
			}
		}
		var uvs [][2]float32
		if idx, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
				return errors.Wrapf(err, "reading mesh %q texcoords", m.Name)
			}
		}

		var indices []uint32
		if p.Indices != nil {
			if indices, err = modeler.ReadIndices(doc, doc.Accessors[*p.Indices], nil); err != nil {
				return errors.Wrapf(err, "reading mesh %q indices", m.Name)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		prim := &Data{Vertices: make([]Vertex, len(positions))}
		for i, pos := range positions {
			v := &prim.Vertices[i]
			v.Position = world.TransformPoint(math.V3(pos)).Array()
			if i < len(normals) {
				v.Normal = normalize(mulMat3(normalMatrix, normals[i]))
			}
			if i < len(uvs) {
				// glTF puts the UV origin top-left.
				v.TexCoord = [2]float32{uvs[i][0], 1 - uvs[i][1]}
			}
		}
		for _, idx := range indices {
			if int(idx) >= len(positions) {
				return errors.Errorf("mesh %q primitive %d index %d out of range", m.Name, pi, idx)
			}
		}
		prim.Indices = indices
		if len(normals) == 0 {
			prim.ComputeNormals()
		}
		prim.ComputeTangents()
		out.Append(prim)
	}
	return nil
}

func mulMat3(m [9]float32, v [3]float32) [3]float32 {
	return [3]float32{
		m[0]*v[0] + m[3]*v[1] + m[6]*v[2],
		m[1]*v[0] + m[4]*v[1] + m[7]*v[2],
		m[2]*v[0] + m[5]*v[1] + m[8]*v[2],
	}
}
