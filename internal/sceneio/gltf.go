// Package sceneio loads a scene tree, source point, and receiver node out of
// a glTF 2.0 file (spec §4.L). The node graph's own hierarchy is ignored:
// every reflector mesh, the source, and the receiver are flattened directly
// under a single synthetic root, matching how the rest of the engine expects
// to find them.
package sceneio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/gregzanch/rirtrace/internal/acoustics"
	"github.com/gregzanch/rirtrace/internal/geom"
	"github.com/gregzanch/rirtrace/internal/scene"
)

// Node type codes carried in each glTF node's extras object (spec §9 "Scene
// file format").
const (
	nodeTypeReflector = 1
	nodeTypeSource    = 2
	nodeTypeReceiver  = 3
)

const defaultReceiverRadius = 0.5

// Scene is everything the tracer needs out of a loaded file: the reflector
// tree plus the source point and receiver node id (spec §4.L).
type Scene struct {
	Root     *scene.Node
	Source   geom.Vec3
	Receiver uint32
	MaxOrder uint32
	RayCount uint64
}

type sceneExtras struct {
	MaxOrder *uint32 `json:"max_order"`
	RayCount *uint64 `json:"ray_count"`
}

type nodeExtras struct {
	NodeType *int     `json:"node_type"`
	Active   *int     `json:"active"`
	Radius   *float64 `json:"radius"`
}

type materialExtras struct {
	Abs63    *float64 `json:"abs63"`
	Abs125   *float64 `json:"abs125"`
	Abs250   *float64 `json:"abs250"`
	Abs500   *float64 `json:"abs500"`
	Abs1000  *float64 `json:"abs1000"`
	Abs2000  *float64 `json:"abs2000"`
	Abs4000  *float64 `json:"abs4000"`
	Abs8000  *float64 `json:"abs8000"`
	Abs16000 *float64 `json:"abs16000"`
}

// Load reads and parses a glTF file from disk into a Scene.
func Load(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sceneio: opening %s: %w", path, err)
	}
	return FromDocument(doc)
}

// LoadFromReader decodes a self-contained (binary, buffers-embedded) glTF
// document from r, with no filesystem access — used by the io entry point,
// which streams a .glb in on stdin (spec §4.L).
func LoadFromReader(r io.Reader) (*Scene, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("sceneio: decoding: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument builds a Scene from an already-parsed glTF document, applying
// the node-type and extras conventions described in spec §9.
func FromDocument(doc *gltf.Document) (*Scene, error) {
	if doc.Scene == nil || int(*doc.Scene) >= len(doc.Scenes) {
		return nil, ErrNoDefaultScene
	}
	defaultScene := doc.Scenes[*doc.Scene]

	var sx sceneExtras
	if err := decodeExtras(defaultScene.Extras, &sx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingSceneExtras, err)
	}
	maxOrder := uint32(50)
	if sx.MaxOrder != nil {
		maxOrder = *sx.MaxOrder
	}
	rayCount := uint64(10000)
	if sx.RayCount != nil {
		rayCount = *sx.RayCount
	}

	var nextID uint32 = 1
	newID := func() uint32 {
		id := nextID
		nextID++
		return id
	}

	root := scene.NewNode(0, "root")
	var source *geom.Vec3
	var receiver *uint32

	for _, node := range doc.Nodes {
		var nx nodeExtras
		if err := decodeExtras(node.Extras, &nx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingNodeExtras, err)
		}
		if nx.Active == nil || *nx.Active == 0 {
			continue
		}
		if nx.NodeType == nil {
			continue
		}

		switch *nx.NodeType {
		case nodeTypeReflector:
			if node.Mesh == nil {
				continue
			}
			mesh := doc.Meshes[*node.Mesh]
			children, err := meshToNodes(doc, mesh, newID)
			if err != nil {
				continue
			}
			for _, child := range children {
				root.AddChild(child)
			}

		case nodeTypeSource:
			t := node.Translation
			p := geom.Vec3{X: float64(t[0]), Y: float64(t[1]), Z: float64(t[2])}
			source = &p

		case nodeTypeReceiver:
			radius := defaultReceiverRadius
			if nx.Radius != nil {
				radius = *nx.Radius
			}
			t := node.Translation
			receiverNode := scene.NewNode(newID(), "receiver")
			receiverNode.Primitive = geom.Sphere{}
			receiverNode.Scale(geom.Vec3{X: radius, Y: radius, Z: radius})
			receiverNode.Translate(geom.Vec3{X: float64(t[0]), Y: float64(t[1]), Z: float64(t[2])})
			root.AddChild(receiverNode)
			id := receiverNode.ID
			receiver = &id

		default:
			continue
		}
	}

	if source == nil {
		return nil, ErrMissingSource
	}
	if receiver == nil {
		return nil, ErrMissingReceiver
	}

	return &Scene{
		Root:     root,
		Source:   *source,
		Receiver: *receiver,
		MaxOrder: maxOrder,
		RayCount: rayCount,
	}, nil
}

// meshToNodes turns every primitive of a glTF mesh into a child scene.Node,
// reading its vertex/index buffers and, if present, its material's
// per-octave-band absorption extras (spec §9 "Material extras").
func meshToNodes(doc *gltf.Document, mesh *gltf.Mesh, newID func() uint32) ([]*scene.Node, error) {
	nodes := make([]*scene.Node, 0, len(mesh.Primitives))

	for _, primitive := range mesh.Primitives {
		posIndex, ok := primitive.Attributes["POSITION"]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIndex], nil)
		if err != nil {
			continue
		}
		if primitive.Indices == nil {
			continue
		}
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
		if err != nil {
			continue
		}

		vertices := make([]geom.Vec3, len(positions))
		for i, p := range positions {
			vertices[i] = geom.Vec3{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
		}

		node := scene.NewNode(newID(), mesh.Name)
		node.Primitive = geom.NewMesh(vertices, indices)

		if primitive.Material != nil {
			node.Material = materialFromExtras(doc.Materials[*primitive.Material].Extras)
		}

		nodes = append(nodes, node)
	}

	return nodes, nil
}

func materialFromExtras(extras gltf.Extras) acoustics.Material {
	var mx materialExtras
	_ = decodeExtras(extras, &mx) // missing/malformed material extras fall back to the 0.1 defaults below

	abs := []float64{
		orDefault(mx.Abs63, 0.1),
		orDefault(mx.Abs125, 0.1),
		orDefault(mx.Abs250, 0.1),
		orDefault(mx.Abs500, 0.1),
		orDefault(mx.Abs1000, 0.1),
		orDefault(mx.Abs2000, 0.1),
		orDefault(mx.Abs4000, 0.1),
		orDefault(mx.Abs8000, 0.1),
		orDefault(mx.Abs16000, 0.1),
	}
	return acoustics.Material{Frequencies: acoustics.WholeOctave, Absorption: abs}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func decodeExtras(extras gltf.Extras, target interface{}) error {
	if extras == nil {
		return fmt.Errorf("no extras present")
	}
	raw, err := json.Marshal(extras)
	if err != nil {
		return fmt.Errorf("re-encoding extras: %w", err)
	}
	return json.Unmarshal(raw, target)
}
