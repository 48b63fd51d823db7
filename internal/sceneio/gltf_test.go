package sceneio

import (
	"testing"

	"github.com/qmuntal/gltf"
)

func u32(v uint32) *uint32 { return &v }

func baseDocument(sceneExtras map[string]interface{}) *gltf.Document {
	return &gltf.Document{
		Scene: u32(0),
		Scenes: []*gltf.Scene{
			{Nodes: []uint32{0, 1}, Extras: sceneExtras},
		},
	}
}

func TestFromDocumentRequiresDefaultScene(t *testing.T) {
	doc := &gltf.Document{}
	if _, err := FromDocument(doc); err != ErrNoDefaultScene {
		t.Errorf("got %v, want ErrNoDefaultScene", err)
	}
}

func TestFromDocumentRequiresSceneExtras(t *testing.T) {
	doc := &gltf.Document{
		Scene:  u32(0),
		Scenes: []*gltf.Scene{{}},
	}
	if _, err := FromDocument(doc); err == nil {
		t.Errorf("expected an error for a default scene with no extras")
	}
}

func TestFromDocumentBuildsSourceAndReceiver(t *testing.T) {
	doc := baseDocument(map[string]interface{}{"max_order": 12, "ray_count": 500})
	doc.Nodes = []*gltf.Node{
		{
			Translation: [3]float32{1, 2, 3},
			Extras:      map[string]interface{}{"node_type": 2, "active": 1},
		},
		{
			Translation: [3]float32{4, 5, 6},
			Extras:      map[string]interface{}{"node_type": 3, "active": 1, "radius": 0.25},
		},
	}

	sc, err := FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if sc.Source.X != 1 || sc.Source.Y != 2 || sc.Source.Z != 3 {
		t.Errorf("source = %+v, want (1,2,3)", sc.Source)
	}
	if sc.MaxOrder != 12 {
		t.Errorf("max order = %d, want 12", sc.MaxOrder)
	}
	if sc.RayCount != 500 {
		t.Errorf("ray count = %d, want 500", sc.RayCount)
	}
	if sc.Root.FindByID(sc.Receiver) == nil {
		t.Errorf("receiver node %d not found in tree", sc.Receiver)
	}
}

func TestFromDocumentSkipsInactiveNodes(t *testing.T) {
	doc := baseDocument(map[string]interface{}{"max_order": 10, "ray_count": 10})
	doc.Nodes = []*gltf.Node{
		{Extras: map[string]interface{}{"node_type": 2, "active": 0}},
		{Extras: map[string]interface{}{"node_type": 2, "active": 1}},
		{Extras: map[string]interface{}{"node_type": 3, "active": 1}},
	}
	if _, err := FromDocument(doc); err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
}

func TestFromDocumentFailsWithoutSource(t *testing.T) {
	doc := baseDocument(map[string]interface{}{"max_order": 10, "ray_count": 10})
	doc.Nodes = []*gltf.Node{
		{Extras: map[string]interface{}{"node_type": 3, "active": 1}},
	}
	if _, err := FromDocument(doc); err != ErrMissingSource {
		t.Errorf("got %v, want ErrMissingSource", err)
	}
}

func TestFromDocumentFailsWithoutReceiver(t *testing.T) {
	doc := baseDocument(map[string]interface{}{"max_order": 10, "ray_count": 10})
	doc.Nodes = []*gltf.Node{
		{Extras: map[string]interface{}{"node_type": 2, "active": 1}},
	}
	if _, err := FromDocument(doc); err != ErrMissingReceiver {
		t.Errorf("got %v, want ErrMissingReceiver", err)
	}
}

func TestFromDocumentRequiresNodeExtras(t *testing.T) {
	doc := baseDocument(map[string]interface{}{"max_order": 10, "ray_count": 10})
	doc.Nodes = []*gltf.Node{{}}
	if _, err := FromDocument(doc); err == nil {
		t.Errorf("expected an error for a node with no extras")
	}
}

func TestMaterialFromExtrasDefaultsMissingBands(t *testing.T) {
	m := materialFromExtras(map[string]interface{}{"abs63": 0.2})
	if len(m.Absorption) != 9 {
		t.Fatalf("got %d bands, want 9", len(m.Absorption))
	}
	if m.Absorption[0] != 0.2 {
		t.Errorf("abs63 = %v, want 0.2", m.Absorption[0])
	}
	if m.Absorption[1] != 0.1 {
		t.Errorf("abs125 default = %v, want 0.1", m.Absorption[1])
	}
}
