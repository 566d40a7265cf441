package scene

import (
	"testing"

	"github.com/Faultbox/fbxscene/pkg/document"
	"github.com/Faultbox/fbxscene/pkg/math"
)

func TestCollectHierarchy_RetainsChainDownToMesh(t *testing.T) {
	doc := newTestDoc(t)
	root := document.NewModel(1, "armature", document.ModelKindNull)
	limb := document.NewModel(2, "limb", document.ModelKindLimbNode)
	mesh := document.NewModel(3, "body", document.ModelKindMesh)
	mustAdd(t, doc, root, limb, mesh)
	doc.Connect(2, 1)
	doc.Connect(3, 2)

	nodes := make(map[document.ObjectID]Node)
	if !collectHierarchy(root, nil, nodes) {
		t.Fatal("expected the root subtree to be mesh bearing")
	}

	if len(nodes) != 3 {
		t.Fatalf("retained %d nodes, want 3", len(nodes))
	}
	if got := nodes[1].Children; len(got) != 1 || got[0] != 2 {
		t.Errorf("root children = %v, want [2]", got)
	}
	if got := nodes[2].Children; len(got) != 1 || got[0] != 3 {
		t.Errorf("limb children = %v, want [3]", got)
	}
	if got := nodes[3].Children; len(got) != 0 {
		t.Errorf("mesh children = %v, want none", got)
	}
}

func TestCollectHierarchy_PrunesMeshlessBranches(t *testing.T) {
	doc := newTestDoc(t)
	root := document.NewModel(1, "root", document.ModelKindNull)
	mesh := document.NewModel(2, "mesh", document.ModelKindMesh)
	helper := document.NewModel(3, "helper", document.ModelKindNull)
	leaf := document.NewModel(4, "leaf", document.ModelKindNull)
	mustAdd(t, doc, root, mesh, helper, leaf)
	doc.Connect(2, 1)
	doc.Connect(3, 1)
	doc.Connect(4, 3)

	nodes := make(map[document.ObjectID]Node)
	if !collectHierarchy(root, nil, nodes) {
		t.Fatal("expected the root subtree to be mesh bearing")
	}

	for _, id := range []document.ObjectID{1, 2} {
		if _, ok := nodes[id]; !ok {
			t.Errorf("node %d missing from hierarchy", id)
		}
	}
	for _, id := range []document.ObjectID{3, 4} {
		if _, ok := nodes[id]; ok {
			t.Errorf("node %d should have been pruned", id)
		}
	}
	// Child id lists stay unfiltered: the pruned helper is still listed.
	if got := nodes[1].Children; len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("root children = %v, want [2 3]", got)
	}
}

func TestCollectHierarchy_MeshlessTreeRetainsNothing(t *testing.T) {
	doc := newTestDoc(t)
	root := document.NewModel(1, "root", document.ModelKindNull)
	child := document.NewModel(2, "child", document.ModelKindLimbNode)
	mustAdd(t, doc, root, child)
	doc.Connect(2, 1)

	nodes := make(map[document.ObjectID]Node)
	if collectHierarchy(root, nil, nodes) {
		t.Fatal("expected a meshless subtree")
	}
	if len(nodes) != 0 {
		t.Fatalf("retained %d nodes, want 0", len(nodes))
	}
}

func TestCollectHierarchy_LocalTransforms(t *testing.T) {
	doc := newTestDoc(t)
	root := document.NewModel(1, "root", document.ModelKindNull)
	root.Translation = [3]float64{1, 0, 0}
	mesh := document.NewModel(2, "mesh", document.ModelKindMesh)
	mesh.Translation = [3]float64{0, 2, 0}
	mustAdd(t, doc, root, mesh)
	doc.Connect(2, 1)

	nodes := make(map[document.ObjectID]Node)
	collectHierarchy(root, nil, nodes)

	assertVec3Near(t, nodes[1].Local.TransformVec3(math.Vec3{}), math.Vec3{X: 1})
	assertVec3Near(t, nodes[2].Local.TransformVec3(math.Vec3{}), math.Vec3{Y: 2})
}

func TestCollectHierarchy_NamesCarryOver(t *testing.T) {
	doc := newTestDoc(t)
	mesh := document.NewModel(7, "lantern", document.ModelKindMesh)
	mustAdd(t, doc, mesh)

	nodes := make(map[document.ObjectID]Node)
	collectHierarchy(mesh, nil, nodes)

	if got := nodes[7].Name; got != "lantern" {
		t.Errorf("node name = %q, want %q", got, "lantern")
	}
}
