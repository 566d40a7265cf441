package scene

import "github.com/Faultbox/fbxscene/pkg/document"

// collectHierarchy walks one root model, composing transforms top-down and
// retaining, bottom-up, every node with a mesh at or beneath it. It
// reports whether the subtree carries any mesh. Children of a retained
// node are listed unfiltered; lookups of pruned ids simply miss.
func collectHierarchy(model *document.Model, parent *ComposedTransform, nodes map[document.ObjectID]Node) bool {
	composed := Compose(model, parent)

	children := model.Children()
	meshBearing := model.IsMesh()
	for _, child := range children {
		if collectHierarchy(child, &composed, nodes) {
			meshBearing = true
		}
	}
	if !meshBearing {
		return false
	}

	ids := make([]document.ObjectID, len(children))
	for i, child := range children {
		ids[i] = child.ID()
	}
	nodes[model.ID()] = Node{
		Name:     model.Name(),
		Local:    composed.Local,
		Children: ids,
	}
	return true
}
