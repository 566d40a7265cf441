package scene

import (
	"fmt"

	"github.com/Faultbox/fbxscene/pkg/document"
)

// Asset labels are derived from object names when present and from object
// ids otherwise, so repeated loads of the same document produce the same
// labels. A handle registered under a label is reused on every later
// request for that label.

func meshLabel(model *document.Model) string {
	if name := model.Name(); name != "" {
		return "FbxMesh@" + name
	}
	return fmt.Sprintf("FbxMesh%d", model.ID())
}

func primitiveLabel(geo *document.Geometry, slot int) string {
	if name := geo.Name(); name != "" {
		return fmt.Sprintf("FbxMesh@%s/Primitive%d", name, slot)
	}
	return fmt.Sprintf("FbxMesh%d/Primitive%d", geo.ID(), slot)
}

func materialLabel(mat *document.Material) string {
	if name := mat.Name(); name != "" {
		return "FbxMaterial@" + name
	}
	return fmt.Sprintf("FbxMaterial%d", mat.ID())
}

func textureLabel(tex *document.Texture) string {
	if name := tex.Name(); name != "" {
		return "FbxTexture@" + name
	}
	return fmt.Sprintf("FbxTexture%d", tex.ID())
}

// processedTextureLabel names a per-material texture variant. Preprocessed
// images depend on the owning material, so they are cached under the
// material rather than the texture object.
func processedTextureLabel(mat *document.Material, slot string) string {
	if name := mat.Name(); name != "" {
		return fmt.Sprintf("FbxTextureMat@%s/%s", name, slot)
	}
	return fmt.Sprintf("FbxTextureMat%d/%s", mat.ID(), slot)
}
