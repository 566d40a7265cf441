package document

import "fmt"

// WrapMode describes texture addressing along one axis.
type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapClamp
)

// String returns a human-readable wrap mode name.
func (w WrapMode) String() string {
	switch w {
	case WrapRepeat:
		return "Repeat"
	case WrapClamp:
		return "Clamp"
	default:
		return fmt.Sprintf("Unknown(%d)", int(w))
	}
}

// Texture references a backing video clip and carries sampling state.
type Texture struct {
	object
	doc *Document

	WrapU WrapMode
	WrapV WrapMode
}

// NewTexture creates a texture with the format's default wrap modes
// (repeat on both axes).
func NewTexture(id ObjectID, name string) *Texture {
	return &Texture{object: object{id: id, name: name}}
}

// Video returns the video clip backing this texture, or nil.
func (t *Texture) Video() *Video {
	if t.doc == nil {
		return nil
	}
	for _, obj := range t.doc.childrenOf(t.ID()) {
		if v, ok := obj.(*Video); ok {
			return v
		}
	}
	return nil
}

// Video is an image clip: either embedded bytes or a file reference
// relative to the document's own directory.
type Video struct {
	object

	Filename         string // original absolute path, informational
	RelativeFilename string // path relative to the document directory
	Content          []byte // embedded image bytes, nil when external
}

// NewVideo creates an empty video clip object.
func NewVideo(id ObjectID, name string) *Video {
	return &Video{object: object{id: id, name: name}}
}
