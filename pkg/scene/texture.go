package scene

import (
	"context"
	"image"
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/fbxscene/pkg/document"
	"github.com/Faultbox/fbxscene/pkg/imaging"
)

// resolveTexture decodes the image behind a texture object and pairs it
// with the texture's wrap modes.
func (l *loader) resolveTexture(ctx context.Context, tex *document.Texture) (*Image, error) {
	// Sampler state first: it is valid even when the clip turns out to
	// be missing, which keeps the error about the data, not the modes.
	img := &Image{WrapU: tex.WrapU, WrapV: tex.WrapV}

	video := tex.Video()
	if video == nil {
		return nil, errors.Wrapf(ErrTextureData, "texture %q", tex.Name())
	}
	pixels, err := l.loadVideoClip(ctx, video)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load texture image")
	}
	img.Pixels = pixels
	return img, nil
}

// loadVideoClip returns the decoded pixels of a video clip, preferring
// embedded content and falling back to a read of the relative filename
// from the document's directory. The decode format comes from the file
// extension; clips use backslash separators regardless of platform.
func (l *loader) loadVideoClip(ctx context.Context, video *document.Video) (*image.RGBA, error) {
	l.log.Debug("loading texture image", zap.String("clip", video.Name()))

	rel := video.RelativeFilename
	if rel == "" {
		return nil, errors.Wrapf(ErrTextureData, "clip %q has no relative filename", video.Name())
	}
	clean := path.Clean(strings.ReplaceAll(rel, "\\", "/"))
	ext := path.Ext(clean)
	if ext == "" {
		return nil, errors.Wrapf(ErrImageDecode, "clip filename %q has no extension", rel)
	}

	data := video.Content
	if len(data) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if l.files == nil {
			return nil, errors.Wrapf(ErrAssetRead, "clip %q is external and no file system is configured", video.Name())
		}
		if !fs.ValidPath(clean) {
			return nil, errors.Wrapf(ErrAssetRead, "clip path %q escapes the document directory", rel)
		}
		var err error
		data, err = fs.ReadFile(l.files, clean)
		if err != nil {
			return nil, errors.Wrapf(ErrAssetRead, "clip %q: %v", clean, err)
		}
	}

	pixels, err := imaging.Decode(data, ext)
	if err != nil {
		return nil, errors.Wrapf(ErrImageDecode, "clip %q: %v", video.Name(), err)
	}
	return pixels, nil
}
