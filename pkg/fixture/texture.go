package fixture

import (
	"path/filepath"
	"strings"

	"github.com/chazu/casework/pkg/scene"
)

// ResolveTexturePath maps a texture reference from a Spec to an on-disk
// asset path. The default is the identity; the asset layer installs its
// own resolver at startup.
var ResolveTexturePath = func(path string) string { return path }

func resolveTexture(path string) string {
	if path == "" {
		return ""
	}
	return ResolveTexturePath(path)
}

// TextureName derives a material texture name from an asset file path:
// the base name without its extension.
func TextureName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// bindTexture publishes the fixture-wide material binding. Door panels
// carry their own bindings; this one covers the carcass geometry.
func (f *Fixture) bindTexture() {
	if f.spec.Texture == "" {
		return
	}
	f.tree.AddMaterial(&scene.Material{
		Name:    f.qual("mat"),
		Texture: resolveTexture(f.spec.Texture),
	})
}
