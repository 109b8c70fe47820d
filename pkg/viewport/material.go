package viewport

import (
	"github.com/taigrr/topoview/pkg/models"
	"github.com/taigrr/topoview/pkg/render"
)

// materialCache resolves mesh materials to render surfaces once per mesh.
// Textured channels are uploaded as-is (the pixels are already
// display-ready); flat base color factors are linear per glTF and go
// through the sRGB transfer exactly once, here.
type materialCache struct {
	surfaces map[*models.Mesh][]render.Surface
}

func newMaterialCache() *materialCache {
	return &materialCache{surfaces: make(map[*models.Mesh][]render.Surface)}
}

func (c *materialCache) surfacesFor(mesh *models.Mesh) []render.Surface {
	if s, ok := c.surfaces[mesh]; ok {
		return s
	}

	s := make([]render.Surface, len(mesh.Materials))
	for i := range mesh.Materials {
		m := &mesh.Materials[i]
		if m.HasTexture {
			s[i] = render.Surface{Tex: render.TextureFromImage(m.BaseMap)}
		} else {
			s[i] = render.Surface{Flat: render.LinearColor(m.BaseColor)}
		}
	}
	c.surfaces[mesh] = s
	return s
}
