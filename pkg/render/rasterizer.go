package render

import (
	"math"

	"github.com/taigrr/topoview/pkg/math3d"
	"github.com/taigrr/topoview/pkg/models"
)

// Vertex carries the attributes needed for rasterization.
type Vertex struct {
	Position math3d.Vec3 // World position
	Normal   math3d.Vec3
	UV       math3d.Vec2
	Color    Color
}

// Triangle is one triangle to be rasterized.
type Triangle struct {
	V [3]Vertex
}

// Surface is a resolved per-material appearance: either a texture (sampled
// as-is, already display-ready) or a flat display-space color.
type Surface struct {
	Tex  *Texture // nil means flat
	Flat Color
}

// Rasterizer draws depth-buffered geometry into a framebuffer.
type Rasterizer struct {
	camera       *Camera
	fb           *Framebuffer
	zbuffer      []float64
	frustum      Frustum
	frustumDirty bool
	CullingStats CullingStats
}

// CullingStats tracks frustum culling per frame.
type CullingStats struct {
	MeshesTested int
	MeshesCulled int
	MeshesDrawn  int
}

// NewRasterizer creates a rasterizer drawing into fb through camera.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		camera:       camera,
		fb:           fb,
		frustumDirty: true,
	}
	r.Resize()
	return r
}

// Resize resizes the depth buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth clears the Z-buffer (call before each frame).
func (r *Rasterizer) ClearDepth() {
	// Copy-doubling clear
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// InvalidateFrustum marks the frustum for recalculation after the camera
// moved.
func (r *Rasterizer) InvalidateFrustum() {
	r.frustumDirty = true
}

func (r *Rasterizer) updateFrustum() {
	if r.frustumDirty {
		r.frustum = ExtractFrustum(r.camera.ViewProjectionMatrix())
		r.frustumDirty = false
	}
}

// ResetCullingStats zeroes the per-frame culling counters.
func (r *Rasterizer) ResetCullingStats() {
	r.CullingStats = CullingStats{}
}

func (r *Rasterizer) getDepth(x, y int) float64 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.Width()+x]
}

func (r *Rasterizer) setDepth(x, y int, z float64) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return
	}
	r.zbuffer[y*r.Width()+x] = z
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y  float64
	Z     float64 // Depth for the Z-buffer
	W     float64 // Clip W, for perspective-correct interpolation
	Color Color
	UV    math3d.Vec2
	// Lighting intensity evaluated at the vertex, interpolated across the
	// triangle for Gouraud shading.
	Intensity float64
}

// project transforms a triangle to screen space, evaluating the lighting rig
// at each vertex. It reports false when the triangle is entirely behind the
// camera or back-facing.
func (r *Rasterizer) project(tri Triangle, ls LightSet) (sv [3]screenVertex, ok bool) {
	viewProj := r.camera.ViewProjectionMatrix()
	allBehind := true

	for i := range 3 {
		clipPos := viewProj.MulVec4(math3d.V4FromV3(tri.V[i].Position, 1))
		if clipPos.W > 0 {
			allBehind = false
		}

		if clipPos.W != 0 {
			sv[i].X = clipPos.X / clipPos.W
			sv[i].Y = clipPos.Y / clipPos.W
			sv[i].Z = clipPos.Z / clipPos.W
		}
		sv[i].W = clipPos.W

		// NDC to screen coordinates, Y flipped
		sv[i].X = (sv[i].X + 1) * 0.5 * float64(r.Width())
		sv[i].Y = (1 - sv[i].Y) * 0.5 * float64(r.Height())

		sv[i].Color = tri.V[i].Color
		sv[i].UV = tri.V[i].UV
		sv[i].Intensity = ls.Intensity(tri.V[i].Normal)
	}

	if allBehind {
		return sv, false
	}

	// Backface culling via screen-space winding
	edge1 := math3d.V2(sv[1].X-sv[0].X, sv[1].Y-sv[0].Y)
	edge2 := math3d.V2(sv[2].X-sv[0].X, sv[2].Y-sv[0].Y)
	if edge1.X*edge2.Y-edge1.Y*edge2.X < 0 {
		return sv, false
	}

	return sv, true
}

// screenBounds clips the triangle's pixel bounding box to the framebuffer.
func (r *Rasterizer) screenBounds(sv [3]screenVertex) (minX, maxX, minY, maxY int) {
	minX = int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX = int(math.Min(float64(r.Width()-1), math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY = int(math.Max(0, math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY = int(math.Min(float64(r.Height()-1), math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))
	return minX, maxX, minY, maxY
}

// DrawTriangleShaded rasterizes a flat-colored triangle with Gouraud
// shading: the rig's intensity is evaluated per vertex and interpolated.
func (r *Rasterizer) DrawTriangleShaded(tri Triangle, ls LightSet) {
	sv, ok := r.project(tri, ls)
	if !ok {
		return
	}

	minX, maxX, minY, maxY := r.screenBounds(sv)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			bc := barycentric(
				sv[0].X, sv[0].Y,
				sv[1].X, sv[1].Y,
				sv[2].X, sv[2].Y,
				px, py,
			)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			z := bc.X*sv[0].Z + bc.Y*sv[1].Z + bc.Z*sv[2].Z
			if z >= r.getDepth(x, y) {
				continue
			}

			intensity := bc.X*sv[0].Intensity + bc.Y*sv[1].Intensity + bc.Z*sv[2].Intensity
			c := MultiplyColor(interpolateColor3(sv[0].Color, sv[1].Color, sv[2].Color, bc), intensity)

			r.setDepth(x, y, z)
			r.fb.SetPixel(x, y, c)
		}
	}
}

// DrawTriangleTextured rasterizes a textured triangle with
// perspective-correct UVs and Gouraud-interpolated lighting.
func (r *Rasterizer) DrawTriangleTextured(tri Triangle, tex *Texture, ls LightSet) {
	sv, ok := r.project(tri, ls)
	if !ok {
		return
	}

	minX, maxX, minY, maxY := r.screenBounds(sv)

	var invW [3]float64
	for i := range 3 {
		if sv[i].W != 0 {
			invW[i] = 1.0 / sv[i].W
		}
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			bc := barycentric(
				sv[0].X, sv[0].Y,
				sv[1].X, sv[1].Y,
				sv[2].X, sv[2].Y,
				px, py,
			)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			z := bc.X*sv[0].Z + bc.Y*sv[1].Z + bc.Z*sv[2].Z
			if z >= r.getDepth(x, y) {
				continue
			}

			// Interpolate UV/W and 1/W, then divide for correct UVs
			w0, w1, w2 := bc.X*invW[0], bc.Y*invW[1], bc.Z*invW[2]
			oneOverW := w0 + w1 + w2
			if oneOverW == 0 {
				continue
			}

			u := (w0*sv[0].UV.X + w1*sv[1].UV.X + w2*sv[2].UV.X) / oneOverW
			v := (w0*sv[0].UV.Y + w1*sv[1].UV.Y + w2*sv[2].UV.Y) / oneOverW
			intensity := (w0*sv[0].Intensity + w1*sv[1].Intensity + w2*sv[2].Intensity) / oneOverW

			r.setDepth(x, y, z)
			r.fb.SetPixel(x, y, MultiplyColor(tex.Sample(u, v), intensity))
		}
	}
}

// DrawMesh renders a mesh with per-face surfaces. surfaces is indexed by the
// mesh's material indices; faces with no material, or an override color, use
// the flat fallback. The mesh is frustum-culled as a whole first.
func (r *Rasterizer) DrawMesh(mesh *models.Mesh, transform math3d.Mat4, surfaces []Surface, fallback Color, ls LightSet) {
	r.CullingStats.MeshesTested++
	r.updateFrustum()

	bounds := AABB{Min: mesh.BoundsMin, Max: mesh.BoundsMax}.Transform(transform)
	if !r.frustum.IntersectAABB(bounds) {
		r.CullingStats.MeshesCulled++
		return
	}
	r.CullingStats.MeshesDrawn++

	for fi := range mesh.Faces {
		face := &mesh.Faces[fi]

		var tri Triangle
		for i := range 3 {
			mv := mesh.Vertices[face.V[i]]
			tri.V[i] = Vertex{
				Position: transform.MulVec3(mv.Position),
				Normal:   transform.MulVec3Dir(mv.Normal).Normalize(),
				UV:       mv.UV,
			}
		}

		var surf Surface
		surf.Flat = fallback
		if face.Material >= 0 && face.Material < len(surfaces) {
			surf = surfaces[face.Material]
		}

		if surf.Tex != nil {
			r.DrawTriangleTextured(tri, surf.Tex, ls)
		} else {
			for i := range 3 {
				tri.V[i].Color = surf.Flat
			}
			r.DrawTriangleShaded(tri, ls)
		}
	}
}

// DrawMeshFlat renders a mesh in a single color, ignoring its materials.
// Node type colors and selection highlights use this path.
func (r *Rasterizer) DrawMeshFlat(mesh *models.Mesh, transform math3d.Mat4, c Color, ls LightSet) {
	r.DrawMesh(mesh, transform, nil, c, ls)
}

// DrawLine3D projects a world-space segment and draws it with Bresenham.
// Lines carry no depth, so they are drawn before solid geometry and let
// meshes paint over them.
func (r *Rasterizer) DrawLine3D(a, b math3d.Vec3, c Color) {
	viewProj := r.camera.ViewProjectionMatrix()

	clipA := viewProj.MulVec4(math3d.V4FromV3(a, 1))
	clipB := viewProj.MulVec4(math3d.V4FromV3(b, 1))

	// Skip if both behind camera
	if clipA.W <= 0 && clipB.W <= 0 {
		return
	}

	if clipA.W > 0 {
		clipA.X /= clipA.W
		clipA.Y /= clipA.W
	}
	if clipB.W > 0 {
		clipB.X /= clipB.W
		clipB.Y /= clipB.W
	}

	x0 := int((clipA.X + 1) * 0.5 * float64(r.Width()))
	y0 := int((1 - clipA.Y) * 0.5 * float64(r.Height()))
	x1 := int((clipB.X + 1) * 0.5 * float64(r.Width()))
	y1 := int((1 - clipB.Y) * 0.5 * float64(r.Height()))

	r.fb.DrawLine(x0, y0, x1, y1, c)
}

// DrawParticle draws a self-illuminated disc at a world position. Particles
// take no lighting; their color is the signal. The disc is depth-tested at
// its center depth so geometry in front occludes it.
func (r *Rasterizer) DrawParticle(world math3d.Vec3, worldRadius float64, c Color) {
	sx, sy, depth, visible := r.camera.WorldToScreen(world, r.Width(), r.Height())
	if !visible {
		return
	}

	// Project a point one radius to the camera's right to measure the
	// on-screen size. The view matrix's first row is the camera right axis.
	view := r.camera.ViewMatrix()
	right := math3d.V3(view[0], view[4], view[8])
	ex, _, _, evis := r.camera.WorldToScreen(world.Add(right.Scale(worldRadius)), r.Width(), r.Height())

	pixRadius := 1
	if evis {
		if pr := int(math.Round(math.Abs(ex - sx))); pr > pixRadius {
			pixRadius = pr
		}
	}

	cx, cy := int(sx), int(sy)
	r2 := pixRadius * pixRadius
	for dy := -pixRadius; dy <= pixRadius; dy++ {
		for dx := -pixRadius; dx <= pixRadius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			x, y := cx+dx, cy+dy
			if depth >= r.getDepth(x, y) {
				continue
			}
			r.setDepth(x, y, depth)
			r.fb.SetPixel(x, y, c)
		}
	}
}

// barycentric calculates barycentric coordinates for point (px, py).
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1.0 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}

// interpolateColor3 interpolates between 3 colors using barycentric coords.
func interpolateColor3(c0, c1, c2 Color, bc math3d.Vec3) Color {
	return RGB(
		uint8(float64(c0.R)*bc.X+float64(c1.R)*bc.Y+float64(c2.R)*bc.Z),
		uint8(float64(c0.G)*bc.X+float64(c1.G)*bc.Y+float64(c2.G)*bc.Z),
		uint8(float64(c0.B)*bc.X+float64(c1.B)*bc.Y+float64(c2.B)*bc.Z),
	)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
