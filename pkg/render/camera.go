package render

import (
	"math"

	"github.com/taigrr/topoview/pkg/math3d"
)

// Camera is the render-side camera: a view matrix supplied by the orbit
// controller plus perspective projection parameters. Matrices are cached and
// recomputed only when something changed.
type Camera struct {
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64
	Far         float64

	viewMatrix math3d.Mat4

	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	invViewProj    math3d.Mat4
	projDirty      bool
	combinedDirty  bool
}

// NewCamera creates a camera with the viewport defaults.
func NewCamera() *Camera {
	return &Camera{
		FOV:           math.Pi / 4, // 45 degrees
		AspectRatio:   16.0 / 9.0,
		Near:          0.1,
		Far:           1000,
		viewMatrix:    math3d.Identity(),
		projDirty:     true,
		combinedDirty: true,
	}
}

// SetView installs the world-to-camera matrix for this frame.
func (c *Camera) SetView(view math3d.Mat4) {
	c.viewMatrix = view
	c.combinedDirty = true
}

// SetAspectRatio updates the projection for a resized viewport.
func (c *Camera) SetAspectRatio(aspect float64) {
	if aspect == c.AspectRatio {
		return
	}
	c.AspectRatio = aspect
	c.projDirty = true
	c.combinedDirty = true
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
	c.combinedDirty = true
}

// ViewMatrix returns the current view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return c.viewMatrix
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.combinedDirty {
		c.viewProjMatrix = c.ProjectionMatrix().Mul(c.viewMatrix)
		c.invViewProj = c.viewProjMatrix.Inverse()
		c.combinedDirty = false
	}
	return c.viewProjMatrix
}

// InverseViewProjection returns the matrix that unprojects normalized device
// coordinates back to world space, for pick rays.
func (c *Camera) InverseViewProjection() math3d.Mat4 {
	_ = c.ViewProjectionMatrix()
	return c.invViewProj
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clipPos := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))

	// Behind the camera
	if clipPos.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clipPos.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // Y is flipped
	depth = ndc.Z

	return x, y, depth, true
}
