package scene

import (
	"image/color"

	"github.com/taigrr/topoview/pkg/math3d"
)

const (
	gridHalfExtent = 10.0
	gridSpacing    = 1.0
	axisExtent     = 15.0
)

// Line is a world-space colored line segment.
type Line struct {
	A, B  math3d.Vec3
	Color color.RGBA
}

var (
	gridColor  = color.RGBA{R: 70, G: 70, B: 70, A: 255}
	xAxisColor = color.RGBA{R: 220, G: 60, B: 60, A: 255}
	yAxisColor = color.RGBA{R: 60, G: 200, B: 60, A: 255}
	zAxisColor = color.RGBA{R: 70, G: 110, B: 230, A: 255}
)

// GridLines builds the floor grid: lines parallel to X and Y on the z=0
// plane. The geometry is static, so callers build it once and reuse it.
func GridLines() []Line {
	n := int(gridHalfExtent/gridSpacing)*2 + 1
	lines := make([]Line, 0, 2*n)
	for v := -gridHalfExtent; v <= gridHalfExtent; v += gridSpacing {
		lines = append(lines,
			Line{
				A:     math3d.V3(-gridHalfExtent, v, 0),
				B:     math3d.V3(gridHalfExtent, v, 0),
				Color: gridColor,
			},
			Line{
				A:     math3d.V3(v, -gridHalfExtent, 0),
				B:     math3d.V3(v, gridHalfExtent, 0),
				Color: gridColor,
			},
		)
	}
	return lines
}

// AxisLines builds the three world axis lines through the origin. Each can
// be toggled independently, so they are returned separately.
func AxisLines() (x, y, z Line) {
	x = Line{A: math3d.V3(-axisExtent, 0, 0), B: math3d.V3(axisExtent, 0, 0), Color: xAxisColor}
	y = Line{A: math3d.V3(0, -axisExtent, 0), B: math3d.V3(0, axisExtent, 0), Color: yAxisColor}
	z = Line{A: math3d.V3(0, 0, -axisExtent), B: math3d.V3(0, 0, axisExtent), Color: zAxisColor}
	return x, y, z
}
