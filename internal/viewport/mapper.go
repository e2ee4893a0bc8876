// Package viewport maps pointer samples from screen space into world and
// grid space using the active camera's matrices.
package viewport

import (
	"math"

	"gatos/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// GridPitch is the spacing, in world units, of the placement grid.
const GridPitch = 5.0

// ScreenToWorld converts a pointer position in pixels to world coordinates.
//
// The pointer is expected in device convention (origin bottom-left, Y up).
// Pixel coordinates are mapped straight onto NDC [-1,1] without flipping, then
// un-projected through cameraTransform * projectionInverse at the near plane.
func ScreenToWorld(pointer geometry.Point2D, viewport geometry.Size, projectionInverse, cameraTransform mat.Matrix) geometry.Point2D {
	ndcX := pointer.X/viewport.Width*2 - 1
	ndcY := pointer.Y/viewport.Height*2 - 1

	var ndcToWorld mat.Dense
	ndcToWorld.Mul(cameraTransform, projectionInverse)

	return projectPoint(&ndcToWorld, ndcX, ndcY, -1)
}

// WorldToScreen is the inverse of ScreenToWorld. The result is in the same
// device convention that ScreenToWorld consumes.
func WorldToScreen(world geometry.Point2D, viewport geometry.Size, projection, cameraTransform mat.Matrix) geometry.Point2D {
	var view mat.Dense
	if err := view.Inverse(cameraTransform); err != nil {
		return geometry.Point2D{}
	}
	var worldToNDC mat.Dense
	worldToNDC.Mul(projection, &view)

	ndc := projectPoint(&worldToNDC, world.X, world.Y, 0)
	return geometry.Point2D{
		X: (ndc.X + 1) / 2 * viewport.Width,
		Y: (ndc.Y + 1) / 2 * viewport.Height,
	}
}

// SnapToGrid rounds each axis of p to the nearest multiple of pitch.
// Ties round away from zero.
func SnapToGrid(p geometry.Point2D, pitch float64) geometry.Point2D {
	return geometry.Point2D{
		X: math.Round(p.X/pitch) * pitch,
		Y: math.Round(p.Y/pitch) * pitch,
	}
}

// projectPoint multiplies (x, y, z, 1) by m and performs the perspective divide.
func projectPoint(m mat.Matrix, x, y, z float64) geometry.Point2D {
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(4, []float64{x, y, z, 1}))

	w := out.AtVec(3)
	if w == 0 {
		w = 1
	}
	return geometry.Point2D{X: out.AtVec(0) / w, Y: out.AtVec(1) / w}
}
