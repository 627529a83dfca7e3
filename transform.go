package roomdesigner

import (
	"github.com/go-gl/mathgl/mgl64"
)

// eulerMat3 returns the rotation matrix for Euler angles r applied in XYZ
// order (R = Rx * Ry * Rz).
func eulerMat3(r mgl64.Vec3) mgl64.Mat3 {
	return mgl64.Rotate3DX(r[0]).Mul3(mgl64.Rotate3DY(r[1])).Mul3(mgl64.Rotate3DZ(r[2]))
}

// poseMatrix composes Translate(pos) * Rotate(rot) * Scale(s).
func poseMatrix(pos, rot mgl64.Vec3, s float64) mgl64.Mat4 {
	return mgl64.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(mgl64.HomogRotate3DX(rot[0])).
		Mul4(mgl64.HomogRotate3DY(rot[1])).
		Mul4(mgl64.HomogRotate3DZ(rot[2])).
		Mul4(mgl64.Scale3D(s, s, s))
}

// transformPoint applies an affine 4x4 matrix to p.
func transformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// boxCorners returns the eight corners of the axis-aligned box [min, max].
// Order: bottom face (y = min) counter-clockwise from (min.x, min.z), then
// the top face in the same order.
func boxCorners(min, max mgl64.Vec3) [8]mgl64.Vec3 {
	return [8]mgl64.Vec3{
		{min[0], min[1], min[2]},
		{max[0], min[1], min[2]},
		{max[0], min[1], max[2]},
		{min[0], min[1], max[2]},
		{min[0], max[1], min[2]},
		{max[0], max[1], min[2]},
		{max[0], max[1], max[2]},
		{min[0], max[1], max[2]},
	}
}

// boxFaces lists the corner indices of each box face, wound so the normal
// computed by faceNormal points outward.
var boxFaces = [6][4]int{
	{0, 1, 2, 3}, // bottom
	{4, 7, 6, 5}, // top
	{0, 4, 5, 1}, // back (-Z)
	{3, 2, 6, 7}, // front (+Z)
	{0, 3, 7, 4}, // left (-X)
	{1, 5, 6, 2}, // right (+X)
}

// faceNormal returns the unit normal of the polygon a, b, c (counter-clockwise
// seen from the front). Degenerate triangles return the zero vector.
func faceNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}
