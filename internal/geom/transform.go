package geom

// Transform is an affine transform stored as a row-major 4x4 matrix. Scene
// nodes keep a Transform and its precomputed inverse side by side (scene
// graph invariant: inverse is recomputed whenever the transform changes).
type Transform struct {
	m [4][4]float64
}

// Identity returns the identity transform.
func Identity() Transform {
	var t Transform
	for i := 0; i < 4; i++ {
		t.m[i][i] = 1
	}
	return t
}

// Translation builds a pure-translation transform.
func Translation(v Vec3) Transform {
	t := Identity()
	t.m[0][3] = v.X
	t.m[1][3] = v.Y
	t.m[2][3] = v.Z
	return t
}

// Scaling builds a pure non-uniform scale transform.
func Scaling(v Vec3) Transform {
	t := Identity()
	t.m[0][0] = v.X
	t.m[1][1] = v.Y
	t.m[2][2] = v.Z
	return t
}

// Mul composes two transforms: (t.Mul(o)).Apply(p) == t.Apply(o.Apply(p)).
func (t Transform) Mul(o Transform) Transform {
	var r Transform
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += t.m[i][k] * o.m[k][j]
			}
			r.m[i][j] = sum
		}
	}
	return r
}

// Apply transforms a point (w=1).
func (t Transform) Apply(p Vec3) Vec3 {
	return Vec3{
		X: t.m[0][0]*p.X + t.m[0][1]*p.Y + t.m[0][2]*p.Z + t.m[0][3],
		Y: t.m[1][0]*p.X + t.m[1][1]*p.Y + t.m[1][2]*p.Z + t.m[1][3],
		Z: t.m[2][0]*p.X + t.m[2][1]*p.Y + t.m[2][2]*p.Z + t.m[2][3],
	}
}

// ApplyVector transforms a direction (w=0) — translation does not apply.
func (t Transform) ApplyVector(v Vec3) Vec3 {
	return Vec3{
		X: t.m[0][0]*v.X + t.m[0][1]*v.Y + t.m[0][2]*v.Z,
		Y: t.m[1][0]*v.X + t.m[1][1]*v.Y + t.m[1][2]*v.Z,
		Z: t.m[2][0]*v.X + t.m[2][1]*v.Y + t.m[2][2]*v.Z,
	}
}

// Linear3x3 returns the upper-left 3x3 linear part of the transform.
func (t Transform) Linear3x3() [3][3]float64 {
	var m [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = t.m[i][j]
		}
	}
	return m
}

// ApplyNormalInverseTranspose applies m (expected to be the inverse-transpose
// of a linear part) to a normal vector and renormalizes, per the scene
// traversal rule for transforming hit normals back out of a node's frame.
func ApplyNormalInverseTranspose(m [3][3]float64, n Vec3) Vec3 {
	r := Vec3{
		X: m[0][0]*n.X + m[0][1]*n.Y + m[0][2]*n.Z,
		Y: m[1][0]*n.X + m[1][1]*n.Y + m[1][2]*n.Z,
		Z: m[2][0]*n.X + m[2][1]*n.Y + m[2][2]*n.Z,
	}
	return r.Normalize()
}

// InverseTranspose3x3 transposes the inverse linear part; combined with
// Inverse() this yields the inverse-transpose needed for normal transforms.
func InverseTranspose3x3(m [3][3]float64) [3][3]float64 {
	var r [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Inverse computes the matrix inverse via Gauss-Jordan elimination on the
// augmented 4x8 system. Scene nodes call this every time their transform is
// mutated so that T⁻¹ = T.inverse() always holds.
func (t Transform) Inverse() Transform {
	var a [4][8]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			a[i][j] = t.m[i][j]
		}
		a[i][4+i] = 1
	}

	for col := 0; col < 4; col++ {
		pivot := col
		best := a[col][col]
		if best < 0 {
			best = -best
		}
		for r := col + 1; r < 4; r++ {
			v := a[r][col]
			if v < 0 {
				v = -v
			}
			if v > best {
				pivot = r
				best = v
			}
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
		}
		pv := a[col][col]
		if pv == 0 {
			// Singular transform: fall back to identity inverse rather than
			// propagating NaNs into the traversal.
			return Identity()
		}
		for j := 0; j < 8; j++ {
			a[col][j] /= pv
		}
		for r := 0; r < 4; r++ {
			if r == col {
				continue
			}
			f := a[r][col]
			if f == 0 {
				continue
			}
			for j := 0; j < 8; j++ {
				a[r][j] -= f * a[col][j]
			}
		}
	}

	var inv Transform
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			inv.m[i][j] = a[i][4+j]
		}
	}
	return inv
}
