package geom

// Ray is a half-line in ℝ³: points at Origin + t*Direction for t >= 0.
// Direction is not required to stay unit length across a Transform — the
// scene traversal measures distances in the local frame and converts hit
// points back by applying the forward transform (spec §4.G).
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// Transform moves a ray into another coordinate frame. Direction is
// transformed as a vector (no translation) and deliberately not
// renormalized — see spec §4.G.
func (r Ray) Transform(t Transform) Ray {
	return Ray{
		Origin:    t.Apply(r.Origin),
		Direction: t.ApplyVector(r.Direction),
	}
}

// At evaluates the ray at parameter t.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
