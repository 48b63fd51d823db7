package geom

// LocalHit is a primitive-local intersection result: the ray parameter, the
// hit point and normal in the primitive's own (untransformed) frame, and
// surface (u,v) coordinates.
type LocalHit struct {
	T      float64
	Point  Vec3
	Normal Vec3
	U, V   float64
}

// Primitive is the tagged variant spec §3 describes: None, Sphere, or Mesh.
// Collide intersects a ray already expressed in the primitive's local frame
// and reports the closest positive-t hit, if any.
type Primitive interface {
	Collide(ray Ray) (LocalHit, bool)
}

// NonePrimitive never collides; it is the default for interior scene nodes
// that exist only to group children (spec: primitive is optional).
type NonePrimitive struct{}

func (NonePrimitive) Collide(Ray) (LocalHit, bool) { return LocalHit{}, false }
