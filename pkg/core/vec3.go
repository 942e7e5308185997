package core

import "math"

// Vec3 represents a 3D vector. It doubles as an RGB color where X, Y and Z
// are the red, green and blue channels.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// FromPoints returns the vector pointing from head to tail (tail - head)
func FromPoints(head, tail Vec3) Vec3 {
	return tail.Subtract(head)
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
	}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to the zero vector.
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{0, 0, 0}
	}
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

// Reflect reflects v about the normal n: v - 2(v·n)n
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{
		X: -v.X,
		Y: -v.Y,
		Z: -v.Z,
	}
}

// Equals reports whether every component of other lies within tolerance of
// the matching component of v. This is a box test, not a distance test.
func (v Vec3) Equals(other Vec3, tolerance float64) bool {
	return other.X >= v.X-tolerance && other.X <= v.X+tolerance &&
		other.Y >= v.Y-tolerance && other.Y <= v.Y+tolerance &&
		other.Z >= v.Z-tolerance && other.Z <= v.Z+tolerance
}

// Angle returns the angle between v and other in degrees.
// Returns 0 if either vector has zero length.
func (v Vec3) Angle(other Vec3) float64 {
	cos, ok := v.cosine(other)
	if !ok {
		return 0
	}
	// Rounding can push the cosine just outside [-1, 1]
	cos = max(-1, min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// AngleQuick returns the cosine of the angle between v and other scaled by
// 180/π. It skips the arccosine and is NOT an angle; it is only useful for
// diagnostics and monotonic comparisons.
func (v Vec3) AngleQuick(other Vec3) float64 {
	cos, ok := v.cosine(other)
	if !ok {
		return 0
	}
	return cos * 180 / math.Pi
}

func (v Vec3) cosine(other Vec3) (float64, bool) {
	lengths := v.Length() * other.Length()
	if lengths == 0 {
		return 0, false
	}
	return v.Dot(other) / lengths, true
}

// Clamp returns a vector with components clamped to [min, max]
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// IsFinite reports whether no component is NaN or infinite
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
