// package frame implements the hierarchical coordinate system at the heart
// of the navigation engine. A Frame holds a translation, a rotation and a
// per-axis scaling, optionally expressed relative to a reference Frame, and
// converts points and directions between its local space and world space.
package frame

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/avery-hale/navscene-go/common"
)

// updateCount is the global modification counter. Every frame mutation draws
// a fresh tick from it, so ticks are comparable across frames and can drive
// cache invalidation.
var updateCount atomic.Uint64

// Tick draws a fresh tick from the counter frame mutations use, letting
// owners of non-frame state (an eye's viewport, for one) stamp their own
// changes on the same timeline.
//
// Returns:
//   - uint64: a fresh, strictly increasing modification tick
func Tick() uint64 {
	return updateCount.Add(1)
}

// ErrCyclicReference is returned when a reference-frame assignment would
// make a frame its own ancestor.
var ErrCyclicReference = errors.New("frame: reference assignment would create a cycle")

// Constraint filters the deltas applied to a Frame. Implementations may
// return the delta unchanged, reduced (projected onto an axis or plane), or
// zeroed.
type Constraint interface {
	// ConstrainTranslation filters a proposed translation delta, expressed
	// in the frame's reference coordinate system.
	//
	// Parameters:
	//   - delta: the proposed translation
	//   - f: the frame the delta would be applied to
	//
	// Returns:
	//   - common.Vec3: the filtered translation
	ConstrainTranslation(delta common.Vec3, f Frame) common.Vec3

	// ConstrainRotation filters a proposed rotation delta, expressed in the
	// frame's local coordinate system.
	//
	// Parameters:
	//   - delta: the proposed rotation
	//   - f: the frame the delta would be applied to
	//
	// Returns:
	//   - common.Rotation: the filtered rotation
	ConstrainRotation(delta common.Rotation, f Frame) common.Rotation

	// ConstrainScaling filters a proposed per-axis scale factor.
	//
	// Parameters:
	//   - factor: the proposed scale factors
	//   - f: the frame the factor would be applied to
	//
	// Returns:
	//   - common.Vec3: the filtered scale factors
	ConstrainScaling(factor common.Vec3, f Frame) common.Vec3
}

// Frame is a local coordinate system defined by a translation, a rotation
// and a per-axis scaling, optionally relative to a reference Frame. The
// local transform composes scale, then rotation, then translation. World
// queries fold the reference chain from the root down.
type Frame interface {
	// Translation returns the local translation, expressed in the reference
	// frame's coordinate system.
	//
	// Returns:
	//   - common.Vec3: the local translation
	Translation() common.Vec3

	// SetTranslation sets the local translation directly, bypassing any
	// constraint.
	//
	// Parameters:
	//   - t: the new local translation
	SetTranslation(t common.Vec3)

	// Rotation returns the local rotation.
	//
	// Returns:
	//   - common.Rotation: the local rotation (Quat in 3D, Rot in 2D)
	Rotation() common.Rotation

	// SetRotation sets the local rotation directly, bypassing any
	// constraint.
	//
	// Parameters:
	//   - r: the new local rotation
	SetRotation(r common.Rotation)

	// Scaling returns the local per-axis scale factors.
	//
	// Returns:
	//   - common.Vec3: the local scaling
	Scaling() common.Vec3

	// SetScaling sets the local scaling directly. Factors with any zero
	// component are rejected as a no-op; negative factors are allowed and
	// flip the corresponding axis.
	//
	// Parameters:
	//   - s: the new scale factors
	SetScaling(s common.Vec3)

	// ReferenceFrame returns the frame this frame is expressed relative to,
	// or nil for a world-rooted frame.
	//
	// Returns:
	//   - Frame: the reference frame, nil if none
	ReferenceFrame() Frame

	// SetReferenceFrame re-parents the frame. The local translation,
	// rotation and scaling are preserved, so the world pose changes.
	//
	// Parameters:
	//   - ref: the new reference frame, nil to root at world
	//
	// Returns:
	//   - error: ErrCyclicReference if ref is this frame or one of its
	//     descendants, nil otherwise
	SetReferenceFrame(ref Frame) error

	// Constraint returns the attached constraint, or nil.
	//
	// Returns:
	//   - Constraint: the constraint filtering Translate/Rotate/Scale
	Constraint() Constraint

	// SetConstraint attaches a constraint. Pass nil to remove.
	//
	// Parameters:
	//   - c: the constraint, nil for unconstrained motion
	SetConstraint(c Constraint)

	// Translate applies a translation delta, expressed in the reference
	// frame's coordinate system, after filtering it through the attached
	// constraint.
	//
	// Parameters:
	//   - delta: the proposed translation
	Translate(delta common.Vec3)

	// Rotate applies a rotation delta, expressed in the local coordinate
	// system, after filtering it through the attached constraint.
	//
	// Parameters:
	//   - delta: the proposed rotation
	Rotate(delta common.Rotation)

	// RotateAroundPoint rotates the frame around a world-space point: the
	// orientation composes the delta and the position orbits the point.
	// Both the rotation and the induced translation pass through the
	// attached constraint.
	//
	// Parameters:
	//   - delta: the rotation, expressed in the local coordinate system
	//   - point: the pivot, in world coordinates
	RotateAroundPoint(delta common.Rotation, point common.Vec3)

	// Scale multiplies the local scaling component-wise by factor, after
	// filtering through the attached constraint. Factors with any zero
	// component are rejected as a no-op.
	//
	// Parameters:
	//   - factor: the per-axis scale factors
	Scale(factor common.Vec3)

	// Position returns the world-space origin of the frame.
	//
	// Returns:
	//   - common.Vec3: the world position
	Position() common.Vec3

	// SetPosition moves the frame so its world-space origin lands on p,
	// bypassing any constraint.
	//
	// Parameters:
	//   - p: the target world position
	SetPosition(p common.Vec3)

	// Orientation returns the world-space orientation, the composition of
	// the rotations along the reference chain.
	//
	// Returns:
	//   - common.Rotation: the world orientation
	Orientation() common.Rotation

	// SetOrientation sets the world-space orientation, bypassing any
	// constraint.
	//
	// Parameters:
	//   - o: the target world orientation
	SetOrientation(o common.Rotation)

	// Magnitude returns the world-space scale factors, the component-wise
	// product of the scalings along the reference chain.
	//
	// Returns:
	//   - common.Vec3: the world scaling
	Magnitude() common.Vec3

	// SetMagnitude sets the world-space scaling, bypassing any constraint.
	// Magnitudes with any zero component are rejected as a no-op.
	//
	// Parameters:
	//   - m: the target world scaling
	SetMagnitude(m common.Vec3)

	// CoordinatesOf converts a point from world space to this frame's local
	// space.
	//
	// Parameters:
	//   - src: a point in world coordinates
	//
	// Returns:
	//   - common.Vec3: the point in local coordinates
	CoordinatesOf(src common.Vec3) common.Vec3

	// InverseCoordinatesOf converts a point from this frame's local space to
	// world space.
	//
	// Parameters:
	//   - src: a point in local coordinates
	//
	// Returns:
	//   - common.Vec3: the point in world coordinates
	InverseCoordinatesOf(src common.Vec3) common.Vec3

	// LocalCoordinatesOf converts a point from the reference frame's space
	// to this frame's local space.
	//
	// Parameters:
	//   - src: a point in reference-frame coordinates
	//
	// Returns:
	//   - common.Vec3: the point in local coordinates
	LocalCoordinatesOf(src common.Vec3) common.Vec3

	// LocalInverseCoordinatesOf converts a point from this frame's local
	// space to the reference frame's space.
	//
	// Parameters:
	//   - src: a point in local coordinates
	//
	// Returns:
	//   - common.Vec3: the point in reference-frame coordinates
	LocalInverseCoordinatesOf(src common.Vec3) common.Vec3

	// TransformOf converts a direction vector from world space to this
	// frame's local space. Directions ignore translation.
	//
	// Parameters:
	//   - src: a direction in world coordinates
	//
	// Returns:
	//   - common.Vec3: the direction in local coordinates
	TransformOf(src common.Vec3) common.Vec3

	// InverseTransformOf converts a direction vector from this frame's
	// local space to world space.
	//
	// Parameters:
	//   - src: a direction in local coordinates
	//
	// Returns:
	//   - common.Vec3: the direction in world coordinates
	InverseTransformOf(src common.Vec3) common.Vec3

	// ProjectOnLine translates the frame so its origin lies on the line
	// defined by origin and direction, at the closest point to the current
	// position. A zero direction is rejected as a no-op.
	//
	// Parameters:
	//   - origin: a point on the line, in world coordinates
	//   - direction: the line direction, in world coordinates
	ProjectOnLine(origin, direction common.Vec3)

	// AlignWithFrame rotates this frame so one of its axes matches the
	// closest axis of other (world axes when other is nil), when the two
	// are within threshold of alignment. When move is true the origin also
	// snaps to other's origin.
	//
	// Parameters:
	//   - other: the frame to align with, nil for the world frame
	//   - move: snap the position as well as the orientation
	//   - threshold: minimum axis-alignment cosine, in [0, 1]
	AlignWithFrame(other Frame, move bool, threshold float32)

	// Matrix writes the local transform (scale, rotate, translate) into a
	// 16-element column-major slice.
	//
	// Parameters:
	//   - out: destination slice (must be at least 16 elements)
	Matrix(out []float32)

	// WorldMatrix writes the world transform, folding the reference chain,
	// into a 16-element column-major slice.
	//
	// Parameters:
	//   - out: destination slice (must be at least 16 elements)
	WorldMatrix(out []float32)

	// LastUpdate returns the most recent modification tick along this
	// frame's reference chain. A frame's world pose is unchanged as long as
	// this value is.
	//
	// Returns:
	//   - uint64: the modification tick
	LastUpdate() uint64
}

var _ Frame = &frameImpl{}

type frameImpl struct {
	mu *sync.Mutex

	translation common.Vec3
	rotation    common.Rotation
	scaling     common.Vec3
	reference   Frame
	constraint  Constraint
	lastUpdate  uint64
}

// NewFrame creates a world-rooted frame at the origin with identity
// rotation and unit scaling, configurable through options.
//
// Parameters:
//   - opts: optional configuration (translation, rotation, scaling,
//     reference frame, constraint)
//
// Returns:
//   - Frame: the new frame
func NewFrame(opts ...FrameOption) Frame {
	f := &frameImpl{
		mu:       &sync.Mutex{},
		rotation: common.QuatIdentity(),
		scaling:  common.Vec3{X: 1, Y: 1, Z: 1},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *frameImpl) modified() {
	f.lastUpdate = updateCount.Add(1)
}

func (f *frameImpl) Translation() common.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.translation
}

func (f *frameImpl) SetTranslation(t common.Vec3) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.translation = t
	f.modified()
}

func (f *frameImpl) Rotation() common.Rotation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rotation
}

func (f *frameImpl) SetRotation(r common.Rotation) {
	if r == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rotation = r
	f.modified()
}

func (f *frameImpl) Scaling() common.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scaling
}

func (f *frameImpl) SetScaling(s common.Vec3) {
	if s.X == 0 || s.Y == 0 || s.Z == 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scaling = s
	f.modified()
}

func (f *frameImpl) ReferenceFrame() Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reference
}

func (f *frameImpl) SetReferenceFrame(ref Frame) error {
	// Walk up from the proposed reference; finding self means a cycle.
	for ancestor := ref; ancestor != nil; ancestor = ancestor.ReferenceFrame() {
		if ancestor == Frame(f) {
			return ErrCyclicReference
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reference = ref
	f.modified()
	return nil
}

func (f *frameImpl) Constraint() Constraint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.constraint
}

func (f *frameImpl) SetConstraint(c Constraint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constraint = c
}

func (f *frameImpl) Translate(delta common.Vec3) {
	if c := f.Constraint(); c != nil {
		delta = c.ConstrainTranslation(delta, f)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.translation = f.translation.Add(delta)
	f.modified()
}

// isIdentityRotation reports whether a rotation delta carries no rotation
// at all, as produced by a forbidden or fully clamped constraint. Such a
// delta must leave the frame untouched: composing with it would still
// renormalize the stored rotation and bump the modification tick.
func isIdentityRotation(r common.Rotation) bool {
	switch rot := r.(type) {
	case common.Quat:
		return rot == common.QuatIdentity()
	case common.Rot:
		return rot.A == 0
	}
	return false
}

func (f *frameImpl) Rotate(delta common.Rotation) {
	if delta == nil {
		return
	}
	if c := f.Constraint(); c != nil {
		delta = c.ConstrainRotation(delta, f)
	}
	if isIdentityRotation(delta) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rotation = f.rotation.Compose(delta).Normalized()
	f.modified()
}

func (f *frameImpl) RotateAroundPoint(delta common.Rotation, point common.Vec3) {
	if delta == nil {
		return
	}
	if c := f.Constraint(); c != nil {
		delta = c.ConstrainRotation(delta, f)
	}
	if isIdentityRotation(delta) {
		return
	}

	// World-space version of the (local) rotation delta, used to orbit the
	// origin around the pivot.
	var world common.Rotation
	if q, ok := delta.(common.Quat); ok {
		world = common.QuatFromAxisAngle(f.InverseTransformOf(q.Axis()), q.Angle())
	} else {
		world = delta
	}

	pos := f.Position()
	target := point.Add(world.Rotate(pos.Sub(point)))
	trans := target.Sub(pos)
	if ref := f.ReferenceFrame(); ref != nil {
		trans = ref.TransformOf(trans)
	}
	if c := f.Constraint(); c != nil {
		trans = c.ConstrainTranslation(trans, f)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.rotation = f.rotation.Compose(delta).Normalized()
	f.translation = f.translation.Add(trans)
	f.modified()
}

func (f *frameImpl) Scale(factor common.Vec3) {
	if c := f.Constraint(); c != nil {
		factor = c.ConstrainScaling(factor, f)
	}
	if factor.X == 0 || factor.Y == 0 || factor.Z == 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scaling = f.scaling.Mul(factor)
	f.modified()
}

func (f *frameImpl) Position() common.Vec3 {
	return f.InverseCoordinatesOf(common.Vec3{})
}

func (f *frameImpl) SetPosition(p common.Vec3) {
	if ref := f.ReferenceFrame(); ref != nil {
		p = ref.CoordinatesOf(p)
	}
	f.SetTranslation(p)
}

func (f *frameImpl) Orientation() common.Rotation {
	o := f.Rotation()
	for ref := f.ReferenceFrame(); ref != nil; ref = ref.ReferenceFrame() {
		o = ref.Rotation().Compose(o)
	}
	return o.Normalized()
}

func (f *frameImpl) SetOrientation(o common.Rotation) {
	if o == nil {
		return
	}
	if ref := f.ReferenceFrame(); ref != nil {
		o = ref.Orientation().Inverse().Compose(o)
	}
	f.SetRotation(o.Normalized())
}

func (f *frameImpl) Magnitude() common.Vec3 {
	m := f.Scaling()
	for ref := f.ReferenceFrame(); ref != nil; ref = ref.ReferenceFrame() {
		m = m.Mul(ref.Scaling())
	}
	return m
}

func (f *frameImpl) SetMagnitude(m common.Vec3) {
	if m.X == 0 || m.Y == 0 || m.Z == 0 {
		return
	}
	if ref := f.ReferenceFrame(); ref != nil {
		m = m.Div(ref.Magnitude())
	}
	f.SetScaling(m)
}

func (f *frameImpl) LocalCoordinatesOf(src common.Vec3) common.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rotation.InverseRotate(src.Sub(f.translation)).Div(f.scaling)
}

func (f *frameImpl) LocalInverseCoordinatesOf(src common.Vec3) common.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rotation.Rotate(src.Mul(f.scaling)).Add(f.translation)
}

func (f *frameImpl) CoordinatesOf(src common.Vec3) common.Vec3 {
	if ref := f.ReferenceFrame(); ref != nil {
		return f.LocalCoordinatesOf(ref.CoordinatesOf(src))
	}
	return f.LocalCoordinatesOf(src)
}

func (f *frameImpl) InverseCoordinatesOf(src common.Vec3) common.Vec3 {
	var fr Frame = f
	for fr != nil {
		src = fr.LocalInverseCoordinatesOf(src)
		fr = fr.ReferenceFrame()
	}
	return src
}

func (f *frameImpl) localTransformOf(src common.Vec3) common.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rotation.InverseRotate(src).Div(f.scaling)
}

func (f *frameImpl) localInverseTransformOf(src common.Vec3) common.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rotation.Rotate(src.Mul(f.scaling))
}

func (f *frameImpl) TransformOf(src common.Vec3) common.Vec3 {
	if ref := f.ReferenceFrame(); ref != nil {
		return f.localTransformOf(ref.TransformOf(src))
	}
	return f.localTransformOf(src)
}

func (f *frameImpl) InverseTransformOf(src common.Vec3) common.Vec3 {
	out := f.localInverseTransformOf(src)
	if ref := f.ReferenceFrame(); ref != nil {
		return ref.InverseTransformOf(out)
	}
	return out
}

func (f *frameImpl) ProjectOnLine(origin, direction common.Vec3) {
	if direction.IsZero() {
		return
	}
	shift := origin.Sub(f.Position())
	proj := shift.ProjectOnAxis(direction)
	f.SetPosition(f.Position().Add(shift.Sub(proj)))
}

func (f *frameImpl) AlignWithFrame(other Frame, move bool, threshold float32) {
	if _, planar := f.Rotation().(common.Rot); planar {
		f.alignWithFrame2D(other, move, threshold)
		return
	}
	f.alignWithFrame3D(other, move, threshold)
}

func (f *frameImpl) alignWithFrame2D(other Frame, move bool, threshold float32) {
	var target common.Rotation = common.Rot{}
	var center common.Vec3
	if other != nil {
		target = other.Orientation()
		center = other.Position()
	}
	diff, _ := common.Rot{A: target.Angle() - f.Orientation().Angle()}.Normalized().(common.Rot)
	if common.Abs(diff.A) <= threshold {
		f.Rotate(diff)
	}
	if move {
		f.SetPosition(center)
	}
}

func (f *frameImpl) alignWithFrame3D(other Frame, move bool, threshold float32) {
	axes := [3]common.Vec3{{X: 1}, {Y: 1}, {Z: 1}}
	var dirs [2][3]common.Vec3
	for d := 0; d < 3; d++ {
		if other != nil {
			dirs[0][d] = other.InverseTransformOf(axes[d]).Normalized()
		} else {
			dirs[0][d] = axes[d]
		}
		dirs[1][d] = f.InverseTransformOf(axes[d]).Normalized()
	}

	// Find the closest pair of axes between the two frames.
	maxProj := float32(0)
	var idx [2]int
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if proj := common.Abs(dirs[0][i].Dot(dirs[1][j])); proj >= maxProj {
				idx[0], idx[1] = i, j
				maxProj = proj
			}
		}
	}

	oldPosition := f.Position()
	oldOrientation := f.Orientation()

	coef := dirs[0][idx[0]].Dot(dirs[1][idx[1]])
	if common.Abs(coef) >= threshold {
		axis := dirs[0][idx[0]].Cross(dirs[1][idx[1]])
		angle := common.Asin(axis.Norm())
		if coef >= 0 {
			angle = -angle
		}
		f.rotateWorld(common.QuatFromAxisAngle(axis, angle))

		// Try to align a second axis, fixing the roll around the first.
		d := (idx[1] + 1) % 3
		dir := f.InverseTransformOf(axes[d]).Normalized()
		max := float32(0)
		for i := 0; i < 3; i++ {
			if proj := common.Abs(dirs[0][i].Dot(dir)); proj > max {
				idx[0] = i
				max = proj
			}
		}
		if max >= threshold {
			axis = dirs[0][idx[0]].Cross(dir)
			angle = common.Asin(axis.Norm())
			if dirs[0][idx[0]].Dot(dir) >= 0 {
				angle = -angle
			}
			f.rotateWorld(common.QuatFromAxisAngle(axis, angle))
		}
	}

	if move {
		var center common.Vec3
		if other != nil {
			center = other.Position()
		}
		old := NewFrame(WithTranslation(oldPosition))
		old.SetRotation(oldOrientation)
		f.Translate(center.Sub(f.Orientation().Rotate(old.CoordinatesOf(center))).Sub(f.Translation()))
	}
}

// rotateWorld applies a rotation expressed in world coordinates.
func (f *frameImpl) rotateWorld(world common.Quat) {
	q, ok := f.Orientation().(common.Quat)
	if !ok {
		return
	}
	f.Rotate(q.InverseQuat().Mul(world).Mul(q))
}

func (f *frameImpl) Matrix(out []float32) {
	f.mu.Lock()
	t, r, s := f.translation, f.rotation, f.scaling
	f.mu.Unlock()
	common.BuildMatrix(out, t, r, s)
}

func (f *frameImpl) WorldMatrix(out []float32) {
	f.Matrix(out)
	if ref := f.ReferenceFrame(); ref != nil {
		var parent [16]float32
		ref.WorldMatrix(parent[:])
		common.Mul4(out, parent[:], out)
	}
}

func (f *frameImpl) LastUpdate() uint64 {
	f.mu.Lock()
	last := f.lastUpdate
	f.mu.Unlock()
	for ref := f.ReferenceFrame(); ref != nil; ref = ref.ReferenceFrame() {
		if u := ref.LastUpdate(); u > last {
			last = u
		}
	}
	return last
}
