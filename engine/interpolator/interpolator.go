// package interpolator implements keyframe path playback: an ordered list
// of (pose, time) keyframes evaluated through a Catmull-Rom spline on
// position and scale and spherical interpolation on orientation, driving a
// target frame from a scheduler task.
package interpolator

import (
	"log"
	"sync"
	"time"

	"github.com/avery-hale/navscene-go/common"
	"github.com/avery-hale/navscene-go/engine/frame"
	"github.com/avery-hale/navscene-go/engine/timing"
)

// defaultPeriod is the playback task interval.
const defaultPeriod = 40 * time.Millisecond

// keyFrame is an immutable pose snapshot on the path. Snapshots are taken
// at append time; later changes to the source frame do not move the path.
type keyFrame struct {
	translation common.Vec3
	rotation    common.Rotation
	scaling     common.Vec3
	time        float32
}

// KeyFrameInterpolator plays a keyframe path, updating its target frame's
// pose on every tick of its playback task.
type KeyFrameInterpolator interface {
	// Frame returns the frame the interpolator drives.
	Frame() frame.Frame

	// SetFrame retargets the interpolator. A nil frame is ignored.
	//
	// Parameters:
	//   - f: the frame to drive
	SetFrame(f frame.Frame)

	// AddKeyFrame snapshots src's current world pose and appends it one
	// second after the last keyframe (at time 0 for the first).
	//
	// Parameters:
	//   - src: the frame to snapshot
	AddKeyFrame(src frame.Frame)

	// AddKeyFrameAt snapshots src's current world pose at an explicit
	// time. Times must increase with insertion order; an out-of-order time
	// is replaced by last time + 1 and logged.
	//
	// Parameters:
	//   - src: the frame to snapshot
	//   - t: the keyframe time in seconds
	AddKeyFrameAt(src frame.Frame, t float32)

	// DeleteKeyFrame removes the keyframe at index i, stopping playback
	// first if the path is playing.
	//
	// Parameters:
	//   - i: the keyframe index
	//
	// Returns:
	//   - bool: false if the index is out of range
	DeleteKeyFrame(i int) bool

	// NumberOfKeyFrames returns the keyframe count.
	NumberOfKeyFrames() int

	// KeyFrameTime returns the time of the keyframe at index i.
	//
	// Parameters:
	//   - i: the keyframe index
	//
	// Returns:
	//   - float32: the keyframe time in seconds
	//   - bool: false if the index is out of range
	KeyFrameTime(i int) (float32, bool)

	// FirstTime returns the first keyframe's time, 0 when empty.
	FirstTime() float32

	// LastTime returns the last keyframe's time, 0 when empty.
	LastTime() float32

	// Duration returns LastTime minus FirstTime.
	Duration() float32

	// StartInterpolation arms the playback task. Paths with fewer than two
	// keyframes do not start. A finished non-looping path rewinds first.
	// Starting an already playing path re-arms its task.
	StartInterpolation()

	// StopInterpolation disarms the playback task, keeping the clock.
	StopInterpolation()

	// IsInterpolationStarted reports whether the playback task is armed.
	IsInterpolationStarted() bool

	// ResetInterpolation rewinds the clock to the first keyframe and
	// evaluates the pose there, without changing the play state.
	ResetInterpolation()

	// InterpolationTime returns the playback clock in seconds.
	InterpolationTime() float32

	// SetInterpolationTime sets the playback clock without evaluating.
	//
	// Parameters:
	//   - t: the clock value in seconds
	SetInterpolationTime(t float32)

	// InterpolationSpeed returns the clock rate multiplier. Default 1;
	// negative plays backwards.
	InterpolationSpeed() float32

	// SetInterpolationSpeed sets the clock rate multiplier.
	SetInterpolationSpeed(speed float32)

	// InterpolationPeriod returns the playback task interval.
	InterpolationPeriod() time.Duration

	// SetInterpolationPeriod sets the playback task interval.
	// Non-positive periods are ignored.
	SetInterpolationPeriod(period time.Duration)

	// Loop reports whether playback wraps at the last keyframe.
	Loop() bool

	// SetLoop toggles wrapping playback.
	SetLoop(loop bool)

	// InterpolateAtTime evaluates the spline at time t and writes the
	// resulting pose to the target frame. Out-of-range times clamp to the
	// path ends. A no-op when the path is empty or no frame is attached.
	//
	// Parameters:
	//   - t: the evaluation time in seconds
	InterpolateAtTime(t float32)

	// ClearPath stops playback and discards all keyframes.
	ClearPath()

	// Release cancels the playback task, unregistering it from the
	// scheduler.
	Release()
}

var _ KeyFrameInterpolator = &interpolatorImpl{}

type interpolatorImpl struct {
	mu *sync.Mutex

	target    frame.Frame
	keyFrames []keyFrame

	clock  float32
	speed  float32
	period time.Duration
	loop   bool

	task timing.Task
}

// NewKeyFrameInterpolator creates an interpolator driving the given frame,
// with its playback task registered on the scheduler.
//
// Parameters:
//   - scheduler: the scheduler the playback task registers with
//   - target: the frame to drive, may be nil and set later
//   - opts: optional configuration (speed, period, loop)
//
// Returns:
//   - KeyFrameInterpolator: the new interpolator
func NewKeyFrameInterpolator(scheduler timing.Scheduler, target frame.Frame, opts ...InterpolatorOption) KeyFrameInterpolator {
	kfi := &interpolatorImpl{
		mu:     &sync.Mutex{},
		target: target,
		speed:  1.0,
		period: defaultPeriod,
	}
	for _, opt := range opts {
		opt(kfi)
	}
	kfi.task = scheduler.NewTask(kfi.update)
	return kfi
}

func (kfi *interpolatorImpl) Frame() frame.Frame {
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	return kfi.target
}

func (kfi *interpolatorImpl) SetFrame(f frame.Frame) {
	if f == nil {
		return
	}
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	kfi.target = f
}

func (kfi *interpolatorImpl) AddKeyFrame(src frame.Frame) {
	kfi.mu.Lock()
	t := float32(0)
	if n := len(kfi.keyFrames); n > 0 {
		t = kfi.keyFrames[n-1].time + 1
	}
	kfi.mu.Unlock()
	kfi.AddKeyFrameAt(src, t)
}

func (kfi *interpolatorImpl) AddKeyFrameAt(src frame.Frame, t float32) {
	if src == nil {
		return
	}
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	if n := len(kfi.keyFrames); n > 0 && t <= kfi.keyFrames[n-1].time {
		fixed := kfi.keyFrames[n-1].time + 1
		log.Printf("interpolator: keyframe time %v not increasing, using %v", t, fixed)
		t = fixed
	}
	kfi.keyFrames = append(kfi.keyFrames, keyFrame{
		translation: src.Position(),
		rotation:    src.Orientation(),
		scaling:     src.Magnitude(),
		time:        t,
	})
}

func (kfi *interpolatorImpl) DeleteKeyFrame(i int) bool {
	if kfi.IsInterpolationStarted() {
		kfi.StopInterpolation()
	}
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	if i < 0 || i >= len(kfi.keyFrames) {
		return false
	}
	kfi.keyFrames = append(kfi.keyFrames[:i], kfi.keyFrames[i+1:]...)
	return true
}

func (kfi *interpolatorImpl) NumberOfKeyFrames() int {
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	return len(kfi.keyFrames)
}

func (kfi *interpolatorImpl) KeyFrameTime(i int) (float32, bool) {
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	if i < 0 || i >= len(kfi.keyFrames) {
		return 0, false
	}
	return kfi.keyFrames[i].time, true
}

func (kfi *interpolatorImpl) FirstTime() float32 {
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	if len(kfi.keyFrames) == 0 {
		return 0
	}
	return kfi.keyFrames[0].time
}

func (kfi *interpolatorImpl) LastTime() float32 {
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	if len(kfi.keyFrames) == 0 {
		return 0
	}
	return kfi.keyFrames[len(kfi.keyFrames)-1].time
}

func (kfi *interpolatorImpl) Duration() float32 {
	return kfi.LastTime() - kfi.FirstTime()
}

func (kfi *interpolatorImpl) StartInterpolation() {
	kfi.mu.Lock()
	n := len(kfi.keyFrames)
	period := kfi.period
	finished := n > 0 && kfi.speed > 0 && kfi.clock >= kfi.keyFrames[n-1].time
	kfi.mu.Unlock()

	if n < 2 {
		return
	}
	if finished {
		kfi.SetInterpolationTime(kfi.FirstTime())
	}
	kfi.task.Run(period)
}

func (kfi *interpolatorImpl) StopInterpolation() {
	kfi.task.Stop()
}

func (kfi *interpolatorImpl) IsInterpolationStarted() bool {
	return kfi.task.IsActive()
}

func (kfi *interpolatorImpl) ResetInterpolation() {
	first := kfi.FirstTime()
	kfi.SetInterpolationTime(first)
	kfi.InterpolateAtTime(first)
}

func (kfi *interpolatorImpl) InterpolationTime() float32 {
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	return kfi.clock
}

func (kfi *interpolatorImpl) SetInterpolationTime(t float32) {
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	kfi.clock = t
}

func (kfi *interpolatorImpl) InterpolationSpeed() float32 {
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	return kfi.speed
}

func (kfi *interpolatorImpl) SetInterpolationSpeed(speed float32) {
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	kfi.speed = speed
}

func (kfi *interpolatorImpl) InterpolationPeriod() time.Duration {
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	return kfi.period
}

func (kfi *interpolatorImpl) SetInterpolationPeriod(period time.Duration) {
	if period <= 0 {
		return
	}
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	kfi.period = period
}

func (kfi *interpolatorImpl) Loop() bool {
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	return kfi.loop
}

func (kfi *interpolatorImpl) SetLoop(loop bool) {
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	kfi.loop = loop
}

func (kfi *interpolatorImpl) ClearPath() {
	kfi.StopInterpolation()
	kfi.mu.Lock()
	defer kfi.mu.Unlock()
	kfi.keyFrames = nil
	kfi.clock = 0
}

func (kfi *interpolatorImpl) Release() {
	kfi.task.Cancel()
}

// update advances the playback clock by one task period and evaluates the
// pose there, wrapping or stopping at the path end.
func (kfi *interpolatorImpl) update() {
	kfi.mu.Lock()
	n := len(kfi.keyFrames)
	if n == 0 {
		kfi.mu.Unlock()
		kfi.StopInterpolation()
		return
	}
	kfi.clock += kfi.speed * float32(kfi.period.Seconds())
	t := kfi.clock
	first := kfi.keyFrames[0].time
	last := kfi.keyFrames[n-1].time
	loop := kfi.loop
	forward := kfi.speed >= 0
	kfi.mu.Unlock()

	stop := false
	switch {
	case forward && t > last:
		if loop {
			kfi.SetInterpolationTime(first + t - last)
		} else {
			kfi.SetInterpolationTime(last)
			stop = true
		}
	case !forward && t < first:
		if loop {
			kfi.SetInterpolationTime(last - (first - t))
		} else {
			kfi.SetInterpolationTime(first)
			stop = true
		}
	}

	kfi.InterpolateAtTime(kfi.InterpolationTime())
	if stop {
		kfi.StopInterpolation()
	}
}

func (kfi *interpolatorImpl) InterpolateAtTime(t float32) {
	kfi.mu.Lock()
	target := kfi.target
	kfs := kfi.keyFrames
	kfi.mu.Unlock()

	if target == nil || len(kfs) == 0 {
		return
	}

	tr, rot, scl := evaluate(kfs, t)
	target.SetPosition(tr)
	target.SetOrientation(rot)
	target.SetMagnitude(scl)
}

// evaluate samples the path at time t: Catmull-Rom over translation and
// scaling, spherical interpolation over orientation, clamped to the path
// ends.
func evaluate(kfs []keyFrame, t float32) (common.Vec3, common.Rotation, common.Vec3) {
	n := len(kfs)
	if n == 1 || t <= kfs[0].time {
		first := kfs[0]
		return first.translation, first.rotation, first.scaling
	}
	if t >= kfs[n-1].time {
		last := kfs[n-1]
		return last.translation, last.rotation, last.scaling
	}

	// Locate the segment containing t.
	seg := 0
	for seg < n-1 && kfs[seg+1].time < t {
		seg++
	}
	k1, k2 := kfs[seg], kfs[seg+1]
	u := (t - k1.time) / (k2.time - k1.time)

	k0 := kfs[clampIndex(seg-1, n)]
	k3 := kfs[clampIndex(seg+2, n)]

	tr := catmullRom(k0.translation, k1.translation, k2.translation, k3.translation, u)
	scl := catmullRom(k0.scaling, k1.scaling, k2.scaling, k3.scaling, u)

	var rot common.Rotation
	switch r1 := k1.rotation.(type) {
	case common.Quat:
		if r2, ok := k2.rotation.(common.Quat); ok {
			rot = r1.Slerp(r2, u)
		} else {
			rot = r1
		}
	case common.Rot:
		if r2, ok := k2.rotation.(common.Rot); ok {
			rot = common.Rot{A: r1.A + u*(r2.A-r1.A)}
		} else {
			rot = r1
		}
	default:
		rot = k1.rotation
	}

	return tr, rot, scl
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// catmullRom evaluates the centripetal-free (uniform) Catmull-Rom spline
// through p1 and p2 with neighbors p0 and p3, at parameter u in [0, 1].
func catmullRom(p0, p1, p2, p3 common.Vec3, u float32) common.Vec3 {
	u2 := u * u
	u3 := u2 * u
	c0 := -0.5*u3 + u2 - 0.5*u
	c1 := 1.5*u3 - 2.5*u2 + 1
	c2 := -1.5*u3 + 2*u2 + 0.5*u
	c3 := 0.5*u3 - 0.5*u2
	return p0.Scale(c0).Add(p1.Scale(c1)).Add(p2.Scale(c2)).Add(p3.Scale(c3))
}
