// package culler batches visibility classification over many bounded
// shapes, fanning the work out across a persistent worker pool so large
// scenes do not serialize on a single core.
package culler

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/avery-hale/navscene-go/common"
	"github.com/avery-hale/navscene-go/engine/eye"
)

// Ball is a bounding sphere in world coordinates.
type Ball struct {
	Center common.Vec3
	Radius float32
}

// Box is an axis-aligned bounding box in world coordinates.
type Box struct {
	Min common.Vec3
	Max common.Vec3
}

// Culler classifies batches of bounding volumes against an eye's boundary
// planes. The planes are snapshotted once per call, so every item in a
// batch sees the same eye state even while the eye keeps moving.
type Culler interface {
	// BallVisibilities classifies every ball against the eye's boundary
	// planes.
	//
	// Parameters:
	//   - e: the eye whose boundary planes to test against
	//   - balls: the bounding spheres
	//
	// Returns:
	//   - []eye.Visibility: one classification per ball, same order
	BallVisibilities(e eye.Eye, balls []Ball) []eye.Visibility

	// BoxVisibilities classifies every box against the eye's boundary
	// planes.
	//
	// Parameters:
	//   - e: the eye whose boundary planes to test against
	//   - boxes: the bounding boxes
	//
	// Returns:
	//   - []eye.Visibility: one classification per box, same order
	BoxVisibilities(e eye.Eye, boxes []Box) []eye.Visibility

	// VisibleBalls returns the indices of the balls that are not
	// Invisible, preserving order.
	//
	// Parameters:
	//   - e: the eye whose boundary planes to test against
	//   - balls: the bounding spheres
	//
	// Returns:
	//   - []int: indices of visible and semi-visible balls
	VisibleBalls(e eye.Eye, balls []Ball) []int

	// Workers returns the configured worker count.
	Workers() int
}

type cullerImpl struct {
	pool    worker.DynamicWorkerPool
	workers int
}

var _ Culler = &cullerImpl{}

// NewCuller builds a culler backed by a persistent worker pool. Workers
// are reused across calls, avoiding per-batch goroutine churn.
//
// Parameters:
//   - opts: optional CullerOption configuration
//
// Returns:
//   - Culler: the new culler
func NewCuller(opts ...CullerOption) Culler {
	c := &cullerImpl{
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	// Queue size of 256 covers typical batch fan-out with headroom.
	c.pool = worker.NewDynamicWorkerPool(c.workers, 256, 1*time.Second)
	return c
}

func (c *cullerImpl) Workers() int {
	return c.workers
}

func (c *cullerImpl) BallVisibilities(e eye.Eye, balls []Ball) []eye.Visibility {
	planes := snapshotPlanes(e)
	out := make([]eye.Visibility, len(balls))
	c.forEachChunk(len(balls), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = classifyBall(planes, balls[i])
		}
	})
	return out
}

func (c *cullerImpl) BoxVisibilities(e eye.Eye, boxes []Box) []eye.Visibility {
	planes := snapshotPlanes(e)
	out := make([]eye.Visibility, len(boxes))
	c.forEachChunk(len(boxes), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = classifyBox(planes, boxes[i])
		}
	})
	return out
}

func (c *cullerImpl) VisibleBalls(e eye.Eye, balls []Ball) []int {
	vis := c.BallVisibilities(e, balls)
	out := make([]int, 0, len(balls))
	for i, v := range vis {
		if v != eye.Invisible {
			out = append(out, i)
		}
	}
	return out
}

// forEachChunk splits [0, n) across the pool and blocks until every chunk
// ran. A WaitGroup provides the barrier since the pool itself only drains
// on idle timeout.
func (c *cullerImpl) forEachChunk(n int, do func(lo, hi int)) {
	if n == 0 {
		return
	}
	chunk := n / (c.workers * 4)
	if chunk < 1 {
		chunk = 1
	}

	var wg sync.WaitGroup
	taskID := 0
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		loCap, hiCap := lo, hi
		id := taskID
		taskID++
		c.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				do(loCap, hiCap)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// snapshotPlanes refreshes and copies the eye's boundary planes so the
// batch classifies against one consistent eye state.
func snapshotPlanes(e eye.Eye) []common.Plane {
	e.ComputeBoundaryEquations()
	src := e.BoundaryEquations()
	planes := make([]common.Plane, len(src))
	copy(planes, src)
	return planes
}

func classifyBall(planes []common.Plane, b Ball) eye.Visibility {
	semi := false
	for _, p := range planes {
		d := p.SignedDistance(b.Center)
		if d > b.Radius {
			return eye.Invisible
		}
		if d > -b.Radius {
			semi = true
		}
	}
	if semi {
		return eye.SemiVisible
	}
	return eye.Visible
}

func classifyBox(planes []common.Plane, b Box) eye.Visibility {
	semi := false
	for _, p := range planes {
		outside := 0
		for c := 0; c < 8; c++ {
			corner := b.Min
			if c&1 != 0 {
				corner.X = b.Max.X
			}
			if c&2 != 0 {
				corner.Y = b.Max.Y
			}
			if c&4 != 0 {
				corner.Z = b.Max.Z
			}
			if p.SignedDistance(corner) > 0 {
				outside++
			}
		}
		if outside == 8 {
			return eye.Invisible
		}
		if outside > 0 {
			semi = true
		}
	}
	if semi {
		return eye.SemiVisible
	}
	return eye.Visible
}
