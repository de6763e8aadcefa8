package hull

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/gmlewis/giftwrap/points"
	"github.com/gmlewis/giftwrap/vec2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSet(t *testing.T, pts ...vec2.Vec2) *points.Set {
	t.Helper()
	ps, err := points.FromPoints(pts)
	require.NoError(t, err)
	return ps
}

var (
	origin = vec2.New(0, 0)
	ne     = vec2.New(1, 1)
	nw     = vec2.New(-1, 1)
	sw     = vec2.New(-1, -1)
	se     = vec2.New(1, -1)
)

func TestAdvance_Triangle(t *testing.T) {
	a, b, c := vec2.New(0, 0), vec2.New(1, 0), vec2.New(0, 1)
	hb := New(newSet(t, a, b, c))
	assert.Equal(t, Empty, hb.State())

	want := [][]vec2.Vec2{
		{a},
		{a, b},
		{a, b, c},
		{a, b, c, a},
	}
	for i, w := range want {
		require.True(t, hb.Advance(), "step %v", i+1)
		assert.Equal(t, w, hb.Vertices(), "step %v", i+1)
		assert.Equal(t, Growing, hb.State())
	}

	assert.False(t, hb.Advance())
	assert.Equal(t, Closed, hb.State())
	assert.Equal(t, []vec2.Vec2{a, b, c, a}, hb.Vertices())
	assert.Equal(t, 4, hb.Steps())
	assert.ElementsMatch(t, []vec2.Vec2{a, b, c}, hb.Vertices()[:3])
}

func TestAdvance_SeedReplacement(t *testing.T) {
	// The centroid coincides with the seed, so every candidate turns 0°
	// and the first one replaces the seed.
	hb := New(newSet(t, origin, ne, nw, sw, se))

	require.True(t, hb.Advance())
	assert.Equal(t, []vec2.Vec2{origin}, hb.Vertices())

	require.True(t, hb.Advance())
	assert.Equal(t, 1, hb.Len())
	assert.Equal(t, []vec2.Vec2{ne}, hb.Vertices())

	// From a corner the best turn is 135°, so the hull grows.
	require.True(t, hb.Advance())
	assert.Equal(t, []vec2.Vec2{ne, nw}, hb.Vertices())

	n, err := hb.Run(10)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []vec2.Vec2{ne, nw, sw, se, ne}, hb.Vertices())
	assert.Equal(t, 6, hb.Steps())
}

func TestAdvance_ClosureAtFirstVertexLeavesHullUnchanged(t *testing.T) {
	hb := New(newSet(t, origin, ne, nw, sw, se))
	hb.verts = []vec2.Vec2{ne, nw, sw, se, ne}
	before := hb.Vertices()

	for i := 0; i < 3; i++ {
		assert.False(t, hb.Advance())
		assert.Equal(t, before, hb.Vertices())
		assert.Equal(t, Closed, hb.State())
	}
	assert.Equal(t, 0, hb.Steps())
}

func TestAdvance_WindUpPrefixIsDropped(t *testing.T) {
	tests := []struct {
		verts []vec2.Vec2
		want  []vec2.Vec2
	}{
		{
			verts: []vec2.Vec2{origin, ne, nw, sw, se, ne},
			want:  []vec2.Vec2{nw, sw, se, ne, nw},
		},
		{
			verts: []vec2.Vec2{origin, sw, se, ne, nw, sw, se},
			want:  []vec2.Vec2{ne, nw, sw, se, ne},
		},
		{
			// No earlier occurrence: plain extension.
			verts: []vec2.Vec2{origin, ne},
			want:  []vec2.Vec2{origin, ne, nw},
		},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("test #%v", i), func(t *testing.T) {
			hb := New(newSet(t, origin, ne, nw, sw, se))
			hb.verts = tt.verts

			require.True(t, hb.Advance())
			assert.Equal(t, tt.want, hb.Vertices())

			_, err := hb.Run(10)
			require.NoError(t, err)
			assert.Equal(t, Closed, hb.State())
			got := hb.Vertices()
			assert.Equal(t, got[0], got[len(got)-1])
		})
	}
}

func TestAdvance_SkipsCurrentVertex(t *testing.T) {
	// Duplicates of the current vertex have zero length and never win.
	hb := New(newSet(t, ne, ne, nw, sw, se, ne))
	n, err := hb.Run(20)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []vec2.Vec2{ne, nw, sw, se, ne}, hb.Vertices())
}

func TestWithTolerance(t *testing.T) {
	a, b, c := vec2.New(0, 0), vec2.New(1, 0), vec2.New(0, 1)
	nearA := vec2.New(1e-7, 0)

	exact := New(newSet(t, a, b, c))
	exact.verts = []vec2.Vec2{a, b, c, nearA}
	assert.True(t, exact.Advance())

	loose := New(newSet(t, a, b, c), WithTolerance(1e-6))
	loose.verts = []vec2.Vec2{a, b, c, nearA}
	assert.False(t, loose.Advance())
	assert.Equal(t, []vec2.Vec2{a, b, c, nearA}, loose.Vertices())
}

func TestRun_StepLimit(t *testing.T) {
	a, b, c := vec2.New(0, 0), vec2.New(1, 0), vec2.New(0, 1)
	hb := New(newSet(t, a, b, c))
	n, err := hb.Run(2)
	assert.Equal(t, ErrStepLimit, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, Growing, hb.State())
}

// randomSet samples n points and moves the lowest one to the front so the
// walk starts on the hull.
func randomSet(t *testing.T, n int, seed uint64) *points.Set {
	t.Helper()
	ps, err := points.New(n, 0.9, rand.New(rand.NewPCG(seed, seed)))
	require.NoError(t, err)

	pts := ps.Points()
	low := 0
	for i, p := range pts {
		if p.Y() < pts[low].Y() {
			low = i
		}
	}
	pts[0], pts[low] = pts[low], pts[0]
	return newSet(t, pts...)
}

func TestRun_RandomSetsContainAllPoints(t *testing.T) {
	for _, n := range []int{3, 4, 10, 20, 50, 200} {
		for seed := uint64(1); seed <= 5; seed++ {
			t.Run(fmt.Sprintf("n=%v seed=%v", n, seed), func(t *testing.T) {
				ps := randomSet(t, n, seed)
				hb := New(ps)
				_, err := hb.Run(10*n + 10)
				require.NoError(t, err)
				require.Equal(t, Closed, hb.State())

				verts := hb.Vertices()
				require.True(t, len(verts) >= 4, "hull too short: %v", verts)
				require.Equal(t, verts[0], verts[len(verts)-1])
				poly := verts[:len(verts)-1]

				for _, p := range ps.Points() {
					assert.True(t, Contains(poly, p, 1e-12), "%v outside hull %v", p, poly)
				}
				assert.ElementsMatch(t, Reference(ps.Points()), poly)
			})
		}
	}
}

// Sampled sets keep their draw order, so the walk usually seeds on an
// interior point and has to replace the seed and trim its wind-up.
func TestRun_SampledSetsMatchReference(t *testing.T) {
	for _, n := range []int{3, 4, 5, 10, 20, 50} {
		for seed := uint64(1); seed <= 40; seed++ {
			t.Run(fmt.Sprintf("n=%v seed=%v", n, seed), func(t *testing.T) {
				ps, err := points.New(n, 0.9, rand.New(rand.NewPCG(seed, seed)))
				require.NoError(t, err)

				hb := New(ps)
				_, err = hb.Run(10*n + 10)
				require.NoError(t, err)
				require.Equal(t, Closed, hb.State())

				verts := hb.Vertices()
				require.True(t, len(verts) >= 4, "hull too short: %v", verts)
				require.Equal(t, verts[0], verts[len(verts)-1])
				poly := verts[:len(verts)-1]

				for _, p := range ps.Points() {
					assert.True(t, Contains(poly, p, 1e-12), "%v outside hull %v", p, poly)
				}
				assert.ElementsMatch(t, Reference(ps.Points()), poly)
				assert.NoError(t, hb.Verify())
			})
		}
	}
}

func TestAdvance_Deterministic(t *testing.T) {
	ps := randomSet(t, 50, 7)
	a, b := New(ps), New(ps)
	for i := 0; i < 200; i++ {
		ca, cb := a.Advance(), b.Advance()
		require.Equal(t, ca, cb, "step %v", i)
		require.Equal(t, a.Vertices(), b.Vertices(), "step %v", i)
	}
}

func TestConcurrentReaders(t *testing.T) {
	hb := New(randomSet(t, 100, 3))

	var wg sync.WaitGroup
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				verts := hb.Vertices()
				assert.True(t, len(verts) <= hb.Steps()+1)
				_ = hb.State()
			}
		}()
	}

	_, err := hb.Run(1000)
	close(done)
	wg.Wait()
	require.NoError(t, err)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "growing", Growing.String())
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "unknown", State(9).String())
}
