package viewrig

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 1.0 / 60

func assertVecNear(t *testing.T, want, got mgl64.Vec3, msgAndArgs ...any) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-6, msgAndArgs...)
	}
}

// assertLooksAt checks that the pose faces target.
func assertLooksAt(t *testing.T, p Pose, target mgl64.Vec3) {
	t.Helper()
	want := target.Sub(p.Position).Normalize()
	assertVecNear(t, want, p.Forward(), "forward should point at %v", target)
}

func runUntilSettled(t *testing.T, r *Rig) {
	t.Helper()
	for i := 0; i < 10000 && r.Mode() == ModeTransitioning; i++ {
		r.Update(Input{DeltaTime: tick})
	}
	require.Equal(t, ModeFocused, r.Mode())
}

func TestNewRigStartsFree(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}))

	assert.Equal(t, ModeFree, r.Mode())
	assert.False(t, r.HasFocus())
	assert.Equal(t, 0.0, r.FocusRadius())
	assertVecNear(t, mgl64.Vec3{0, 0, -1}, r.Pose().Forward())
	assertVecNear(t, mgl64.Vec3{0, 1, 0}, r.Pose().Up())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "Free", ModeFree.String())
	assert.Equal(t, "Focused", ModeFocused.String())
	assert.Equal(t, "Transitioning", ModeTransitioning.String())
	assert.Equal(t, "Unknown", Mode(42).String())
}

func TestRequiredDistance(t *testing.T) {
	testCases := []struct {
		name     string
		radius   float64
		expected float64
	}{
		{name: "fits inside bounds", radius: 2, expected: 3 / math.Tan(math.Pi/6)},
		{name: "clamped to min zoom", radius: 0.1, expected: 1},
		{name: "clamped to max zoom", radius: 50, expected: 20},
	}

	r := NewRig(Pose{Orientation: mgl64.QuatIdent()},
		WithFocusPadding(1.5), WithFieldOfView(60), WithZoomBounds(1, 20))

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, r.requiredDistance(tc.radius), 1e-9)
		})
	}
	assert.InDelta(t, 5.196, r.requiredDistance(2), 1e-3)
}

func TestFocusFramesTarget(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}),
		WithFocusPadding(1.5), WithFieldOfView(60), WithZoomBounds(1, 20))

	r.Focus(mgl64.Vec3{}, 2)
	assert.Equal(t, ModeTransitioning, r.Mode())
	runUntilSettled(t, r)

	want := 3 / math.Tan(math.Pi/6)
	assertVecNear(t, mgl64.Vec3{0, 0, want}, r.Pose().Position)
	assertLooksAt(t, r.Pose(), mgl64.Vec3{})
	assert.True(t, r.HasFocus())
	assert.Equal(t, 2.0, r.FocusRadius())
	assertVecNear(t, mgl64.Vec3{0, 0, want}, r.Offset())
}

func TestTransitionLinearScenario(t *testing.T) {
	// padding 1 and a 90 degree field of view make the framing distance
	// equal to the radius
	r := NewRig(NewPose(mgl64.Vec3{}, mgl64.Vec3{0, 0, 20}),
		WithFocusPadding(1), WithFieldOfView(90), WithZoomBounds(1, 20),
		WithTransition(1, Linear))

	center := mgl64.Vec3{0, 0, 20}
	r.Focus(center, 10)

	r.Update(Input{DeltaTime: 0.5})
	assert.Equal(t, ModeTransitioning, r.Mode())
	assertVecNear(t, mgl64.Vec3{0, 0, 5}, r.Pose().Position)

	r.Update(Input{DeltaTime: 0.5})
	assert.Equal(t, ModeFocused, r.Mode())
	assertVecNear(t, mgl64.Vec3{0, 0, 10}, r.Pose().Position)
	assertVecNear(t, center, r.FocusPoint())
	assertVecNear(t, mgl64.Vec3{0, 0, -10}, r.Offset())
	assertLooksAt(t, r.Pose(), center)
}

func TestCompletedTransitionLandsExactlyOnTarget(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{3, 4, 12}, mgl64.Vec3{}), WithTransition(0.7, EaseInOut))
	r.Focus(mgl64.Vec3{1, -2, 0.5}, 1.2)
	require.NotNil(t, r.job)
	end := r.job.end

	// odd tick lengths so elapsed overshoots the duration
	for r.Mode() == ModeTransitioning {
		r.Update(Input{DeltaTime: 0.13})
	}

	assert.Equal(t, ModeFocused, r.Mode())
	assert.Equal(t, end, r.Pose())
	assert.Nil(t, r.job)
	assertVecNear(t, r.FocusPoint().Add(r.Offset()), r.Pose().Position)
}

func TestRefocusMidTransitionIsContinuous(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{0, 5, 15}, mgl64.Vec3{}))
	r.Focus(mgl64.Vec3{4, 0, 0}, 1)
	for i := 0; i < 20; i++ {
		r.Update(Input{DeltaTime: tick})
	}
	require.Equal(t, ModeTransitioning, r.Mode())
	before := r.Pose()

	r.Focus(mgl64.Vec3{-6, 1, 2}, 2)
	require.NotNil(t, r.job)
	assert.Equal(t, before, r.job.start, "new transition must start from the current pose")
	assert.Equal(t, before, r.Pose(), "focus must not move the camera by itself")

	r.Update(Input{DeltaTime: tick})
	assert.Less(t, r.Pose().Position.Sub(before.Position).Len(), 0.5)
}

func TestDoubleFocusOnlyReachesSecondTarget(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}))
	first := mgl64.Vec3{10, 0, 0}
	second := mgl64.Vec3{-3, 2, 1}

	r.Focus(first, 1)
	r.Focus(second, 1)
	runUntilSettled(t, r)

	assertVecNear(t, second, r.FocusPoint())
	assertLooksAt(t, r.Pose(), second)
	assert.InDelta(t, r.requiredDistance(1), r.Pose().Position.Sub(second).Len(), 1e-6)
}

func TestFocusSameTargetKeepsTransition(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}))
	center := mgl64.Vec3{1, 1, 1}

	r.Focus(center, 2)
	r.Update(Input{DeltaTime: 0.25})
	job := r.job

	r.Focus(center, 2)
	assert.Same(t, job, r.job)
	assert.InDelta(t, 0.25, r.job.elapsed, 1e-12)
}

func TestZeroDurationSnaps(t *testing.T) {
	for _, duration := range []float64{0, -1} {
		r := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}), WithTransition(duration, Linear))
		r.Focus(mgl64.Vec3{}, 2)

		assert.Equal(t, ModeFocused, r.Mode(), "duration %v", duration)
		assert.Nil(t, r.job)
		assertLooksAt(t, r.Pose(), mgl64.Vec3{})
	}
}

func TestNonFiniteDurationSnaps(t *testing.T) {
	for _, duration := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		r := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}), WithTransition(duration, Linear))
		r.Focus(mgl64.Vec3{}, 2)

		require.Equal(t, ModeFocused, r.Mode(), "duration %v", duration)
		assertVecNear(t, mgl64.Vec3{0, 0, r.requiredDistance(2)}, r.Pose().Position)
		assertLooksAt(t, r.Pose(), mgl64.Vec3{})

		r.Update(Input{DeltaTime: tick, Orbit: mgl64.Vec2{1, 0}})
		assert.False(t, math.IsNaN(r.Pose().Position.Len()), "duration %v", duration)
	}
}

func TestFocusNonPositiveRadius(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}), WithTransition(0, nil))
	r.Focus(mgl64.Vec3{}, -3)
	assert.Equal(t, MinFocusRadius, r.FocusRadius())
}

func TestFocusFromTargetCenterFallsBack(t *testing.T) {
	center := mgl64.Vec3{2, 2, 2}
	r := NewRig(NewPose(center, mgl64.Vec3{}), WithTransition(0, nil))

	r.Focus(center, 2)

	dist := r.requiredDistance(2)
	assertVecNear(t, center.Add(mgl64.Vec3{0, 0, dist}), r.Pose().Position)
	assertLooksAt(t, r.Pose(), center)
}

func TestRefocusKeepsViewingAngle(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{5, 5, 5}, mgl64.Vec3{}), WithTransition(0, nil))
	r.Focus(mgl64.Vec3{}, 1)
	approach := r.Pose().Position.Normalize()

	next := mgl64.Vec3{10, 0, -4}
	r.Focus(next, 2)

	got := r.Pose().Position.Sub(next).Normalize()
	assertVecNear(t, approach, got)
}

func TestResetFromAnyMode(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(r *Rig)
	}{
		{name: "free", setup: func(r *Rig) {}},
		{name: "transitioning", setup: func(r *Rig) {
			r.Focus(mgl64.Vec3{1, 2, 3}, 2)
			r.Update(Input{DeltaTime: 0.3})
		}},
		{name: "focused", setup: func(r *Rig) {
			r.Focus(mgl64.Vec3{1, 2, 3}, 2)
			for r.Mode() == ModeTransitioning {
				r.Update(Input{DeltaTime: tick})
			}
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRig(NewPose(mgl64.Vec3{0, 3, 12}, mgl64.Vec3{}))
			tc.setup(r)
			before := r.Pose()

			r.Reset()

			assert.Equal(t, ModeFree, r.Mode())
			assert.Equal(t, 0.0, r.FocusRadius())
			assert.Equal(t, mgl64.Vec3{}, r.FocusPoint())
			assert.False(t, r.HasFocus())
			assert.Nil(t, r.job)
			assert.Equal(t, before, r.Pose())

			// a reset rig stays put on an idle tick
			r.Update(Input{DeltaTime: tick})
			assert.Equal(t, before, r.Pose())
		})
	}
}

func TestFocusedZoomStaysInBounds(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}),
		WithFocusPadding(1.5), WithZoomBounds(1, 20), WithZoomSpeed(5), WithTransition(0, nil))
	r.Focus(mgl64.Vec3{1, 0, 0}, 2)
	require.Equal(t, ModeFocused, r.Mode())

	floor := 2 * 1.5
	scrolls := []float64{1, 1, 1, 100, 0.5, -3, -100, -1000, 2, 0.02, -0.02, 1e6, -1e6}
	for _, scroll := range scrolls {
		r.Update(Input{Scroll: scroll, DeltaTime: tick})
		dist := r.Pose().Position.Sub(r.FocusPoint()).Len()
		assert.GreaterOrEqual(t, dist, floor-1e-9, "scroll %v", scroll)
		assert.LessOrEqual(t, dist, 20+1e-9, "scroll %v", scroll)
		assertVecNear(t, r.FocusPoint().Add(r.Offset()), r.Pose().Position)
	}
}

func TestFocusedZoomFloorBeatsMaxZoom(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}),
		WithFocusPadding(2), WithZoomBounds(1, 5), WithTransition(0, nil))
	r.Focus(mgl64.Vec3{}, 4)

	r.Update(Input{Scroll: -50, DeltaTime: tick})
	assert.InDelta(t, 8, r.Offset().Len(), 1e-9)
}

func TestZoomDeadzone(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}))
	r.Update(Input{Scroll: ScrollDeadzone, DeltaTime: tick})
	assert.Equal(t, mgl64.Vec3{}, r.Pose().Position)
}

func TestFreeZoomMovesAlongForward(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}), WithZoomSpeed(5))

	r.Update(Input{Scroll: 1, DeltaTime: tick})
	assertVecNear(t, mgl64.Vec3{0, 0, -5}, r.Pose().Position)

	// free zoom is unclamped
	r.Update(Input{Scroll: -100, DeltaTime: tick})
	assertVecNear(t, mgl64.Vec3{0, 0, 495}, r.Pose().Position)
}

func TestFreeRotate(t *testing.T) {
	testCases := []struct {
		name    string
		rotate  mgl64.Vec2
		forward mgl64.Vec3
		up      mgl64.Vec3
	}{
		{
			name:    "yaw ninety degrees",
			rotate:  mgl64.Vec2{0.9, 0},
			forward: mgl64.Vec3{-1, 0, 0},
			up:      mgl64.Vec3{0, 1, 0},
		},
		{
			name:    "pitch up forty five degrees",
			rotate:  mgl64.Vec2{0, 0.45},
			forward: mgl64.Vec3{0, math.Sqrt2 / 2, -math.Sqrt2 / 2},
			up:      mgl64.Vec3{0, math.Sqrt2 / 2, math.Sqrt2 / 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRig(NewPose(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 2, 2}), WithRotationSpeed(100))
			r.Update(Input{Rotate: tc.rotate, DeltaTime: 1})

			assertVecNear(t, tc.forward, r.Pose().Forward())
			assertVecNear(t, tc.up, r.Pose().Up())
			assertVecNear(t, mgl64.Vec3{1, 2, 3}, r.Pose().Position)
		})
	}
}

func TestFreePanIsInverted(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}), WithMoveSpeed(10))

	r.Update(Input{Pan: mgl64.Vec2{1, 0}, DeltaTime: 0.5})
	assertVecNear(t, mgl64.Vec3{-5, 0, 0}, r.Pose().Position)

	r.Update(Input{Pan: mgl64.Vec2{0, -1}, DeltaTime: 0.5})
	assertVecNear(t, mgl64.Vec3{-5, 5, 0}, r.Pose().Position)
}

func TestFreeIgnoresOrbit(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}))
	before := r.Pose()
	r.Update(Input{Orbit: mgl64.Vec2{3, 3}, DeltaTime: tick})
	assert.Equal(t, before, r.Pose())
}

func TestOrbitKeepsOffsetInvariant(t *testing.T) {
	center := mgl64.Vec3{2, -1, 3}
	r := NewRig(NewPose(mgl64.Vec3{0, 4, 14}, mgl64.Vec3{}), WithTransition(0, nil))
	r.Focus(center, 1.5)
	require.Equal(t, ModeFocused, r.Mode())
	dist := r.Offset().Len()

	orbits := []mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}, {-2, 0.5}, {0, 0}, {0.3, -0.7}, {5, 5}, {0, 0}}
	for i, orbit := range orbits {
		r.Update(Input{Orbit: orbit, DeltaTime: tick})

		assertVecNear(t, r.FocusPoint().Add(r.Offset()), r.Pose().Position, "tick %d", i)
		assert.InDelta(t, dist, r.Offset().Len(), 1e-6, "tick %d", i)
		assertLooksAt(t, r.Pose(), center)
	}
}

func TestOrbitYawSwingsAroundFocus(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}),
		WithTransition(0, nil), WithRotationSpeed(90))
	r.Focus(mgl64.Vec3{}, 2)
	dist := r.Offset().Len()

	// a quarter turn about world up carries +Z onto +X
	r.Update(Input{Orbit: mgl64.Vec2{1, 0}, DeltaTime: 1})
	assertVecNear(t, mgl64.Vec3{dist, 0, 0}, r.Pose().Position)
	assertLooksAt(t, r.Pose(), mgl64.Vec3{})
}

func TestPointerOverUISuppressesInput(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}))
	before := r.Pose()

	r.Update(Input{
		Rotate:        mgl64.Vec2{1, 1},
		Pan:           mgl64.Vec2{1, 1},
		Scroll:        3,
		PointerOverUI: true,
		DeltaTime:     tick,
	})
	assert.Equal(t, before, r.Pose())
}

func TestTransitionIgnoresInput(t *testing.T) {
	a := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}))
	b := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}))
	a.Focus(mgl64.Vec3{3, 0, 0}, 1)
	b.Focus(mgl64.Vec3{3, 0, 0}, 1)

	for i := 0; i < 10; i++ {
		a.Update(Input{DeltaTime: tick})
		b.Update(Input{
			Rotate:    mgl64.Vec2{4, 4},
			Pan:       mgl64.Vec2{4, 4},
			Orbit:     mgl64.Vec2{4, 4},
			Scroll:    10,
			DeltaTime: tick,
		})
	}
	assert.Equal(t, a.Pose(), b.Pose())
}

func TestTransitionAdvancesOverUI(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}), WithTransition(0.5, Linear))
	r.Focus(mgl64.Vec3{}, 1)

	r.Update(Input{PointerOverUI: true, DeltaTime: 1})
	assert.Equal(t, ModeFocused, r.Mode())
}

func TestSetOptionsKeepsRunningTransition(t *testing.T) {
	r := NewRig(NewPose(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}), WithTransition(1, Linear))
	r.Focus(mgl64.Vec3{}, 1)

	opts := r.Options()
	opts.TransitionDuration = 10
	r.SetOptions(opts)

	r.Update(Input{DeltaTime: 1})
	assert.Equal(t, ModeFocused, r.Mode())
	assert.Equal(t, 10.0, r.Options().TransitionDuration)
}
