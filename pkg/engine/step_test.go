package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/opd-ai/go-orbit/pkg/entity"
	"github.com/opd-ai/go-orbit/pkg/event"
	"github.com/opd-ai/go-orbit/pkg/input"
	"github.com/opd-ai/go-orbit/pkg/physics"
)

// newPlayerSimulation returns a simulation whose only body is a stationary
// player planet at (100, 100)
func newPlayerSimulation(t *testing.T) (*Simulation, *entity.Planet) {
	t.Helper()
	w := NewWorld()
	player := stationaryPlanet(w, physics.Vector2D{X: 100, Y: 100}, 20)
	w.AddPlanet(player)
	if err := w.SetPlayer(0); err != nil {
		t.Fatal(err)
	}
	return NewSimulation(context.Background(), w, nil, nil), player
}

func TestStep_Fire_SpawnsAndUpdatesSameFrame(t *testing.T) {
	sim, player := newPlayerSimulation(t)
	player.AimAngle = math.Pi / 2

	if err := sim.Step(0.5, input.State{Fire: true}); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	if sim.World.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", sim.World.Len())
	}
	p := sim.World.Projectiles()[0]
	if p.Mass != 10 || p.Radius != 10 {
		t.Errorf("mass, radius = %v, %v", p.Mass, p.Radius)
	}
	// spawned on the attractor, so the guard suppresses its pull
	wantVelocity := physics.Vector2D{X: 50 * math.Sin(math.Pi/2), Y: 50 * math.Cos(math.Pi/2)}
	if p.Velocity != wantVelocity {
		t.Errorf("velocity = %v, want %v", p.Velocity, wantVelocity)
	}
	// integrated in the frame it was fired
	wantPosition := physics.Vector2D{X: 100, Y: 100}.Add(wantVelocity.Scale(0.5))
	if p.Position != wantPosition {
		t.Errorf("position = %v, want %v", p.Position, wantPosition)
	}
}

func TestStep_Fire_InheritsPlanetVelocity(t *testing.T) {
	w := NewWorld()
	player := entity.NewPlanet(w.NewID(), entity.PlanetSpec{
		Radius:       10,
		Center:       physics.Vector2D{X: 400, Y: 300},
		OrbitRadius:  120,
		AngularSpeed: 0.5,
		Phase:        1,
		Mass:         10,
	})
	w.AddPlanet(player)
	if err := w.SetPlayer(0); err != nil {
		t.Fatal(err)
	}
	sim := NewSimulation(context.Background(), w, nil, nil)
	player.AimAngle = 0.7

	if err := sim.Step(0.1, input.State{}); err != nil {
		t.Fatal(err)
	}
	position, velocity := player.Position, player.Velocity
	lenBefore := w.Len()

	// dt = 0 keeps the planet in place so the fresh projectile sits on it
	if err := sim.Step(0, input.State{Fire: true}); err != nil {
		t.Fatal(err)
	}

	if w.Len() != lenBefore+1 {
		t.Fatalf("Len() = %d, want %d", w.Len(), lenBefore+1)
	}
	p := w.Projectiles()[0]
	want := velocity.Add(physics.Heading(0.7).Scale(50))
	if p.Position != position || p.Velocity != want {
		t.Errorf("projectile = %v / %v, want %v / %v", p.Position, p.Velocity, position, want)
	}
}

func TestStep_AimAccumulation(t *testing.T) {
	tests := []struct {
		name  string
		state input.State
		sign  float64
	}{
		{"rotate left", input.State{RotateLeft: true}, -1},
		{"rotate right", input.State{RotateRight: true}, 1},
	}

	const frames = 37
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, player := newPlayerSimulation(t)
			want := 0.0
			for i := 0; i < frames; i++ {
				if err := sim.Step(1.0/60, tt.state); err != nil {
					t.Fatal(err)
				}
				want += tt.sign * AimStep
			}
			if player.AimAngle != want {
				t.Errorf("aim = %v, want %v", player.AimAngle, want)
			}
			if !scalar.EqualWithinAbs(player.AimAngle, tt.sign*frames*AimStep, 1e-12) {
				t.Errorf("aim = %v, want %v", player.AimAngle, tt.sign*frames*AimStep)
			}
		})
	}
}

func TestStep_BothRotationsCancel(t *testing.T) {
	sim, player := newPlayerSimulation(t)
	if err := sim.Step(0.1, input.State{RotateLeft: true, RotateRight: true}); err != nil {
		t.Fatal(err)
	}
	if player.AimAngle != 0 {
		t.Errorf("aim = %v, want 0", player.AimAngle)
	}
}

func TestStep_BothRotationsApplyRightThenLeft(t *testing.T) {
	for _, start := range []float64{0.1, 0.3, 1.7, -2.9, 1e3 + 0.123} {
		sim, player := newPlayerSimulation(t)
		player.AimAngle = start

		if err := sim.Step(0, input.State{RotateLeft: true, RotateRight: true}); err != nil {
			t.Fatal(err)
		}

		want := start
		want += AimStep
		want -= AimStep
		if player.AimAngle != want {
			t.Errorf("start %v: aim = %v, want %v", start, player.AimAngle, want)
		}
	}
}

func TestStep_FireUsesAimBeforeRotation(t *testing.T) {
	sim, player := newPlayerSimulation(t)
	if err := sim.Step(0, input.State{Fire: true, RotateRight: true}); err != nil {
		t.Fatal(err)
	}
	p := sim.World.Projectiles()[0]
	if p.Velocity != physics.Heading(0).Scale(50) {
		t.Errorf("velocity = %v, want launch along the pre-rotation aim", p.Velocity)
	}
	if player.AimAngle != AimStep {
		t.Errorf("aim = %v, want %v", player.AimAngle, AimStep)
	}
}

func TestStep_Quit(t *testing.T) {
	tests := []struct {
		name  string
		state input.State
	}{
		{"quit event", input.State{Quit: true}},
		{"escape held", input.State{Escape: true, Fire: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, _ := newPlayerSimulation(t)
			quits := 0
			sim.EventBus.Subscribe(event.QuitRequested, func(event.Event) { quits++ })

			if err := sim.Step(0.1, tt.state); !errors.Is(err, ErrQuit) {
				t.Fatalf("Step() error = %v, want ErrQuit", err)
			}
			if sim.Frame() != 0 || sim.World.Len() != 1 {
				t.Errorf("world advanced on quit: frame %d, len %d", sim.Frame(), sim.World.Len())
			}
			if quits != 1 {
				t.Errorf("quit events = %d", quits)
			}
		})
	}
}

func TestStep_InvalidPlayerIndex(t *testing.T) {
	w := NewWorld()
	w.AddPlanet(stationaryPlanet(w, physics.Vector2D{}, 10))
	sim := NewSimulation(context.Background(), w, nil, nil)

	if err := sim.Step(0.1, input.State{}); err != nil {
		t.Errorf("Step() without player input error = %v", err)
	}
	for _, in := range []input.State{{Fire: true}, {RotateLeft: true}, {RotateRight: true}} {
		if err := sim.Step(0.1, in); !errors.Is(err, ErrInvalidPlayerIndex) {
			t.Errorf("Step(%+v) error = %v, want ErrInvalidPlayerIndex", in, err)
		}
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d after failed fires", w.Len())
	}
}

func TestStep_PublishesEvents(t *testing.T) {
	sim, player := newPlayerSimulation(t)
	sim.World.MaxProjectiles = 1

	var frames []*event.FrameEvent
	var fired, evicted []*event.ProjectileEvent
	var aims []*event.AimEvent
	sim.EventBus.Subscribe(event.FrameAdvanced, func(e event.Event) { frames = append(frames, e.(*event.FrameEvent)) })
	sim.EventBus.Subscribe(event.ProjectileFired, func(e event.Event) { fired = append(fired, e.(*event.ProjectileEvent)) })
	sim.EventBus.Subscribe(event.ProjectileEvicted, func(e event.Event) { evicted = append(evicted, e.(*event.ProjectileEvent)) })
	sim.EventBus.Subscribe(event.AimRotated, func(e event.Event) { aims = append(aims, e.(*event.AimEvent)) })

	steps := []input.State{{Fire: true}, {Fire: true, RotateLeft: true}, {}}
	for _, in := range steps {
		if err := sim.Step(0.25, in); err != nil {
			t.Fatal(err)
		}
	}

	if len(frames) != 3 || frames[2].Frame != 3 || frames[2].DeltaTime != 0.25 {
		t.Fatalf("frame events = %+v", frames)
	}
	if frames[2].Bodies != 2 || frames[2].Projectiles != 1 {
		t.Errorf("last frame counts = %d bodies, %d projectiles", frames[2].Bodies, frames[2].Projectiles)
	}
	if len(fired) != 2 || fired[0].PlanetID != uint64(player.ID) || fired[0].Speed != 50 {
		t.Errorf("fired events = %+v", fired)
	}
	if len(evicted) != 1 || evicted[0].ProjectileID != fired[0].ProjectileID {
		t.Errorf("evicted events = %+v", evicted)
	}
	if len(aims) != 1 || aims[0].Angle != -AimStep {
		t.Errorf("aim events = %+v", aims)
	}
}

func TestStep_Determinism(t *testing.T) {
	script := append(input.Repeat(input.State{RotateRight: true, Fire: true}, 20),
		input.Repeat(input.State{}, 30)...)
	script = append(script, input.Repeat(input.State{RotateLeft: true, Fire: true}, 25)...)
	deltas := make([]float64, len(script))
	for i := range deltas {
		deltas[i] = 0.01 + float64(i%7)*0.003
	}

	run := func() WorldState {
		w, err := NewSolarSystem(testWorldConfig(), FixedSurface{Width: 1280, Height: 720}, NewRand(42))
		if err != nil {
			t.Fatal(err)
		}
		sim := NewSimulation(context.Background(), w, nil, nil)
		for i, in := range script {
			if err := sim.Step(deltas[i], in); err != nil {
				t.Fatal(err)
			}
		}
		return w.Snapshot()
	}

	first, second := run(), run()
	if len(first.Bodies) != 6+45 {
		t.Fatalf("bodies = %d, want 51", len(first.Bodies))
	}
	if !first.Equal(second) {
		t.Error("identical runs produced different world states")
	}
}
