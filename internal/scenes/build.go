package scenes

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rigidbox/internal/config"
	"github.com/vovakirdan/rigidbox/internal/core"
	"github.com/vovakirdan/rigidbox/internal/physics"
	"github.com/vovakirdan/rigidbox/internal/sim"
)

// ResolverFor converts the YAML resolver knobs into a physics.Resolver.
func ResolverFor(p config.PhysicsConfig) physics.Resolver {
	return physics.Resolver{
		ContactTolerance:      p.ContactTolerance,
		FaceRelativeTolerance: p.FaceRelativeTolerance,
		FaceAbsoluteTolerance: p.FaceAbsoluteTolerance,
		SeparationRate:        p.SeparationRate,
	}
}

func vec(v config.Vec) mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

// buildWorld instantiates every body of the scene, followed by the rain
// boxes drawn from a generator seeded with seed.
func buildWorld(scene config.SceneFile, cfg config.SimConfig, seed int64, logger *log.Logger) (*sim.World, []core.Color) {
	w := sim.NewWorld(
		sim.WithResolver(ResolverFor(cfg.Physics)),
		sim.WithLogger(logger),
	)

	gravity := vec(cfg.Physics.Gravity)
	if scene.Gravity != nil {
		gravity = vec(*scene.Gravity)
	}

	var colors []core.Color
	add := func(name string, b *physics.RigidBody, color core.Color) {
		b.Gravity = gravity
		w.Add(name, b)
		colors = append(colors, color)
	}

	for i, spec := range scene.Bodies {
		b, err := physics.NewRigidBody(vec(spec.Position), spec.Rotation, spec.Width, spec.Height, spec.Mass)
		if err != nil {
			logger.Warn("skipping body", "scene", scene.ID, "body", spec.Name, "error", err)
			continue
		}
		b.Static = spec.Static
		b.Restitution = cfg.Physics.Restitution
		if spec.Restitution != nil {
			b.Restitution = *spec.Restitution
		}
		b.LinearVelocity = vec(spec.Velocity)
		b.AngularVelocity = spec.AngularVelocity

		color, ok := core.ParseColor(spec.Color)
		if !ok {
			color = core.Palette[i%len(core.Palette)]
		}
		add(spec.Name, b, color)
	}

	if r := scene.Rain; r != nil && r.Count > 0 {
		rng := rand.New(rand.NewSource(seed)) //#nosec G404 -- deterministic scene layout
		between := func(lo, hi float64) float64 {
			return lo + rng.Float64()*(hi-lo)
		}
		for k := 0; k < r.Count; k++ {
			size := between(r.MinSize, r.MaxSize)
			pos := mgl64.Vec2{between(r.MinX, r.MaxX), between(r.MinY, r.MaxY)}
			rot := between(-r.MaxRotate, r.MaxRotate)
			b, err := physics.NewRigidBody(pos, rot, size, size, between(r.MinMass, r.MaxMass))
			if err != nil {
				logger.Warn("skipping rain box", "scene", scene.ID, "index", k, "error", err)
				continue
			}
			b.Restitution = cfg.Physics.Restitution
			add("rain", b, core.Palette[k%len(core.Palette)])
		}
	}

	return w, colors
}
