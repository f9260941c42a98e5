package physics

import "github.com/go-gl/mathgl/mgl64"

// ApplyForce accumulates force at the centre of mass. It contributes no torque.
func (b *RigidBody) ApplyForce(force mgl64.Vec2) {
	b.ApplyForceAt(force, b.Position)
}

// ApplyForceAt accumulates force applied at a world-space point.
// The lever arm from the centre of mass adds planar torque.
func (b *RigidBody) ApplyForceAt(force, point mgl64.Vec2) {
	b.force = b.force.Add(force)
	offset := point.Sub(b.Position)
	b.torque += cross2(offset, force)
}

// ApplyTorque accumulates torque directly, bypassing the lever arm.
func (b *RigidBody) ApplyTorque(amount float64) {
	b.torque += amount
}

// Update advances the body by one explicit-Euler step of deltaTime seconds
// and clears the force and torque accumulators.
func (b *RigidBody) Update(deltaTime float64) {
	b.ApplyForce(b.Gravity.Mul(b.mass))

	if !b.Static {
		acceleration := b.force.Mul(1 / b.mass)
		b.LinearVelocity = b.LinearVelocity.Add(acceleration.Mul(deltaTime))
		b.Position = b.Position.Add(b.LinearVelocity.Mul(deltaTime))

		var angularAcceleration float64
		if b.momentOfInertia > 0 {
			angularAcceleration = mgl64.RadToDeg(b.torque / b.momentOfInertia)
		}
		b.AngularVelocity += angularAcceleration * deltaTime
		b.Rotation += b.AngularVelocity * deltaTime
		b.AngularVelocity *= AngularDamping
	}

	b.force = mgl64.Vec2{}
	b.torque = 0
}
