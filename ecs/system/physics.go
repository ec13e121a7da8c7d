package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/levels"
)

// PhysicsSystem resolves movement against the room's walls with a top-down
// (gravity free) Chipmunk space. Which pairs collide is decided by each
// entity's CollisionLayer.
type PhysicsSystem struct {
	env   *Env
	space *cp.Space

	tilemap  *levels.Tilemap
	walls    map[[2]int]*cp.Shape
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

var wallFilter = cp.NewShapeFilter(cp.NO_GROUP, uint(component.CategoryWall), uint(component.CategoryPlayer|component.CategoryEnemy))

func NewPhysicsSystem(env *Env) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		env:      env,
		space:    space,
		walls:    make(map[[2]int]*cp.Shape),
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// SetTilemap builds wall shapes for every solid tile and keeps them in sync
// with later tile edits (doors opening and closing).
func (ps *PhysicsSystem) SetTilemap(m *levels.Tilemap) {
	if ps == nil || m == nil {
		return
	}
	for key, shape := range ps.walls {
		ps.space.RemoveShape(shape)
		delete(ps.walls, key)
	}
	ps.tilemap = m
	for _, xy := range m.SolidTiles() {
		ps.syncWall(xy[0], xy[1])
	}
	m.OnChange(func(t levels.Tile, _ int) {
		ps.syncWall(t.X, t.Y)
	})
}

// Walls returns the number of wall shapes in the space.
func (ps *PhysicsSystem) Walls() int {
	if ps == nil {
		return 0
	}
	return len(ps.walls)
}

func (ps *PhysicsSystem) syncWall(x, y int) {
	key := [2]int{x, y}
	solid := ps.tilemap.Solid(x, y)
	shape, exists := ps.walls[key]
	switch {
	case solid && !exists:
		ts := float64(ps.tilemap.TileSize())
		bb := cp.BB{L: float64(x) * ts, B: float64(y) * ts, R: float64(x+1) * ts, T: float64(y+1) * ts}
		shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFilter(wallFilter)
		shape.SetFriction(0)
		ps.space.AddShape(shape)
		ps.walls[key] = shape
	case !solid && exists:
		ps.space.RemoveShape(shape)
		delete(ps.walls, key)
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.syncEntities(w)

	for e, info := range ps.entities {
		if info.static {
			continue
		}
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			continue
		}
		if vel.Frozen {
			info.body.SetVelocity(0, 0)
			continue
		}
		info.body.SetVelocity(vel.X, vel.Y)
	}

	dt := ps.env.dt()
	ps.space.Step(dt)

	ps.syncTransforms(w, dt)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.removeBody(e, info)
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		layer, _ := ecs.Get(w, e, component.CollisionLayerComponent.Kind())
		info := ps.createBody(*t, body, layer)
		ps.entities[e] = info
		body.Body = info.body
		body.Shape = info.shape
	})
}

func (ps *PhysicsSystem) createBody(t component.Transform, bodyComp *component.PhysicsBody, layer *component.CollisionLayer) *bodyInfo {
	filter := cp.NewShapeFilter(cp.NO_GROUP, 0, 0)
	if layer != nil {
		filter = cp.NewShapeFilter(cp.NO_GROUP, uint(layer.Category), uint(layer.Mask))
	}

	if bodyComp.Static {
		bb := cp.BB{
			L: t.X - bodyComp.Width/2,
			B: t.Y - bodyComp.Height/2,
			R: t.X + bodyComp.Width/2,
			T: t.Y + bodyComp.Height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFilter(filter)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	shape := cp.NewBox(body, bodyComp.Width, bodyComp.Height, 0)
	shape.SetFilter(filter)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

func (ps *PhysicsSystem) removeBody(e ecs.Entity, info *bodyInfo) {
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
	}
	if !info.static && info.body != nil {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.entities, e)
}

// syncTransforms copies resolved positions back and applies drag.
func (ps *PhysicsSystem) syncTransforms(w *ecs.World, dt float64) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		t.X, t.Y = pos.X, pos.Y

		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok || vel.Frozen || vel.Drag <= 0 {
			continue
		}
		vel.X = approach(vel.X, vel.Drag*dt)
		vel.Y = approach(vel.Y, vel.Drag*dt)
	}
}

// Teleport moves an entity's body, for spawns placed after creation.
func (ps *PhysicsSystem) Teleport(e ecs.Entity, x, y float64) {
	if ps == nil {
		return
	}
	info, ok := ps.entities[e]
	if !ok || info.static {
		return
	}
	info.body.SetPosition(cp.Vector{X: x, Y: y})
	info.body.SetVelocity(0, 0)
}

// Close removes every body and shape from the space.
func (ps *PhysicsSystem) Close() {
	if ps == nil {
		return
	}
	for e, info := range ps.entities {
		ps.removeBody(e, info)
	}
	for key, shape := range ps.walls {
		ps.space.RemoveShape(shape)
		delete(ps.walls, key)
	}
	if ps.tilemap != nil {
		ps.tilemap.OnChange(nil)
	}
}
