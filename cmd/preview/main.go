// preview plays an entity's animations from prefabs/entities.yaml.
// Tab cycles through the animation types.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/dungeon/ecs"
	"github.com/milk9111/dungeon/ecs/component"
	"github.com/milk9111/dungeon/ecs/entity"
	"github.com/milk9111/dungeon/ecs/system"
	"github.com/milk9111/dungeon/prefabs"
)

const (
	screenSize = 256
	scale      = 4
)

type previewGame struct {
	world  *ecs.World
	anims  *system.AnimationSystem
	entity ecs.Entity
	types  []string
	index  int
}

func (g *previewGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(g.types) > 0 {
		g.index = (g.index + 1) % len(g.types)
		if a, ok := ecs.Get(g.world, g.entity, component.AnimationComponent.Kind()); ok {
			a.Play(g.types[g.index])
		}
	}
	g.anims.Update(g.world)
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})

	a, okA := ecs.Get(g.world, g.entity, component.AnimationComponent.Kind())
	s, okS := ecs.Get(g.world, g.entity, component.SpriteComponent.Kind())
	actor, okActor := ecs.Get(g.world, g.entity, component.ActorComponent.Kind())
	if !okA || !okS || !okActor {
		ebitenutil.DebugPrint(screen, "nothing to preview")
		return
	}

	def := a.Defs[a.Current]
	// Each frame of the range gets its own shade of the sprite color.
	shade := 1.0
	if count := def.End - def.Start + 1; count > 1 {
		shade = 0.4 + 0.6*float64(a.Frame-def.Start)/float64(count-1)
	}
	c := color.RGBA{
		R: uint8(float64(s.Color.R) * shade),
		G: uint8(float64(s.Color.G) * shade),
		B: uint8(float64(s.Color.B) * shade),
		A: 0xff,
	}

	w, h := actor.Width*scale, actor.Height*scale
	x := (screenSize - w) / 2
	y := (screenSize - h) / 2
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), c, false)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s %s\nframe %d (%d-%d) @ %.0f fps loop=%v",
		actor.Name, a.Current, a.Frame, def.Start, def.End, def.FrameRate, def.Loop))
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenSize, screenSize
}

func spawn(w *ecs.World, store *prefabs.Store, tuning prefabs.TuningSpec, name string) (ecs.Entity, error) {
	if def, ok := store.Player(name); ok {
		return entity.NewPlayer(w, store, tuning, entity.NewPlayerData(def), 0, 0)
	}
	if _, ok := store.Enemy(name); ok {
		return entity.NewEnemy(w, store, tuning, name, 0, 0)
	}
	if _, ok := store.NPC(name); ok {
		return entity.NewNPC(w, store, name, 0, 0)
	}
	return 0, fmt.Errorf("%s: %w", name, prefabs.ErrNotFound)
}

func main() {
	name := flag.String("entity", "Knight", "player, enemy or NPC name from prefabs/entities.yaml")
	flag.Parse()

	store, err := prefabs.LoadStore()
	if err != nil {
		log.Fatal(err)
	}
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Fatal(err)
	}

	w := ecs.NewWorld()
	e, err := spawn(w, store, tuning, *name)
	if err != nil {
		log.Fatal(err)
	}
	env := system.NewEnv(nil, nil, tuning)

	g := &previewGame{world: w, anims: system.NewAnimationSystem(env), entity: e}
	if a, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
		for typ := range a.Defs {
			g.types = append(g.types, typ)
		}
		sort.Strings(g.types)
		for i, typ := range g.types {
			if typ == a.Current {
				g.index = i
			}
		}
	}

	ebiten.SetWindowSize(screenSize*2, screenSize*2)
	ebiten.SetWindowTitle("Animation Preview")
	ebiten.SetTPS(tuning.TicksPerSecond)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
