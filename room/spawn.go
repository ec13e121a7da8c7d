package room

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/dungeon/ecs/entity"
	"github.com/milk9111/dungeon/ecs/system"
	"github.com/milk9111/dungeon/levels"
	"github.com/milk9111/dungeon/prefabs"
)

func (c *Controller) spawn() error {
	if err := c.spawnPlayer(); err != nil {
		return err
	}
	c.spawnNPCs()
	c.spawnWeapons()
	c.spawnButtons()
	c.spawnItems()
	c.spawnSpikes()
	if c.level.AutoWave {
		c.StartWave()
	}
	c.step(StepSpawn)
	return nil
}

func (c *Controller) spawnPlayer() error {
	at, _ := c.level.FindObject(levels.LayerPlayer, "Spawn")
	player, err := entity.NewPlayer(c.world, c.opts.Store, c.opts.Tuning, c.opts.Player, at.X, at.Y)
	if err != nil {
		return err
	}
	c.player = player

	if c.opts.Player.Weapon == "" {
		return nil
	}
	weapon, err := entity.NewWeapon(c.world, c.opts.Store, c.opts.Player.Weapon, at.X, at.Y)
	if err != nil {
		c.skip("carried weapon", c.opts.Player.Weapon, err)
		return nil
	}
	system.Equip(c.world, c.env, player, weapon)
	return nil
}

func (c *Controller) spawnNPCs() {
	for _, o := range c.level.Objects[levels.LayerNPC] {
		if _, err := entity.NewNPC(c.world, c.opts.Store, o.Name, o.X, o.Y); err != nil {
			c.skip("npc", o.Name, err)
		}
	}
}

func (c *Controller) spawnWeapons() {
	for _, o := range c.level.Objects[levels.LayerWeapons] {
		if _, err := entity.NewWeapon(c.world, c.opts.Store, o.Name, o.X, o.Y); err != nil {
			c.skip("weapon", o.Name, err)
		}
	}
}

func (c *Controller) spawnButtons() {
	for _, o := range c.level.Objects[levels.LayerButtons] {
		if _, err := entity.NewButton(c.world, c.opts.Tuning.ButtonRange, o.X, o.Y); err != nil {
			c.skip("button", o.Name, err)
		}
	}
}

func (c *Controller) spawnItems() {
	for _, o := range c.level.Objects[levels.LayerItems] {
		if _, err := entity.NewCoin(c.world, c.opts.Tuning.CoinValue, o.X, o.Y); err != nil {
			c.skip("item", o.Name, err)
		}
	}
}

// spawnSpikes turns hazard tiles of the ground layer into hazard entities
// and removes the tiles.
func (c *Controller) spawnSpikes() {
	if c.level.HazardTile == 0 || c.level.GroundLayer == "" {
		return
	}
	var found []levels.Tile
	c.tilemap.ForEachTile(c.level.GroundLayer, func(t levels.Tile) {
		if t.Index == c.level.HazardTile {
			found = append(found, t)
		}
	})
	size := float64(c.tilemap.TileSize())
	for _, t := range found {
		x, y := c.tilemap.TileCenter(t.X, t.Y)
		if _, err := entity.NewSpikes(c.world, c.opts.Tuning.HazardDamage, size, x, y); err != nil {
			c.skip("spikes", fmt.Sprintf("%d,%d", t.X, t.Y), err)
			continue
		}
		c.tilemap.RemoveTileAt(t.Layer, t.X, t.Y)
	}
}

// spawnEnemies places one enemy per spawn and returns how many made it.
func (c *Controller) spawnEnemies(spawns []levels.Object) int {
	n := 0
	for _, s := range spawns {
		if _, err := entity.NewEnemy(c.world, c.opts.Store, c.opts.Tuning, s.Name, s.X, s.Y); err != nil {
			c.skip("enemy", s.Name, err)
			continue
		}
		n++
	}
	return n
}

func (c *Controller) skip(kind, name string, err error) {
	if errors.Is(err, prefabs.ErrNotFound) {
		log.Printf("room: %s: no %s definition %q, skipped", c.info.Key, kind, name)
		return
	}
	log.Printf("room: %s: spawn %s %q: %v", c.info.Key, kind, name, err)
}
