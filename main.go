package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "draw collision shapes and entity states")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level key in levels/registry.json (default: first level)")
	watch := flag.Bool("watch", false, "reload prefabs/ definitions when they change on disk")
	mute := flag.Bool("mute", false, "disable sound effects and music")
	scale := flag.Int("scale", 3, "window scale factor")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(Config{
		Level: *levelName,
		Debug: *debug,
		Watch: *watch,
		Mute:  *mute,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.screenSize()
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(w**scale, h**scale)
	ebiten.SetWindowTitle("dungeon")
	ebiten.SetTPS(game.tuning.TicksPerSecond)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
