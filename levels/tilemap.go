package levels

import "math"

// Tile is a located tile index. X and Y are tile coordinates.
type Tile struct {
	Layer string
	X     int
	Y     int
	Index int
}

// TileCallback runs when something steps on a tile.
type TileCallback func(Tile)

// ChangeFunc observes tile edits so collision geometry can follow.
type ChangeFunc func(t Tile, old int)

type tileLayer struct {
	name    string
	physics bool
	tiles   []int
}

type tileKey struct {
	layer string
	x, y  int
}

// Tilemap is the mutable runtime copy of a Level's layers. Edits never touch
// the Level it was built from.
type Tilemap struct {
	width     int
	height    int
	tileSize  int
	layers    []*tileLayer
	passable  map[int]bool
	callbacks map[tileKey]TileCallback
	onChange  ChangeFunc
}

func NewTilemap(l *Level) *Tilemap {
	m := &Tilemap{
		width:     l.Width,
		height:    l.Height,
		tileSize:  l.TileSize,
		passable:  make(map[int]bool, len(l.Passable)),
		callbacks: make(map[tileKey]TileCallback),
	}
	for _, ld := range l.Layers {
		m.layers = append(m.layers, &tileLayer{
			name:    ld.Name,
			physics: ld.Physics,
			tiles:   append([]int(nil), ld.Tiles...),
		})
	}
	for _, idx := range l.Passable {
		m.passable[idx] = true
	}
	return m
}

func (m *Tilemap) Width() int    { return m.width }
func (m *Tilemap) Height() int   { return m.height }
func (m *Tilemap) TileSize() int { return m.tileSize }

// LayerInfo describes one tile layer, back to front.
type LayerInfo struct {
	Name    string
	Physics bool
}

func (m *Tilemap) Layers() []LayerInfo {
	out := make([]LayerInfo, 0, len(m.layers))
	for _, l := range m.layers {
		out = append(out, LayerInfo{Name: l.name, Physics: l.physics})
	}
	return out
}

// OnChange installs the observer for tile edits. Only one is kept.
func (m *Tilemap) OnChange(fn ChangeFunc) {
	m.onChange = fn
}

func (m *Tilemap) layer(name string) *tileLayer {
	for _, l := range m.layers {
		if l.name == name {
			return l
		}
	}
	return nil
}

func (m *Tilemap) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

func (m *Tilemap) TileAt(layer string, x, y int) (Tile, bool) {
	l := m.layer(layer)
	if l == nil || !m.inBounds(x, y) {
		return Tile{}, false
	}
	idx := l.tiles[y*m.width+x]
	if idx == 0 {
		return Tile{}, false
	}
	return Tile{Layer: layer, X: x, Y: y, Index: idx}, true
}

// SetTile writes index at (x, y). Index 0 clears the tile.
func (m *Tilemap) SetTile(layer string, x, y, index int) bool {
	l := m.layer(layer)
	if l == nil || !m.inBounds(x, y) {
		return false
	}
	i := y*m.width + x
	old := l.tiles[i]
	if old == index {
		return true
	}
	l.tiles[i] = index
	if m.onChange != nil {
		m.onChange(Tile{Layer: layer, X: x, Y: y, Index: index}, old)
	}
	return true
}

func (m *Tilemap) RemoveTileAt(layer string, x, y int) bool {
	return m.SetTile(layer, x, y, 0)
}

// ReplaceByIndex swaps every from tile on layer for to. Returns the count.
func (m *Tilemap) ReplaceByIndex(layer string, from, to int) int {
	l := m.layer(layer)
	if l == nil {
		return 0
	}
	n := 0
	for i, idx := range l.tiles {
		if idx != from {
			continue
		}
		m.SetTile(layer, i%m.width, i/m.width, to)
		n++
	}
	return n
}

// FindByIndex returns the first tile with index in row-major order. An empty
// layer name searches every layer in order.
func (m *Tilemap) FindByIndex(layer string, index int) (Tile, bool) {
	for _, l := range m.layers {
		if layer != "" && l.name != layer {
			continue
		}
		for i, idx := range l.tiles {
			if idx == index {
				return Tile{Layer: l.name, X: i % m.width, Y: i / m.width, Index: idx}, true
			}
		}
	}
	return Tile{}, false
}

// ForEachTile visits the non-empty tiles of layer. Edits inside fn are
// allowed.
func (m *Tilemap) ForEachTile(layer string, fn func(Tile)) {
	l := m.layer(layer)
	if l == nil {
		return
	}
	snapshot := append([]int(nil), l.tiles...)
	for i, idx := range snapshot {
		if idx == 0 {
			continue
		}
		fn(Tile{Layer: layer, X: i % m.width, Y: i / m.width, Index: idx})
	}
}

func (m *Tilemap) WorldToTile(wx, wy float64) (int, int) {
	ts := float64(m.tileSize)
	return int(math.Floor(wx / ts)), int(math.Floor(wy / ts))
}

// TileCenter returns the world position of the center of tile (x, y).
func (m *Tilemap) TileCenter(x, y int) (float64, float64) {
	ts := float64(m.tileSize)
	return float64(x)*ts + ts/2, float64(y)*ts + ts/2
}

func (m *Tilemap) PutTileAtWorldXY(layer string, index int, wx, wy float64) (Tile, bool) {
	x, y := m.WorldToTile(wx, wy)
	if !m.SetTile(layer, x, y, index) {
		return Tile{}, false
	}
	return Tile{Layer: layer, X: x, Y: y, Index: index}, true
}

func (m *Tilemap) RemoveTileAtWorldXY(layer string, wx, wy float64) bool {
	x, y := m.WorldToTile(wx, wy)
	return m.RemoveTileAt(layer, x, y)
}

// Solid reports whether tile (x, y) blocks movement on any physics layer.
// Out-of-bounds counts as solid.
func (m *Tilemap) Solid(x, y int) bool {
	if !m.inBounds(x, y) {
		return true
	}
	for _, l := range m.layers {
		if !l.physics {
			continue
		}
		idx := l.tiles[y*m.width+x]
		if idx != 0 && !m.passable[idx] {
			return true
		}
	}
	return false
}

// SolidTiles lists every blocking tile coordinate.
func (m *Tilemap) SolidTiles() [][2]int {
	var out [][2]int
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.Solid(x, y) {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}

func (m *Tilemap) SetTileLocationCallback(layer string, x, y int, fn TileCallback) {
	if fn == nil || !m.inBounds(x, y) {
		m.ClearTileLocationCallback(layer, x, y)
		return
	}
	m.callbacks[tileKey{layer, x, y}] = fn
}

func (m *Tilemap) ClearTileLocationCallback(layer string, x, y int) {
	delete(m.callbacks, tileKey{layer, x, y})
}

// ClearTileLocationCallbacks removes every registered callback.
func (m *Tilemap) ClearTileLocationCallbacks() {
	clear(m.callbacks)
}

// TriggerAt fires the callbacks of the tiles under world point (wx, wy).
// Returns whether any fired.
func (m *Tilemap) TriggerAt(wx, wy float64) bool {
	x, y := m.WorldToTile(wx, wy)
	if !m.inBounds(x, y) {
		return false
	}
	fired := false
	for _, l := range m.layers {
		fn, ok := m.callbacks[tileKey{l.name, x, y}]
		if !ok {
			continue
		}
		idx := l.tiles[y*m.width+x]
		fn(Tile{Layer: l.name, X: x, Y: y, Index: idx})
		fired = true
	}
	return fired
}
