package maze

// Layout is the set of indices derived from one grid by a single scan.
// Every coordinate in it points at the tile that produced it.
type Layout struct {
	Turrets     []Coord
	Checkpoints []Coord // Scan order
	SwapZones   []Coord
	P1Gates     []Coord
	P2Gates     []Coord
	P1Spawn     Coord // First P1 spawn tile in scan order
	HasP1Spawn  bool
	P2Spawns    []Coord // All P2 spawn tiles: the exit region outside duel
}

// Derive scans the grid once, row by row. It is deterministic: the same grid
// always yields an identical Layout.
func Derive(g *Grid) Layout {
	var l Layout
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			c := C(x, y)
			switch g.tiles[y*g.w+x] {
			case TurretSpawn:
				l.Turrets = append(l.Turrets, c)
			case Checkpoint:
				l.Checkpoints = append(l.Checkpoints, c)
			case SwapZone:
				l.SwapZones = append(l.SwapZones, c)
			case P1Gate:
				l.P1Gates = append(l.P1Gates, c)
			case P2Gate:
				l.P2Gates = append(l.P2Gates, c)
			case P1Spawn:
				if !l.HasP1Spawn {
					l.P1Spawn = c
					l.HasP1Spawn = true
				}
			case P2Spawn:
				l.P2Spawns = append(l.P2Spawns, c)
			}
		}
	}
	return l
}

// Validate reports missing required markers.
func (l Layout) Validate() error {
	if !l.HasP1Spawn {
		return configErr("load maze", "no player 1 spawn tile (%d)", int(P1Spawn))
	}
	if len(l.P2Spawns) == 0 {
		return configErr("load maze", "no exit / player 2 spawn tile (%d)", int(P2Spawn))
	}
	return nil
}

// ClosestExit returns the exit tile nearest to from, ties broken by scan
// order.
func (l Layout) ClosestExit(from Coord) Coord {
	best := l.P2Spawns[0]
	bestDist := best.Manhattan(from)
	for _, c := range l.P2Spawns[1:] {
		if d := c.Manhattan(from); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
