package tetris

import "math/rand/v2"

const (
	// SpawnX is the column new pieces enter at.
	SpawnX = Width/2 - 1
	// spawnDepth is how far above the board a piece is first placed before
	// it is lowered to just above the top edge.
	spawnDepth = 5
)

// Preview is the next piece with its pre-rolled orientation.
type Preview struct {
	Kind        Kind
	Orientation Orientation
}

// Tiles returns the preview's tiles at origin 0, 0, for display.
func (p Preview) Tiles() [4]Point {
	return Tiles(p.Kind, p.Orientation, 0, 0)
}

// Generator supplies the sequence of upcoming pieces.
type Generator interface {
	Next() Preview
}

// RandomGenerator draws kinds and orientations uniformly.
type RandomGenerator struct {
	rng *rand.Rand
}

// NewRandomGenerator uses src for every draw.
func NewRandomGenerator(src rand.Source) *RandomGenerator {
	return &RandomGenerator{rng: rand.New(src)}
}

func (g *RandomGenerator) Next() Preview {
	return Preview{
		Kind:        Kinds[g.rng.IntN(KindCount)],
		Orientation: Orientation(g.rng.IntN(Orientations)),
	}
}

// Cycle replays a fixed list of previews forever. It is meant for tests and
// scripted demos.
type Cycle struct {
	Pieces []Preview
	next   int
}

func (c *Cycle) Next() Preview {
	if len(c.Pieces) == 0 {
		panic("tetris: empty piece cycle")
	}
	p := c.Pieces[c.next%len(c.Pieces)]
	c.next++
	return p
}

// SpawnPlacement is where a piece enters: column SpawnX, lowered from
// spawnDepth rows above the board until one more row would bring a tile
// onto the playfield. Every kind therefore starts with its lowest tile on
// row -1.
func SpawnPlacement(kind Kind, o Orientation) Placement {
	p := Placement{Kind: kind, Orientation: o, X: SpawnX, Y: -spawnDepth}
	for !p.Moved(0, 1).Entered() {
		p = p.Moved(0, 1)
	}
	return p
}

// spawn promotes the preview to the active piece. A spawn is blocked when
// either the spawn placement or the row it enters the board through
// collides with the stack; that ends the game without placing a piece.
func (g *Game) spawn() {
	if g.over {
		return
	}

	p := SpawnPlacement(g.preview.Kind, g.preview.Orientation)
	g.preview = g.gen.Next()

	if Classify(p, &g.board) == Floor || Classify(p.Moved(0, 1), &g.board) == Floor {
		g.log.Info("spawn blocked", "placement", p.String())
		g.end()
		return
	}

	g.active = Active{Placement: p, Visible: true}
	g.elapsed = 0
	g.events.push(Event{Type: PieceSpawned, Placement: p, Score: g.state.Score})
}
