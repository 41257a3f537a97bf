// physics runs a small platformer scene on the arcade world: a player box,
// a tweened moving platform, a one-way ledge, and a pile of bouncing balls.
// Shapes are drawn with the debugdraw renderer.
package main

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/debugdraw"
)

const (
	screenW   = 960
	screenH   = 540
	ballCount = 40
	gravity   = 900
	runSpeed  = 240
	jumpSpeed = 480
)

type game struct {
	world    *arcade.World
	player   *arcade.Body
	balls    *arcade.Group
	solids   *arcade.Group
	platform *arcade.BodyTween
	hits     int
}

func newGame() *game {
	w := arcade.NewWorld(0, 0, screenW, screenH)
	w.Gravity = arcade.Vec2{Y: gravity}

	g := &game{
		world:  w,
		balls:  arcade.NewGroup("balls"),
		solids: arcade.NewGroup("solids"),
	}

	floor := arcade.NewBody(0, screenH-20, screenW, 20)
	floor.Name = "floor"
	floor.Immovable = true
	floor.Bounce = arcade.Vec2{X: 1, Y: 1}

	ledge := arcade.NewBody(560, 330, 200, 12)
	ledge.Name = "ledge"
	ledge.Immovable = true
	ledge.CheckCollision.Down = false // jump through from below

	mover := arcade.NewBody(120, 400, 140, 14)
	mover.Name = "mover"
	mover.Immovable = true
	g.platform = arcade.TweenPlatform(mover, 380, 400, 2.5, ease.InOutQuad)

	g.solids.Add(floor, ledge, mover)
	w.Add(floor, ledge, mover)

	g.player = arcade.NewBody(160, 300, 28, 44)
	g.player.Name = "player"
	g.player.CollideWorldBounds = true
	g.player.Drag = arcade.Vec2{X: 1200}
	w.Add(g.player)

	for i := 0; i < ballCount; i++ {
		r := 8 + rand.Float64()*10
		b := arcade.NewCircleBody(rand.Float64()*(screenW-2*r), rand.Float64()*200, r)
		b.Mass = r / 10
		b.Bounce = arcade.Vec2{X: 0.9, Y: 0.8}
		b.Velocity = arcade.Vec2{X: (rand.Float64() - 0.5) * 300}
		b.CollideWorldBounds = true
		b.NotifyCollide = true
		g.balls.Add(b)
		w.Add(b)
	}

	w.AddCollider(g.player, g.solids, nil, nil)
	w.AddCollider(g.balls, g.solids, nil, nil)
	w.AddCollider(g.balls, g.balls, nil, nil)
	w.AddCollider(g.player, g.balls, nil, nil)
	w.OnCollide = func(a, b *arcade.Body) { g.hits++ }
	w.OnDiagnostic = func(d arcade.Diagnostic) { log.Printf("physics: %v", d.Err) }
	return g
}

func (g *game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	g.platform.Update(float32(dt))

	p := g.player
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		p.Velocity.X = -runSpeed
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		p.Velocity.X = runSpeed
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && (p.OnFloor() || p.Touching.Down) {
		p.Velocity.Y = -jumpSpeed
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.world.SetDebugMode(true)
	}

	_, err := g.world.Update(dt)
	return err
}

func (g *game) Draw(screen *ebiten.Image) {
	debugdraw.Draw(screen, g.world, debugdraw.Options{Bounds: true, Velocity: true, VelocityScale: 0.05})
	st := g.world.Stats()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"arrows: move  space: jump  d: debug log\nbodies %d  candidates %d  collisions %d  hits %d",
		st.Bodies, st.Candidates, st.Collisions, g.hits))
}

func (g *game) Layout(w, h int) (int, int) { return screenW, screenH }

func main() {
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("Arcade Physics Playground")
	if err := ebiten.RunGame(newGame()); err != nil {
		log.Fatal(err)
	}
}
