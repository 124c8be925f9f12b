package canvasui

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"strconv"
	"tsp-canvas-service/internal/domain"
	"tsp-canvas-service/internal/services"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	screenWidth  = 1100
	screenHeight = 640

	markerRadius = 9
	lineWidth    = 2
	maxListLines = 30
)

var (
	surface     = domain.Rect{Left: 20, Top: 20, Width: 800, Height: 600}
	solveButton = domain.Rect{Left: 840, Top: 20, Width: 110, Height: 30}
	resetButton = domain.Rect{Left: 960, Top: 20, Width: 110, Height: 30}

	backgroundColor = color.RGBA{0x22, 0x24, 0x28, 0xff}
	surfaceColor    = color.RGBA{0xf4, 0xf4, 0xf0, 0xff}
	borderColor     = color.RGBA{0x88, 0x88, 0x88, 0xff}
	routeColor      = color.RGBA{0x2a, 0x6f, 0xdb, 0xff}
	markerColor     = color.RGBA{0xd3, 0x33, 0x33, 0xff}
	buttonColor     = color.RGBA{0x3a, 0x7d, 0x44, 0xff}
	disabledColor   = color.RGBA{0x55, 0x55, 0x55, 0xff}
	errorColor      = color.RGBA{0x99, 0x22, 0x22, 0xff}
)

// Game renders one session on a desktop window. Every frame is drawn from a
// fresh snapshot, so the picture never disagrees with the session state.
type Game struct {
	session *services.Session
}

func NewGame(session *services.Session) *Game {
	return &Game{session: session}
}

// Run opens the window and blocks until it is closed.
func Run(session *services.Session) error {
	ebiten.SetWindowTitle("Travelling Salesman")
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(NewGame(session))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.solve()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Reset()
	}

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return nil
	}

	x, y := ebiten.CursorPosition()
	p := domain.Point{X: float64(x), Y: float64(y)}

	switch {
	case surface.Contains(p):
		if _, err := g.session.Click(p, surface); err != nil {
			log.Printf("canvas click failed: session=%s err=%v", g.session.ID(), err)
		}
	case solveButton.Contains(p):
		g.solve()
	case resetButton.Contains(p):
		g.session.Reset()
	}
	return nil
}

func (g *Game) solve() {
	if _, ok := g.session.Solve(); !ok {
		st := g.session.Snapshot()
		log.Printf("solve ignored: session=%s cities=%d loading=%t", g.session.ID(), len(st.Cities), st.Loading)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	st := g.session.Snapshot()

	screen.Fill(backgroundColor)
	fillRect(screen, surface, surfaceColor)
	vector.StrokeRect(screen, float32(surface.Left), float32(surface.Top), float32(surface.Width), float32(surface.Height), 1, borderColor, false)

	// Lines first so markers stay on top.
	for _, seg := range st.Route.Segments() {
		from := domain.Denormalize(seg.From, surface)
		to := domain.Denormalize(seg.To, surface)
		vector.StrokeLine(screen, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), lineWidth, routeColor, true)
	}

	for i, c := range st.Cities {
		at := domain.Denormalize(c.Position(), surface)
		vector.DrawFilledCircle(screen, float32(at.X), float32(at.Y), markerRadius, markerColor, true)

		label := strconv.Itoa(i + 1)
		ebitenutil.DebugPrintAt(screen, label, int(at.X)-3*len(label), int(at.Y)-8)
	}

	g.drawPanel(screen, st)
}

func (g *Game) drawPanel(screen *ebiten.Image, st domain.State) {
	solveLabel, solveFill := "Solve TSP", buttonColor
	if st.Loading {
		solveLabel = "Solving..."
	}
	if !st.CanSolve() {
		solveFill = disabledColor
	}
	drawButton(screen, solveButton, solveLabel, solveFill)
	drawButton(screen, resetButton, "Reset", buttonColor)

	x := int(solveButton.Left)
	y := int(solveButton.Top+solveButton.Height) + 16
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d cities  [click] add  [S] solve  [R] reset", len(st.Cities)), x, y)
	y += 24

	if st.Err != "" {
		box := domain.Rect{Left: float64(x) - 4, Top: float64(y) - 2, Width: resetButton.Left + resetButton.Width - float64(x) + 4, Height: 20}
		fillRect(screen, box, errorColor)
		ebitenutil.DebugPrintAt(screen, "Error: "+st.Err, x, y)
		y += 28
	}

	if st.Route == nil {
		return
	}

	ebitenutil.DebugPrintAt(screen, "Route order", x, y)
	y += 20
	for i, c := range st.Route {
		if i == maxListLines {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("... %d more", len(st.Route)-i), x, y)
			break
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%2d. %s (%.1f, %.1f)", i+1, c.Name, c.X, c.Y), x, y)
		y += 16
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func drawButton(screen *ebiten.Image, r domain.Rect, label string, fill color.Color) {
	fillRect(screen, r, fill)
	ebitenutil.DebugPrintAt(screen, label, int(r.Left)+10, int(r.Top+r.Height/2)-8)
}

func fillRect(screen *ebiten.Image, r domain.Rect, c color.Color) {
	vector.DrawFilledRect(screen, float32(r.Left), float32(r.Top), float32(r.Width), float32(r.Height), c, false)
}
