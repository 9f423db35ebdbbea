// Command desktop is a window client for a running Snakey Snake server. It
// creates or joins a session, draws every snapshot pushed over the WebSocket
// and sends the arrow keys back as turns.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"desktop/remote"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	cellSize     = 16
	headerHeight = 48
	screenWidth  = 800
	screenHeight = 480
)

var (
	colorBackground = color.RGBA{20, 20, 30, 255}
	colorGrid       = color.RGBA{30, 30, 45, 255}
	colorHead       = color.RGBA{255, 220, 80, 255}
	colorBody       = color.RGBA{80, 200, 100, 255}
	colorObstacle   = color.RGBA{110, 110, 120, 255}
	colorApple      = color.RGBA{230, 60, 60, 255}
	colorBonus      = color.RGBA{255, 200, 0, 255}
	colorPenalty    = color.RGBA{160, 60, 200, 255}
)

// Game implements ebiten.Game over a remote session
type Game struct {
	client *remote.Client
}

func itemColor(kind string) color.Color {
	switch kind {
	case "bonus":
		return colorBonus
	case "penalty":
		return colorPenalty
	}
	return colorApple
}

// Update handles input. Actions are queued, so a slow connection never
// holds up a frame.
func (g *Game) Update() error {
	var err error
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft), inpututil.IsKeyJustPressed(ebiten.KeyA):
		err = g.client.Turn("left")
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight), inpututil.IsKeyJustPressed(ebiten.KeyD):
		err = g.client.Turn("right")
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyP):
		err = g.client.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}
	if err != nil {
		log.Printf("Failed to send action: %v", err)
	}
	return nil
}

// Draw renders the latest snapshot
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	state := g.client.State()
	if state == nil {
		ebitenutil.DebugPrint(screen, "Waiting for the first snapshot...")
		return
	}

	header := fmt.Sprintf("Session %s | %s | Score: %d  Best: %d  Deaths: %d",
		g.client.SessionID(), state.ConfigName, state.Score, state.HighScore, g.client.Deaths())
	ebitenutil.DebugPrintAt(screen, header, 10, 8)
	ebitenutil.DebugPrintAt(screen, statusText(state, g.client.LastError()), 10, 24)

	ebitenutil.DrawRect(screen, 0, headerHeight, float64(state.Width*cellSize), float64(state.Height*cellSize), colorGrid)

	fill := func(c remote.Cell, clr color.Color) {
		x := float64(c.X * cellSize)
		y := float64(headerHeight + c.Y*cellSize)
		ebitenutil.DrawRect(screen, x+1, y+1, cellSize-2, cellSize-2, clr)
	}
	for _, o := range state.Obstacles {
		fill(o, colorObstacle)
	}
	for _, it := range state.Items {
		if it.Visible {
			fill(it.Location, itemColor(it.Kind))
		}
	}
	for i := len(state.Segments) - 1; i >= 0; i-- {
		if i == 0 {
			fill(state.Segments[i], colorHead)
		} else {
			fill(state.Segments[i], colorBody)
		}
	}
}

func statusText(state *remote.Snapshot, lastError string) string {
	if lastError != "" {
		return "ERROR: " + lastError
	}
	switch state.State {
	case "home":
		return "Press LEFT or RIGHT to start"
	case "paused":
		return "PAUSED - SPACE to resume"
	case "game_over":
		return fmt.Sprintf("GAME OVER (%s) - LEFT or RIGHT to restart", state.DeathCause)
	}
	if state.SpeedFactor > 1 {
		return fmt.Sprintf("Boost x%d", state.SpeedFactor)
	}
	return "LEFT/RIGHT turn, SPACE pause, ESC quit"
}

// Layout keeps a fixed logical size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	server := flag.String("server", "http://localhost:8080", "Snakey Snake server URL")
	sessionID := flag.String("session", "", "join an existing session instead of creating one")
	configID := flag.String("config", "", "configuration for a new session")
	flag.Parse()

	client := remote.NewClient(*server)
	if *sessionID != "" {
		client.Attach(*sessionID)
	} else if err := client.CreateSession(*configID); err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	if err := client.Connect(); err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Snakey Snake - Desktop Client")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(&Game{client: client}); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
