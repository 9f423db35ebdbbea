package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/snakeysnake/game/engine"
)

// Each grid cell is drawn two columns wide so the board looks square
const cellWidth = 2

// Board origin on screen, leaving row 0 for the status line and a border
const (
	originX = 1
	originY = 2
)

var (
	styleDefault = tcell.StyleDefault
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHead    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBody    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleApple   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBonus   = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	stylePenalty = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleBanner  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// glyph maps a Rows() symbol to the rune and style drawn for it
func glyph(ch byte) (rune, tcell.Style) {
	switch ch {
	case '@':
		return '█', styleHead
	case 'o':
		return '█', styleBody
	case '#':
		return '▒', styleWall
	case '*':
		return '●', styleApple
	case '$':
		return '◆', styleBonus
	case '!':
		return '✖', stylePenalty
	}
	return ' ', styleDefault
}

// statusLine summarizes score and speed
func statusLine(snap engine.Snapshot) string {
	line := fmt.Sprintf("%s  Score: %d  Best: %d", snap.ConfigName, snap.Score, snap.HighScore)
	switch {
	case snap.SpeedFactor > engine.NormalSpeed:
		line += fmt.Sprintf("  Speed: x%d", snap.SpeedFactor)
	case snap.SpeedFactor < engine.NormalSpeed:
		line += "  Frozen"
	}
	return line
}

// banner returns the overlay text for states that wait on the player
func banner(snap engine.Snapshot) string {
	switch snap.State {
	case engine.StateHome:
		return "Press ← or → to start"
	case engine.StatePaused:
		return "PAUSED  (space to resume)"
	case engine.StateGameOver:
		if snap.DeathCause != engine.CauseNone {
			return fmt.Sprintf("GAME OVER (%s)  ← or → to restart", snap.DeathCause)
		}
		return "GAME OVER  ← or → to restart"
	}
	return ""
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// draw renders the whole snapshot and shows it
func draw(screen tcell.Screen, snap engine.Snapshot) {
	screen.Clear()
	drawText(screen, 0, 0, statusLine(snap), styleDefault)

	// Border
	right := originX + snap.Width*cellWidth
	bottom := originY + snap.Height
	for x := originX - 1; x <= right; x++ {
		screen.SetContent(x, originY-1, '─', nil, styleBorder)
		screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := originY - 1; y <= bottom; y++ {
		screen.SetContent(originX-1, y, '│', nil, styleBorder)
		screen.SetContent(right, y, '│', nil, styleBorder)
	}

	for y, row := range snap.Rows() {
		for x := 0; x < len(row); x++ {
			r, style := glyph(row[x])
			for i := 0; i < cellWidth; i++ {
				screen.SetContent(originX+x*cellWidth+i, originY+y, r, nil, style)
			}
		}
	}

	if text := banner(snap); text != "" {
		x := originX + (snap.Width*cellWidth-len([]rune(text)))/2
		if x < 0 {
			x = 0
		}
		drawText(screen, x, originY+snap.Height/2, text, styleBanner)
	}
	screen.Show()
}
