package main

import (
	"github.com/wricardo/snakeysnake/game/engine"
)

var headings = []engine.Heading{engine.Up, engine.Right, engine.Down, engine.Left}

// Strategy picks taps that steer the head along a shortest path to the
// nearest worthwhile item. When no item is reachable it keeps to the move
// with the most open space.
type Strategy struct {
	// AvoidPenalty skips penalty items as targets
	AvoidPenalty bool
}

func turnedRight(h engine.Heading) engine.Heading { return (h + 1) % 4 }
func turnedLeft(h engine.Heading) engine.Heading  { return (h + 3) % 4 }

// board is the blocked set for one decision
type board struct {
	grid    engine.Grid
	blocked map[engine.Cell]bool
}

func newBoard(snap engine.Snapshot) *board {
	b := &board{
		grid:    engine.Grid{Width: snap.Width, Height: snap.Height},
		blocked: make(map[engine.Cell]bool, len(snap.Obstacles)+len(snap.Segments)),
	}
	for _, o := range snap.Obstacles {
		b.blocked[o] = true
	}
	// The last segment moves away on the next step
	for i := 1; i < len(snap.Segments)-1; i++ {
		b.blocked[snap.Segments[i]] = true
	}
	return b
}

func (b *board) free(c engine.Cell) bool {
	return b.grid.Contains(c) && !b.blocked[c]
}

// NextTap returns the side to tap, or false to keep the heading
func (s *Strategy) NextTap(snap engine.Snapshot) (engine.Side, bool) {
	if snap.State != engine.StatePlaying || len(snap.Segments) == 0 {
		return engine.SideLeft, false
	}
	b := newBoard(snap)
	head := snap.Head()

	want, ok := s.pathHeading(snap, b, head)
	if !ok {
		want = s.roomiestHeading(snap, b, head)
	}
	return tapFor(snap.Heading, want)
}

// tapFor converts an absolute heading into a relative tap. A reversal needs
// two taps; the first one goes right.
func tapFor(current, want engine.Heading) (engine.Side, bool) {
	switch want {
	case current:
		return engine.SideLeft, false
	case turnedLeft(current):
		return engine.SideLeft, true
	}
	return engine.SideRight, true
}

func (s *Strategy) targets(snap engine.Snapshot) map[engine.Cell]bool {
	targets := make(map[engine.Cell]bool)
	for _, it := range snap.Items {
		if !it.Visible || (s.AvoidPenalty && it.Kind == engine.PenaltyItem) {
			continue
		}
		targets[it.Location] = true
	}
	return targets
}

// pathHeading runs a BFS from the head and returns the first heading of the
// shortest path to any target. The cell behind the head is never a first step.
func (s *Strategy) pathHeading(snap engine.Snapshot, b *board, head engine.Cell) (engine.Heading, bool) {
	targets := s.targets(snap)
	if len(targets) == 0 {
		return 0, false
	}

	type node struct {
		cell  engine.Cell
		first engine.Heading
	}

	visited := map[engine.Cell]bool{head: true}
	var queue []node
	for _, h := range headings {
		if h == turnedRight(turnedRight(snap.Heading)) {
			continue
		}
		next := head.Step(h)
		if !b.free(next) || visited[next] {
			continue
		}
		if targets[next] {
			return h, true
		}
		visited[next] = true
		queue = append(queue, node{next, h})
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, h := range headings {
			next := current.cell.Step(h)
			if visited[next] || !b.free(next) {
				continue
			}
			if targets[next] {
				return current.first, true
			}
			visited[next] = true
			queue = append(queue, node{next, current.first})
		}
	}
	return 0, false
}

// roomiestHeading prefers straight, then left, then right, picking the move
// whose reachable area is largest
func (s *Strategy) roomiestHeading(snap engine.Snapshot, b *board, head engine.Cell) engine.Heading {
	best, bestArea := snap.Heading, -1
	for _, h := range []engine.Heading{snap.Heading, turnedLeft(snap.Heading), turnedRight(snap.Heading)} {
		next := head.Step(h)
		if !b.free(next) {
			continue
		}
		if area := b.area(next); area > bestArea {
			best, bestArea = h, area
		}
	}
	return best
}

// area counts the cells reachable from start
func (b *board) area(start engine.Cell) int {
	visited := map[engine.Cell]bool{start: true}
	queue := []engine.Cell{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, h := range headings {
			next := current.Step(h)
			if !visited[next] && b.free(next) {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(visited)
}
