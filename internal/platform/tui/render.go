package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-outpost/internal/core"
	"github.com/vovakirdan/tui-outpost/internal/game"
	"github.com/vovakirdan/tui-outpost/internal/world"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorWall:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorFloor:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	core.ColorPlayer:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorAccent:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	core.ColorWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

const barWidth = 20

// drawBase draws the outpost overview: resources, survey state and the
// scouted site list with the cursor on the selected site.
func drawBase(s *core.Screen, snap game.Snapshot, cursor int) {
	s.Clear()

	s.DrawText(1, 0, "OUTPOST", core.ColorAccent)
	s.DrawText(10, 0, fmt.Sprintf("tick %d", snap.Ticks), core.ColorMuted)

	y := 2
	for _, r := range snap.Resources {
		s.DrawText(1, y, fmt.Sprintf("%-8s", r.Name), core.ColorDefault)
		s.DrawText(10, y, bar(r.Fraction(), barWidth), core.ColorAccent)
		s.DrawText(12+barWidth, y, fmt.Sprintf("%s / %s", formatAmount(r.Cur), formatAmount(r.Max)), core.ColorDefault)
		y++
	}

	y++
	if snap.CanSurvey {
		s.DrawText(1, y, fmt.Sprintf("Survey ready (%s energy)", formatAmount(snap.SurveyCost)), core.ColorAccent)
	} else {
		s.DrawText(1, y, fmt.Sprintf("Survey needs %s energy", formatAmount(snap.SurveyCost)), core.ColorMuted)
	}

	y += 2
	s.DrawText(1, y, fmt.Sprintf("Scouted sites (%d)", len(snap.Scouted)), core.ColorDefault)
	y++
	if len(snap.Scouted) == 0 {
		s.DrawText(3, y, "none yet", core.ColorMuted)
		return
	}

	// Keep the cursor visible when the list is taller than the screen
	rows := s.Height() - y
	if rows <= 0 {
		return
	}
	first := core.Clamp(cursor-rows+1, 0, max(0, len(snap.Scouted)-rows))
	for i := first; i < len(snap.Scouted) && y < s.Height(); i++ {
		marker, color := "  ", core.ColorDefault
		if i == cursor {
			marker, color = "> ", core.ColorPlayer
		}
		s.DrawText(1, y, fmt.Sprintf("%s%3d  %s", marker, i+1, siteLabel(snap.Scouted[i])), color)
		y++
	}
}

// drawEmbark draws a status line and the part of the tilemap around the
// player that fits on the screen.
func drawEmbark(s *core.Screen, snap game.Snapshot) {
	s.Clear()
	if snap.TileMap == nil {
		return
	}

	status := fmt.Sprintf("%s  (%d, %d)", siteLabel(snap.Location), snap.PlayerX, snap.PlayerY)
	s.DrawText(0, 0, status, core.ColorAccent)

	m := snap.TileMap
	view := core.Camera(snap.PlayerX, snap.PlayerY, s.Width(), s.Height()-1, m.Cols(), m.Rows())

	for sy := 0; sy < view.H; sy++ {
		for sx := 0; sx < view.W; sx++ {
			wx, wy := view.X+sx, view.Y+sy
			tile, ok := m.At(wx, wy)
			if !ok {
				continue
			}
			color := core.ColorFloor
			if tile == world.TileWall {
				color = core.ColorWall
			}
			s.Set(sx, sy+1, tile.Glyph(), color)
		}
	}

	if view.Contains(snap.PlayerX, snap.PlayerY) {
		s.Set(snap.PlayerX-view.X, snap.PlayerY-view.Y+1, '@', core.ColorPlayer)
	}
}

func siteLabel(l world.Location) string {
	p, ok := l.Embark()
	if !ok {
		return "base"
	}
	return fmt.Sprintf("site %d  %dx%d", p.Seed, p.Cols(), p.Rows())
}

// bar renders frac in [0, 1] as a fixed-width gauge.
func bar(frac float64, width int) string {
	if math.IsNaN(frac) {
		frac = 0
	}
	filled := int(math.Round(core.ClampF(frac, 0, 1) * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// formatAmount prints a resource amount with a short magnitude suffix.
func formatAmount(v float64) string {
	units := []struct {
		scale  float64
		suffix string
	}{
		{1e12, "T"},
		{1e9, "B"},
		{1e6, "M"},
		{1e3, "k"},
	}
	for _, u := range units {
		if math.Abs(v) >= u.scale {
			return trimZero(fmt.Sprintf("%.1f", v/u.scale)) + u.suffix
		}
	}
	return trimZero(fmt.Sprintf("%.1f", v))
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
