package platformer

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// Ground decoration glyphs by background tile index.
var groundGlyphs = map[int]core.Cell{
	2:  {Rune: '·', Color: core.ColorDarkGray},
	3:  {Rune: '˙', Color: core.ColorGray},
	44: {Rune: '"', Color: core.ColorGreen},
}

// Wall glyphs by row of the wall list (four sprite-sheet rows).
var wallGlyphs = []core.Cell{
	{Rune: '▓', Color: core.ColorOrange},
	{Rune: '█', Color: core.ColorGreen},
	{Rune: '▒', Color: core.ColorGray},
	{Rune: '░', Color: core.ColorBlue},
}

// Render draws the map centred on dst, then items, enemies, the player and
// the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	cw, ch := g.cfg.Map.CellW, g.cfg.Map.CellH
	ox, oy := g.tilemap.Offset(dst.Width(), dst.Height(), cw, ch)

	g.drawLayers(dst, ox, oy, cw, ch)

	for _, it := range g.items {
		color := core.ColorBrightYellow
		if it.Kind == tilemap.ItemBomb {
			color = core.ColorBrightRed
		}
		g.drawSprite(dst, it.Box, it.anim.Frame(), color, ox, oy)
	}
	for _, e := range g.enemies {
		g.drawSprite(dst, e.Box, e.anim.Frame(), core.ColorBrightMagenta, ox, oy)
	}
	playerColor := core.ColorBrightCyan
	if g.player.IsHit() {
		playerColor = core.ColorRed
	}
	g.drawSprite(dst, g.player.Box, g.player.anim.Frame(), playerColor, ox, oy)

	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", g.score), core.ColorBrightWhite)

	switch {
	case g.gameOver:
		result := "Caught by an enemy"
		if g.won {
			result = "All items collected!"
		}
		drawMessage(dst, core.ColorBrightWhite, "Game Over", result, fmt.Sprintf("Score: %d", g.score), "Press Esc to restart")
	case g.paused:
		drawMessage(dst, core.ColorBrightWhite, "PAUSED", "Press P to resume")
	case !g.started:
		drawMessage(dst, core.ColorBrightWhite, "Arrow keys to move!", "Press Spacebar to Start")
	}
}

func (g *Game) drawLayers(dst *core.Screen, ox, oy, cw, ch int) {
	for ty := 0; ty < g.tilemap.Height; ty++ {
		for tx := 0; tx < g.tilemap.Width; tx++ {
			cell, ok := g.tileCell(tx, ty)
			if !ok {
				continue
			}
			for dy := 0; dy < ch; dy++ {
				for dx := 0; dx < cw; dx++ {
					dst.SetColored(ox+tx*cw+dx, oy+ty*ch+dy, cell.Rune, cell.Color)
				}
			}
		}
	}
}

// tileCell picks the glyph for a tile: a wall if the level layer has one,
// otherwise the ground decoration.
func (g *Game) tileCell(x, y int) (core.Cell, bool) {
	if i := g.tilemap.WallIndex(x, y); i >= 0 {
		row := i / 8
		if i >= 4 {
			row = (i-4)/8 + 1
		}
		return wallGlyphs[core.Min(row, len(wallGlyphs)-1)], true
	}
	index, ok := g.tilemap.Ground.At(x, y)
	if !ok {
		return core.Cell{}, false
	}
	cell, ok := groundGlyphs[index]
	return cell, ok
}

// drawSprite draws a frame at the tile cell holding the box, one rune per
// horizontal cell, repeated down the tile's rows.
func (g *Game) drawSprite(dst *core.Screen, box core.Box, frame string, color core.Color, ox, oy int) {
	cw, ch := g.cfg.Map.CellW, g.cfg.Map.CellH
	cx, _ := box.Center()
	x := ox + int(math.Round((cx-0.5)*float64(cw)))
	y := oy + int(math.Round((box.Bottom()-1)*float64(ch)))

	runes := []rune(frame)
	for dy := 0; dy < ch; dy++ {
		for dx := 0; dx < cw && dx < len(runes); dx++ {
			if runes[dx] == ' ' {
				continue
			}
			dst.SetColored(x+dx, y+dy, runes[dx], color)
		}
	}
}

// drawMessage draws a framed block of centred lines in the middle of dst.
func drawMessage(dst *core.Screen, color core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, utf8.RuneCountInString(l))
	}

	boxW := width + 4
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		x := box.X + (boxW-utf8.RuneCountInString(l))/2
		dst.DrawTextColored(x, box.Y+1+i, l, color)
	}
}
