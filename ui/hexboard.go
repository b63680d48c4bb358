// Package ui specifies custom controls for tview to assist in playing Hex in the terminal.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termhex/config"
	"termhex/engine"
	"termhex/types"
)

// MoveEntry is one played move as shown in the side panel.
type MoveEntry struct {
	X     int
	Y     int
	Color types.Color
}

// HexBoardUI renders the rhombic Hex board and relays input to the engine.
type HexBoardUI struct {
	Box         *tview.Box
	BoardState  *types.BoardState
	hint        *tview.TextView
	cfg         *config.Config
	finished    bool
	selX        int
	selY        int
	app         *tview.Application
	eng         engine.GameEngine
	styles      []tcell.Color
	infoPanel   *HexInfoPanel
	moveHistory []MoveEntry
	focusMode   bool
}

// Style slot indices for HexBoardUI.styles.
const (
	styleBoard = iota
	styleBlack
	styleWhite
	styleBlackEdge
	styleWhiteEdge
	styleCursorFG
	styleCursorBG
	styleLastPlayedBG
)

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *HexBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *HexBoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *HexBoardUI) IsFocusMode() bool {
	return g.focusMode
}

func (g *HexBoardUI) SelectedTile() *types.BoardPos {
	if g.selX == -1 && g.selY == -1 {
		return nil
	}
	return &types.BoardPos{X: g.selX, Y: g.selY}
}

func (g *HexBoardUI) MoveSelection(h, v int) {
	if g.BoardState.Finished() {
		g.ResetSelection()
		return
	}
	prevTile := g.SelectedTile()
	if prevTile == nil {
		g.selX = g.BoardState.LastMove.X
		g.selY = g.BoardState.LastMove.Y
		if g.SelectedTile() == nil {
			// No previous move made, use board center
			g.selX = g.BoardState.Width() / 2
			g.selY = g.BoardState.Height() / 2
		}
		return
	}
	if g.selX+h < 0 || g.selX+h >= g.BoardState.Width() {
		return
	}
	if g.selY+v < 0 || g.selY+v >= g.BoardState.Height() {
		return
	}
	g.selX += h
	g.selY += v
}

func (g *HexBoardUI) ResetSelection() {
	g.selX = -1
	g.selY = -1
}

func NewHexBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *HexBoardUI {
	hexBoard := &HexBoardUI{
		Box:        tview.NewBox(),
		BoardState: &types.BoardState{},
		hint:       hint,
		app:        app,
		selX:       -1,
		selY:       -1,
	}
	hexBoard.SetConfig(c)
	hexBoard.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		if hexBoard.BoardState == nil || hexBoard.BoardState.Width() == 0 {
			return x, y, 1, 1
		}
		size := hexBoard.BoardState.Width()
		// Each row shifts one cell right of the row above, so the board
		// renders as a rhombus and the six terminal neighbors of a cell
		// match its six Hex neighbors.
		// Row 0 of the board starts at screen row y+2; rows 0 and 1
		// carry the column letters and the top edge.
		top := y + 2
		left := x + 4

		if hexBoard.cfg.Theme.DrawEdgeMarkers {
			drawEdges(screen, hexBoard, left, top, size)
		}

		for boardY := 0; boardY < size; boardY++ {
			base := left + boardY
			for boardX := 0; boardX < size; boardX++ {
				stone := hexBoard.BoardState.At(boardX, boardY)

				drawRune := hexBoard.cfg.Theme.Symbols.EmptyCell
				fgColor := hexBoard.styles[styleBoard]
				switch stone {
				case types.Black:
					drawRune = hexBoard.cfg.Theme.Symbols.BlackStone
					fgColor = hexBoard.styles[styleBlack]
				case types.White:
					drawRune = hexBoard.cfg.Theme.Symbols.WhiteStone
					fgColor = hexBoard.styles[styleWhite]
				}

				style := tcell.StyleDefault.Foreground(fgColor)
				if boardX == hexBoard.selX && boardY == hexBoard.selY {
					if hexBoard.cfg.Theme.DrawCursorBackground {
						style = style.Background(hexBoard.styles[styleCursorBG])
					} else if stone == types.Empty {
						drawRune = hexBoard.cfg.Theme.Symbols.Cursor
						style = style.Foreground(hexBoard.styles[styleCursorFG])
					}
				} else if boardX == hexBoard.BoardState.LastMove.X && boardY == hexBoard.BoardState.LastMove.Y {
					if hexBoard.cfg.Theme.DrawLastPlayedBackground {
						style = style.Background(hexBoard.styles[styleLastPlayedBG])
					}
				}
				if hexBoard.cfg.Theme.DrawStoneBackground && stone != types.Empty {
					style = style.Background(hexBoard.styles[styleBoard])
				}

				screen.SetContent(base+boardX*2, top+boardY, drawRune, nil, style)
				screen.SetContent(base+boardX*2+1, top+boardY, ' ', nil, tcell.StyleDefault)
			}
		}
		drawCoordinates(screen, x, y, hexBoard)

		// Rhombus width grows by one cell per row.
		boardW := 4 + (size - 1) + size*2 + 2
		boardH := size + 4
		return x, y, boardW, boardH
	})
	return hexBoard
}

// drawEdges marks the board edges in the owning player's color. Black owns
// top and bottom, White owns left and right.
func drawEdges(screen tcell.Screen, g *HexBoardUI, left, top, size int) {
	blackStyle := tcell.StyleDefault.Foreground(g.styles[styleBlackEdge])
	whiteStyle := tcell.StyleDefault.Foreground(g.styles[styleWhiteEdge])

	for ix := 0; ix < size; ix++ {
		// Top edge sits above row 0, bottom edge below row size-1,
		// shifted with the rhombus.
		screen.SetContent(left+ix*2, top-1, '▔', nil, blackStyle)
		screen.SetContent(left+(size-1)+ix*2, top+size, '▔', nil, blackStyle)
	}
	for iy := 0; iy < size; iy++ {
		base := left + iy
		screen.SetContent(base-2, top+iy, '╲', nil, whiteStyle)
		screen.SetContent(base+size*2, top+iy, '╲', nil, whiteStyle)
	}
}

// ConnectEngine connects the board to a game engine.
func (g *HexBoardUI) ConnectEngine(e engine.GameEngine) error {
	g.finished = false
	g.moveHistory = nil
	g.eng = e

	if err := e.Connect(); err != nil {
		return err
	}

	e.OnMove(func(x, y int, color types.Color, boardState *types.BoardState) {
		g.BoardState = boardState
		g.moveHistory = append(g.moveHistory, MoveEntry{X: x, Y: y, Color: color})
		g.refreshHint()
		// Spawn goroutine to avoid deadlock when called from main thread
		go func() {
			g.app.QueueUpdateDraw(func() {})
		}()
	})

	e.OnGameEnd(func(outcome string) {
		g.finished = true
		g.BoardState = e.GetBoardState()
		g.ResetSelection()
		g.refreshHint()
		go func() {
			g.app.QueueUpdateDraw(func() {})
		}()
	})

	g.BoardState = e.GetBoardState()
	g.refreshHint()
	return nil
}

// PlayMove plays a move at the given coordinates.
func (g *HexBoardUI) PlayMove(x, y int) {
	if g.finished {
		return
	}
	if g.eng == nil {
		return
	}
	if !g.eng.IsMyTurn() {
		return
	}
	if err := g.eng.PlayMove(x, y); err != nil {
		// Could show error for illegal move
		return
	}
}

// Undo takes back the player's last move together with the opponent's reply.
func (g *HexBoardUI) Undo() {
	if g.finished || g.eng == nil {
		return
	}
	if err := g.eng.Undo(); err != nil {
		return
	}
	g.BoardState = g.eng.GetBoardState()
	if len(g.moveHistory) > g.BoardState.MoveNumber {
		g.moveHistory = g.moveHistory[:g.BoardState.MoveNumber]
	}
	g.ResetSelection()
	g.refreshHint()
}

// Rematch starts a fresh game against the same opponent.
func (g *HexBoardUI) Rematch() {
	if g.eng == nil {
		return
	}
	g.finished = false
	g.moveHistory = nil
	if err := g.eng.Connect(); err != nil {
		return
	}
	g.BoardState = g.eng.GetBoardState()
	g.ResetSelection()
	g.refreshHint()
}

// Close disconnects the engine.
func (g *HexBoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
}

func (g *HexBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),        // styleBoard
		tcell.PaletteColor(c.Theme.Colors.BlackColor),        // styleBlack
		tcell.PaletteColor(c.Theme.Colors.WhiteColor),        // styleWhite
		tcell.PaletteColor(c.Theme.Colors.BlackEdgeColor),    // styleBlackEdge
		tcell.PaletteColor(c.Theme.Colors.WhiteEdgeColor),    // styleWhiteEdge
		tcell.PaletteColor(c.Theme.Colors.CursorColorFG),     // styleCursorFG
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),     // styleCursorBG
		tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG), // styleLastPlayedBG
	}
	g.cfg = c
}

func (g *HexBoardUI) refreshHint() {
	// Update info panel if available
	if g.infoPanel != nil {
		g.infoPanel.SetBoardState(g.BoardState)
	}

	// Focus mode shows minimal hint
	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, turnLine, controlsLine string

	if g.finished {
		statusLine = "───────── Game Complete ─────────\n\n"
		turnLine = fmt.Sprintf("  Result: %s\n", g.BoardState.Outcome)
		controlsLine = "\n  r rematch   q return to menu"
	} else {
		if g.eng != nil && g.eng.IsMyTurn() {
			stone := "●"
			edges := "top to bottom"
			if g.eng.GetPlayerColor() == types.White {
				stone = "○"
				edges = "left to right"
			}
			turnLine = fmt.Sprintf("  %s Your move (%s, connect %s)\n", stone, g.eng.GetPlayerColor(), edges)
		} else {
			turnLine = "  ◌ Thinking...\n"
		}

		controlsLine = `
  hjkl/↑↓←→ move   ⏎ play
       u undo   f focus   q quit`
	}

	g.hint.SetText(fmt.Sprintf("%s%s%s", statusLine, turnLine, controlsLine))
}

// IsFinished returns true if the game is over.
func (g *HexBoardUI) IsFinished() bool {
	return g.finished
}

// coordLabel formats a board position as a letter-number pair, column A
// at the left and row 1 at the top.
func coordLabel(x, y int) string {
	return fmt.Sprintf("%c%d", rune('A'+x), y+1)
}

func drawCoordinates(s tcell.Screen, x, y int, ui *HexBoardUI) {
	size := ui.BoardState.Width()

	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(ui.styles[styleCursorBG])
	lpHighlight := tcell.StyleDefault.Background(ui.styles[styleLastPlayedBG])

	// Column letters above the top edge, aligned with row 0.
	for ix := 0; ix < size; ix++ {
		_style := style
		if ix == ui.selX {
			_style = highlight
		} else if ix == ui.BoardState.LastMove.X {
			_style = lpHighlight
		}
		s.SetContent(x+4+(ix*2), y, rune('A'+ix), nil, _style)
		s.SetContent(x+4+(ix*2)+1, y, ' ', nil, _style)
	}

	// Row numbers at the left margin.
	for iy := 0; iy < size; iy++ {
		_style := style
		if iy == ui.selY {
			_style = highlight
		} else if iy == ui.BoardState.LastMove.Y {
			_style = lpHighlight
		}
		displayNum := iy + 1
		tensRune := ' '
		if displayNum >= 10 {
			tensRune = rune('0' + displayNum/10)
		}
		s.SetContent(x, y+2+iy, tensRune, nil, _style)
		s.SetContent(x+1, y+2+iy, rune('0'+(displayNum%10)), nil, _style)
	}
	s.Show()
}
