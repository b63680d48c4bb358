package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"termhex/types"
)

// HexInfoPanel displays game information and move history alongside the board.
type HexInfoPanel struct {
	box         *tview.TextView
	boardState  *types.BoardState
	moveHistory *[]MoveEntry
}

// NewHexInfoPanel creates a new game info panel.
func NewHexInfoPanel() *HexInfoPanel {
	panel := &HexInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *HexInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetBoardState updates the panel with current board state.
func (p *HexInfoPanel) SetBoardState(state *types.BoardState) {
	p.boardState = state
	p.refresh()
}

// SetMoveHistory sets a pointer to the move history slice.
func (p *HexInfoPanel) SetMoveHistory(history *[]MoveEntry) {
	p.moveHistory = history
}

// refresh updates the panel text.
func (p *HexInfoPanel) refresh() {
	if p.boardState == nil {
		p.box.SetText("")
		return
	}

	var text string

	// Game Info section
	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"

	text += fmt.Sprintf("[white]Board:[-:-:-] %dx%d\n", p.boardState.Width(), p.boardState.Height())
	text += fmt.Sprintf("[white]Move:[-:-:-] %d\n", p.boardState.MoveNumber)

	if p.boardState.Finished() {
		text += fmt.Sprintf("[white]Result:[-:-:-] %s\n", p.boardState.Outcome)
	} else {
		text += fmt.Sprintf("[white]To move:[-:-:-] %s\n", p.boardState.ToMove)
	}

	if p.moveHistory != nil && len(*p.moveHistory) > 0 {
		text += "\n[white::b]Moves[-:-:-]\n"
		text += "[dimgray]──────────────────────[-:-:-]\n"

		moves := *p.moveHistory
		// Show last N moves that fit, with scroll
		maxVisible := 12
		start := 0
		if len(moves) > maxVisible {
			start = len(moves) - maxVisible
		}

		for i := start; i < len(moves); i++ {
			m := moves[i]
			moveNum := i + 1

			colorStr := "[white]B[-]"
			if m.Color == types.White {
				colorStr = "[dimgray]W[-]"
			}

			marker := " "
			if i == len(moves)-1 {
				marker = "[white]>[-]"
			}

			text += fmt.Sprintf("%s[dimgray]%3d.[-] %s %s\n", marker, moveNum, colorStr, coordLabel(m.X, m.Y))
		}

		if start > 0 {
			text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	p.box.SetText(text)
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *HexBoardUI, hint *tview.TextView) *tview.Flex {
	infoPanel := NewHexInfoPanel()

	// Store panel reference in board for updates
	board.infoPanel = infoPanel
	infoPanel.SetMoveHistory(&board.moveHistory)

	// Create horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)         // Board (flexible, takes remaining space)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false) // Info panel (fixed width)

	// Main vertical flex: board area on top, compact status bar at bottom
	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(hint, 3, 0, false)

	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form tview.Primitive, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *HexBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewHexInfoPanel()

	board.infoPanel = infoPanel
	infoPanel.SetMoveHistory(&board.moveHistory)

	if board.BoardState != nil {
		infoPanel.SetBoardState(board.BoardState)
	}

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 3, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *HexBoardUI) {
	gameFrame.Clear()

	// The rhombus is size-1 cells wider than a square board of the
	// same size.
	boardWidth := 30
	boardHeight := 15
	if board.BoardState != nil && board.BoardState.Width() > 0 {
		size := board.BoardState.Width()
		boardWidth = 4 + (size - 1) + size*2 + 2
		boardHeight = size + 4
	}

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false) // top spacer

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)               // left spacer
	centerRow.AddItem(board.Box, boardWidth, 0, true) // board (fixed width)
	centerRow.AddItem(nil, 0, 1, false)               // right spacer

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false) // bottom spacer
}
