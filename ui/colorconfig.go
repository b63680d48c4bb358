package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termhex/config"
)

// colorTarget identifies which theme color the list is editing.
type colorTarget int

const (
	targetBoard colorTarget = iota
	targetBlackEdge
	targetWhiteEdge
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	target colorTarget

	selectedBoard     int
	selectedBlackEdge int
	selectedWhiteEdge int
}

// Board colors to choose from (neutral cell tones).
var boardColors = []struct {
	code int
	name string
}{
	{230, "Light Cream"},
	{229, "Pale Yellow"},
	{228, "Light Gold"},
	{222, "Gold"},
	{180, "Tan"},
	{179, "Light Brown"},
	{172, "Brown"},
	{136, "Dark Brown"},
	{252, "Light Gray"},
	{250, "Gray"},
	{248, "Medium Gray"},
	{244, "Dark Gray"},
	{188, "Light Beige"},
	{223, "Peach"},
}

// Edge colors (strong tones that read as a player's border).
var edgeColors = []struct {
	code int
	name string
}{
	{160, "Red"},
	{196, "Bright Red"},
	{88, "Dark Red"},
	{208, "Orange"},
	{220, "Yellow"},
	{27, "Blue"},
	{33, "Bright Blue"},
	{17, "Navy Blue"},
	{24, "Dark Cyan"},
	{22, "Dark Green"},
	{54, "Purple"},
	{232, "Black"},
	{255, "White"},
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:               cfg,
		onDone:            onDone,
		selectedBoard:     cfg.Theme.Colors.BoardColor,
		selectedBlackEdge: cfg.Theme.Colors.BlackEdgeColor,
		selectedWhiteEdge: cfg.Theme.Colors.WhiteEdgeColor,
		target:            targetBoard,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)

	cc.populateColorList()

	// Selection change previews without saving.
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		choices := cc.choices()
		if index < 0 || index >= len(choices) {
			return
		}
		switch cc.target {
		case targetBoard:
			cc.selectedBoard = choices[index].code
		case targetBlackEdge:
			cc.selectedBlackEdge = choices[index].code
		case targetWhiteEdge:
			cc.selectedWhiteEdge = choices[index].code
		}
	})

	// Confirm applies the color, saves, and steps to the next target,
	// leaving the screen after the last one.
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		switch cc.target {
		case targetBoard:
			cc.cfg.Theme.Colors.BoardColor = cc.selectedBoard
			cc.cfg.Save()
			cc.target = targetBlackEdge
			cc.populateColorList()
		case targetBlackEdge:
			cc.cfg.Theme.Colors.BlackEdgeColor = cc.selectedBlackEdge
			cc.cfg.Save()
			cc.target = targetWhiteEdge
			cc.populateColorList()
		case targetWhiteEdge:
			cc.cfg.Theme.Colors.WhiteEdgeColor = cc.selectedWhiteEdge
			cc.cfg.Save()
			onDone()
		}
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) choices() []struct {
	code int
	name string
} {
	if cc.target == targetBoard {
		return boardColors
	}
	return edgeColors
}

// populateColorList fills the list for the current editing target.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	var title string
	var current int
	switch cc.target {
	case targetBoard:
		title = " Board Color (Tab: next) "
		current = cc.selectedBoard
	case targetBlackEdge:
		title = " Black Edge Color (Tab: next) "
		current = cc.selectedBlackEdge
	case targetWhiteEdge:
		title = " White Edge Color (Tab: next) "
		current = cc.selectedWhiteEdge
	}
	cc.colorList.SetTitle(title)

	choices := cc.choices()
	for i, c := range choices {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range choices {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	boardColor := tcell.PaletteColor(cc.selectedBoard)
	blackColor := tcell.PaletteColor(cc.cfg.Theme.Colors.BlackColor)
	whiteColor := tcell.PaletteColor(cc.cfg.Theme.Colors.WhiteColor)
	blackEdge := tcell.PaletteColor(cc.selectedBlackEdge)
	whiteEdge := tcell.PaletteColor(cc.selectedWhiteEdge)

	boardStyle := tcell.StyleDefault.Foreground(boardColor)
	blackStyle := tcell.StyleDefault.Foreground(blackColor)
	whiteStyle := tcell.StyleDefault.Foreground(whiteColor)
	blackEdgeStyle := tcell.StyleDefault.Foreground(blackEdge)
	whiteEdgeStyle := tcell.StyleDefault.Foreground(whiteEdge)

	size := 5
	startX := x + 4
	startY := y + 2

	if width < 25 || height < 12 {
		return x, y, width, height
	}

	// Sample stones for the preview rhombus.
	stones := map[[2]int]int{
		{2, 1}: 1, // black
		{2, 2}: 1,
		{1, 2}: 2, // white
		{3, 2}: 2,
		{2, 3}: 1,
	}

	for ix := 0; ix < size; ix++ {
		screen.SetContent(startX+ix*2, startY-1, '▔', nil, blackEdgeStyle)
		screen.SetContent(startX+(size-1)+ix*2, startY+size, '▔', nil, blackEdgeStyle)
	}
	for row := 0; row < size; row++ {
		base := startX + row
		screen.SetContent(base-2, startY+row, '╲', nil, whiteEdgeStyle)
		screen.SetContent(base+size*2, startY+row, '╲', nil, whiteEdgeStyle)
		for col := 0; col < size; col++ {
			char := cc.cfg.Theme.Symbols.EmptyCell
			style := boardStyle
			if stoneColor, ok := stones[[2]int{col, row}]; ok {
				if stoneColor == 1 {
					char = cc.cfg.Theme.Symbols.BlackStone
					style = blackStyle
				} else {
					char = cc.cfg.Theme.Symbols.WhiteStone
					style = whiteStyle
				}
			}
			screen.SetContent(base+col*2, startY+row, char, nil, style)
		}
	}

	infoStyle := tcell.StyleDefault
	info := fmt.Sprintf("Board: %d  B edge: %d  W edge: %d",
		cc.selectedBoard, cc.selectedBlackEdge, cc.selectedWhiteEdge)
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+size+2, ch, nil, infoStyle)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode cycles between the board, black edge and white edge targets.
func (cc *ColorConfigUI) ToggleMode() {
	switch cc.target {
	case targetBoard:
		cc.target = targetBlackEdge
	case targetBlackEdge:
		cc.target = targetWhiteEdge
	default:
		cc.target = targetBoard
	}
	cc.populateColorList()
}
