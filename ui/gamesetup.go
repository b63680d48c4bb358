package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termhex/config"
	"termhex/engine"
	"termhex/types"
)

// setupControl is the common surface of the setup screen widgets.
type setupControl interface {
	HandleKey(event *tcell.EventKey) bool
	SetFocused(focused bool)
}

// GameSetupUI is the new-game screen, a menu card holding the board size
// slider, the color selector and the action buttons.
type GameSetupUI struct {
	*MenuCard

	sizeSlider  *SizeSlider
	colorSelect *RadioSelect
	buttons     []*MenuButton
	controls    []setupControl
	focusIdx    int

	onStart func(engine.GameConfig)

	boardSize   int
	playerColor types.Color
	seed        int64
}

// NewGameSetup creates the new-game screen seeded from the config defaults.
func NewGameSetup(defaults config.GameDefaults, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		MenuCard:    NewMenuCard("T E R M H E X"),
		onStart:     onStart,
		boardSize:   defaults.BoardSize,
		playerColor: types.Black,
		seed:        defaults.Seed,
	}
	if defaults.PlayerColor == "white" {
		setup.playerColor = types.White
	}
	setup.MenuCard.SetFocused(true)

	setup.sizeSlider = NewSizeSlider("Board Size", 3, 19, setup.boardSize, func(v int) {
		setup.boardSize = v
	})

	colorInitial := 0
	if setup.playerColor == types.White {
		colorInitial = 1
	}
	setup.colorSelect = NewRadioSelect("Your Color", []RadioOption{
		{Label: "Black", Description: "connect top to bottom, play first"},
		{Label: "White", Description: "connect left to right, play second"},
	}, colorInitial, func(index int) {
		setup.playerColor = types.Black
		if index == 1 {
			setup.playerColor = types.White
		}
	})

	setup.buttons = []*MenuButton{
		NewMenuButton("Start Game", true, func() {
			onStart(engine.GameConfig{
				BoardSize:   setup.boardSize,
				PlayerColor: setup.playerColor,
				FirstPlayer: types.Black,
				Seed:        setup.seed,
			})
		}),
		NewMenuButton("Board Colors", false, func() {
			if onColors != nil {
				onColors()
			}
		}),
		NewMenuButton("Quit", false, onCancel),
	}

	setup.controls = []setupControl{setup.sizeSlider, setup.colorSelect}
	for _, b := range setup.buttons {
		setup.controls = append(setup.controls, b)
	}
	setup.applyFocus()

	return setup
}

// Draw renders the card and lays the controls out inside it.
func (s *GameSetupUI) Draw(screen tcell.Screen) {
	s.MenuCard.Draw(screen)

	x, y, width, height := s.GetInnerRect()
	if width < 10 || height < 5 {
		return
	}
	inX := x + 3
	inW := width - 6

	row := y + 6
	row += s.sizeSlider.Draw(screen, inX, row, inW)
	row += 2
	row += s.colorSelect.Draw(screen, inX, row, inW)
	row += 1

	s.DrawDivider(screen, row)
	row += 2

	// Buttons centered in a single row.
	total := 0
	for _, b := range s.buttons {
		total += b.Width() + 2
	}
	bx := x + (width-total)/2
	for _, b := range s.buttons {
		bx += b.Draw(screen, bx, row) + 2
	}

	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)
	hint := "Tab next  ↑↓◀▶ adjust  ⏎ select"
	hx := x + (width-len([]rune(hint)))/2
	for i, ch := range hint {
		screen.SetContent(hx+i, row+2, ch, nil, hintStyle)
	}
}

// InputHandler cycles focus between the controls and forwards keys to the
// focused one.
func (s *GameSetupUI) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return s.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyTab:
			s.focusIdx = (s.focusIdx + 1) % len(s.controls)
			s.applyFocus()
			return
		case tcell.KeyBacktab:
			s.focusIdx = (s.focusIdx + len(s.controls) - 1) % len(s.controls)
			s.applyFocus()
			return
		}
		if s.controls[s.focusIdx].HandleKey(event) {
			return
		}
		// Unconsumed vertical movement steps the focus instead.
		switch event.Key() {
		case tcell.KeyDown:
			s.focusIdx = (s.focusIdx + 1) % len(s.controls)
			s.applyFocus()
		case tcell.KeyUp:
			s.focusIdx = (s.focusIdx + len(s.controls) - 1) % len(s.controls)
			s.applyFocus()
		}
	})
}

func (s *GameSetupUI) applyFocus() {
	for i, c := range s.controls {
		c.SetFocused(i == s.focusIdx)
	}
}
