package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// MenuColors defines the Nord-inspired color palette for the menu UI.
var MenuColors = struct {
	Border      tcell.Color // Muted blue-gray for borders
	BorderFocus tcell.Color // Brighter blue for focused borders
	CardBG      tcell.Color // Dark gray background
	Title       tcell.Color // Bright white for title
	TitleAccent tcell.Color // Blue accent for decoration
	Label       tcell.Color // Light gray for labels
	Hint        tcell.Color // Dim gray for hints
	Selected    tcell.Color // Bright blue for selected items
	Unselected  tcell.Color // Dim gray for unselected items
	ButtonFocus tcell.Color // Focused button
	ButtonText  tcell.Color // Button text
}{
	Border:      tcell.PaletteColor(60),
	BorderFocus: tcell.PaletteColor(109),
	CardBG:      tcell.PaletteColor(236),
	Title:       tcell.PaletteColor(255),
	TitleAccent: tcell.PaletteColor(109),
	Label:       tcell.PaletteColor(250),
	Hint:        tcell.PaletteColor(245),
	Selected:    tcell.PaletteColor(109),
	Unselected:  tcell.PaletteColor(245),
	ButtonFocus: tcell.PaletteColor(109),
	ButtonText:  tcell.PaletteColor(255),
}

// MenuButton is a styled button component.
type MenuButton struct {
	label    string
	primary  bool
	focused  bool
	onSelect func()
}

// NewMenuButton creates a new menu button.
func NewMenuButton(label string, primary bool, onSelect func()) *MenuButton {
	return &MenuButton{
		label:    label,
		primary:  primary,
		onSelect: onSelect,
	}
}

// SetFocused sets the focus state.
func (b *MenuButton) SetFocused(focused bool) {
	b.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (b *MenuButton) HandleKey(event *tcell.EventKey) bool {
	if event.Key() == tcell.KeyEnter {
		if b.onSelect != nil {
			b.onSelect()
		}
		return true
	}
	return false
}

// Draw renders the button at the given position and returns the width used.
func (b *MenuButton) Draw(screen tcell.Screen, x, y int) int {
	label := b.label
	if b.primary {
		label = "▶ " + label
	}

	padding := 1
	width := len([]rune(label)) + padding*2

	if b.focused {
		// Filled background, bright text
		style := tcell.StyleDefault.
			Foreground(MenuColors.ButtonText).
			Background(MenuColors.ButtonFocus)
		for i := 0; i < width; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		col := x + padding
		for _, ch := range label {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
	} else {
		// Dim text with brackets, no fill
		dimStyle := tcell.StyleDefault.
			Foreground(MenuColors.Hint).
			Background(MenuColors.CardBG)
		bracketStyle := tcell.StyleDefault.
			Foreground(MenuColors.Border).
			Background(MenuColors.CardBG)

		screen.SetContent(x, y, '[', nil, bracketStyle)
		col := x + 1
		for _, ch := range label {
			screen.SetContent(col, y, ch, nil, dimStyle)
			col++
		}
		screen.SetContent(col, y, ']', nil, bracketStyle)
	}

	return width
}

// Width returns the button width.
func (b *MenuButton) Width() int {
	label := b.label
	if b.primary {
		label = "▶ " + label
	}
	return len([]rune(label)) + 2
}

// RadioOption represents a single radio button option.
type RadioOption struct {
	Label       string
	Description string
}

// RadioSelect is a radio button group component.
type RadioSelect struct {
	label    string
	options  []RadioOption
	selected int
	focused  bool
	onChange func(int)
}

// NewRadioSelect creates a new radio select component.
func NewRadioSelect(label string, options []RadioOption, initial int, onChange func(int)) *RadioSelect {
	return &RadioSelect{
		label:    label,
		options:  options,
		selected: initial,
		onChange: onChange,
	}
}

// SetFocused sets the focus state.
func (r *RadioSelect) SetFocused(focused bool) {
	r.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (r *RadioSelect) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyUp:
		if r.selected > 0 {
			r.selected--
			if r.onChange != nil {
				r.onChange(r.selected)
			}
		}
		return true
	case tcell.KeyDown:
		if r.selected < len(r.options)-1 {
			r.selected++
			if r.onChange != nil {
				r.onChange(r.selected)
			}
		}
		return true
	}
	return false
}

// Draw renders the radio select and returns the number of rows used.
func (r *RadioSelect) Draw(screen tcell.Screen, x, y, width int) int {
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG)
	unselectedStyle := tcell.StyleDefault.Foreground(MenuColors.Unselected).Background(MenuColors.CardBG)
	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)

	row := y

	// Label with diamond prefix: ◈ Your Color
	col := x
	screen.SetContent(col, row, '◈', nil, accentStyle)
	col += 2

	for _, ch := range r.label {
		screen.SetContent(col, row, ch, nil, labelStyle)
		col++
	}
	row++

	for i, opt := range r.options {
		col = x + 2 // Indent options

		if r.focused && i == r.selected {
			screen.SetContent(col, row, '▸', nil, selectedStyle)
		} else {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
		col += 2

		style := unselectedStyle
		bullet := '○'
		if i == r.selected {
			bullet = '●'
			style = selectedStyle
		}
		screen.SetContent(col, row, bullet, nil, style)
		col += 2

		for _, ch := range opt.Label {
			screen.SetContent(col, row, ch, nil, style)
			col++
		}

		if opt.Description != "" {
			col++
			for _, ch := range opt.Description {
				screen.SetContent(col, row, ch, nil, hintStyle)
				col++
			}
		}

		row++
	}

	return row - y
}

// Selected returns the currently selected index.
func (r *RadioSelect) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *RadioSelect) SetSelected(index int) {
	if index >= 0 && index < len(r.options) {
		r.selected = index
		if r.onChange != nil {
			r.onChange(r.selected)
		}
	}
}

// SizeSlider is a horizontal slider for picking the board size.
type SizeSlider struct {
	label    string
	min      int
	max      int
	value    int
	focused  bool
	onChange func(int)
}

// NewSizeSlider creates a new board size slider.
func NewSizeSlider(label string, min, max, initial int, onChange func(int)) *SizeSlider {
	return &SizeSlider{
		label:    label,
		min:      min,
		max:      max,
		value:    initial,
		onChange: onChange,
	}
}

// SetFocused sets the focus state.
func (s *SizeSlider) SetFocused(focused bool) {
	s.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (s *SizeSlider) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyLeft:
		if s.value > s.min {
			s.value--
			if s.onChange != nil {
				s.onChange(s.value)
			}
		}
		return true
	case tcell.KeyRight:
		if s.value < s.max {
			s.value++
			if s.onChange != nil {
				s.onChange(s.value)
			}
		}
		return true
	}
	return false
}

// Draw renders the slider and returns the number of rows used.
func (s *SizeSlider) Draw(screen tcell.Screen, x, y, width int) int {
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG)
	unselectedStyle := tcell.StyleDefault.Foreground(MenuColors.Unselected).Background(MenuColors.CardBG)

	col := x

	// Focus cursor
	if s.focused {
		screen.SetContent(col, y, '▸', nil, selectedStyle)
	} else {
		screen.SetContent(col, y, ' ', nil, bgStyle)
	}
	col += 2

	// Label with diamond prefix: ◈ Board Size
	screen.SetContent(col, y, '◈', nil, accentStyle)
	col += 2

	for _, ch := range s.label {
		screen.SetContent(col, y, ch, nil, labelStyle)
		col++
	}
	col += 3 // spacing

	arrowStyle := unselectedStyle
	if s.focused {
		arrowStyle = selectedStyle
	}
	screen.SetContent(col, y, '◀', nil, arrowStyle)
	col += 2

	// Progress bar
	barWidth := s.max - s.min + 1
	filled := s.value - s.min + 1

	for i := 0; i < barWidth; i++ {
		char := '░'
		style := unselectedStyle
		if i < filled {
			char = '█'
			style = selectedStyle
		}
		screen.SetContent(col, y, char, nil, style)
		col++
	}
	col++

	// Value display as NxN
	valueStr := fmt.Sprintf("%d×%d", s.value, s.value)
	for _, ch := range valueStr {
		screen.SetContent(col, y, ch, nil, labelStyle)
		col++
	}
	col++

	screen.SetContent(col, y, '▶', nil, arrowStyle)

	return 1
}

// Value returns the current slider value.
func (s *SizeSlider) Value() int {
	return s.value
}

// SetValue sets the slider value.
func (s *SizeSlider) SetValue(v int) {
	if v >= s.min && v <= s.max {
		s.value = v
		if s.onChange != nil {
			s.onChange(s.value)
		}
	}
}
