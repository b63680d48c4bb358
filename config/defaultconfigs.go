package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawStoneBackground:      false,
		DrawCursorBackground:     true,
		DrawLastPlayedBackground: true,
		DrawEdgeMarkers:          true,
		Colors: ConfigColors{
			BoardColor:        180,
			BlackColor:        232,
			WhiteColor:        255,
			BlackEdgeColor:    160,
			WhiteEdgeColor:    27,
			CursorColorFG:     2,
			CursorColorBG:     4,
			LastPlayedColorBG: 2,
		},
		Symbols: ConfigSymbols{
			BlackStone: '●',
			WhiteStone: '●',
			EmptyCell:  '·',
			Cursor:     '·',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameDefaults{
			BoardSize:   11,
			PlayerColor: "black",
			Seed:        0,
		},
	}
}
