package ui

import "github.com/gdamore/tcell/v2"

// Theme holds the colors every screen draws with.
type Theme struct {
	BgColor     tcell.Color
	FgColor     tcell.Color
	BorderColor tcell.Color
	TitleColor  tcell.Color

	// Conversation and user lists.
	TableHeaderFg tcell.Color
	TableHeaderBg tcell.Color
	TableCursorFg tcell.Color
	TableCursorBg tcell.Color
	MarkColor     tcell.Color // roster edge and selection column
	ChipColor     tcell.Color // selected users above the list

	CrumbActiveFg   tcell.Color
	CrumbActiveBg   tcell.Color
	CrumbInactiveFg tcell.Color
	CrumbInactiveBg tcell.Color

	MenuKeyColor      tcell.Color
	CounterColor      tcell.Color
	PromptBorderColor tcell.Color

	FlashInfoColor tcell.Color
	FlashWarnColor tcell.Color
	FlashErrColor  tcell.Color
}

var (
	waGreen = tcell.NewHexColor(0x25d366)
	waTeal  = tcell.NewHexColor(0x128c7e)
)

// DefaultTheme is a dark theme with WhatsApp green accents.
func DefaultTheme() *Theme {
	return &Theme{
		BgColor:     tcell.ColorBlack,
		FgColor:     tcell.ColorCadetBlue,
		BorderColor: waTeal,
		TitleColor:  waGreen,

		TableHeaderFg: tcell.ColorWhite,
		TableHeaderBg: tcell.ColorBlack,
		TableCursorFg: tcell.ColorBlack,
		TableCursorBg: waGreen,
		MarkColor:     waGreen,
		ChipColor:     tcell.ColorPapayaWhip,

		CrumbActiveFg:   tcell.ColorBlack,
		CrumbActiveBg:   waGreen,
		CrumbInactiveFg: tcell.ColorBlack,
		CrumbInactiveBg: waTeal,

		MenuKeyColor:      waGreen,
		CounterColor:      tcell.ColorPapayaWhip,
		PromptBorderColor: waTeal,

		FlashInfoColor: tcell.ColorNavajoWhite,
		FlashWarnColor: tcell.ColorOrange,
		FlashErrColor:  tcell.ColorOrangeRed,
	}
}
