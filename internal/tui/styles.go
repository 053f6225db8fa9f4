package tui

import "github.com/rgehrsitz/fiscalpro/internal/tui/tuistyles"

// Re-export styles from tuistyles so components can share them without
// importing this package
var (
	ColorPrimary = tuistyles.ColorPrimary
	ColorMuted   = tuistyles.ColorMuted

	TitleStyle        = tuistyles.TitleStyle
	SubtitleStyle     = tuistyles.SubtitleStyle
	SectionStyle      = tuistyles.SectionStyle
	LabelStyle        = tuistyles.LabelStyle
	FocusedLabelStyle = tuistyles.FocusedLabelStyle
	InvalidLabelStyle = tuistyles.InvalidLabelStyle
	ValueStyle        = tuistyles.ValueStyle
	PanelStyle        = tuistyles.PanelStyle
	WarningStyle      = tuistyles.WarningStyle
	ErrorStyle        = tuistyles.ErrorStyle
)
