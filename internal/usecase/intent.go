package usecase

// IntentKind tags what an inbound chat event asks for. Transports
// decode their own encodings (callback-data strings, commands) into an
// Intent exactly once at the boundary; nothing below the transport
// ever sees the raw encoding.
type IntentKind int

const (
	IntentUnknown IntentKind = iota
	IntentStartNormal
	IntentStartTimed
	IntentChangeTheme
	IntentApplyTheme
	IntentMove
	IntentRestart
	IntentShowStats
	IntentShowHistory
	IntentShowHelp
	IntentBack
)

type Intent struct {
	Kind IntentKind

	// set for IntentApplyTheme
	Theme string

	// set for IntentMove
	Row int
	Col int
}
