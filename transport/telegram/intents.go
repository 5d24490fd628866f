package telegram

import (
	"strconv"
	"strings"

	"github.com/playforge/xobot/internal/entity"
	"github.com/playforge/xobot/internal/usecase"
)

// Callback-data vocabulary. Cell buttons carry "row,col".
const (
	callbackModeNormal  = "mode_normal"
	callbackModeTimed   = "mode_timed"
	callbackRestart     = "restart"
	callbackShowStats   = "show_stats"
	callbackShowHistory = "show_history"
	callbackShowHelp    = "show_help"
	callbackChangeTheme = "change_theme"
	callbackBackToMenu  = "back_to_menu"
	callbackThemePrefix = "theme_"
)

// decodeCallback - turns raw callback data into a typed intent.
// Anything garbled decodes to IntentUnknown and is answered with an
// alert instead of reaching the game core.
func decodeCallback(data string) usecase.Intent {
	switch data {
	case callbackModeNormal:
		return usecase.Intent{Kind: usecase.IntentStartNormal}
	case callbackModeTimed:
		return usecase.Intent{Kind: usecase.IntentStartTimed}
	case callbackRestart:
		return usecase.Intent{Kind: usecase.IntentRestart}
	case callbackShowStats:
		return usecase.Intent{Kind: usecase.IntentShowStats}
	case callbackShowHistory:
		return usecase.Intent{Kind: usecase.IntentShowHistory}
	case callbackShowHelp:
		return usecase.Intent{Kind: usecase.IntentShowHelp}
	case callbackChangeTheme:
		return usecase.Intent{Kind: usecase.IntentChangeTheme}
	case callbackBackToMenu:
		return usecase.Intent{Kind: usecase.IntentBack}
	}

	if theme, ok := strings.CutPrefix(data, callbackThemePrefix); ok {
		return usecase.Intent{Kind: usecase.IntentApplyTheme, Theme: theme}
	}

	return decodeMove(data)
}

func decodeMove(data string) usecase.Intent {
	rawRow, rawCol, ok := strings.Cut(data, ",")
	if !ok {
		return usecase.Intent{Kind: usecase.IntentUnknown}
	}

	row, err := strconv.Atoi(rawRow)
	if err != nil {
		return usecase.Intent{Kind: usecase.IntentUnknown}
	}

	col, err := strconv.Atoi(rawCol)
	if err != nil {
		return usecase.Intent{Kind: usecase.IntentUnknown}
	}

	if row < 0 || row >= entity.BoardSize || col < 0 || col >= entity.BoardSize {
		return usecase.Intent{Kind: usecase.IntentUnknown}
	}

	return usecase.Intent{Kind: usecase.IntentMove, Row: row, Col: col}
}

func moveCallback(row, col int) string {
	return strconv.Itoa(row) + "," + strconv.Itoa(col)
}
