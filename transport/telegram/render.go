package telegram

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/playforge/xobot/internal/entity"
	"github.com/playforge/xobot/internal/usecase"
)

var (
	winMessages  = []string{"🎉 Congratulations, champion!", "🏆 What a win!", "⭐ Outstanding play!", "🔥 Like a pro!"}
	loseMessages = []string{"💪 Try again!", "🎯 Next time!", "📚 Learn from it!", "🌟 Don't give up!"}
	drawMessages = []string{"🤝 A fair draw!", "⚖️ Evenly matched!", "🎲 Well played, both of you!"}
	moveMessages = []string{"🎯 Smart move!", "💡 Think it through!", "⚡ The clock is ticking!", "🧠 Use your head!"}

	stickers = map[entity.Result][]string{
		entity.ResultWin: {
			"CAACAgIAAxkBAAEMYP9nEqS9K8vWzAABXqYAAf8gAAFWYu8pAAJEAAPANk8Tyr8jhV9cAAEzHgQ",
			"CAACAgIAAxkBAAEMYQFnEqS-zQABvUBOj_b5q7Q-2z2JAAJEAAP7dGkW1Z_b5qg7zAABHgQ",
		},
		entity.ResultLoss: {
			"CAACAgIAAxkBAAEMYQNnEqTBpCRGtKuJ1z5f2qAAAbq_UAACRAAD8SopFoq8AAFnq7zAAR4E",
			"CAACAgIAAxkBAAEMYQVnEqTCGQABPUqLtKr5fz_qAAG7U8UAAEQAA-8pKRaKvAABZ6u8wAEeBA",
		},
		entity.ResultDraw: {
			"CAACAgIAAxkBAAEMYQdnEqTDvAABPq7Lt_r5fz_qAAG7U8UAAEQAA-8pKRaKvAABZ6u8wAEeBA",
		},
	}

	resultEmoji = map[entity.Result]string{
		entity.ResultWin:  "🏆",
		entity.ResultLoss: "💔",
		entity.ResultDraw: "🤝",
	}
)

func pick(pool []string) string {
	return pool[rand.Intn(len(pool))] //nolint: gosec // cosmetic choice
}

// renderReply - turns a usecase projection into message text and an
// inline keyboard.
func renderReply(reply *usecase.Reply, userName string) (string, tgbotapi.InlineKeyboardMarkup) {
	switch reply.View {
	case usecase.ViewModePicker:
		return "🔄 **New game?**\n\nPick a mode:", modePickerKeyboard()
	case usecase.ViewBoard:
		return ongoingText(reply.Board), boardKeyboard(reply.Board)
	case usecase.ViewTerminal:
		return terminalText(reply), terminalKeyboard()
	case usecase.ViewThemePicker:
		return "🎨 **Pick your favorite theme:**", themeKeyboard(reply.Themes, reply.ActiveTheme)
	case usecase.ViewThemeApplied:
		theme := entity.ThemeByID(reply.ActiveTheme)
		text := fmt.Sprintf("✨ **Theme changed!**\n\nNew theme: %s %s\n\nTry it in a game!", theme.X, titleCase(theme.ID))
		return text, themeAppliedKeyboard()
	case usecase.ViewStats:
		return statsText(userName, reply.Stats), backKeyboard()
	case usecase.ViewHistory:
		return historyText(reply.History), backKeyboard()
	case usecase.ViewHelp:
		return helpText(), backKeyboard()
	default:
		return menuText(userName), menuKeyboard()
	}
}

func titleCase(id string) string {
	if id == "" {
		return id
	}

	return strings.ToUpper(id[:1]) + id[1:]
}

func boardText(view *usecase.BoardView) string {
	var builder strings.Builder

	builder.WriteString("\n" + strings.Repeat("─", 11) + "\n")
	for row := 0; row < entity.BoardSize; row++ {
		glyphs := make([]string, 0, entity.BoardSize)
		for col := 0; col < entity.BoardSize; col++ {
			glyphs = append(glyphs, view.Theme.Glyph(view.Cells[row][col]))
		}
		builder.WriteString(strings.Join(glyphs, " │ "))
		builder.WriteString("\n")
	}
	builder.WriteString(strings.Repeat("─", 11))

	if view.Timed {
		builder.WriteString(fmt.Sprintf("\n\n⏱️ Time: %s %ds | %s %ds",
			view.Theme.X, int(view.RemainingX/time.Second),
			view.Theme.O, int(view.RemainingO/time.Second),
		))
	}

	return builder.String()
}

func boardKeyboard(view *usecase.BoardView) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, entity.BoardSize+1)

	for row := 0; row < entity.BoardSize; row++ {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, entity.BoardSize)
		for col := 0; col < entity.BoardSize; col++ {
			label := view.Theme.Glyph(view.Cells[row][col])
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(label, moveCallback(row, col)))
		}
		rows = append(rows, buttons)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 New", callbackRestart),
		tgbotapi.NewInlineKeyboardButtonData("📊 Stats", callbackShowStats),
		tgbotapi.NewInlineKeyboardButtonData("🎨 Theme", callbackChangeTheme),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func menuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎮 Normal game", callbackModeNormal),
			tgbotapi.NewInlineKeyboardButtonData("⏱️ Timed game", callbackModeTimed),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 My stats", callbackShowStats),
			tgbotapi.NewInlineKeyboardButtonData("🎨 Change theme", callbackChangeTheme),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📜 Match history", callbackShowHistory),
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", callbackShowHelp),
		),
	)
}

func modePickerKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎮 Normal", callbackModeNormal),
			tgbotapi.NewInlineKeyboardButtonData("⏱️ Timed", callbackModeTimed),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Menu", callbackBackToMenu),
		),
	)
}

func themeKeyboard(themes []entity.Theme, activeTheme string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(themes)+1)

	for _, theme := range themes {
		label := fmt.Sprintf("%s %s", theme.X, titleCase(theme.ID))
		if theme.ID == activeTheme {
			label += " ✅"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackThemePrefix+theme.ID),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Back", callbackBackToMenu),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", callbackBackToMenu),
		),
	)
}

func themeAppliedKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎮 Start playing", callbackModeNormal),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", callbackBackToMenu),
		),
	)
}

func terminalKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", callbackRestart),
			tgbotapi.NewInlineKeyboardButtonData("📊 Stats", callbackShowStats),
		),
	)
}

func menuText(userName string) string {
	return fmt.Sprintf("👋 Hello **%s**!\n\n🎮 **Welcome to XO!**\n\nPick a game mode to start:", userName)
}

func statsText(userName string, stats *entity.UserStats) string {
	return fmt.Sprintf(
		"📊 **Stats for %s**\n\n"+
			"🎮 Games: %d\n"+
			"🏆 Wins: %d\n"+
			"💔 Losses: %d\n"+
			"🤝 Draws: %d\n"+
			"📈 Win rate: %.1f%%\n",
		userName, stats.TotalGames, stats.Wins, stats.Losses, stats.Draws, stats.WinRate(),
	)
}

func historyText(history []entity.GameRecord) string {
	if len(history) == 0 {
		return "📜 **No games yet**\n\nPlay a match to build your history!"
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "📜 **Last %d games:**\n\n", len(history))

	for i, record := range history {
		emoji, ok := resultEmoji[record.Result]
		if !ok {
			emoji = "🎮"
		}
		fmt.Fprintf(&builder, "%d. %s %s - %s\n", i+1, emoji, strings.ToUpper(string(record.Result)), record.Date.Format("2006-01-02 15:04"))
	}

	return builder.String()
}

func helpText() string {
	return "📖 **How to play:**\n\n" +
		"🎮 **Modes:**\n" +
		"• Normal: no time limit\n" +
		"• Timed: 60 seconds per player\n\n" +
		"🎨 **Themes:**\n" +
		"• 6 themes to choose from\n" +
		"• Switch any time from the menu\n\n" +
		"📊 **Stats:**\n" +
		"• Every result is saved automatically\n" +
		"• See your last 10 games\n\n" +
		"🎵 **Extras:**\n" +
		"• Stickers on wins and losses\n" +
		"• Encouragement on every move\n\n" +
		"💡 **Tip:** keep playing to raise your win rate!"
}

func terminalText(reply *usecase.Reply) string {
	view := reply.Board

	switch {
	case reply.Outcome.IsDraw():
		return fmt.Sprintf("🤝 %s\n\n%s\n\n📊 Moves: %d", pick(drawMessages), boardText(view), view.MoveCount)
	case reply.Outcome.IsTimeout():
		return fmt.Sprintf("⏰ **Time's up!**\n\n💔 %s\n🏆 Winner: %s\n\n%s",
			pick(loseMessages), view.Theme.Glyph(reply.Outcome.Winner()), boardText(view))
	case reply.Outcome.Result() == entity.ResultWin:
		return fmt.Sprintf("🎉 %s\n\n🏆 Winner: %s\n%s\n\n📊 Moves: %d",
			pick(winMessages), view.Theme.Glyph(reply.Outcome.Winner()), boardText(view), view.MoveCount)
	default:
		return fmt.Sprintf("😔 %s\n\n🏆 Winner: %s\n%s\n\n📊 Moves: %d",
			pick(loseMessages), view.Theme.Glyph(reply.Outcome.Winner()), boardText(view), view.MoveCount)
	}
}

func ongoingText(view *usecase.BoardView) string {
	return fmt.Sprintf("🎯 **Turn:** %s\n💡 %s\n%s", view.Theme.Glyph(view.Turn), pick(moveMessages), boardText(view))
}
