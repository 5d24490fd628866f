package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/playforge/xobot/internal/apperror"
	"github.com/playforge/xobot/internal/entity"
	"github.com/playforge/xobot/internal/usecase"
)

type gameUseCase interface {
	Handle(ctx context.Context, chatID, userID int64, intent usecase.Intent) (*usecase.Reply, error)
}

// Bot is the Telegram transport: it long-polls for updates, decodes
// callback data into typed intents, and renders the replies the game
// core hands back. It keeps no game state of its own.
type Bot struct {
	logger      *slog.Logger
	api         *tgbotapi.BotAPI
	uGame       gameUseCase
	pollTimeout int
}

func New(logger *slog.Logger, token string, pollTimeout int, uGame gameUseCase) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}

	return &Bot{
		logger:      logger.With("component", "telegram"),
		api:         api,
		uGame:       uGame,
		pollTimeout: pollTimeout,
	}, nil
}

// Start - polls for updates until the context is canceled.
func (that *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = that.pollTimeout

	updates := that.api.GetUpdatesChan(updateConfig)

	that.logger.Info("bot is running", "username", that.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			that.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			that.handleUpdate(ctx, update)
		}
	}
}

func (that *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		that.handleCommand(update.Message)
	case update.CallbackQuery != nil:
		that.handleCallback(ctx, update.CallbackQuery)
	}
}

func (that *Bot) handleCommand(message *tgbotapi.Message) {
	log := that.logger.With("method", "handleCommand")

	if message.Command() != "start" {
		return
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, menuText(message.From.FirstName))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = menuKeyboard()

	if _, err := that.api.Send(msg); err != nil {
		log.Error("failed to send menu", "error", err)
	}
}

func (that *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	log := that.logger.With("method", "handleCallback")

	if query.Message == nil {
		return
	}

	chatID := query.Message.Chat.ID
	userID := query.From.ID

	intent := decodeCallback(query.Data)
	if intent.Kind == usecase.IntentUnknown {
		that.answerAlert(query.ID, "⚠️ That button didn't work, try again!")
		return
	}

	reply, err := that.uGame.Handle(ctx, chatID, userID, intent)
	if err != nil {
		that.answerAlert(query.ID, alertFor(err))
		return
	}

	that.answer(query.ID)

	text, keyboard := renderReply(reply, query.From.FirstName)

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, query.Message.MessageID, text, keyboard)
	edit.ParseMode = tgbotapi.ModeMarkdown

	if _, err = that.api.Send(edit); err != nil {
		log.Error("failed to edit message", "error", err)
	}

	if reply.View == usecase.ViewTerminal {
		that.sendCelebration(chatID, reply.Outcome.Result())
	}
}

// sendCelebration - best effort; a missing sticker never fails the game.
func (that *Bot) sendCelebration(chatID int64, result entity.Result) {
	pool, ok := stickers[result]
	if !ok || len(pool) == 0 {
		return
	}

	sticker := tgbotapi.NewSticker(chatID, tgbotapi.FileID(pick(pool)))
	if _, err := that.api.Send(sticker); err != nil {
		that.logger.Debug("failed to send sticker", "error", err)
	}
}

func (that *Bot) answer(queryID string) {
	if _, err := that.api.Request(tgbotapi.NewCallback(queryID, "")); err != nil {
		that.logger.Debug("failed to answer callback", "error", err)
	}
}

func (that *Bot) answerAlert(queryID, text string) {
	if _, err := that.api.Request(tgbotapi.NewCallbackWithAlert(queryID, text)); err != nil {
		that.logger.Debug("failed to answer callback", "error", err)
	}
}

// alertFor - maps rejected operations to the alert shown in the chat.
func alertFor(err error) string {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		return "⚠️ That square is taken!"
	case errors.Is(err, apperror.ErrNoActiveGame):
		return "❌ No game here, start a new one!"
	case errors.Is(err, apperror.ErrGameFinished):
		return "❌ The game is over, start a new one!"
	case errors.Is(err, apperror.ErrUnknownTheme):
		return "⚠️ Unknown theme!"
	default:
		return "⚠️ That didn't work, try again!"
	}
}
