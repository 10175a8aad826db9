package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"alarmbot/internal/format"
	"alarmbot/internal/providers"
	"alarmbot/internal/services"

	tb "gopkg.in/tucnak/telebot.v2"
)

const handlerTimeout = 30 * time.Second

// Bot wires chat commands to the alarm service and delivers alarm notifications.
type Bot struct {
	client  Client
	service services.AlarmServiceInterface
	logger  providers.Logger
}

func NewBot(client Client, service services.AlarmServiceInterface, logger providers.Logger) *Bot {
	bot := &Bot{
		client:  client,
		service: service,
		logger:  logger,
	}

	client.Handle("/alarmlist", bot.HandleList)
	client.Handle("/alarmstop", bot.HandleStop)
	client.Handle("/alarmcancel", bot.HandleCancel)
	client.Handle("/alarm", bot.HandleAlarm)
	client.Handle(tb.OnText, bot.HandleText)

	return bot
}

func (b *Bot) Start() {
	if err := b.client.SetCommands(commands); err != nil {
		b.logger.Warnf(providers.TypeBot, "Unable to register bot commands: %s", err)
	}
	go b.client.Start()
	b.logger.Infof(providers.TypeBot, "Telegram bot started")
}

func (b *Bot) Stop() {
	b.client.Stop()
	b.logger.Infof(providers.TypeBot, "Telegram bot stopped")
}

// Notify delivers an alarm message to the owner's chat.
func (b *Bot) Notify(ownerID int64, text string) error {
	_, err := b.client.Send(&tb.Chat{ID: ownerID}, text, tb.ModeHTML)
	return err
}

func (b *Bot) reply(m *tb.Message, text string) {
	if _, err := b.client.Send(m.Chat, text, tb.ModeHTML); err != nil {
		b.logger.Warnf(providers.TypeBot, "Unable to reply to chat %d: %s", m.Chat.ID, err)
	}
}

// senderID keys wizards per user; channel posts have no sender and use the chat.
func senderID(m *tb.Message) int64 {
	if m.Sender != nil {
		return m.Sender.ID
	}
	return m.Chat.ID
}

func (b *Bot) HandleAlarm(m *tb.Message) {
	args := strings.Fields(m.Payload)
	if len(args) == 0 {
		b.reply(m, format.Usage)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	owner := m.Chat.ID
	if len(args) == 1 {
		prompt, err := b.service.BeginWizard(ctx, senderID(m), args[0])
		if err != nil {
			b.reply(m, b.errorText(err, args[0]))
			return
		}
		b.reply(m, format.Prompt(prompt.Symbol, prompt.Current, prompt.HasCurrent))
		return
	}

	res, err := b.service.CreateAlarmInline(ctx, owner, args[0], strings.Join(args[1:], " "))
	if err != nil {
		b.reply(m, b.errorText(err, args[0]))
		return
	}
	b.reply(m, format.Created(res.Alarm))
}

// HandleText consumes plain text only while the sender has a pending wizard.
// Commands always fall through to their own handlers.
func (b *Bot) HandleText(m *tb.Message) {
	user := senderID(m)
	if services.IsCommandText(m.Text) || !b.service.HasActiveWizard(user) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	res, err := b.service.SubmitWizardPrice(ctx, m.Chat.ID, user, m.Text)
	if errors.Is(err, services.ErrNoActiveWizard) {
		return
	}
	if err != nil {
		b.reply(m, b.errorText(err, ""))
		return
	}
	b.reply(m, format.Created(res.Alarm))
}

func (b *Bot) HandleList(m *tb.Message) {
	b.reply(m, format.AlarmList(b.service.ListAlarms(m.Chat.ID)))
}

func (b *Bot) HandleStop(m *tb.Message) {
	n := b.service.ClearAlarms(m.Chat.ID)
	b.logger.Debugf(providers.TypeBot, "Chat %d cleared %d alarms", m.Chat.ID, n)
	b.reply(m, "🗑️ All your alarms were deleted.")
}

func (b *Bot) HandleCancel(m *tb.Message) {
	b.service.CancelWizard(senderID(m))
	b.reply(m, "❎ Alarm setup cancelled.")
}

func (b *Bot) errorText(err error, input string) string {
	switch {
	case errors.Is(err, services.ErrSymbolNotFound):
		return fmt.Sprintf("❌ Coin not found: %s", html.EscapeString(strings.ToUpper(input)))
	case errors.Is(err, services.ErrBadPrice):
		return "⚠️ Enter a valid price (e.g. 117150)."
	case errors.Is(err, services.ErrLimitExceeded):
		return fmt.Sprintf("⚠️ You can set at most %d alarms.", b.service.MaxPerOwner())
	default:
		b.logger.Errorf(providers.TypeBot, "Unexpected alarm error: %s", err)
		return "⚠️ Something went wrong, please try again."
	}
}
