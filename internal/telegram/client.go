package telegram

import (
	"fmt"

	"alarmbot/internal/structures"

	tb "gopkg.in/tucnak/telebot.v2"
)

// Client is the part of *tb.Bot the command surface drives.
type Client interface {
	Send(to tb.Recipient, what interface{}, options ...interface{}) (*tb.Message, error)
	Handle(endpoint interface{}, handler interface{})
	SetCommands(cmds []tb.Command) error
	Start()
	Stop()
}

func NewClient(conf *structures.Config) (Client, error) {
	client, err := tb.NewBot(tb.Settings{
		ParseMode: tb.ModeHTML,
		Token:     conf.Telegram.Token,
		Poller:    &tb.LongPoller{Timeout: conf.Telegram.PollTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return client, nil
}

var commands = []tb.Command{
	{Text: "alarm", Description: "Set a price alarm: /alarm btc [price]"},
	{Text: "alarmlist", Description: "List your alarms"},
	{Text: "alarmstop", Description: "Delete all your alarms"},
	{Text: "alarmcancel", Description: "Cancel the alarm being set up"},
}
