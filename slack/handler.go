package optcalcslack

import (
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

// Poster is the part of the Slack client the command handlers use.
type Poster interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

type CommandHandler interface {
	HandleCommand(cmd slack.SlashCommand, client Poster) error
}

type Handler struct {
	commands map[string]CommandHandler
}

func NewHandler(calc Pricer) *Handler {
	return &Handler{
		commands: map[string]CommandHandler{
			"/help":  NewHelpHandler(),
			"/price": NewPriceHandler(calc),
		},
	}
}

func (h *Handler) Handle(evt *socketmode.Event, client *socketmode.Client) error {
	if evt.Request != nil {
		client.Ack(*evt.Request)
	}
	data, ok := evt.Data.(slack.SlashCommand)
	if !ok {
		return errors.Errorf("unexpected slash command payload %T", evt.Data)
	}
	return h.Dispatch(data, client)
}

// Dispatch routes a slash command to its handler. Unknown commands are
// ignored.
func (h *Handler) Dispatch(cmd slack.SlashCommand, client Poster) error {
	handler, ok := h.commands[cmd.Command]
	if !ok {
		return nil
	}
	return errors.Wrap(handler.HandleCommand(cmd, client), cmd.Command)
}
