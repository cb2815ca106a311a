package optcalcslack

import (
	"github.com/slack-go/slack"
)

const helpText = "Available commands:\n" +
	"/help - Show this help message\n" +
	"/price <underlying> - Price the one-year put for an underlying price"

type HelpHandler struct{}

func NewHelpHandler() *HelpHandler {
	return &HelpHandler{}
}

func (h *HelpHandler) HandleCommand(cmd slack.SlashCommand, client Poster) error {
	_, _, err := client.PostMessage(cmd.ChannelID,
		slack.MsgOptionText(helpText, false))
	return err
}
