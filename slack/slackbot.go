package optcalcslack

import (
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
	"go.uber.org/zap"
)

type SlackBot struct {
	client       *slack.Client
	socketClient *socketmode.Client
	eventHandler *Handler
	log          *zap.SugaredLogger
}

func NewSlackBot(appToken, botToken string, calc Pricer, logger *zap.Logger) *SlackBot {
	client := slack.New(
		botToken,
		slack.OptionAppLevelToken(appToken),
	)

	socketClient := socketmode.New(
		client,
		socketmode.OptionDebug(logger.Core().Enabled(zap.DebugLevel)),
		socketmode.OptionLog(zap.NewStdLog(logger.Named("socketmode"))),
	)

	return &SlackBot{
		client:       client,
		socketClient: socketClient,
		eventHandler: NewHandler(calc),
		log:          logger.Sugar(),
	}
}

// Start serves slash commands until the socket closes. Each command runs on
// its own goroutine.
func (sb *SlackBot) Start() error {
	go func() {
		for evt := range sb.socketClient.Events {
			switch evt.Type {
			case socketmode.EventTypeConnected:
				sb.log.Info("connected to slack")
			case socketmode.EventTypeSlashCommand:
				evt := evt
				go func() {
					if err := sb.eventHandler.Handle(&evt, sb.socketClient); err != nil {
						sb.log.Errorw("slash command failed", "error", err)
					}
				}()
			}
		}
	}()

	return sb.socketClient.Run()
}
