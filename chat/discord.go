package chat

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/faucetbot/faucet-workers/faucet"
)

// Adapter bridges Discord messages to the dispatcher. Every faucet
// request is handled on its own goroutine; there is no ordering between
// messages and none is needed. A process-wide limiter sheds request
// floods before they reach a backend.
type Adapter struct {
	session    *discordgo.Session
	dispatcher *faucet.Dispatcher
	limiter    *rate.Limiter
	logger     *logrus.Entry
}

func NewAdapter(token string, dispatcher *faucet.Dispatcher, logger *logrus.Entry) (*Adapter, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	adapter := &Adapter{
		session:    session,
		dispatcher: dispatcher,
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
		logger:     logger,
	}
	session.AddHandler(adapter.onMessage)
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent
	return adapter, nil
}

func (a *Adapter) Start() error {
	return a.session.Open()
}

func (a *Adapter) Stop() error {
	return a.session.Close()
}

func (a *Adapter) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	coinCode, address, ok := ParseMessage(m.Content)
	if !ok {
		return
	}
	if !a.limiter.Allow() {
		a.logger.Warnf("Dropping request from user %s: inbound rate limit exceeded", m.Author.ID)
		return
	}

	go func() {
		reply := a.dispatcher.Dispatch(context.Background(), faucet.Request{
			UserID:      m.Author.ID,
			CoinCode:    coinCode,
			Destination: address,
		})
		mention := fmt.Sprintf("<@%s> %s", m.Author.ID, reply)
		if _, err := s.ChannelMessageSend(m.ChannelID, mention); err != nil {
			a.logger.Errorf("Could not send reply to channel %s - with err: %v", m.ChannelID, err)
		}
	}()
}
