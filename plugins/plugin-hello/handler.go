package pluginhello

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Luo9/Plugin-Hello/lib/host"
)

// greetingKeywords are matched as case-sensitive substrings.
var greetingKeywords = []string{"你好", "hello"}

func isGreeting(content string) bool {
	for _, kw := range greetingKeywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

// HandleGroupMessage greets the group when the message contains a keyword.
// Send failures are logged; the handler always returns nil.
func (p *Plugin) HandleGroupMessage(ctx context.Context, msg *host.GroupMessage) error {
	if msg == nil {
		return nil
	}
	p.logger.Info("group message received",
		zap.String("group_id", msg.GroupID),
		zap.String("content", msg.Content))
	if !isGreeting(msg.Content) {
		return nil
	}
	log := p.logger.With(zap.String("group_id", msg.GroupID), zap.String("user_id", msg.SenderID))
	log.Info("greeting received in group")

	if err := p.api.SendGroupMessage(ctx, msg.GroupID, p.settings.Greeting); err != nil {
		log.Warn("send group message failed", zap.Error(err))
		return nil
	}
	log.Info("group message sent")
	return nil
}

// HandlePrivateMessage greets the sender when the message contains a keyword.
func (p *Plugin) HandlePrivateMessage(ctx context.Context, msg *host.PrivateMessage) error {
	if msg == nil || !isGreeting(msg.Content) {
		return nil
	}
	log := p.logger.With(zap.String("user_id", msg.SenderID))
	log.Info("greeting received in private chat")

	if err := p.api.SendPrivateMsg(ctx, msg.SenderID, p.settings.Greeting); err != nil {
		log.Warn("send private message failed", zap.Error(err))
		return nil
	}
	log.Info("private message sent")
	return nil
}

// HandleGroupPoke answers in the group when the poke target is the bot.
func (p *Plugin) HandleGroupPoke(ctx context.Context, targetID, userID, groupID string) error {
	log := p.logger.With(
		zap.String("group_id", groupID),
		zap.String("user_id", userID),
		zap.String("target_id", targetID))
	log.Info("group poke received")
	if targetID != p.config.BotID {
		return nil
	}

	if err := p.api.SendGroupMessage(ctx, groupID, p.settings.PokeReply); err != nil {
		log.Warn("send poke reply failed", zap.Error(err))
		return nil
	}
	log.Info("poke reply sent")
	return nil
}
