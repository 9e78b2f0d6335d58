package services

import (
	"fmt"
	"log"
	"os"

	"dating-match-system/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"
)

// MatchNotifier pushes a Telegram message to both users when a match is
// created. It only sends plain notifications — conversation flow and
// keyboards belong to the bot frontend, not this service.
type MatchNotifier struct {
	bot *tgbotapi.BotAPI
}

// NewMatchNotifierFromEnv builds a notifier from BOT_TOKEN. Returns nil
// (no error) when the token is unset, so deployments without the bot simply
// skip notifications.
func NewMatchNotifierFromEnv() (*MatchNotifier, error) {
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	log.Printf("✅ Match notifier authorized as @%s", bot.Self.UserName)
	return &MatchNotifier{bot: bot}, nil
}

// NotifyMatch messages both members of the match. A delivery failure for one
// user does not block the other; the first error is returned for logging.
func (n *MatchNotifier) NotifyMatch(db *gorm.DB, match models.Match) error {
	var users []models.DatingUser
	if err := db.Where("id IN ?", []int64{match.User1ID, match.User2ID}).Find(&users).Error; err != nil {
		return err
	}
	byID := make(map[int64]models.DatingUser, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	var firstErr error
	for _, pair := range [][2]int64{{match.User1ID, match.User2ID}, {match.User2ID, match.User1ID}} {
		peer, ok := byID[pair[1]]
		if !ok {
			continue
		}
		text := fmt.Sprintf("💘 It's a match! You and %s liked each other.", peer.DisplayName)
		msg := tgbotapi.NewMessage(pair[0], text)
		if _, err := n.bot.Send(msg); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
