package delivery

import (
	"context"
	"errors"
	"net"
	"os"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/gleaner/internal/common"
	"github.com/ternarybob/gleaner/internal/interfaces"
	"github.com/ternarybob/gleaner/internal/models"
	"golang.org/x/time/rate"
)

// botClient is the slice of the Telegram client the service needs. Tests
// substitute a fake.
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Service delivers rendered documents and quiz polls to a Telegram channel.
// Document uploads retry on timeout-class failures only, with a fixed delay
// and a fixed attempt budget; poll sends are rate limited, never retried.
type Service struct {
	bot             botClient
	chatID          int64
	channelUsername string
	maxAttempts     int
	retryDelay      time.Duration
	limiter         *rate.Limiter
	logger          arbor.ILogger
}

// Compile-time assertion
var _ interfaces.Messenger = (*Service)(nil)

// NewService creates a delivery service connected to the Telegram Bot API.
func NewService(config *common.Config, logger arbor.ILogger) (*Service, error) {
	bot, err := tgbotapi.NewBotAPI(config.Telegram.BotToken)
	if err != nil {
		return nil, &interfaces.DeliveryError{Attempts: 1, Err: err}
	}
	return newService(bot, config.Telegram.ChannelID, &config.Delivery, logger), nil
}

func newService(bot botClient, channelID string, config *common.DeliveryConfig, logger arbor.ILogger) *Service {
	s := &Service{
		bot:         bot,
		maxAttempts: config.MaxAttempts,
		retryDelay:  config.RetryDelayDuration(),
		limiter:     rate.NewLimiter(rate.Every(config.PollIntervalDuration()), 1),
		logger:      logger,
	}
	if id, err := strconv.ParseInt(channelID, 10, 64); err == nil {
		s.chatID = id
	} else {
		s.channelUsername = channelID
	}
	return s
}

// SendDocument uploads the task's artifact with its caption. Timeout-class
// failures retry up to the task's attempt budget with a fixed delay; any
// other failure class is abandoned immediately.
func (s *Service) SendDocument(ctx context.Context, task *models.DeliveryTask) error {
	maxAttempts := task.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = s.maxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		task.Attempts = attempt

		doc := tgbotapi.NewDocument(s.chatID, tgbotapi.FilePath(task.ArtifactPath))
		doc.ChannelUsername = s.channelUsername
		doc.Caption = task.Caption

		_, err := s.bot.Send(doc)
		if err == nil {
			s.logger.Info().Str("file", task.Filename).Int("attempt", attempt).Msg("Document delivered")
			return nil
		}
		lastErr = err

		if !isTimeout(err) {
			s.logger.Error().Err(err).Str("file", task.Filename).Msg("Document delivery rejected, abandoning")
			return &interfaces.DeliveryError{Attempts: attempt, Err: err}
		}

		s.logger.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", maxAttempts).Msg("Document delivery timed out")

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return &interfaces.DeliveryError{Attempts: attempt, Err: ctx.Err()}
			case <-time.After(s.retryDelay):
			}
		}
	}

	return &interfaces.DeliveryError{Attempts: maxAttempts, Err: lastErr}
}

// SendPoll sends one quiz poll. A fixed delay between consecutive sends is
// enforced through the rate limiter.
func (s *Service) SendPoll(ctx context.Context, poll *models.Poll) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return &interfaces.DeliveryError{Attempts: 0, Err: err}
	}

	cfg := tgbotapi.NewPoll(s.chatID, poll.Question, poll.Options...)
	cfg.ChannelUsername = s.channelUsername
	cfg.Type = "quiz"
	cfg.CorrectOptionID = int64(poll.CorrectOption)
	cfg.Explanation = poll.Explanation
	cfg.IsAnonymous = true

	if _, err := s.bot.Send(cfg); err != nil {
		return &interfaces.DeliveryError{Attempts: 1, Err: err}
	}

	s.logger.Debug().Str("question", poll.Question).Msg("Poll delivered")
	return nil
}

// isTimeout reports whether the failure is timeout-class, the only
// retryable kind.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
