package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/akjilan/digital-ecommerce/models"
	"github.com/akjilan/digital-ecommerce/repository"

	"go.uber.org/zap"
)

// History bounds for GET /chat/history.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 20
)

// AssistantService defines the shopping assistant operations.
type AssistantService interface {
	Chat(ctx context.Context, message, userID string) (*models.AssistantReply, error)
	History(ctx context.Context, userID string) ([]models.ConversationTurn, error)
}

type assistantServiceImpl struct {
	selector     ContextSelector
	handler      ResponseHandler
	chats        repository.ChatRepository
	historyLimit int
	logger       *zap.Logger
}

// NewAssistantService creates a new AssistantService. historyLimit is clamped
// to [1, MaxHistoryLimit]; zero selects the default.
func NewAssistantService(
	selector ContextSelector,
	handler ResponseHandler,
	chats repository.ChatRepository,
	historyLimit int,
	logger *zap.Logger,
) AssistantService {
	if historyLimit == 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &assistantServiceImpl{
		selector:     selector,
		handler:      handler,
		chats:        chats,
		historyLimit: clamp(historyLimit, 1, MaxHistoryLimit),
		logger:       logger,
	}
}

// Chat answers one message. An empty userID is a guest: nothing is read from
// or written to the conversation store. When the exchange cannot be stored the
// reply is still returned together with an ErrStoreUnavailable error.
func (s *assistantServiceImpl) Chat(ctx context.Context, message, userID string) (*models.AssistantReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	sentAt := time.Now()

	actx, err := s.selector.Select(ctx, message, userID)
	if err != nil {
		return nil, err
	}

	prompt := AssemblePrompt(*actx)
	reply, err := s.handler.Handle(ctx, prompt, userID, sentAt)

	s.logger.Info("Assistant reply",
		zap.Bool("authenticated", userID != ""),
		zap.String("source", string(reply.Source)),
		zap.Int("candidates", len(actx.CandidateProducts)),
		zap.Int("turns", len(actx.RecentTurns)),
	)
	return &reply, err
}

// History returns the caller's most recent turns in chronological order.
func (s *assistantServiceImpl) History(ctx context.Context, userID string) ([]models.ConversationTurn, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	turns, err := s.chats.RecentTurns(ctx, userID, s.historyLimit)
	if err != nil {
		s.logger.Error("Failed to load chat history",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, storeUnavailable(err)
	}

	if len(turns) > s.historyLimit {
		turns = turns[:s.historyLimit]
	}
	turns = slices.Clone(turns)
	slices.Reverse(turns)
	return turns, nil
}
