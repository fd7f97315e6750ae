package services

import (
	"context"
	"slices"

	"github.com/akjilan/digital-ecommerce/models"
	"github.com/akjilan/digital-ecommerce/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ContextSelector gathers the catalog rows and prior turns offered to the
// assistant for one reply.
type ContextSelector interface {
	Select(ctx context.Context, userMessage, userID string) (*models.AssistantContext, error)
}

type contextSelectorImpl struct {
	products   repository.ProductRepository
	chats      repository.ChatRepository
	turnWindow int
	logger     *zap.Logger
}

// NewContextSelector creates a ContextSelector. turnWindow is clamped to
// [0, models.MaxRecentTurns].
func NewContextSelector(
	products repository.ProductRepository,
	chats repository.ChatRepository,
	turnWindow int,
	logger *zap.Logger,
) ContextSelector {
	return &contextSelectorImpl{
		products:   products,
		chats:      chats,
		turnWindow: clamp(turnWindow, 0, models.MaxRecentTurns),
		logger:     logger,
	}
}

// Select reads the newest active products and, for authenticated callers, the
// most recent turns of their conversation. Guests never touch the
// conversation store. Recent turns come back in chronological order.
func (s *contextSelectorImpl) Select(ctx context.Context, userMessage, userID string) (*models.AssistantContext, error) {
	var (
		products []models.Product
		turns    []models.ConversationTurn
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.products.FindRecentActive(gctx, models.MaxCandidateProducts)
		return err
	})
	if userID != "" && s.turnWindow > 0 {
		g.Go(func() error {
			var err error
			turns, err = s.chats.RecentTurns(gctx, userID, s.turnWindow)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to load assistant context",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, storeUnavailable(err)
	}

	if len(products) > models.MaxCandidateProducts {
		products = products[:models.MaxCandidateProducts]
	}
	if len(turns) > s.turnWindow {
		turns = turns[:s.turnWindow]
	}
	turns = slices.Clone(turns)
	slices.Reverse(turns)

	return &models.AssistantContext{
		CandidateProducts: models.Summaries(products),
		RecentTurns:       turns,
		UserMessage:       userMessage,
	}, nil
}
