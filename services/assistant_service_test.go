package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akjilan/digital-ecommerce/models"
	"github.com/akjilan/digital-ecommerce/providers"
	"github.com/akjilan/digital-ecommerce/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAssistant(products *fakeProductRepo, chats *fakeChatRepo, gw providers.AssistantGateway) services.AssistantService {
	logger := zap.NewNop()
	selector := services.NewContextSelector(products, chats, models.MaxRecentTurns, logger)
	handler := services.NewResponseHandler(gw, chats, nil, time.Second, logger)
	return services.NewAssistantService(selector, handler, chats, 0, logger)
}

func TestChat_EmptyMessage(t *testing.T) {
	gw := new(mockGateway)
	svc := newAssistant(seedProducts(1), newFakeChatRepo(), gw)

	reply, err := svc.Chat(context.Background(), "   \n", "user-1")
	assert.Nil(t, reply)
	assert.ErrorIs(t, err, services.ErrEmptyMessage)
	gw.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChat_GuestTouchesNoConversationState(t *testing.T) {
	gw := new(mockGateway)
	gw.On("Complete", mock.Anything, mock.Anything, []models.PromptMessage{}, "any mugs?").
		Return("Yes, the Ceramic Mug.", nil).Once()
	chats := newFakeChatRepo()
	svc := newAssistant(seedProducts(4), chats, gw)

	reply, err := svc.Chat(context.Background(), "  any mugs? ", "")
	require.NoError(t, err)
	assert.Equal(t, "Yes, the Ceramic Mug.", reply.Text)
	assert.Zero(t, chats.readCalls)
	assert.Zero(t, chats.appendCalls)
	gw.AssertExpectations(t)
}

func TestChat_FailingGatewayWithPriorTurns(t *testing.T) {
	chats := newFakeChatRepo()
	chats.seed("user-1", 3)
	gw := funcGateway(func(context.Context) (string, error) { return "", errors.New("gateway exploded") })
	svc := newAssistant(seedProducts(2), chats, gw)

	reply, err := svc.Chat(context.Background(), "hello", "user-1")
	require.NoError(t, err)
	assert.Equal(t, services.FallbackReply, reply.Text)
	assert.Equal(t, models.ReplySourceFallback, reply.Source)

	require.Len(t, chats.appended, 2)
	assert.Equal(t, "hello", chats.appended[0].Content)
	assert.Equal(t, services.FallbackReply, chats.appended[1].Content)
	assert.Len(t, chats.turns["user-1"], 5)
}

func TestChat_HistoryPassedToGateway(t *testing.T) {
	chats := newFakeChatRepo()
	chats.seed("user-1", 2)
	gw := new(mockGateway)
	gw.On("Complete", mock.Anything, mock.Anything,
		[]models.PromptMessage{
			{Role: models.ChatRoleUser, Content: "turn 0"},
			{Role: models.ChatRoleAssistant, Content: "turn 1"},
		}, "and in blue?").
		Return("Only in white.", nil).Once()
	svc := newAssistant(seedProducts(1), chats, gw)

	reply, err := svc.Chat(context.Background(), "and in blue?", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Only in white.", reply.Text)
	gw.AssertExpectations(t)
}

func TestChat_StoreReadFailure(t *testing.T) {
	products := &fakeProductRepo{err: errors.New("down")}
	gw := new(mockGateway)
	svc := newAssistant(products, newFakeChatRepo(), gw)

	reply, err := svc.Chat(context.Background(), "hi", "")
	assert.Nil(t, reply)
	assert.ErrorIs(t, err, services.ErrStoreUnavailable)
	gw.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHistory_ChronologicalAndBounded(t *testing.T) {
	chats := newFakeChatRepo()
	chats.seed("user-1", 9)
	logger := zap.NewNop()
	svc := services.NewAssistantService(nil, nil, chats, 4, logger)

	turns, err := svc.History(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, turns, 4)
	assert.Equal(t, "turn 5", turns[0].Content)
	assert.Equal(t, "turn 8", turns[3].Content)
}

func TestHistory_LimitClamped(t *testing.T) {
	chats := newFakeChatRepo()
	chats.seed("user-1", 9)
	svc := services.NewAssistantService(nil, nil, chats, 500, zap.NewNop())

	turns, err := svc.History(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, turns, 9)
}

func TestHistory_Errors(t *testing.T) {
	chats := newFakeChatRepo()
	svc := services.NewAssistantService(nil, nil, chats, 0, zap.NewNop())

	_, err := svc.History(context.Background(), "")
	assert.ErrorIs(t, err, services.ErrUnauthenticated)

	chats.readErr = errors.New("timeout")
	_, err = svc.History(context.Background(), "user-1")
	assert.ErrorIs(t, err, services.ErrStoreUnavailable)
}
