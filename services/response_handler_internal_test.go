package services

import (
	"context"
	"testing"
	"time"

	"github.com/akjilan/digital-ecommerce/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAwaitCompletion_FinishedCallBeatsExpiredDeadline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 200; i++ {
		done := make(chan completion, 1)
		done <- completion{text: "answer"}

		res := awaitCompletion(ctx, done)
		require.NoError(t, res.err, "iteration %d", i)
		assert.Equal(t, "answer", res.text)
	}
}

func TestAwaitCompletion_DeadlineWithoutResult(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	res := awaitCompletion(ctx, make(chan completion, 1))
	assert.ErrorIs(t, res.err, context.DeadlineExceeded)
}

type staticGateway string

func (g staticGateway) Complete(context.Context, string, []models.PromptMessage, string) (string, error) {
	return string(g), nil
}

func (g staticGateway) Name() string { return "static" }

// stalledChatRepo never finishes a write on its own.
type stalledChatRepo struct{}

func (stalledChatRepo) AppendTurns(ctx context.Context, _ string, _ []models.ConversationTurn) error {
	<-ctx.Done()
	return ctx.Err()
}

func (stalledChatRepo) RecentTurns(context.Context, string, int) ([]models.ConversationTurn, error) {
	return nil, nil
}

func TestHandle_StalledWriteIsBounded(t *testing.T) {
	h := NewResponseHandler(staticGateway("ok"), stalledChatRepo{}, nil, time.Second, zap.NewNop()).(*responseHandlerImpl)
	h.persistTimeout = 20 * time.Millisecond

	start := time.Now()
	reply, err := h.Handle(context.Background(), AssemblePrompt(models.AssistantContext{UserMessage: "hi"}), "user-1", time.Now())
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, "ok", reply.Text)
}

func TestNewResponseHandler_DefaultPersistTimeout(t *testing.T) {
	h := NewResponseHandler(staticGateway("ok"), stalledChatRepo{}, nil, 0, zap.NewNop()).(*responseHandlerImpl)
	assert.Equal(t, defaultPersistTimeout, h.persistTimeout)
	assert.Equal(t, DefaultAssistantTimeout, h.timeout)
}
