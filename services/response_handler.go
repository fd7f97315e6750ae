package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akjilan/digital-ecommerce/models"
	aws_pkg "github.com/akjilan/digital-ecommerce/pkg/aws"
	"github.com/akjilan/digital-ecommerce/providers"
	"github.com/akjilan/digital-ecommerce/repository"

	"go.uber.org/zap"
)

// FallbackReply is shown whenever the gateway cannot produce a usable answer.
const FallbackReply = "I'm having trouble connecting to the AI right now. Please try again in a moment."

// DefaultAssistantTimeout bounds a single gateway call.
const DefaultAssistantTimeout = 20 * time.Second

// defaultPersistTimeout bounds the write of one exchange. The write is detached
// from the request, so it needs its own deadline.
const defaultPersistTimeout = 5 * time.Second

// ResponseHandler calls the gateway once, finalizes the reply and records the
// exchange for authenticated callers.
type ResponseHandler interface {
	Handle(ctx context.Context, prompt models.Prompt, userID string, sentAt time.Time) (models.AssistantReply, error)
}

type responseHandlerImpl struct {
	gateway providers.AssistantGateway
	chats   repository.ChatRepository
	metrics aws_pkg.MetricsRecorder
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time

	persistTimeout time.Duration
}

// NewResponseHandler creates a ResponseHandler. metrics may be nil.
func NewResponseHandler(
	gateway providers.AssistantGateway,
	chats repository.ChatRepository,
	metrics aws_pkg.MetricsRecorder,
	timeout time.Duration,
	logger *zap.Logger,
) ResponseHandler {
	if timeout <= 0 {
		timeout = DefaultAssistantTimeout
	}
	return &responseHandlerImpl{
		gateway: gateway,
		chats:   chats,
		metrics: metrics,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,

		persistTimeout: defaultPersistTimeout,
	}
}

type completion struct {
	text string
	err  error
}

// Handle always returns a reply. The error is non-nil only when the exchange
// could not be stored, and then wraps ErrStoreUnavailable.
func (h *responseHandlerImpl) Handle(ctx context.Context, prompt models.Prompt, userID string, sentAt time.Time) (models.AssistantReply, error) {
	reply := h.complete(ctx, prompt)
	if userID == "" {
		return reply, nil
	}

	// Postgres keeps microseconds; the assistant turn must sort after the user turn.
	sentAt = sentAt.Truncate(time.Microsecond)
	repliedAt := h.now().Truncate(time.Microsecond)
	if !repliedAt.After(sentAt) {
		repliedAt = sentAt.Add(time.Microsecond)
	}

	turns := []models.ConversationTurn{
		{Role: models.ChatRoleUser, Content: prompt.UserMessage(), CreatedAt: sentAt},
		{Role: models.ChatRoleAssistant, Content: reply.Text, CreatedAt: repliedAt},
	}
	// A client that hangs up after the reply was generated still gets the
	// exchange recorded.
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.persistTimeout)
	defer cancel()
	if err := h.chats.AppendTurns(persistCtx, userID, turns); err != nil {
		h.logger.Error("Failed to persist chat exchange",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return reply, storeUnavailable(err)
	}
	return reply, nil
}

func (h *responseHandlerImpl) complete(ctx context.Context, prompt models.Prompt) models.AssistantReply {
	callCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan completion, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- completion{err: fmt.Errorf("gateway panic: %v", r)}
			}
		}()
		text, err := h.gateway.Complete(callCtx, prompt.Instructions, prompt.History(), prompt.UserMessage())
		done <- completion{text: text, err: err}
	}()

	res := awaitCompletion(callCtx, done)
	if res.err != nil {
		h.logger.Error("Assistant gateway call failed",
			zap.String("gateway", h.gateway.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(res.err),
		)
		return h.fallback("error")
	}

	text := strings.TrimSpace(res.text)
	if text == "" {
		h.logger.Warn("Assistant gateway returned empty output",
			zap.String("gateway", h.gateway.Name()),
		)
		return h.fallback("empty")
	}

	h.record(func(ctx context.Context, dims map[string]string) {
		_ = h.metrics.RecordCount(ctx, aws_pkg.MetricAssistantReplies, dims)
		_ = h.metrics.RecordLatency(ctx, aws_pkg.MetricAssistantLatency, time.Since(start), dims)
	}, nil)
	return models.AssistantReply{Text: text, Source: models.ReplySourceModel}
}

// awaitCompletion waits for the gateway or the deadline. A call that finished
// as the deadline fired still counts.
func awaitCompletion(ctx context.Context, done <-chan completion) completion {
	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		select {
		case res := <-done:
			return res
		default:
			return completion{err: ctx.Err()}
		}
	}
}

func (h *responseHandlerImpl) fallback(reason string) models.AssistantReply {
	h.record(func(ctx context.Context, dims map[string]string) {
		_ = h.metrics.RecordCount(ctx, aws_pkg.MetricAssistantFallbacks, dims)
	}, map[string]string{"Reason": reason})
	return models.AssistantReply{Text: FallbackReply, Source: models.ReplySourceFallback}
}

// record ships metrics in the background so a slow CloudWatch never delays a reply.
func (h *responseHandlerImpl) record(fn func(ctx context.Context, dims map[string]string), extra map[string]string) {
	if h.metrics == nil || !h.metrics.IsEnabled() {
		return
	}
	dims := map[string]string{"Gateway": h.gateway.Name()}
	for k, v := range extra {
		dims[k] = v
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		fn(ctx, dims)
	}()
}
