package repository

import (
	"context"

	"github.com/akjilan/digital-ecommerce/models"

	"gorm.io/gorm"
)

// ChatRepository defines the interface for conversation storage.
type ChatRepository interface {
	AppendTurns(ctx context.Context, userID string, turns []models.ConversationTurn) error
	RecentTurns(ctx context.Context, userID string, limit int) ([]models.ConversationTurn, error)
}

// GormChatRepository implements ChatRepository using GORM.
type GormChatRepository struct {
	db *gorm.DB
}

// NewGormChatRepository creates a new GormChatRepository.
func NewGormChatRepository(db *gorm.DB) ChatRepository {
	return &GormChatRepository{db: db}
}

// AppendTurns writes all turns in a single statement so either every turn of
// an exchange is stored or none is.
func (r *GormChatRepository) AppendTurns(ctx context.Context, userID string, turns []models.ConversationTurn) error {
	if len(turns) == 0 {
		return nil
	}

	rows := make([]models.ChatMessage, 0, len(turns))
	for _, t := range turns {
		rows = append(rows, models.ChatMessage{
			UserID:    userID,
			Role:      t.Role,
			Content:   t.Content,
			CreatedAt: t.CreatedAt,
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// RecentTurns returns at most limit turns for the user, most recent first.
func (r *GormChatRepository) RecentTurns(ctx context.Context, userID string, limit int) ([]models.ConversationTurn, error) {
	var rows []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	turns := make([]models.ConversationTurn, 0, len(rows))
	for _, m := range rows {
		turns = append(turns, models.ConversationTurn{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return turns, nil
}
