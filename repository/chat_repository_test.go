package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/akjilan/digital-ecommerce/models"
	"github.com/akjilan/digital-ecommerce/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppendTurns_SingleInsert(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormChatRepository(gormDB)

	now := time.Now()
	turns := []models.ConversationTurn{
		{Role: models.ChatRoleUser, Content: "do you sell mugs?", CreatedAt: now},
		{Role: models.ChatRoleAssistant, Content: "Yes, the ceramic mug.", CreatedAt: now.Add(time.Millisecond)},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "chat_messages"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()).AddRow(uuid.New()))
	mock.ExpectCommit()

	err := repo.AppendTurns(context.Background(), "user-1", turns)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendTurns_Empty(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormChatRepository(gormDB)

	err := repo.AppendTurns(context.Background(), "user-1", nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendTurns_RollsBackOnError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormChatRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "chat_messages"`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.AppendTurns(context.Background(), "user-1", []models.ConversationTurn{
		{Role: models.ChatRoleUser, Content: "hi", CreatedAt: time.Now()},
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentTurns_MostRecentFirst(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormChatRepository(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "role", "content", "created_at"}).
		AddRow(uuid.New(), "user-1", "assistant", "second", now).
		AddRow(uuid.New(), "user-1", "user", "first", now.Add(-time.Second))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "chat_messages" WHERE user_id = $1 ORDER BY created_at DESC,id DESC LIMIT`)).
		WillReturnRows(rows)

	turns, err := repo.RecentTurns(context.Background(), "user-1", 6)
	assert.NoError(t, err)
	assert.Len(t, turns, 2)
	assert.Equal(t, models.ChatRoleAssistant, turns[0].Role)
	assert.Equal(t, "first", turns[1].Content)
}

func TestRecentTurns_Error(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormChatRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "chat_messages"`)).
		WillReturnError(errors.New("timeout"))

	turns, err := repo.RecentTurns(context.Background(), "user-1", 6)
	assert.Error(t, err)
	assert.Nil(t, turns)
}
