package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"employee-service/internal/models"
)

var ErrMessageNotFound = errors.New("chat message not found")

// ChatMessageRepository abstracts shared chat room persistence. Edit and
// delete enforce authorship in the query itself, so a non-author caller is
// indistinguishable from a missing message.
type ChatMessageRepository interface {
	CreateChatMessage(ctx context.Context, empID, empName, message string) (models.ChatMessage, error)
	History(ctx context.Context, limit, beforeID int) ([]models.ChatMessage, error)
	UpdateChatMessage(ctx context.Context, messageID int, empID, message string) (models.ChatMessage, error)
	SoftDeleteMessage(ctx context.Context, messageID int, empID string) error
}

// ChatMessageRepo is a sqlx-backed ChatMessageRepository.
type ChatMessageRepo struct {
	db *sqlx.DB
}

// NewChatMessageRepo constructs a ChatMessageRepo.
func NewChatMessageRepo(db *sqlx.DB) *ChatMessageRepo {
	return &ChatMessageRepo{db: db}
}

const chatMessageColumns = `id, emp_id, emp_name, message, created_at, edited_at, deleted`

// CreateChatMessage stores a message with a server-assigned id and timestamp.
func (r *ChatMessageRepo) CreateChatMessage(ctx context.Context, empID, empName, message string) (models.ChatMessage, error) {
	var msg models.ChatMessage
	err := r.db.GetContext(ctx, &msg,
		`INSERT INTO chat_messages (emp_id, emp_name, message) VALUES ($1, $2, $3)
         RETURNING `+chatMessageColumns, empID, empName, message)
	return msg, err
}

// History returns up to limit non-deleted messages strictly older than
// beforeID (0 means from the newest), in chronological order. Pagination is
// anchored to message ids, so concurrent inserts never shift a reader's
// window.
func (r *ChatMessageRepo) History(ctx context.Context, limit, beforeID int) ([]models.ChatMessage, error) {
	msgs := []models.ChatMessage{}
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT `+chatMessageColumns+` FROM chat_messages
         WHERE deleted = FALSE AND ($2 = 0 OR id < $2)
         ORDER BY id DESC LIMIT $1`, limit, beforeID)
	if err != nil {
		return nil, err
	}
	reverseMessages(msgs)
	return msgs, nil
}

func reverseMessages(msgs []models.ChatMessage) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}

// UpdateChatMessage rewrites an owned, non-deleted message and stamps the
// edit time.
func (r *ChatMessageRepo) UpdateChatMessage(ctx context.Context, messageID int, empID, message string) (models.ChatMessage, error) {
	var msg models.ChatMessage
	err := r.db.GetContext(ctx, &msg,
		`UPDATE chat_messages SET message=$3, edited_at=NOW()
         WHERE id=$1 AND emp_id=$2 AND deleted = FALSE
         RETURNING `+chatMessageColumns, messageID, empID, message)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChatMessage{}, ErrMessageNotFound
	}
	return msg, err
}

// SoftDeleteMessage marks an owned message deleted. The row is retained and
// only excluded from history.
func (r *ChatMessageRepo) SoftDeleteMessage(ctx context.Context, messageID int, empID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE chat_messages SET deleted = TRUE
         WHERE id=$1 AND emp_id=$2 AND deleted = FALSE`, messageID, empID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrMessageNotFound
	}
	return nil
}
