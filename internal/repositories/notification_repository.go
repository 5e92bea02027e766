package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"employee-service/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository abstracts per-employee notification reads. Every
// operation is scoped to the owning employee; a foreign id behaves exactly
// like a missing one.
type NotificationRepository interface {
	ListForEmployee(ctx context.Context, empID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id int, empID string) (models.Notification, error)
	MarkAllRead(ctx context.Context, empID string) ([]models.Notification, error)
	Delete(ctx context.Context, id int, empID string) error
}

// NotificationRepo is a sqlx-backed NotificationRepository.
type NotificationRepo struct {
	db *sqlx.DB
}

// NewNotificationRepo constructs a NotificationRepo.
func NewNotificationRepo(db *sqlx.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

const notificationColumns = `id, emp_id, leave_id, message, is_read, created_at`

// ListForEmployee returns the employee's notifications, newest first.
func (r *NotificationRepo) ListForEmployee(ctx context.Context, empID string) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := r.db.SelectContext(ctx, &notifications,
		`SELECT `+notificationColumns+` FROM notifications WHERE emp_id=$1 ORDER BY created_at DESC, id DESC`, empID)
	return notifications, err
}

// MarkRead flags one owned notification as read.
func (r *NotificationRepo) MarkRead(ctx context.Context, id int, empID string) (models.Notification, error) {
	var n models.Notification
	err := r.db.GetContext(ctx, &n,
		`UPDATE notifications SET is_read=TRUE WHERE id=$1 AND emp_id=$2
         RETURNING `+notificationColumns, id, empID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Notification{}, ErrNotificationNotFound
	}
	return n, err
}

// MarkAllRead flags every unread notification for the employee and returns
// the refreshed list.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, empID string) ([]models.Notification, error) {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read=TRUE WHERE emp_id=$1 AND is_read=FALSE`, empID); err != nil {
		return nil, err
	}
	return r.ListForEmployee(ctx, empID)
}

// Delete removes one owned notification.
func (r *NotificationRepo) Delete(ctx context.Context, id int, empID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE id=$1 AND emp_id=$2`, id, empID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
