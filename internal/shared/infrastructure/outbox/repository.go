package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/weddingplan/planner/internal/shared/infrastructure/database"
)

// Repository persists outbox messages.
type Repository interface {
	// SaveBatch stores messages using the transaction in ctx when there is one.
	SaveBatch(ctx context.Context, msgs []*Message) error
	// Pending returns messages that are neither published nor dead and whose
	// retry time has come, oldest first.
	Pending(ctx context.Context, now time.Time, limit int) ([]*Message, error)
	MarkPublished(ctx context.Context, id int64, at time.Time) error
	MarkFailed(ctx context.Context, id int64, reason string, nextRetryAt time.Time) error
	MarkDead(ctx context.Context, id int64, reason string, at time.Time) error
	// DeleteOld removes published messages older than before.
	DeleteOld(ctx context.Context, before time.Time) (int64, error)
}

// SQLRepository implements Repository for both SQLite and PostgreSQL.
type SQLRepository struct {
	conn database.Connection
}

// NewSQLRepository creates an outbox repository on conn.
func NewSQLRepository(conn database.Connection) *SQLRepository {
	return &SQLRepository{conn: conn}
}

const insertMessage = `
INSERT INTO outbox (event_id, aggregate_type, aggregate_id, routing_key, payload, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id`

// SaveBatch stores msgs and fills in their IDs.
func (r *SQLRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	driver := r.conn.Driver()
	for _, msg := range msgs {
		err := exec.QueryRow(ctx, insertMessage,
			msg.EventID,
			msg.AggregateType,
			msg.AggregateID,
			msg.RoutingKey,
			string(msg.Payload),
			database.TimeArg(driver, msg.CreatedAt),
		).Scan(&msg.ID)
		if err != nil {
			return fmt.Errorf("save outbox message %s: %w", msg.EventID, err)
		}
	}
	return nil
}

const selectPending = `
SELECT id, event_id, aggregate_type, aggregate_id, routing_key, payload, created_at,
       published_at, retry_count, last_error, next_retry_at, dead_lettered_at, dead_letter_reason
FROM outbox
WHERE published_at IS NULL
  AND dead_lettered_at IS NULL
  AND (next_retry_at IS NULL OR next_retry_at <= ?)
ORDER BY id
LIMIT ?`

// Pending returns messages due for publishing.
func (r *SQLRepository) Pending(ctx context.Context, now time.Time, limit int) ([]*Message, error) {
	rows, err := r.conn.Query(ctx, selectPending, database.TimeArg(r.conn.Driver(), now), limit)
	if err != nil {
		return nil, fmt.Errorf("query pending outbox: %w", err)
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

func scanMessage(row database.Row) (*Message, error) {
	var (
		msg                              Message
		payload                          string
		created, published, next, killed database.Timestamp
	)
	err := row.Scan(
		&msg.ID, &msg.EventID, &msg.AggregateType, &msg.AggregateID, &msg.RoutingKey, &payload, &created,
		&published, &msg.RetryCount, &msg.LastError, &next, &killed, &msg.DeadLetterReason,
	)
	if err != nil {
		return nil, fmt.Errorf("scan outbox message: %w", err)
	}
	msg.Payload = []byte(payload)
	msg.CreatedAt = created.Time
	msg.PublishedAt = published.Ptr()
	msg.NextRetryAt = next.Ptr()
	msg.DeadLetteredAt = killed.Ptr()
	return &msg, nil
}

// MarkPublished records a successful publish.
func (r *SQLRepository) MarkPublished(ctx context.Context, id int64, at time.Time) error {
	return r.update(ctx, `UPDATE outbox SET published_at = ? WHERE id = ?`,
		database.TimeArg(r.conn.Driver(), at), id)
}

// MarkFailed records a failed attempt and schedules the next one.
func (r *SQLRepository) MarkFailed(ctx context.Context, id int64, reason string, nextRetryAt time.Time) error {
	return r.update(ctx, `UPDATE outbox SET retry_count = retry_count + 1, last_error = ?, next_retry_at = ? WHERE id = ?`,
		reason, database.TimeArg(r.conn.Driver(), nextRetryAt), id)
}

// MarkDead stops further attempts.
func (r *SQLRepository) MarkDead(ctx context.Context, id int64, reason string, at time.Time) error {
	return r.update(ctx, `UPDATE outbox SET retry_count = retry_count + 1, last_error = ?, dead_lettered_at = ?, dead_letter_reason = ? WHERE id = ?`,
		reason, database.TimeArg(r.conn.Driver(), at), reason, id)
}

// DeleteOld purges published messages created before before.
func (r *SQLRepository) DeleteOld(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM outbox WHERE published_at IS NOT NULL AND created_at < ?`,
		database.TimeArg(r.conn.Driver(), before))
	if err != nil {
		return 0, fmt.Errorf("delete old outbox messages: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLRepository) update(ctx context.Context, query string, args ...any) error {
	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update outbox: %w", err)
	}
	return nil
}
