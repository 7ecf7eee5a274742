package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	sharedApplication "github.com/weddingplan/planner/internal/shared/application"
	"github.com/weddingplan/planner/internal/shared/infrastructure/database"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

// SQLTimelineRepository implements domain.Repository for SQLite and PostgreSQL.
type SQLTimelineRepository struct {
	conn database.Connection
	uow  *database.UnitOfWork
}

// NewSQLTimelineRepository creates a new timeline repository on conn.
func NewSQLTimelineRepository(conn database.Connection) *SQLTimelineRepository {
	return &SQLTimelineRepository{
		conn: conn,
		uow:  database.NewUnitOfWork(conn),
	}
}

const upsertTimeline = `
INSERT INTO timelines (id, user_id, name, project_start, deadline, version, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    name          = excluded.name,
    project_start = excluded.project_start,
    deadline      = excluded.deadline,
    version       = excluded.version,
    updated_at    = excluded.updated_at`

const insertPhase = `
INSERT INTO timeline_phases (id, timeline_id, ordinal, name, start_on, end_on)
VALUES (?, ?, ?, ?, ?, ?)`

// Save persists a timeline and replaces its phases. It joins the
// transaction in ctx when there is one.
func (r *SQLTimelineRepository) Save(ctx context.Context, timeline *domain.Timeline) error {
	if err := timeline.Validate(); err != nil {
		return fmt.Errorf("save timeline %s: %w", timeline.ID(), err)
	}

	driver := r.conn.Driver()
	return sharedApplication.WithUnitOfWork(ctx, r.uow, func(ctx context.Context) error {
		exec := database.ExecutorFromContext(ctx, r.conn)

		_, err := exec.Exec(ctx, upsertTimeline,
			timeline.ID(),
			timeline.UserID(),
			timeline.Name(),
			database.DateArg(driver, timeline.ProjectStart().Time()),
			database.DateArg(driver, timeline.Deadline().Time()),
			timeline.Version(),
			database.TimeArg(driver, timeline.CreatedAt()),
			database.TimeArg(driver, timeline.UpdatedAt()),
		)
		if err != nil {
			return fmt.Errorf("upsert timeline: %w", err)
		}

		if _, err := exec.Exec(ctx, `DELETE FROM timeline_phases WHERE timeline_id = ?`, timeline.ID()); err != nil {
			return fmt.Errorf("clear phases: %w", err)
		}

		for i, phase := range timeline.Phases() {
			_, err := exec.Exec(ctx, insertPhase,
				phase.ID,
				timeline.ID(),
				i,
				phase.Name,
				database.DateArg(driver, phase.Start.Time()),
				database.DateArg(driver, phase.End.Time()),
			)
			if err != nil {
				return fmt.Errorf("insert phase %d: %w", i, err)
			}
		}
		return nil
	})
}

const selectTimeline = `
SELECT id, user_id, name, project_start, deadline, version, created_at, updated_at
FROM timelines`

// FindByID finds a timeline by ID for a specific user.
func (r *SQLTimelineRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*domain.Timeline, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)

	row, err := scanTimeline(exec.QueryRow(ctx, selectTimeline+` WHERE id = ? AND user_id = ?`, id, userID))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrTimelineNotFound
		}
		return nil, err
	}

	phases, err := r.loadPhases(ctx, exec, id)
	if err != nil {
		return nil, err
	}
	return row.toDomain(phases)
}

// FindByUser finds all timelines for a user, oldest first.
func (r *SQLTimelineRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Timeline, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)

	rows, err := exec.Query(ctx, selectTimeline+` WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query timelines: %w", err)
	}

	// Rows must be closed before loading phases: SQLite runs on one connection.
	var found []timelineRow
	for rows.Next() {
		row, err := scanTimeline(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		found = append(found, row)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	timelines := make([]*domain.Timeline, 0, len(found))
	for _, row := range found {
		phases, err := r.loadPhases(ctx, exec, row.id)
		if err != nil {
			return nil, err
		}
		timeline, err := row.toDomain(phases)
		if err != nil {
			return nil, err
		}
		timelines = append(timelines, timeline)
	}
	return timelines, nil
}

// Delete removes a timeline. Its phases go with it.
func (r *SQLTimelineRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)

	// Phases are removed explicitly in case foreign keys are off.
	_, err := exec.Exec(ctx, `
DELETE FROM timeline_phases
WHERE timeline_id IN (SELECT id FROM timelines WHERE id = ? AND user_id = ?)`, id, userID)
	if err != nil {
		return fmt.Errorf("delete phases: %w", err)
	}

	res, err := exec.Exec(ctx, `DELETE FROM timelines WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete timeline: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTimelineNotFound
	}
	return nil
}

func (r *SQLTimelineRepository) loadPhases(ctx context.Context, exec database.Executor, timelineID uuid.UUID) ([]domain.Phase, error) {
	rows, err := exec.Query(ctx, `
SELECT id, name, start_on, end_on
FROM timeline_phases
WHERE timeline_id = ?
ORDER BY ordinal`, timelineID)
	if err != nil {
		return nil, fmt.Errorf("query phases: %w", err)
	}
	defer rows.Close()

	var phases []domain.Phase
	for rows.Next() {
		var (
			phase      domain.Phase
			start, end database.Timestamp
		)
		if err := rows.Scan(&phase.ID, &phase.Name, &start, &end); err != nil {
			return nil, fmt.Errorf("scan phase: %w", err)
		}
		phase.Start = domain.DateOf(start.Time)
		phase.End = domain.DateOf(end.Time)
		phases = append(phases, phase)
	}
	return phases, rows.Err()
}

type timelineRow struct {
	id, userID             uuid.UUID
	name                   string
	projectStart, deadline database.Timestamp
	version                int
	createdAt, updatedAt   database.Timestamp
}

func scanTimeline(row database.Row) (timelineRow, error) {
	var r timelineRow
	err := row.Scan(&r.id, &r.userID, &r.name, &r.projectStart, &r.deadline, &r.version, &r.createdAt, &r.updatedAt)
	return r, err
}

func (r timelineRow) toDomain(phases []domain.Phase) (*domain.Timeline, error) {
	timeline := domain.RehydrateTimeline(
		r.id, r.userID,
		r.name,
		domain.DateOf(r.projectStart.Time), domain.DateOf(r.deadline.Time),
		phases,
		r.version,
		r.createdAt.Time, r.updatedAt.Time,
	)
	if err := timeline.Validate(); err != nil {
		return nil, fmt.Errorf("load timeline %s: %w", r.id, err)
	}
	return timeline, nil
}
