// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// taskRepository is the PostgreSQL-backed implementation of
// [TaskRepository]. Queries are built with squirrel.
type taskRepository struct {
	*DB
	logger *logger.Logger
}

// NewTaskRepository constructs a [TaskRepository] backed by db.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *taskRepository) CreateTask(ctx context.Context, userID int64, clientRef string, task StoredTask) (StoredTask, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertTaskQuery(userID, clientRef, task)
	if err != nil {
		return StoredTask{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation && clientRef != "" {
			existing, findErr := r.getTaskByClientRef(ctx, userID, clientRef)
			if findErr != nil {
				return StoredTask{}, findErr
			}
			return existing, ErrClientRefExists
		}

		log.Err(err).
			Str("func", "taskRepository.CreateTask").
			Int64("user_id", userID).
			Str("client_ref", clientRef).
			Msg("failed to insert task")
		return StoredTask{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return task, nil
}

func (r *taskRepository) GetTask(ctx context.Context, userID int64, id string) (StoredTask, error) {
	tasks, err := r.GetTasks(ctx, userID, []string{id})
	if err != nil {
		return StoredTask{}, err
	}
	if len(tasks) == 0 {
		return StoredTask{}, ErrTaskNotFound
	}
	return tasks[0], nil
}

func (r *taskRepository) GetTasks(ctx context.Context, userID int64, ids []string) ([]StoredTask, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := psql.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"user_id": userID, "id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryTasks(ctx, "taskRepository.GetTasks", userID, query, args)
}

func (r *taskRepository) UpdateTask(ctx context.Context, userID int64, task StoredTask) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateTaskQuery(userID, task)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.UpdateTask").
			Int64("user_id", userID).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) ListChangedSince(ctx context.Context, userID int64, since time.Time) ([]StoredTask, error) {
	query, args, err := buildListChangedSinceQuery(userID, since)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryTasks(ctx, "taskRepository.ListChangedSince", userID, query, args)
}

func (r *taskRepository) getTaskByClientRef(ctx context.Context, userID int64, clientRef string) (StoredTask, error) {
	query, args, err := psql.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"user_id": userID, "client_ref": clientRef}).
		ToSql()
	if err != nil {
		return StoredTask{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tasks, err := r.queryTasks(ctx, "taskRepository.getTaskByClientRef", userID, query, args)
	if err != nil {
		return StoredTask{}, err
	}
	if len(tasks) == 0 {
		return StoredTask{}, ErrTaskNotFound
	}
	return tasks[0], nil
}

func (r *taskRepository) queryTasks(ctx context.Context, funcName string, userID int64, query string, args []any) ([]StoredTask, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Int64("user_id", userID).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tasks := make([]StoredTask, 0, 16)
	for rows.Next() {
		t, scanErr := scanTask(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Int64("user_id", userID).Msg("failed to scan task row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		tasks = append(tasks, t)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Int64("user_id", userID).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tasks, nil
}

func scanTask(rows *sql.Rows) (StoredTask, error) {
	var (
		t           StoredTask
		description sql.NullString
		deadline    sql.NullTime
		category    sql.NullString
		priority    sql.NullString
	)

	err := rows.Scan(
		&t.ID,
		&t.Name,
		&description,
		&t.Completed,
		&t.CreatedAt,
		&t.UpdatedAt,
		&deadline,
		&category,
		&priority,
		&t.Deleted,
		&t.ChangedAt,
		&t.ChangedBy,
	)
	if err != nil {
		return StoredTask{}, err
	}

	if description.Valid {
		t.Description = &description.String
	}
	if deadline.Valid {
		t.Deadline = &deadline.Time
	}
	if category.Valid {
		t.Category = &category.String
	}
	if priority.Valid {
		p := models.Priority(priority.String)
		t.Priority = &p
	}

	return t, nil
}

func buildInsertTaskQuery(userID int64, clientRef string, task StoredTask) (string, []any, error) {
	var ref any
	if clientRef != "" {
		ref = clientRef
	}

	return psql.Insert("tasks").
		Columns("id", "user_id", "client_ref", "name", "description", "completed", "created_at",
			"updated_at", "deadline", "category", "priority", "deleted", "changed_at", "changed_by").
		Values(task.ID, userID, ref, task.Name, task.Description, task.Completed, task.CreatedAt,
			task.UpdatedAt, task.Deadline, task.Category, priorityValue(task.Priority), task.Deleted,
			task.ChangedAt, task.ChangedBy).
		ToSql()
}

func buildUpdateTaskQuery(userID int64, task StoredTask) (string, []any, error) {
	return psql.Update("tasks").
		SetMap(map[string]any{
			"name":        task.Name,
			"description": task.Description,
			"completed":   task.Completed,
			"updated_at":  task.UpdatedAt,
			"deadline":    task.Deadline,
			"category":    task.Category,
			"priority":    priorityValue(task.Priority),
			"deleted":     task.Deleted,
			"changed_at":  task.ChangedAt,
			"changed_by":  task.ChangedBy,
		}).
		Where(sq.Eq{"id": task.ID, "user_id": userID}).
		ToSql()
}

func buildListChangedSinceQuery(userID int64, since time.Time) (string, []any, error) {
	return psql.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Gt{"changed_at": since}).
		OrderBy("changed_at", "id").
		ToSql()
}

func priorityValue(p *models.Priority) any {
	if p == nil {
		return nil
	}
	return string(*p)
}
