package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"taskClient/internal/config"
	"taskClient/internal/logger"
	"taskClient/internal/models/task"
	"taskClient/internal/stub/tasksvc"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

const slowQuery = time.Millisecond * 100

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = cfg.MinConnections
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Migrate(ctx context.Context) error {
	return s.exec(ctx, "migrations/001_init.up.sql")
}

func (s *Storage) Down(ctx context.Context) error {
	return s.exec(ctx, "migrations/001_init.down.sql")
}

func (s *Storage) exec(ctx context.Context, name string) error {
	query, err := migrations.ReadFile(name)
	if err != nil {
		logger.Error("Repository: Не удалось прочитать миграцию", err, zap.String("file", name))
		return fmt.Errorf("чтение миграции %s: %w", name, err)
	}
	if _, err := s.pool.Exec(ctx, string(query)); err != nil {
		logger.Error("Repository: Не удалось применить миграцию", err, zap.String("file", name))
		return fmt.Errorf("применение миграции %s: %w", name, err)
	}
	logger.Info("Repository: Миграция применена", zap.String("file", name))
	return nil
}

func (s *Storage) Create(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks
				(title, description, completed, username, created_at, completed_at)
				VALUES ($1, $2, $3, $4, COALESCE($5, NOW()), $6)
				RETURNING id, created_at`

	var createdAt time.Time
	err := s.pool.QueryRow(ctx, query,
		taskToCreate.Title,
		taskToCreate.Description,
		taskToCreate.Completed,
		taskToCreate.Username,
		taskToCreate.CreatedAt,
		taskToCreate.CompletedAt,
	).Scan(&taskToCreate.ID, &createdAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}
	createdAt = createdAt.UTC()
	taskToCreate.CreatedAt = &createdAt

	s.warnSlow(start)
	return nil
}

func (s *Storage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
			SET title = $1,
				description = $2,
				completed = $3,
				created_at = COALESCE($4, created_at),
				completed_at = $5
			WHERE id = $6`

	tag, err := s.pool.Exec(ctx, query,
		taskToUpdate.Title,
		taskToUpdate.Description,
		taskToUpdate.Completed,
		taskToUpdate.CreatedAt,
		taskToUpdate.CompletedAt,
		taskToUpdate.ID,
	)
	if err != nil {
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tasksvc.ErrNotFound
	}

	s.warnSlow(start)
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	start := time.Now()

	query := `SELECT id, title, description, completed, username, created_at, completed_at
				FROM tasks
				WHERE id = $1`

	found, err := scanTask(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tasksvc.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	s.warnSlow(start)
	return found, nil
}

func (s *Storage) ListByUsername(ctx context.Context, username string) ([]*task.Task, error) {
	start := time.Now()

	query := `SELECT id, title, description, completed, username, created_at, completed_at
				FROM tasks
				WHERE username = $1
				ORDER BY id`

	rows, err := s.pool.Query(ctx, query, username)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		found, err := scanTask(rows)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования задачи", zap.Error(err))
			continue
		}
		tasks = append(tasks, found)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	s.warnSlow(start)
	return tasks, nil
}

func (s *Storage) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tasksvc.ErrNotFound
	}

	s.warnSlow(start)
	return nil
}

func (s *Storage) warnSlow(start time.Time) {
	if time.Since(start) > slowQuery {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
}

func scanTask(row pgx.Row) (*task.Task, error) {
	found := &task.Task{}
	var createdAt time.Time
	var completedAt *time.Time
	err := row.Scan(
		&found.ID,
		&found.Title,
		&found.Description,
		&found.Completed,
		&found.Username,
		&createdAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	createdAt = createdAt.UTC()
	found.CreatedAt = &createdAt
	if completedAt != nil {
		done := completedAt.UTC()
		found.CompletedAt = &done
	}
	return found, nil
}
