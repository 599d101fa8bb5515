package postgres_test

import (
	"context"
	"fmt"
	"taskClient/internal/config"
	"taskClient/internal/models/task"
	"taskClient/internal/stub/tasksvc"
	"taskClient/internal/stub/tasksvc/postgres"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresTestSuite для интеграционных тестов с PostgreSQL
type PostgresTestSuite struct {
	suite.Suite
	container  testcontainers.Container
	storage    *postgres.Storage
	ctx        context.Context
	connString string
}

// SetupSuite запускается один раз перед всеми тестами
func (s *PostgresTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)

	port, err := container.MappedPort(s.ctx, "5432")
	require.NoError(s.T(), err)

	s.connString = fmt.Sprintf("postgres://test:test@%s:%s/testdb", host, port.Port())

	s.storage, err = postgres.New(s.ctx, config.DatabaseConfig{
		URL:            s.connString,
		MaxConnections: 4,
		MinConnections: 1,
		IdleTimeout:    time.Minute,
	})
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.storage.Migrate(s.ctx))
}

// TearDownSuite очищает после всех тестов
func (s *PostgresTestSuite) TearDownSuite() {
	if s.storage != nil {
		_ = s.storage.Down(s.ctx)
		s.storage.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

// SetupTest очищает таблицу перед каждым тестом
func (s *PostgresTestSuite) SetupTest() {
	conn, err := pgx.Connect(s.ctx, s.connString)
	if err != nil {
		s.T().Logf("Не удалось подключиться для очистки: %v", err)
		return
	}
	defer conn.Close(s.ctx)

	if _, err := conn.Exec(s.ctx, "TRUNCATE tasks RESTART IDENTITY"); err != nil {
		s.T().Logf("Не удалось очистить таблицу: %v", err)
	}
}

// TestPostgresTestSuite запускает suite
func TestPostgresTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Пропускаем интеграционные тесты в коротком режиме")
	}
	suite.Run(t, new(PostgresTestSuite))
}

func draft(title, username string) *task.Task {
	t := task.NewDraft(title, "description", username, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	return &t
}

// TestStorage_HealthCheck тестирует ping
func (s *PostgresTestSuite) TestStorage_HealthCheck() {
	assert.NoError(s.T(), s.storage.HealthCheck(s.ctx))
}

// TestStorage_Create тестирует создание и чтение задачи
func (s *PostgresTestSuite) TestStorage_Create() {
	created := draft("Test Task", "alice")

	require.NoError(s.T(), s.storage.Create(s.ctx, created))
	assert.Equal(s.T(), int64(1), created.ID)

	found, err := s.storage.GetByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Test Task", found.Title)
	assert.Equal(s.T(), "alice", found.Username)
	assert.False(s.T(), found.Completed)
	assert.Nil(s.T(), found.CompletedAt)
	require.NotNil(s.T(), found.CreatedAt)
	assert.True(s.T(), created.CreatedAt.Equal(*found.CreatedAt))
}

// TestStorage_GetByID_NotFound тестирует отсутствующую задачу
func (s *PostgresTestSuite) TestStorage_GetByID_NotFound() {
	_, err := s.storage.GetByID(s.ctx, 12345)
	assert.ErrorIs(s.T(), err, tasksvc.ErrNotFound)
}

// TestStorage_Update тестирует отметку о выполнении
func (s *PostgresTestSuite) TestStorage_Update() {
	created := draft("Original Title", "alice")
	require.NoError(s.T(), s.storage.Create(s.ctx, created))

	updated := created.WithCompleted(true, created.CreatedAt.Add(65*time.Second))
	updated.Title = "Updated Title"
	require.NoError(s.T(), s.storage.Update(s.ctx, &updated))

	found, err := s.storage.GetByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Updated Title", found.Title)
	assert.True(s.T(), found.Completed)

	d, ok := found.Duration()
	require.True(s.T(), ok)
	assert.Equal(s.T(), "1m 5s", task.FormatDuration(d))

	missing := draft("ghost", "alice")
	missing.ID = 999
	assert.ErrorIs(s.T(), s.storage.Update(s.ctx, missing), tasksvc.ErrNotFound)
}

// TestStorage_ListByUsername тестирует фильтр и порядок
func (s *PostgresTestSuite) TestStorage_ListByUsername() {
	for i := 1; i <= 3; i++ {
		require.NoError(s.T(), s.storage.Create(s.ctx, draft(fmt.Sprintf("alice %d", i), "alice")))
		require.NoError(s.T(), s.storage.Create(s.ctx, draft(fmt.Sprintf("bob %d", i), "bob")))
	}

	tasks, err := s.storage.ListByUsername(s.ctx, "alice")
	require.NoError(s.T(), err)
	require.Len(s.T(), tasks, 3)
	assert.Equal(s.T(), "alice 1", tasks[0].Title)
	assert.Equal(s.T(), "alice 3", tasks[2].Title)

	empty, err := s.storage.ListByUsername(s.ctx, "carol")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), empty)
}

// TestStorage_Delete тестирует удаление
func (s *PostgresTestSuite) TestStorage_Delete() {
	created := draft("Task to delete", "alice")
	require.NoError(s.T(), s.storage.Create(s.ctx, created))

	require.NoError(s.T(), s.storage.Delete(s.ctx, created.ID))
	assert.ErrorIs(s.T(), s.storage.Delete(s.ctx, created.ID), tasksvc.ErrNotFound)

	_, err := s.storage.GetByID(s.ctx, created.ID)
	assert.ErrorIs(s.T(), err, tasksvc.ErrNotFound)
}
