package main

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"taskClient/internal/stub/authsvc"
	"taskClient/internal/stub/tasksvc"
	"taskClient/internal/stub/tasksvc/inmemory"
	"taskClient/internal/stub/token"
	"taskClient/internal/view"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig поднимает заглушки и пишет конфиг с sqlite-сессией во временный каталог
func writeConfig(t *testing.T) string {
	t.Helper()
	issuer, err := token.NewIssuer("cli-secret", time.Hour)
	require.NoError(t, err)

	authSrv := httptest.NewServer(authsvc.NewHandler(authsvc.NewService(issuer)).Routes())
	t.Cleanup(authSrv.Close)
	tasksSrv := httptest.NewServer(tasksvc.NewTaskHandler(tasksvc.NewTaskService(inmemory.NewTaskStorage())).Routes(issuer))
	t.Cleanup(tasksSrv.Close)

	dir := t.TempDir()
	content := fmt.Sprintf(`auth:
  base_url: %s
tasks:
  base_url: %s
session:
  backend: sqlite
  path: %s
clock:
  interval: 10ms
  location: Asia/Kolkata
logging:
  level: error
`, authSrv.URL, tasksSrv.URL, filepath.Join(dir, "session.db"))

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type result struct {
	stdout string
	stderr string
	err    error
}

func runCLI(configPath, stdin string, args ...string) result {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	err := run(append([]string{"--config", configPath}, args...), strings.NewReader(stdin), stdout, stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// TestRun_TaskLifecycle тестирует регистрацию и полный цикл работы с задачей
func TestRun_TaskLifecycle(t *testing.T) {
	cfg := writeConfig(t)

	res := runCLI(cfg, "", "register", "--username", "alice", "--password", "pw123")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Registered and logged in as alice")

	res = runCLI(cfg, "", "whoami")
	require.NoError(t, res.err)
	assert.Equal(t, "alice\n", res.stdout)

	res = runCLI(cfg, "", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Welcome, alice!")
	assert.Contains(t, res.stdout, view.MsgNoTasks)

	res = runCLI(cfg, "", "add", "--title", "Buy milk", "--description", "2 litres")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, view.MsgTaskAdded)
	assert.Contains(t, res.stdout, "Buy milk")

	res = runCLI(cfg, "", "toggle", "1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "[x]")

	res = runCLI(cfg, "", "edit", "1", "--title", "Buy oat milk")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Buy oat milk")

	res = runCLI(cfg, "n\n", "rm", "1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Cancelled")

	res = runCLI(cfg, "", "rm", "--yes", "1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Deleted task 1")
	assert.Contains(t, res.stdout, view.MsgNoTasks)

	res = runCLI(cfg, "", "logout")
	require.NoError(t, res.err)

	res = runCLI(cfg, "", "list")
	assert.ErrorIs(t, res.err, errLoginRequired)
}

// TestRun_PromptedCredentials тестирует ввод имени и пароля из stdin
func TestRun_PromptedCredentials(t *testing.T) {
	cfg := writeConfig(t)

	res := runCLI(cfg, "bob\nsecret\nother\n", "register")
	require.Error(t, res.err)
	assert.Equal(t, view.MsgPasswordsMismatch, res.err.Error())

	res = runCLI(cfg, "bob\nsecret\nsecret\n", "register")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Confirm password: ")

	require.NoError(t, runCLI(cfg, "", "logout").err)

	res = runCLI(cfg, "bob\nwrong\n", "login")
	require.Error(t, res.err)
	assert.Equal(t, view.MsgInvalidCredentials, res.err.Error())

	res = runCLI(cfg, "bob\nsecret\n", "login")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Logged in as bob")
}

// TestRun_Profile тестирует просмотр и смену аватара
func TestRun_Profile(t *testing.T) {
	cfg := writeConfig(t)
	require.NoError(t, runCLI(cfg, "", "register", "--username", "alice", "--password", "pw").err)

	res := runCLI(cfg, "", "profile", "--avatar", "https://example.com/a.png")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, view.MsgProfileUpdated)
	assert.Contains(t, res.stdout, "https://example.com/a.png")

	res = runCLI(cfg, "", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "[https://example.com/a.png]")
}

// TestRun_Watch тестирует остановку часов после заданного числа тиков
func TestRun_Watch(t *testing.T) {
	cfg := writeConfig(t)
	require.NoError(t, runCLI(cfg, "", "register", "--username", "alice", "--password", "pw").err)

	res := runCLI(cfg, "", "watch", "--ticks", "2")
	require.NoError(t, res.err)
	assert.GreaterOrEqual(t, strings.Count(res.stdout, "Welcome, alice!"), 2)
	assert.Regexp(t, `\d{1,2}:\d{2}:\d{2} [ap]m`, res.stdout)
}

// TestRun_Errors тестирует ошибки аргументов
func TestRun_Errors(t *testing.T) {
	cfg := writeConfig(t)
	require.NoError(t, runCLI(cfg, "", "register", "--username", "alice", "--password", "pw").err)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"missing command", nil, "missing command"},
		{"unknown command", []string{"frobnicate"}, "unknown command"},
		{"missing id", []string{"toggle"}, "missing task id"},
		{"bad id", []string{"toggle", "abc"}, "invalid task id"},
		{"zero id", []string{"rm", "--yes", "0"}, "invalid task id"},
		{"unknown task", []string{"toggle", "42"}, "not found"},
		{"blank title", []string{"add", "--title", "  "}, view.MsgTitleRequired},
		{"edit unknown task", []string{"edit", "7", "--title", "x"}, "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(cfg, "", tt.args...)
			require.Error(t, res.err)
			assert.Contains(t, strings.ToLower(res.err.Error()), strings.ToLower(tt.expected))
		})
	}
}

// TestRun_Help тестирует вывод справки
func TestRun_Help(t *testing.T) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	err := run([]string{"--help"}, strings.NewReader(""), stdout, stderr)
	assert.ErrorIs(t, err, pflag.ErrHelp)
	assert.Contains(t, stderr.String(), "Usage: taskclient")
}
