package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-todo/internal/db"
	"smart-todo/internal/dialogue"
	"smart-todo/internal/draft"
	"smart-todo/internal/extract"
	"smart-todo/internal/llmparse"
	"smart-todo/internal/task"
	"smart-todo/internal/task/repository/sqlite"
	"smart-todo/internal/task/usecase"
	"smart-todo/pkg/datemath"
	"smart-todo/pkg/log"
)

// testApp wires a rules-only App backed by an in-memory DB.
func testApp(t *testing.T) *App {
	t.Helper()

	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	cal, err := datemath.NewCalendar("Asia/Shanghai")
	require.NoError(t, err)

	l := log.NewNop()
	parser := llmparse.New(l, llmparse.Options{
		Rules:    extract.NewParser(nil, draft.OneShot, cal),
		Calendar: cal,
	})
	uc := usecase.New(l, sqlite.New(l, database), parser, dialogue.NewStore(10, time.Minute), nil, cal, usecase.Config{
		AutoCreateThreshold: 0.7,
	})

	return &App{Tasks: uc, Location: cal.Location()}
}

func executeCmd(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestParseCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "", "parse", "--now", "2025-03-04T10:00:00+08:00", "明天下午3点开会")
	require.NoError(t, err)

	assert.Contains(t, out, "开会")
	assert.Contains(t, out, "2025-03-05 15:00")
	assert.Contains(t, out, "work")
}

func TestParseCmd_JSON(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "", "parse", "--json", "--now", "2025-03-04T10:00:00+08:00", "明天下午3点开会")
	require.NoError(t, err)

	var got task.ParseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, task.ParseModeRules, got.Mode)
	assert.Equal(t, "开会", got.Draft.Title)
	require.NotNil(t, got.Draft.DueDate)
	assert.Equal(t, "2025-03-05T15:00:00+08:00", got.Draft.DueDate.String())
}

func TestParseCmd_Errors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "", "parse", "--now", "yesterday", "开会")
	assert.ErrorContains(t, err, "--now")

	_, err = executeCmd(t, app, "", "parse", "--mode", "psychic", "开会")
	assert.ErrorIs(t, err, task.ErrInvalidMode)

	_, err = executeCmd(t, app, "", "parse")
	assert.Error(t, err)
}

func TestCreateListDone(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "", "parse", "--create", "--json", "--now", "2025-03-04T10:00:00+08:00", "明天下午3点开会")
	require.NoError(t, err)
	var parsed task.ParseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.NotNil(t, parsed.Task, "confident draft should be stored")

	out, err = executeCmd(t, app, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "开会")
	assert.Contains(t, out, "共 1 个任务")

	// Tasks belong to the --user that created them.
	out, err = executeCmd(t, app, "", "list", "--user", "someone-else")
	require.NoError(t, err)
	assert.Contains(t, out, "没有任务")

	out, err = executeCmd(t, app, "", "done", parsed.Task.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "✓")

	out, err = executeCmd(t, app, "", "list", "--status", "completed", "--json")
	require.NoError(t, err)
	var listed task.ListOutput
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	assert.Equal(t, 1, listed.Total)

	_, err = executeCmd(t, app, "", "done", "missing")
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestChatCmd_WithoutModel(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "明天开会\n\n/cancel\n/quit\n不会被处理\n", "chat")
	require.NoError(t, err)

	assert.Contains(t, out, "助手> ")
	assert.Contains(t, out, dialogue.ReplyApology)
	assert.Contains(t, out, "已清空当前对话")
	assert.Equal(t, 1, strings.Count(out, "助手> "))
}

func TestGcalAuthCmd_MissingCredentials(t *testing.T) {
	app := testApp(t)
	app.CredentialsPath = t.TempDir() + "/missing.json"

	_, err := executeCmd(t, app, "", "gcal-auth")
	assert.ErrorContains(t, err, "read credentials")
}
