package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogurasousui/office-rota/internal/adapters/repository/memory"
	"github.com/ogurasousui/office-rota/internal/core/rota"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	gen, err := rota.NewGenerator(rota.DefaultWorkingDaysPerWeek, nil)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := rota.NewService(memory.NewScheduleRepository(), gen, nil, nil, rota.WithLogger(logger))

	srv := httptest.NewServer(NewScheduleHandler(svc, logger).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postGenerate(t *testing.T, srv *httptest.Server, body string) (int, string) {
	t.Helper()

	resp, err := http.Post(srv.URL+GeneratePath, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var msg string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
	return resp.StatusCode, msg
}

func getSchedule(t *testing.T, srv *httptest.Server) *http.Response {
	t.Helper()

	resp, err := http.Get(srv.URL + SchedulePath)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestScheduleHandler_GetBeforeGenerate(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp := getSchedule(t, srv)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var msg string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
	assert.Equal(t, rota.ErrScheduleNotFound.Error(), msg)
}

func TestScheduleHandler_GenerateThenGet(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	code, msg := postGenerate(t, srv, `{"employees":["A","B","C","D","E","F"],"num_weeks":2}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, generatedMessage, msg)

	resp := getSchedule(t, srv)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body scheduleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.ID)
	assert.Equal(t, 5, body.WorkingDaysPerWeek)
	require.Len(t, body.Weeks, 2)
	for _, w := range body.Weeks {
		assert.Len(t, w.Present, 5)
		assert.Len(t, w.Remote, 1)
		assert.ElementsMatch(t, []string{"A", "B", "C", "D", "E", "F"}, append(append([]string{}, w.Present...), w.Remote...))
	}
}

func TestScheduleHandler_ZeroWeeksReturnsEmptyList(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	code, _ := postGenerate(t, srv, `{"employees":["A"],"num_weeks":0}`)
	require.Equal(t, http.StatusOK, code)

	resp := getSchedule(t, srv)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"weeks":[]`)
}

func TestScheduleHandler_InvalidGenerateKeepsCurrent(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	code, _ := postGenerate(t, srv, `{"employees":["A","B"],"num_weeks":1}`)
	require.Equal(t, http.StatusOK, code)

	var before scheduleResponse
	require.NoError(t, json.NewDecoder(getSchedule(t, srv).Body).Decode(&before))

	cases := map[string]string{
		"empty employees":   `{"employees":[],"num_weeks":1}`,
		"missing employees": `{"num_weeks":1}`,
		"negative weeks":    `{"employees":["A"],"num_weeks":-1}`,
		"weeks above max":   `{"employees":["A"],"num_weeks":521}`,
		"huge weeks":        `{"employees":["A"],"num_weeks":9007199254740992}`,
		"missing weeks":     `{"employees":["A"]}`,
		"malformed json":    `{"employees":`,
	}
	for name, body := range cases {
		code, msg := postGenerate(t, srv, body)
		assert.Equal(t, http.StatusBadRequest, code, name)
		assert.NotEmpty(t, msg, name)
	}

	var after scheduleResponse
	require.NoError(t, json.NewDecoder(getSchedule(t, srv).Body).Decode(&after))
	assert.Equal(t, before.ID, after.ID)
}

func TestScheduleHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + GeneratePath)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

type failingUseCase struct{}

func (failingUseCase) GenerateSchedule(context.Context, rota.GenerateScheduleInput) (*rota.Schedule, error) {
	return nil, errors.New("db down")
}

func (failingUseCase) GetSchedule(context.Context) (*rota.Schedule, error) {
	return nil, errors.New("db down")
}

func TestScheduleHandler_InternalErrorIsHidden(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewScheduleHandler(failingUseCase{}, logger).Routes())
	t.Cleanup(srv.Close)

	code, msg := postGenerate(t, srv, `{"employees":["A"],"num_weeks":1}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal error", msg)
}
