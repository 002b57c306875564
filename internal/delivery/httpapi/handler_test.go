package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/config"
	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/repository"
	"github.com/aliskhannn/vocab-quiz/internal/sampler"
	"github.com/aliskhannn/vocab-quiz/internal/service"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

var words = map[string]string{
	"macska": "cat",
	"kutya":  "dog",
	"ló":     "horse",
	"madár":  "bird",
	"hal":    "fish",
}

func newTestServer(t *testing.T, webDir string) *httptest.Server {
	t.Helper()

	sheet := entities.Sheet{Name: "5. évfolyam"}
	for hu, en := range words {
		sheet.Rows = append(sheet.Rows, entities.VocabRow{Lesson: "Állatok", EN: en, HU: hu})
	}
	sheet.Rows = append(sheet.Rows, entities.VocabRow{Lesson: "Ételek", EN: "bread", HU: "kenyér"})

	vocab := repository.NewVocabRepositoryFromSheets([]entities.Sheet{sheet})
	scores := service.NewScoreService(storage.NewScoreStorage())
	quiz := service.NewQuizService(vocab, storage.NewQuizStorage(time.Hour), scores,
		service.NewQuestionBuilder(sampler.NewSeeded(3), 200), zap.NewNop(), 10)

	srv := NewServer(config.HTTP{AllowedOrigin: "https://example.org"}, webDir, NewHandler(quiz, scores, zap.NewNop()), zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestSheets(t *testing.T) {
	ts := newTestServer(t, "")

	status, body := do(t, ts, http.MethodGet, "/api/sheets", nil)
	require.Equal(t, http.StatusOK, status)
	sheets := body["sheets"].([]any)
	require.Len(t, sheets, 1)
	first := sheets[0].(map[string]any)
	assert.Equal(t, "5. évfolyam", first["name"])
	assert.Equal(t, []any{"Állatok", "Ételek"}, first["lessons"])

	status, body = do(t, ts, http.MethodGet, "/api/sheets/"+url.PathEscape("5. évfolyam")+"/lessons", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"Állatok", "Ételek"}, body["lessons"])

	status, body = do(t, ts, http.MethodGet, "/api/sheets/missing/lessons", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}

func TestQuizFlow(t *testing.T) {
	ts := newTestServer(t, "")

	status, body := do(t, ts, http.MethodPost, "/api/quizzes", map[string]any{
		"user": "anna", "sheet": "5. évfolyam", "lesson": "Állatok", "mode": "HU_TO_EN_MC",
		"count": 2, "no_repeat": true,
	})
	require.Equal(t, http.StatusCreated, status)
	id := body["id"].(string)
	assert.Equal(t, "awaiting_answer", body["state"])
	assert.NotContains(t, body, "result")

	for i := 0; i < 2; i++ {
		q := body["question"].(map[string]any)
		assert.NotContains(t, q, "correct")
		require.Len(t, q["options"], 4)

		status, body = do(t, ts, http.MethodPost, "/api/quizzes/"+id+"/answer", map[string]any{
			"answer": words[q["prompt"].(string)],
		})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["accepted"])
		assert.Equal(t, "locked", body["state"])
		result := body["result"].(map[string]any)
		assert.Equal(t, true, result["correct"])

		status, body = do(t, ts, http.MethodPost, "/api/quizzes/"+id+"/answer", map[string]any{"option": 0})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, false, body["accepted"])

		status, body = do(t, ts, http.MethodPost, "/api/quizzes/"+id+"/advance", nil)
		require.Equal(t, http.StatusOK, status)
	}

	assert.Equal(t, "finished", body["state"])
	assert.Equal(t, float64(2), body["score"])
	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(2), summary["total"])

	status, body = do(t, ts, http.MethodGet, "/api/scores/anna", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["score"].(map[string]any)["score"])

	status, body = do(t, ts, http.MethodPost, "/api/quizzes/"+id+"/restart", nil)
	require.Equal(t, http.StatusCreated, status)
	assert.NotEqual(t, id, body["id"])
	assert.Equal(t, float64(0), body["score"])

	status, _ = do(t, ts, http.MethodGet, "/api/quizzes/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStartQuiz_Warnings(t *testing.T) {
	ts := newTestServer(t, "")

	status, body := do(t, ts, http.MethodPost, "/api/quizzes", map[string]any{
		"sheet": "5. évfolyam", "lesson": "Ételek", "mode": "TYPE", "count": 3, "no_repeat": true,
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(1), body["total"])
	assert.Contains(t, body["warning"], "not enough words")
	assert.Equal(t, entities.AnonymousUser, body["user"])
}

func TestStartQuiz_Errors(t *testing.T) {
	ts := newTestServer(t, "")

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"unknown mode", map[string]any{"sheet": "5. évfolyam", "lesson": "Állatok", "mode": "essay"}, http.StatusBadRequest},
		{"unknown sheet", map[string]any{"sheet": "x", "lesson": "Állatok", "mode": "TYPE"}, http.StatusNotFound},
		{"unknown lesson", map[string]any{"sheet": "5. évfolyam", "lesson": "x", "mode": "TYPE"}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, ts, http.MethodPost, "/api/quizzes", tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}

	resp, err := ts.Client().Post(ts.URL+"/api/quizzes", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStartQuiz_ClampsLooseNumbers(t *testing.T) {
	ts := newTestServer(t, "")

	tests := []struct {
		name  string
		extra map[string]any
		total float64
	}{
		{"non-numeric count uses default", map[string]any{"count": "abc"}, 5},
		{"numeric string count", map[string]any{"count": "3"}, 3},
		{"fractional count", map[string]any{"count": 2.5}, 2},
		{"zero count uses default", map[string]any{"count": 0}, 5},
		{"non-numeric range bound", map[string]any{"count": 2, "range_from": "x"}, 2},
		{"out of range bounds", map[string]any{"count": 4, "range_from": -3, "range_to": "9999"}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := map[string]any{
				"sheet": "5. évfolyam", "lesson": "Állatok", "mode": "TYPE", "no_repeat": true,
			}
			for k, v := range tt.extra {
				req[k] = v
			}

			status, body := do(t, ts, http.MethodPost, "/api/quizzes", req)
			require.Equal(t, http.StatusCreated, status, body)
			assert.Equal(t, tt.total, body["total"])
		})
	}
}

func TestAnswer_StaleQuestion(t *testing.T) {
	ts := newTestServer(t, "")

	status, body := do(t, ts, http.MethodPost, "/api/quizzes", map[string]any{
		"sheet": "5. évfolyam", "lesson": "Állatok", "mode": "TYPE", "count": 2, "no_repeat": true,
	})
	require.Equal(t, http.StatusCreated, status)
	id := body["id"].(string)

	prompt := body["question"].(map[string]any)["prompt"].(string)
	status, body = do(t, ts, http.MethodPost, "/api/quizzes/"+id+"/answer", map[string]any{
		"answer": words[prompt], "question": 0,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["accepted"])

	status, body = do(t, ts, http.MethodPost, "/api/quizzes/"+id+"/advance", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["index"])

	status, body = do(t, ts, http.MethodPost, "/api/quizzes/"+id+"/answer", map[string]any{
		"answer": "anything", "question": 0,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["accepted"])
	assert.Equal(t, "awaiting_answer", body["state"])
	assert.Equal(t, float64(1), body["score"])

	status, _ = do(t, ts, http.MethodPost, "/api/quizzes/missing/answer", map[string]any{
		"answer": "x", "question": 0,
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestScoreNotFound(t *testing.T) {
	ts := newTestServer(t, "")

	status, body := do(t, ts, http.MethodGet, "/api/scores/nobody", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, "")

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/quizzes", nil)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://example.org", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Szótanuló</h1>"), 0o600))
	ts := newTestServer(t, dir)

	resp, err := ts.Client().Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, buf.String(), "Szótanuló")
}

func TestWithRecovery(t *testing.T) {
	h := WithRecovery(zap.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal error")
}
