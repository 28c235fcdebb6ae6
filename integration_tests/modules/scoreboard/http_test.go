package scoreboardintegrationtests

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard"
	scoreboardmetrics "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/infrastructure/metrics"
	"github.com/Black-And-White-Club/scoreboard/config"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

const testEditKey = "integration-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	env := GetTestEnv(t)
	require.NoError(t, env.Reset(env.Ctx))

	cfg := &config.Config{
		Edit: config.EditConfig{Key: testEditKey},
		HTTP: config.HTTPConfig{AllowedOrigins: []string{"https://scores.example.com"}},
	}
	router := chi.NewRouter()
	module, err := scoreboard.NewModule(env.Ctx, cfg, scoreboard.Dependencies{
		DB:      env.DB,
		Logger:  discardLogger(),
		Tracer:  noop.NewTracerProvider().Tracer("test"),
		Metrics: scoreboardmetrics.NewNoop(),
	}, router)
	require.NoError(t, err)
	require.NoError(t, module.Seed(env.Ctx))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postScore(t *testing.T, srv *httptest.Server, body string, key string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/score", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-Edit-Key", key)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHTTP_EditKeyGuardsWrites(t *testing.T) {
	srv := newTestServer(t)
	body := `{"player":"jared","categoryId":"classic","score":5}`

	tests := []struct {
		name       string
		key        string
		wantStatus int
	}{
		{name: "missing key", key: "", wantStatus: http.StatusForbidden},
		{name: "wrong key", key: "nope", wantStatus: http.StatusForbidden},
		{name: "valid key", key: testEditKey, wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postScore(t, srv, body, tt.key)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	resp, err := srv.Client().Get(srv.URL + "/api/history?limit=10")
	require.NoError(t, err)
	defer resp.Body.Close()

	var history struct {
		History []struct {
			Player        string  `json:"player"`
			Score         int32   `json:"score"`
			PreviousScore int32   `json:"previousScore"`
			SourceIP      *string `json:"sourceIp"`
		} `json:"history"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	require.Len(t, history.History, 1, "only the authorised write is recorded")
	assert.Equal(t, int32(5), history.History[0].Score)
	require.NotNil(t, history.History[0].SourceIP)
	assert.Equal(t, "127.0.0.1", *history.History[0].SourceIP)
}

func TestHTTP_UpdateThenRead(t *testing.T) {
	srv := newTestServer(t)

	resp := postScore(t, srv, `{"player":"steve","categoryId":"gates","score":"12"}`, testEditKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var update struct {
		OK         bool   `json:"ok"`
		CategoryID string `json:"categoryId"`
		Player     string `json:"player"`
		Score      int32  `json:"score"`
		UpdatedAt  string `json:"updatedAt"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&update))
	assert.True(t, update.OK)
	assert.Equal(t, "gates", update.CategoryID)
	assert.Equal(t, int32(12), update.Score)
	assert.NotEmpty(t, update.UpdatedAt)

	scoresResp, err := srv.Client().Get(srv.URL + "/api/scores")
	require.NoError(t, err)
	defer scoresResp.Body.Close()
	require.Equal(t, http.StatusOK, scoresResp.StatusCode)

	var scores struct {
		Categories []struct {
			ID string `json:"id"`
		} `json:"categories"`
		Scores map[string]struct {
			Jared int32 `json:"jared"`
			Steve int32 `json:"steve"`
		} `json:"scores"`
	}
	require.NoError(t, json.NewDecoder(scoresResp.Body).Decode(&scores))
	assert.Len(t, scores.Categories, 15)
	assert.Equal(t, int32(12), scores.Scores["gates"].Steve)

	missing, err := srv.Client().Get(srv.URL + "/api/scores/unknown")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	export, err := srv.Client().Get(srv.URL + "/api/history/export")
	require.NoError(t, err)
	defer export.Body.Close()
	require.Equal(t, http.StatusOK, export.StatusCode)
	rows, err := csv.NewReader(export.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2, "header plus one record")
}

func TestHTTP_RejectedWriteReturnsBadRequest(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{
		`{"player":"jared","categoryId":"classic","score":-1}`,
		`{"player":"jared","categoryId":"classic","score":3.5}`,
		`{"player":"alice","categoryId":"classic","score":5}`,
		`{"player":"jared","categoryId":"unknown","score":5}`,
		`not json`,
	} {
		resp := postScore(t, srv, body, testEditKey)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}

	health, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}
