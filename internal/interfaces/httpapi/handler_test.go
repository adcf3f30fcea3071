package httpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/Checo3x/Washington-Commanders-Hub/internal/platform/cache"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/platform/logging"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/usecase"
)

type stubTeamData struct {
	scoreboard []byte
	standings  []byte
	err        error
}

func (s *stubTeamData) FetchScoreboard(context.Context) ([]byte, error) {
	return s.scoreboard, s.err
}

func (s *stubTeamData) FetchStandings(context.Context) ([]byte, error) {
	return s.standings, s.err
}

type stubContent struct {
	payload []byte
	err     error
}

func (s *stubContent) Fetch(context.Context) ([]byte, error) {
	return s.payload, s.err
}

func newTestRouter(t *testing.T, teamData TeamDataProvider, content ContentProvider, jobToken, upstreamBaseURL string) (http.Handler, *usecase.SectionRegistry) {
	t.Helper()

	store := cache.NewStore("")
	sections := usecase.NewSectionRegistry()
	engine := usecase.NewEngineService(store, sections, http.DefaultClient, logging.NewNop())
	sources := usecase.BuildSources(upstreamBaseURL, "28", "Washington Commanders")
	refreshSvc := usecase.NewRefreshService(engine, store, sections, sources, 2, logging.NewNop())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(teamData, content, sections, refreshSvc, "Washington Commanders", logger)
	return NewRouter(handler, logger, nil, jobToken), sections
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t, &stubTeamData{}, &stubContent{}, "job-token", "http://localhost:0")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestGetEvents_PassesUpstreamBodyThrough(t *testing.T) {
	raw := []byte(`{"events":[{"name":"Commanders at Giants"}]}`)
	router, _ := newTestRouter(t, &stubTeamData{scoreboard: raw}, &stubContent{}, "job-token", "http://localhost:0")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}
	if rec.Body.String() != string(raw) {
		t.Fatalf("body was not passed through verbatim: %q", rec.Body.String())
	}
}

func TestGetEvents_FailureHidesUpstreamDetail(t *testing.T) {
	upstreamErr := fmt.Errorf("%w: dial tcp internal-espn-gw:443 refused", usecase.ErrNetwork)
	router, _ := newTestRouter(t, &stubTeamData{err: upstreamErr}, &stubContent{}, "job-token", "http://localhost:0")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	var body map[string]string
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("expected error message in response")
	}
	if strings.Contains(body["error"], "internal-espn-gw") {
		t.Fatalf("upstream detail leaked: %q", body["error"])
	}
}

func TestGetContent_ServesCuratedPayload(t *testing.T) {
	raw := []byte(`{"articles":[],"podcasts":[]}`)
	router, _ := newTestRouter(t, &stubTeamData{}, &stubContent{payload: raw}, "job-token", "http://localhost:0")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/content", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != string(raw) {
		t.Fatalf("body was not passed through verbatim: %q", rec.Body.String())
	}
}

func TestGetPage_RendersShellWithAllSections(t *testing.T) {
	router, _ := newTestRouter(t, &stubTeamData{}, &stubContent{}, "job-token", "http://localhost:0")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("unexpected content type %q", got)
	}

	html := rec.Body.String()
	for _, id := range []string{"schedule-section", "standings-section", "articles-section", "podcasts-section"} {
		if !strings.Contains(html, id) {
			t.Fatalf("page is missing section %q", id)
		}
	}
	if !strings.Contains(html, "Cargando...") {
		t.Fatalf("expected loading placeholders before the first engine run")
	}
}

func TestListSections_GoogleEnvelope(t *testing.T) {
	router, _ := newTestRouter(t, &stubTeamData{}, &stubContent{}, "job-token", "http://localhost:0")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sections", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	items, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected data array, got %T", body["data"])
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(items))
	}
}

func TestRunRefreshJob_RequiresToken(t *testing.T) {
	router, _ := newTestRouter(t, &stubTeamData{}, &stubContent{}, "job-token", "http://localhost:0")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh", strings.NewReader(`{}`)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRunRefreshJob_UnconfiguredTokenIsRejected(t *testing.T) {
	router, _ := newTestRouter(t, &stubTeamData{}, &stubContent{}, "", "http://localhost:0")

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh", strings.NewReader(`{}`))
	req.Header.Set("X-Internal-Job-Token", "anything")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestRunRefreshJob_RejectsUnknownKey(t *testing.T) {
	router, _ := newTestRouter(t, &stubTeamData{}, &stubContent{}, "job-token", "http://localhost:0")

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh", strings.NewReader(`{"keys":["lineup"]}`))
	req.Header.Set("X-Internal-Job-Token", "job-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRunRefreshJob_RefreshesRequestedKey(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	router, _ := newTestRouter(t, &stubTeamData{}, &stubContent{}, "job-token", upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh", strings.NewReader(`{"keys":["schedule"]}`))
	req.Header.Set("X-Internal-Job-Token", "job-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %T", body["data"])
	}
	if got, _ := data["task_count"].(float64); got != 1 {
		t.Fatalf("expected task_count=1, got %v", data["task_count"])
	}
	tasks, _ := data["tasks"].([]any)
	if len(tasks) != 1 {
		t.Fatalf("expected one task row, got %d", len(tasks))
	}
	row, _ := tasks[0].(map[string]any)
	if got, _ := row["status"].(string); got != "refreshed" {
		t.Fatalf("expected status refreshed, got %v", row["status"])
	}
}
