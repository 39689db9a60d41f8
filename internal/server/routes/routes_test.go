package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/citenav/backend/internal/server/middleware"
	"github.com/citenav/backend/internal/session"
	"github.com/citenav/backend/pkg/papers"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

type stubPaperClient struct {
	papers []papers.Paper
}

func (s *stubPaperClient) Search(_ context.Context, _ papers.SearchParams) ([]papers.Paper, error) {
	return s.papers, nil
}

func (s *stubPaperClient) CitationsOf(_ context.Context, _ string) ([]papers.Paper, error) {
	return []papers.Paper{{PaperID: "c1", Title: "Citing", Year: 2023, CitationCount: 1}}, nil
}

func (s *stubPaperClient) ReferencesOf(_ context.Context, _ string) ([]papers.Paper, error) {
	return nil, nil
}

type testValidator struct {
	validator *validator.Validate
}

func (tv *testValidator) Validate(i any) error {
	return tv.validator.Struct(i)
}

func testApp() *middleware.App {
	client := &stubPaperClient{
		papers: []papers.Paper{
			{PaperID: "p1", Title: "One", Year: 2021, CitationCount: 10},
			{PaperID: "p2", Title: "Two", Year: 2022, CitationCount: 5},
		},
	}
	return &middleware.App{
		Sessions:  session.NewStore(),
		Search:    client,
		Citations: client,
	}
}

func invoke(t *testing.T, app *middleware.App, handler echo.HandlerFunc, method, path, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	if err := handler(&middleware.AppContext{Context: c, App: app}); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	return rec
}

func createTestSession(t *testing.T, app *middleware.App) string {
	t.Helper()

	rec := invoke(t, app, CreateSessionHandler, http.MethodPost, "/api/sessions", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("create session status = %d", rec.Code)
	}

	var resp struct {
		ID       string `json:"id"`
		State    string `json:"state"`
		Messages []struct {
			Role    string `json:"role"`
			Message string `json:"message"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID == "" || len(resp.Messages) != 1 {
		t.Fatalf("unexpected create response %+v", resp)
	}
	return resp.ID
}

// Drives the scripted conversation to completion so graph routes have
// something to serve.
func completeSearch(t *testing.T, app *middleware.App, id string) {
	t.Helper()

	for _, msg := range []string{"robotics", "foundational", "manipulation"} {
		rec := invoke(t, app, PostMessageHandler, http.MethodPost,
			"/api/sessions/"+id+"/messages", `{"message":"`+msg+`"}`,
			map[string]string{"id": id})
		if rec.Code != http.StatusOK {
			t.Fatalf("message status = %d, body %s", rec.Code, rec.Body.String())
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	app := testApp()
	id := createTestSession(t, app)

	rec := invoke(t, app, GetSessionHandler, http.MethodGet, "/api/sessions/"+id, "", map[string]string{"id": id})
	if rec.Code != http.StatusOK {
		t.Fatalf("get session status = %d", rec.Code)
	}

	rec = invoke(t, app, GetSessionHandler, http.MethodGet, "/api/sessions/nope", "", map[string]string{"id": "nope"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown session status = %d, want 404", rec.Code)
	}
}

func TestGraphRoutes_BeforeSearch(t *testing.T) {
	app := testApp()
	id := createTestSession(t, app)

	rec := invoke(t, app, GetGraphHandler, http.MethodGet, "/api/sessions/"+id+"/graph", "", map[string]string{"id": id})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("graph before search status = %d, want 404", rec.Code)
	}
}

func TestGraphRoutes_AfterSearch(t *testing.T) {
	app := testApp()
	id := createTestSession(t, app)
	completeSearch(t, app, id)
	params := map[string]string{"id": id}

	rec := invoke(t, app, GetGraphHandler, http.MethodGet, "/api/sessions/"+id+"/graph", "", params)
	if rec.Code != http.StatusOK {
		t.Fatalf("graph status = %d", rec.Code)
	}
	var graph struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &graph); err != nil {
		t.Fatalf("decode graph: %v", err)
	}
	if len(graph.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(graph.Nodes))
	}

	rec = invoke(t, app, GetGraphMetricsHandler, http.MethodGet, "/api/sessions/"+id+"/graph/metrics", "", params)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	var metrics struct {
		Nodes    int                `json:"nodes"`
		PageRank map[string]float64 `json:"pagerank"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &metrics); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if metrics.Nodes != 2 || len(metrics.PageRank) != 2 {
		t.Fatalf("unexpected metrics %+v", metrics)
	}

	rec = invoke(t, app, GetTrendsHandler, http.MethodGet, "/api/sessions/"+id+"/graph/trends", "", params)
	if rec.Code != http.StatusOK {
		t.Fatalf("trends status = %d", rec.Code)
	}
}

func TestUnfoldNodeHandler(t *testing.T) {
	app := testApp()
	id := createTestSession(t, app)
	completeSearch(t, app, id)
	params := map[string]string{"id": id}

	rec := invoke(t, app, UnfoldNodeHandler, http.MethodPost,
		"/api/sessions/"+id+"/graph/unfold", `{"node_id":"p1"}`, params)
	if rec.Code != http.StatusOK {
		t.Fatalf("unfold status = %d, body %s", rec.Code, rec.Body.String())
	}
	var graph struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
		Links []struct {
			Source string `json:"source"`
			Target string `json:"target"`
		} `json:"links"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &graph); err != nil {
		t.Fatalf("decode graph: %v", err)
	}
	if len(graph.Nodes) != 3 || len(graph.Links) != 1 {
		t.Fatalf("got %d nodes / %d links, want 3 / 1", len(graph.Nodes), len(graph.Links))
	}

	rec = invoke(t, app, UnfoldNodeHandler, http.MethodPost,
		"/api/sessions/"+id+"/graph/unfold", `{"node_id":"ghost"}`, params)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown node status = %d, want 404", rec.Code)
	}

	rec = invoke(t, app, UnfoldNodeHandler, http.MethodPost,
		"/api/sessions/"+id+"/graph/unfold", `{}`, params)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing node_id status = %d, want 400", rec.Code)
	}
}

func TestGetRecommendationsHandler_RequiresNode(t *testing.T) {
	app := testApp()
	id := createTestSession(t, app)
	completeSearch(t, app, id)

	rec := invoke(t, app, GetRecommendationsHandler, http.MethodGet,
		"/api/sessions/"+id+"/graph/recommendations", "", map[string]string{"id": id})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing node param status = %d, want 400", rec.Code)
	}

	rec = invoke(t, app, GetRecommendationsHandler, http.MethodGet,
		"/api/sessions/"+id+"/graph/recommendations?node=p1", "", map[string]string{"id": id})
	if rec.Code != http.StatusOK {
		t.Fatalf("recommendations status = %d", rec.Code)
	}
}
