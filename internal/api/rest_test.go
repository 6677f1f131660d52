package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/somesh-bagadiya/sb-omnicore/internal/dispatch"
	"github.com/somesh-bagadiya/sb-omnicore/internal/portfolio"
)

type stubUpstream struct {
	profile  portfolio.Profile
	projects []portfolio.Project
}

func (s *stubUpstream) GetProfile(ctx context.Context) (portfolio.Profile, error) {
	return s.profile, nil
}

func (s *stubUpstream) GetProjects(ctx context.Context) ([]portfolio.Project, error) {
	return s.projects, nil
}

func (s *stubUpstream) GetExperience(ctx context.Context) ([]portfolio.Experience, error) {
	return nil, nil
}

func (s *stubUpstream) GetEducation(ctx context.Context) ([]portfolio.Education, error) {
	return nil, nil
}

func (s *stubUpstream) GetProjectContent(ctx context.Context, id string) (*portfolio.ContentBlob, error) {
	return nil, nil
}

func (s *stubUpstream) BaseURL() string { return "http://upstream.test" }

func newTestHandler() http.Handler {
	u := &stubUpstream{
		profile: portfolio.Profile{"name": "Somesh"},
		projects: []portfolio.Project{
			{ID: "creva", Title: "Creva"},
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRESTHandler(dispatch.New(u, dispatch.WithLogger(logger)), logger)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRESTHandler_ServerInfo(t *testing.T) {
	rec := doRequest(t, newTestHandler(), http.MethodGet, "/", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}

	var info dispatch.ServerInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info.Name != "Portfolio MCP Server" || info.Status != "operational" {
		t.Errorf("info = %+v", info)
	}
}

func TestRESTHandler_ListResources(t *testing.T) {
	rec := doRequest(t, newTestHandler(), http.MethodGet, "/resources", "")

	var payload struct {
		Resources []dispatch.ResourceDescriptor `json:"resources"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload.Resources) != 6 {
		t.Errorf("got %d resources, want 6", len(payload.Resources))
	}
}

func TestRESTHandler_ReadResource(t *testing.T) {
	rec := doRequest(t, newTestHandler(), http.MethodGet, "/resource/profile", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "portfolio://profile") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRESTHandler_ReadResource_Unknown(t *testing.T) {
	rec := doRequest(t, newTestHandler(), http.MethodGet, "/resource/bogus", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "availableResources") {
		t.Errorf("404 body should enumerate resources: %s", rec.Body.String())
	}
}

func TestRESTHandler_GetPrompt(t *testing.T) {
	h := newTestHandler()

	rec := doRequest(t, h, http.MethodGet, "/prompt/resume-assistant", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = doRequest(t, h, http.MethodGet, "/prompt/bogus", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "resume-assistant") {
		t.Errorf("404 body should list prompts: %s", rec.Body.String())
	}
}

func TestRESTHandler_CallTool(t *testing.T) {
	rec := doRequest(t, newTestHandler(), http.MethodPost, "/tools/call",
		`{"name":"get_profile","arguments":{}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result dispatch.ToolResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.IsError {
		t.Errorf("unexpected tool error: %+v", result)
	}
}

func TestRESTHandler_CallTool_UnknownStaysInBand(t *testing.T) {
	rec := doRequest(t, newTestHandler(), http.MethodPost, "/tools/call",
		`{"name":"no_such_tool","arguments":{}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (in-band tool error)", rec.Code)
	}

	var result dispatch.ToolResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !result.IsError {
		t.Error("IsError = false, want true")
	}
}

func TestRESTHandler_CallTool_BadBody(t *testing.T) {
	rec := doRequest(t, newTestHandler(), http.MethodPost, "/tools/call", "{not json")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRESTHandler_UnknownPathDirectory(t *testing.T) {
	rec := doRequest(t, newTestHandler(), http.MethodGet, "/nope", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "availableEndpoints") {
		t.Errorf("404 body should carry the endpoint directory: %s", rec.Body.String())
	}
}

func TestRESTHandler_Preflight(t *testing.T) {
	rec := doRequest(t, newTestHandler(), http.MethodOptions, "/tools/call", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("missing preflight CORS headers")
	}
}
