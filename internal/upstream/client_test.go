package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetProfile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/mcp/profile" {
			t.Errorf("path = %q, want /api/mcp/profile", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Somesh Bagadiya","status":"available"}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	p, err := c.GetProfile(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p["name"] != "Somesh Bagadiya" {
		t.Errorf("name = %v", p["name"])
	}
}

func TestRequestTargetsAPIPrefix(t *testing.T) {
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	// Construct from the site root, trailing slash included; every
	// request must go through the API mount point.
	c := New(ts.URL + "/")
	c.GetProjects(context.Background())
	c.GetExperience(context.Background())
	c.GetEducation(context.Background())

	want := []string{"/api/mcp/projects", "/api/mcp/experience", "/api/mcp/education"}
	if len(paths) != len(want) {
		t.Fatalf("got %d requests, want %d: %v", len(paths), len(want), paths)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("request %d path = %q, want %q", i, p, want[i])
		}
	}

	if got, want := c.BaseURL(), ts.URL+"/api/mcp"; got != want {
		t.Errorf("BaseURL() = %q, want %q", got, want)
	}
}

func TestRequestHeaders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "Portfolio-MCP-Server/1.0.0" {
			t.Errorf("User-Agent = %q, want Portfolio-MCP-Server/1.0.0", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", got)
		}
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	if _, err := New(ts.URL).GetProfile(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetProfile_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := New(ts.URL)
	_, err := c.GetProfile(context.Background())

	var ue *Error
	if !errors.As(err, &ue) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if ue.Endpoint != "profile" || ue.StatusCode != http.StatusBadGateway {
		t.Errorf("Error = %+v", ue)
	}
}

func TestGetProfile_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer ts.Close()

	c := New(ts.URL, WithTimeouts(50*time.Millisecond, 0, 0))
	_, err := c.GetProfile(context.Background())

	var ue *Error
	if !errors.As(err, &ue) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if !ue.Timeout {
		t.Errorf("Timeout = false, want true: %+v", ue)
	}
}

func TestGetProjects_Shapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id":"a"},{"id":"b"}]`, 2},
		{"allProjects wrapper", `{"allProjects":[{"id":"a"}],"totalCount":1}`, 1},
		{"projects wrapper", `{"projects":[{"id":"a"},{"id":"b"},{"id":"c"}]}`, 3},
		{"featured wrapper", `{"featured":[{"id":"a"}]}`, 1},
		{"empty success", `{"projects":[]}`, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(c.body))
			}))
			defer ts.Close()

			projects, err := New(ts.URL).GetProjects(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(projects) != c.want {
				t.Errorf("got %d projects, want %d", len(projects), c.want)
			}
		})
	}
}

func TestGetProjects_Malformed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).GetProjects(context.Background())
	if !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("error = %v, want ErrMalformedPayload", err)
	}
}

func TestGetProjects_DomainStringOrArray(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"a","domain":"GenAI"},{"id":"b","domain":["GenAI","Web & Cloud"]}]`))
	}))
	defer ts.Close()

	projects, err := New(ts.URL).GetProjects(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !projects[0].InDomain("GenAI") {
		t.Error("single-string domain not recognized")
	}
	if !projects[1].InDomain("Web & Cloud") {
		t.Error("array domain not recognized")
	}
}

func TestGetProjectContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("includeContent") != "true" {
			t.Errorf("missing includeContent flag, query = %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("projectId") != "creva" {
			t.Errorf("projectId = %q, want creva", r.URL.Query().Get("projectId"))
		}
		w.Write([]byte(`[{"id":"creva","content":"# Overview\nsome body text","lastModified":"2025-05-01"}]`))
	}))
	defer ts.Close()

	blob, err := New(ts.URL).GetProjectContent(context.Background(), "creva")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blob == nil {
		t.Fatal("blob is nil, want content")
	}
	if blob.WordCount != 5 {
		t.Errorf("WordCount = %d, want 5", blob.WordCount)
	}
	if blob.LastModified != "2025-05-01" {
		t.Errorf("LastModified = %q", blob.LastModified)
	}
}

func TestGetProjectContent_AbsentIsNotError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"other","content":"# A\nb"},{"id":"empty"}]`))
	}))
	defer ts.Close()

	c := New(ts.URL)

	// Unknown project.
	blob, err := c.GetProjectContent(context.Background(), "missing")
	if err != nil || blob != nil {
		t.Errorf("missing project: blob = %v, err = %v, want nil/nil", blob, err)
	}

	// Known project without content.
	blob, err = c.GetProjectContent(context.Background(), "empty")
	if err != nil || blob != nil {
		t.Errorf("contentless project: blob = %v, err = %v, want nil/nil", blob, err)
	}
}

func TestGetExperience_WrapperShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"experiences":[{"company":"Cognizant","startDate":"2021-03-01"}]}`))
	}))
	defer ts.Close()

	exps, err := New(ts.URL).GetExperience(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exps) != 1 || exps[0].Company != "Cognizant" {
		t.Errorf("experiences = %+v", exps)
	}
}

func TestGetEducation_BareArray(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"institution":"SJSU","degree":"MS in AI"}]`))
	}))
	defer ts.Close()

	edu, err := New(ts.URL).GetEducation(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(edu) != 1 || edu[0].Institution != "SJSU" {
		t.Errorf("education = %+v", edu)
	}
}
