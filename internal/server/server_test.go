package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/khrees2412/cvforge/internal/app"
	"github.com/khrees2412/cvforge/internal/pipeline"
	"github.com/khrees2412/cvforge/internal/templates"
	"github.com/khrees2412/cvforge/pkg/models"
)

type fakeRunner struct {
	result *pipeline.Result
	err    error
	got    *pipeline.Request
}

func (f *fakeRunner) Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error) {
	f.got = &req
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return &pipeline.Result{}, nil
	}
	return f.result, nil
}

type testEnv struct {
	server    *Server
	runner    *fakeRunner
	store     *templates.FileStore
	outputDir string
}

func newTestEnv(t *testing.T, dev bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	env := &testEnv{
		runner:    &fakeRunner{},
		store:     templates.NewFileStore(filepath.Join(dir, "templates.json")),
		outputDir: filepath.Join(dir, "out"),
	}
	if err := os.MkdirAll(env.outputDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	env.server = New(Deps{
		Runner:      env.runner,
		Templates:   env.store,
		Builtins:    templates.NewBuiltins(""),
		Artifacts:   pipeline.NewArtifactWriter(env.outputDir),
		Development: dev,
	})
	return env
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, false)
	w := env.do(http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header")
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	env := newTestEnv(t, false)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Errorf("X-Request-Id = %q", got)
	}
}

func TestIndexServesUI(t *testing.T) {
	env := newTestEnv(t, false)
	w := env.do(http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("content type = %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "<html") {
		t.Error("expected HTML body")
	}
}

func TestSearchValidation(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"blank query", `{"query":"   ","profile":{"name":"Jan"}}`, "Query is required"},
		{"missing base cv", `{"query":"Go developer"}`, "Profile or custom template is required"},
		{"unknown template name", `{"query":"Go developer","templateName":"nope"}`, "Profile or custom template is required"},
		{"malformed json", `{"query":`, "malformed JSON"},
		{"wrong type", `{"query":42}`, "query"},
		{"empty body", ``, "request body is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, false)
			w := env.do(http.MethodPost, "/search", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			msg, _ := decode(t, w)["error"].(string)
			if !strings.Contains(msg, tc.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", msg, tc.wantMsg)
			}
			if env.runner.got != nil {
				t.Error("runner must not be called for invalid requests")
			}
		})
	}
}

func TestSearchSuccess(t *testing.T) {
	env := newTestEnv(t, false)
	env.runner.result = &pipeline.Result{
		Results: []models.CVResult{{
			JobPosting: models.JobPosting{Title: "Go Developer", Company: "Acme"},
			CV:         "CV TEXT",
			CVFilename: "cv_acme.pdf",
			CVTxt:      "cv_acme.txt",
			Rendered:   true,
			Language:   "english",
		}},
	}

	w := env.do(http.MethodPost, "/search",
		`{"query":"Go developer","location":"Warsaw","technology":"Go","profile":{"name":"Jan","skills":["Go"]}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	body := decode(t, w)
	if body["success"] != true {
		t.Errorf("success = %v", body["success"])
	}
	if body["count"] != float64(1) {
		t.Errorf("count = %v", body["count"])
	}
	results, _ := body["results"].([]interface{})
	if len(results) != 1 {
		t.Fatalf("results = %v", body["results"])
	}
	first := results[0].(map[string]interface{})
	if first["title"] != "Go Developer" || first["cv_filename"] != "cv_acme.pdf" {
		t.Errorf("unexpected result: %v", first)
	}

	got := env.runner.got
	if got == nil {
		t.Fatal("runner was not called")
	}
	if got.Query != "Go developer" || got.Location != "Warsaw" || got.Technology != "Go" {
		t.Errorf("unexpected request: %+v", got)
	}
	if got.Profile == nil || got.Profile.Name != "Jan" {
		t.Errorf("profile not forwarded: %+v", got.Profile)
	}
}

func TestSearchNoMatchesReturnsEmptyList(t *testing.T) {
	env := newTestEnv(t, false)
	w := env.do(http.MethodPost, "/search", `{"query":"Go","customTemplate":"MY CV"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	if body["count"] != float64(0) {
		t.Errorf("count = %v", body["count"])
	}
	if results, ok := body["results"].([]interface{}); !ok || len(results) != 0 {
		t.Errorf("results = %#v, want empty list", body["results"])
	}
}

func TestSearchAcceptsStoredTemplateName(t *testing.T) {
	env := newTestEnv(t, false)
	if err := env.store.Save(context.Background(), "mine", "MY CV"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	w := env.do(http.MethodPost, "/search", `{"query":"Go","templateName":"mine"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if env.runner.got == nil || env.runner.got.TemplateName != "mine" {
		t.Errorf("template name not forwarded: %+v", env.runner.got)
	}
}

func TestSearchFailures(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		dev     bool
		wantMsg string
	}{
		{"provider", fmt.Errorf("%w: failed to fetch jobs from Jooble: boom", app.ErrProvider), false, "Failed to fetch jobs from Jooble"},
		{"configuration", fmt.Errorf("%w: JOOBLE_API_KEY is not set", app.ErrConfiguration), true, "Server is not configured for job search"},
		{"unexpected", errors.New("disk full"), true, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, tc.dev)
			env.runner.err = tc.err

			w := env.do(http.MethodPost, "/search", `{"query":"Go","customTemplate":"CV"}`)
			if w.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d", w.Code)
			}
			body := decode(t, w)
			if body["error"] != tc.wantMsg {
				t.Errorf("error = %v, want %q", body["error"], tc.wantMsg)
			}
			details, hasDetails := body["details"]
			if tc.dev && (!hasDetails || details != tc.err.Error()) {
				t.Errorf("details = %v, want %q", details, tc.err.Error())
			}
			if !tc.dev && hasDetails {
				t.Errorf("details leaked outside development: %v", details)
			}
		})
	}
}

func TestTemplateCRUD(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(http.MethodPost, "/templates", `{"name":"backend","content":"BACKEND CV"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d, body %s", w.Code, w.Body.String())
	}

	w = env.do(http.MethodGet, "/templates", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	list, _ := decode(t, w)["templates"].(map[string]interface{})
	if list["backend"] != "BACKEND CV" {
		t.Errorf("templates = %v", list)
	}

	w = env.do(http.MethodDelete, "/templates/backend", "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = env.do(http.MethodDelete, "/templates/backend", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", w.Code)
	}
	if msg := decode(t, w)["error"]; msg != "Template not found" {
		t.Errorf("error = %v", msg)
	}
}

func TestSaveTemplateValidation(t *testing.T) {
	env := newTestEnv(t, false)
	for _, body := range []string{`{"name":"x"}`, `{"name":" ","content":"CV"}`, `{"name":"x","content":""}`} {
		w := env.do(http.MethodPost, "/templates", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d", body, w.Code)
		}
	}
}

func TestBuiltinTemplates(t *testing.T) {
	env := newTestEnv(t, false)
	w := env.do(http.MethodGet, "/templates/builtin", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	all, _ := decode(t, w)["templates"].(map[string]interface{})
	if len(all) != 2 {
		t.Fatalf("templates = %v", all)
	}
	if pl, _ := all["polish"].(string); !strings.Contains(pl, "DOŚWIADCZENIE ZAWODOWE") {
		t.Errorf("polish template missing expected header")
	}
}

func TestDownload(t *testing.T) {
	env := newTestEnv(t, false)
	if err := os.WriteFile(filepath.Join(env.outputDir, "cv_acme.txt"), []byte("CV TEXT"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w := env.do(http.MethodGet, "/cvs/cv_acme.txt", "")
	if w.Code != http.StatusOK || w.Body.String() != "CV TEXT" {
		t.Fatalf("download = %d %q", w.Code, w.Body.String())
	}

	for _, path := range []string{"/cvs/missing.txt", "/cvs/..%2Fsecret.txt", "/cvs/.."} {
		w = env.do(http.MethodGet, path, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d", path, w.Code)
		}
	}
}

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad", app.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", templates.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: no key", app.ErrConfiguration), http.StatusInternalServerError},
		{&pipeline.StageError{Stage: pipeline.StageRendered, Err: errors.New("chrome")}, http.StatusInternalServerError},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := errorStatus(tc.err); got != tc.want {
			t.Errorf("errorStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
