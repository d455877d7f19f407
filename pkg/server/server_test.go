package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/config"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/validation"
	theme "github.com/goliatone/go-theme"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Locale = "en"
	cfg.Messages = validation.English

	s, err := New(append([]Option{WithConfig(cfg)}, opts...)...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postForm(t *testing.T, ts *httptest.Server, path string, values url.Values, accept string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(values.Encode()))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func decodeOutcome(t *testing.T, body string) Outcome {
	t.Helper()
	var out Outcome
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode outcome: %v\n%s", err, body)
	}
	return out
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := ts.Client().Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health response %d %q", resp.StatusCode, body)
	}
}

func TestIndexRendersBothForms(t *testing.T) {
	ts := newTestServer(t)
	resp, err := ts.Client().Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	html := string(body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		t.Fatalf("unexpected content type %q", resp.Header.Get("Content-Type"))
	}
	for _, want := range []string{`id="contactForm"`, `id="newsletterForm"`, `--error: #e53e3e;`, `<html lang="en" dir="ltr">`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
}

func TestContactInvalidReturnsEveryError(t *testing.T) {
	ts := newTestServer(t)
	resp, body := postForm(t, ts, "/contact", url.Values{
		"name":    {"D"},
		"email":   {"not-an-email"},
		"phone":   {"12"},
		"message": {"short"},
	}, "application/json")

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	out := decodeOutcome(t, body)
	want := Outcome{
		Form:  "contactForm",
		State: "idle",
		Errors: map[string]string{
			"name":    validation.English.NameTooShort,
			"email":   validation.English.InvalidEmail,
			"phone":   validation.English.InvalidPhone,
			"message": validation.English.MessageTooShort,
		},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("outcome mismatch (-want +got):\n%s", diff)
	}
}

func TestContactInvalidHTMLEchoesSanitisedValues(t *testing.T) {
	ts := newTestServer(t)
	resp, html := postForm(t, ts, "/contact", url.Values{
		"name":  {"<b>Dana</b><script>alert(1)</script>"},
		"email": {"dana@example.com"},
	}, "")

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if strings.Contains(html, "<script>alert") || strings.Contains(html, "&lt;b&gt;") {
		t.Fatalf("markup echoed back:\n%s", html)
	}
	if !strings.Contains(html, `name="name" value="Dana"`) {
		t.Fatalf("sanitised value not echoed:\n%s", html)
	}
	if !strings.Contains(html, validation.English.Required) {
		t.Fatalf("required message missing for message field")
	}
}

func TestContactSuccess(t *testing.T) {
	ts := newTestServer(t)
	resp, body := postForm(t, ts, "/contact", url.Values{
		"name":    {"Dana"},
		"email":   {"dana@example.com"},
		"message": {"Table for four on Friday"},
	}, "application/json")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	out := decodeOutcome(t, body)
	if out.State != "succeeded" || out.Notice == "" || len(out.Errors) != 0 {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if out.SubmissionID == "" {
		t.Fatalf("expected a submission id")
	}
}

func TestContactSuccessHTML(t *testing.T) {
	ts := newTestServer(t)
	resp, html := postForm(t, ts, "/contact", url.Values{
		"name":    {"Dana"},
		"email":   {"dana@example.com"},
		"message": {"Table for four on Friday"},
	}, "")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	notice := config.Default().Contact.Labels.Success
	if !strings.Contains(html, `style="color: var(--success)">`+notice+`</div>`) {
		t.Fatalf("notice not shown:\n%s", html)
	}
	if strings.Contains(html, "dana@example.com") {
		t.Fatalf("values should be cleared after success")
	}
}

func TestNewsletterRejectsBadEmail(t *testing.T) {
	ts := newTestServer(t)
	resp, body := postForm(t, ts, "/newsletter", url.Values{"email": {"bad"}}, "application/json")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	out := decodeOutcome(t, body)
	if diff := cmp.Diff([]string{"email"}, out.Cued); diff != "" {
		t.Fatalf("cue mismatch (-want +got):\n%s", diff)
	}
	if out.State != "idle" {
		t.Fatalf("expected idle, got %s", out.State)
	}
}

func TestNewsletterSuccessHasNoNotice(t *testing.T) {
	ts := newTestServer(t)
	resp, body := postForm(t, ts, "/newsletter", url.Values{"email": {"guest@example.com"}}, "application/json")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	out := decodeOutcome(t, body)
	if out.State != "succeeded" || out.Notice != "" {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestNewsletterSuccessHTML(t *testing.T) {
	ts := newTestServer(t)
	resp, html := postForm(t, ts, "/newsletter", url.Values{"email": {"guest@example.com"}}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	done := config.Default().Newsletter.Labels.Done
	if !strings.Contains(html, `<button type="submit" disabled>`+done+`</button>`) {
		t.Fatalf("done label not rendered:\n%s", html)
	}
}

func TestExtraForms(t *testing.T) {
	form := model.NewsletterForm()
	form.ID = "signup"
	form.Endpoint = "/subscribe"
	ts := newTestServer(t, WithForms(form))

	resp, err := ts.Client().Get(ts.URL + "/forms/signup")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `action="/forms/signup"`) {
		t.Fatalf("unexpected response %d:\n%s", resp.StatusCode, body)
	}

	resp, outBody := postForm(t, ts, "/forms/signup", url.Values{"email": {"guest@example.com"}}, "application/json")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if out := decodeOutcome(t, outBody); out.State != "succeeded" || out.Notice != "" {
		t.Fatalf("newsletter-kind extra form should run the newsletter flow, got %+v", out)
	}

	resp, outBody = postForm(t, ts, "/forms/signup", url.Values{"email": {"bad"}}, "application/json")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if out := decodeOutcome(t, outBody); len(out.Cued) != 1 || len(out.Errors) != 0 {
		t.Fatalf("expected a cue and no error slots, got %+v", out)
	}

	resp, err = ts.Client().Get(ts.URL + "/forms/missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, WithAllowedOrigins("https://bistro.example"))
	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/contact", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Origin", "https://bistro.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://bistro.example" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestPageTitle(t *testing.T) {
	ts := newTestServer(t, WithTitle("Cafe Noa"))
	resp, err := ts.Client().Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<title>Cafe Noa</title>") {
		t.Fatalf("title missing:\n%s", body)
	}
}

func TestCustomThemeAndRenderer(t *testing.T) {
	harbor := &theme.Manifest{
		Name:    "harbor",
		Version: "0.1.0",
		Tokens:  map[string]string{"success": "#2f855a", "error": "#c53030"},
		Templates: map[string]string{
			"forms.page": "page.tpl",
			"forms.form": "form.tpl",
		},
	}
	themes, err := render.NewThemes(render.BistroManifest(), harbor)
	if err != nil {
		t.Fatalf("themes: %v", err)
	}
	html, err := render.NewHTML(render.WithLanguage("he"))
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	cfg := config.Default()
	cfg.Theme.Name = "harbor"
	s, err := New(WithConfig(cfg), WithThemes(themes), WithRenderer(html))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	resp, err := ts.Client().Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, "--success: #2f855a;") {
		t.Fatalf("harbor tokens missing:\n%s", page)
	}
	if !strings.Contains(page, `dir="rtl"`) {
		t.Fatalf("expected rtl document:\n%s", page)
	}
}

func TestShutdownBeforeListen(t *testing.T) {
	s, err := New(WithAddr("127.0.0.1:0"))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil after shutdown, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("server kept running after shutdown")
	}
}
