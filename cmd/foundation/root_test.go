package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/pthm/hxpanel/internal/config"
	"github.com/pthm/hxpanel/internal/content"
	"github.com/pthm/hxpanel/internal/site"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "foundation version dev\n" {
		t.Errorf("out = %q", out)
	}
}

func TestCheck(t *testing.T) {
	path := writeFile(t, "foundation.yml", "faq_mode: independent\ncarousel_interval: 3s\n")

	out, err := run(t, "check", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"faq_mode=independent", "carousel_interval=3s", "built-in", "4 questions"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheck_MissingConfigUsesDefaults(t *testing.T) {
	out, err := run(t, "check", "--config", filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "faq_mode=accordion") {
		t.Errorf("out = %s", out)
	}
}

func TestCheck_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad mode", "faq_mode: sideways\n", "invalid faq_mode"},
		{"short secret", "secret: short\n", "secret must be at least 16 characters"},
		{"missing content", "content_path: /nonexistent/content.yaml\n", "opening content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "check", "--config", writeFile(t, "foundation.yml", tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestCheck_CustomContent(t *testing.T) {
	c, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	c.Events = c.Events[:1]
	contentPath := filepath.Join(t.TempDir(), "content.yaml")
	cfg := config.DefaultConfig()
	cfg.ContentPath = contentPath
	cfgPath := filepath.Join(t.TempDir(), "foundation.yml")
	if err := cfg.Save(cfgPath); err != nil {
		t.Fatal(err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(contentPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "check", "--config", cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "1 events") || !strings.Contains(out, contentPath) {
		t.Errorf("out = %s", out)
	}
}

func TestNewServer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Secret = "0123456789abcdef0123456789abcdef"
	c, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	e, s, err := newServer(cfg, c)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Rotator.Close)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `id="faq"`) {
		t.Fatalf("GET / = %d", rec.Code)
	}

	toggle := s.Nav.Call("toggle", site.NavProps{}).URL()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, toggle, nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("POST without HX-Request = %d, want 403", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, toggle, nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `class="nav-links active"`) {
		t.Errorf("POST toggle = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestServe_ListenError(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Addr = "127.0.0.1:-1"
	c, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	err = serve(context.Background(), cfg, c)
	if err == nil || !strings.Contains(err.Error(), "listen 127.0.0.1:-1") {
		t.Errorf("err = %v", err)
	}
}
