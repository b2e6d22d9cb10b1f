package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/userdir/internal/config"
	"github.com/samvad-hq/userdir/internal/domain"
)

const leanneJSON = `{"id":1,"name":"Leanne Graham","username":"Bret","email":"Sincere@april.biz","phone":"1-770-736-8031","website":"hildegard.org","address":{"street":"Kulas Light","suite":"Apt. 556","city":"Gwenborough","zipcode":"92998-3874","geo":{"lat":"-37.3159","lng":"81.1496"}},"company":{"name":"Romaguera-Crona","catchPhrase":"Multi-layered client-server neural-net","bs":"harness real-time e-markets"}}`

func newStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/1":
			w.Write([]byte(leanneJSON))
		case "/users":
			w.Write([]byte("[" + leanneJSON + "]"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL, format string) *config.Config {
	return &config.Config{
		BaseURL:        baseURL,
		RequestTimeout: 2 * time.Second,
		OutputFormat:   format,
	}
}

func TestLookupUserAndUsers(t *testing.T) {
	srv := newStub(t)
	l, err := NewLookup(testConfig(srv.URL, "json"), nil)
	if err != nil {
		t.Fatalf("NewLookup: %v", err)
	}

	user, err := l.User(context.Background(), "1")
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if user.Name != "Leanne Graham" {
		t.Fatalf("unexpected user %+v", user)
	}

	users, err := l.Users(context.Background())
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if len(users) != 1 || users[0].Username != "Bret" {
		t.Fatalf("unexpected users %+v", users)
	}

	if _, err := l.User(context.Background(), "42"); err == nil {
		t.Fatalf("expected error for unknown user")
	}
}

func TestLookupResolvesNamedDirectory(t *testing.T) {
	srv := newStub(t)
	file := filepath.Join(t.TempDir(), "directories.yaml")
	content := "directories:\n  - id: stub\n    base_url: " + srv.URL + "\n    timeout_seconds: 1\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write directories file: %v", err)
	}

	cfg := testConfig("http://unused.invalid", "json")
	cfg.DirectoriesFile = file
	cfg.Directory = "stub"

	l, err := NewLookup(cfg, nil)
	if err != nil {
		t.Fatalf("NewLookup: %v", err)
	}
	if l.repo.BaseURL() != srv.URL {
		t.Fatalf("expected directory base url %s, got %s", srv.URL, l.repo.BaseURL())
	}
	if _, err := l.User(context.Background(), "1"); err != nil {
		t.Fatalf("User: %v", err)
	}
}

func TestLookupDirectoryErrors(t *testing.T) {
	cfg := testConfig("http://unused.invalid", "json")
	cfg.Directory = "stub"
	if _, err := NewLookup(cfg, nil); err == nil {
		t.Fatalf("expected error without directories_file")
	}

	file := filepath.Join(t.TempDir(), "directories.yaml")
	if err := os.WriteFile(file, []byte("directories:\n  - id: other\n    base_url: http://x.example\n"), 0o644); err != nil {
		t.Fatalf("write directories file: %v", err)
	}
	cfg.DirectoriesFile = file
	if _, err := NewLookup(cfg, nil); err == nil {
		t.Fatalf("expected error for unknown directory id")
	}

	if _, err := NewLookup(nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestRenderFormats(t *testing.T) {
	var user domain.User
	if err := json.Unmarshal([]byte(leanneJSON), &user); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	jsonLookup := &Lookup{cfg: testConfig("", "json")}
	var jbuf bytes.Buffer
	if err := jsonLookup.Render(&jbuf, user); err != nil {
		t.Fatalf("Render json: %v", err)
	}
	if !strings.Contains(jbuf.String(), `"catchPhrase": "Multi-layered client-server neural-net"`) {
		t.Fatalf("json output missing catchPhrase: %s", jbuf.String())
	}

	yamlLookup := &Lookup{cfg: testConfig("", "yaml")}
	var ybuf bytes.Buffer
	if err := yamlLookup.Render(&ybuf, domain.UserList{user}); err != nil {
		t.Fatalf("Render yaml: %v", err)
	}
	var decoded []map[string]any
	if err := yaml.Unmarshal(ybuf.Bytes(), &decoded); err != nil {
		t.Fatalf("yaml output does not parse: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["username"] != "Bret" {
		t.Fatalf("unexpected yaml output: %s", ybuf.String())
	}
	company, _ := decoded[0]["company"].(map[string]any)
	if company["bs"] != "harness real-time e-markets" {
		t.Fatalf("unexpected company in yaml: %v", company)
	}
}
