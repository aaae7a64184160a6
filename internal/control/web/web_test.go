package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"media-runtime/internal/modules"
	"media-runtime/internal/playlist"
)

type fakeHost struct {
	pl       *playlist.Playlist
	requests []string
}

func (h *fakeHost) Playlist() *playlist.Playlist     { return h.pl }
func (h *fakeHost) MustPlaylist() *playlist.Playlist { return h.pl }
func (h *fakeHost) AddInterface(selector string)     { h.requests = append(h.requests, selector) }
func (h *fakeHost) ActiveInterfaces() []string       { return []string{"http"} }

func (h *fakeHost) InterfaceChoices() []modules.SelectorChoice {
	return []modules.SelectorChoice{
		{Key: "telnet", Label: "Telnet", Selector: "telnet,none"},
	}
}

func newTestHandler(t *testing.T, passwordHash string) (http.Handler, *fakeHost) {
	t.Helper()
	pl, err := playlist.New(nil)
	if err != nil {
		t.Fatalf("playlist.New: %v", err)
	}
	host := &fakeHost{pl: pl}
	return newHandler(host, passwordHash), host
}

func TestStatusEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t, "")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Playlist.Count != 0 || len(resp.Interfaces) != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestAddAndListPlaylistItems(t *testing.T) {
	handler, host := newTestHandler(t, "")

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"path":"/media/a.mp4","title":"A"}`)
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/playlist/items", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("add item status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/playlist", nil))
	var items []playlist.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].Title != "A" {
		t.Errorf("items = %v", items)
	}
	if host.pl.Len() != 1 {
		t.Errorf("playlist length = %d", host.pl.Len())
	}
}

func TestAddItemValidation(t *testing.T) {
	handler, _ := newTestHandler(t, "")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/playlist/items", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing path status = %d", rec.Code)
	}
}

func TestAddInterfaceIsFireAndForget(t *testing.T) {
	handler, host := newTestHandler(t, "")

	// Even a selector that cannot resolve is accepted; failure is the
	// runtime's business, not the HTTP caller's.
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"selector":"bogus,none"}`)
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/interfaces", body))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("add interface status = %d, want 202", rec.Code)
	}
	if len(host.requests) != 1 || host.requests[0] != "bogus,none" {
		t.Errorf("host requests = %v", host.requests)
	}
}

func TestChoicesEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t, "")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/interfaces/choices", nil))

	var choices []modules.SelectorChoice
	if err := json.Unmarshal(rec.Body.Bytes(), &choices); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(choices) != 1 || choices[0].Key != "telnet" {
		t.Errorf("choices = %v", choices)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t, "")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("metrics output missing standard collectors")
	}
}

func TestBasicAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	handler, _ := newTestHandler(t, string(hash))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/status", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/status", nil)
	req.SetBasicAuth("anyone", "secret")
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/status", nil)
	req.SetBasicAuth("anyone", "wrong")
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d", rec.Code)
	}
}
