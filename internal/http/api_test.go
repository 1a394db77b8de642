package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-pagecms/internal/assembler"
	"github.com/goliatone/go-pagecms/internal/content"
	cmshttp "github.com/goliatone/go-pagecms/internal/http"
	"github.com/goliatone/go-pagecms/internal/translations"
	"github.com/goliatone/go-pagecms/pkg/interfaces"
	"github.com/google/uuid"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Error   string          `json:"error"`
}

type staticUsers []interfaces.UserRecord

func (u staticUsers) ListUsers(_ context.Context, limit int) ([]interfaces.UserRecord, error) {
	if limit < len(u) {
		return u[:limit], nil
	}
	return u, nil
}

func newMux(t *testing.T, opts ...cmshttp.Option) (*http.ServeMux, *content.Service, *translations.Service) {
	t.Helper()
	contentSvc := content.NewService(content.NewMemoryRepository())
	store, err := translations.NewService(translations.NewMemoryRepository(), contentSvc,
		translations.WithBaseLanguage("en_US"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	pages := assembler.NewService(contentSvc, store)

	mux := http.NewServeMux()
	cmshttp.NewAPI(pages, store, opts...).Register(mux)
	return mux, contentSvc, store
}

func doRequest(t *testing.T, mux *http.ServeMux, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))

	var body envelope
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %s: %v (%s)", path, err, recorder.Body.String())
	}
	return recorder, body
}

func TestPageListEnvelope(t *testing.T) {
	mux, contentSvc, _ := newMux(t)
	ctx := context.Background()
	if _, err := contentSvc.CreatePage(ctx, content.CreatePageInput{Name: "Home", Slug: "home", Title: "Home"}); err != nil {
		t.Fatalf("create page: %v", err)
	}
	if _, err := contentSvc.CreatePage(ctx, content.CreatePageInput{Name: "About", Slug: "about"}); err != nil {
		t.Fatalf("create page: %v", err)
	}

	recorder, body := doRequest(t, mux, "/api/cms/pages")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", recorder.Code)
	}
	if contentType := recorder.Header().Get("Content-Type"); contentType != "application/json" {
		t.Fatalf("expected json content type got %q", contentType)
	}
	if !body.Success {
		t.Fatalf("expected success envelope got %s", recorder.Body.String())
	}
	if body.Count == nil || *body.Count != 2 {
		t.Fatalf("expected count 2 got %v", body.Count)
	}

	var summaries []assembler.PageSummary
	if err := json.Unmarshal(body.Data, &summaries); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(summaries) != 2 || summaries[0].Slug != "home" {
		t.Fatalf("unexpected summaries %+v", summaries)
	}
}

func TestPageGetResolvesLang(t *testing.T) {
	mux, contentSvc, store := newMux(t)
	ctx := context.Background()

	page, err := contentSvc.CreatePage(ctx, content.CreatePageInput{Name: "About", Slug: "about"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	block, err := contentSvc.CreateBlock(ctx, content.CreateBlockInput{
		PageID: page.ID,
		Name:   "Intro",
		Type:   content.BlockTypeHeading,
	})
	if err != nil {
		t.Fatalf("create block: %v", err)
	}
	if err := contentSvc.SetComponentField(ctx, content.EntityBlockTitle, *block.HeadingTitleID, content.FieldTitle, "Our Story"); err != nil {
		t.Fatalf("seed base: %v", err)
	}
	if err := store.Set(ctx, content.EntityBlockTitle, *block.HeadingTitleID, content.FieldTitle, "fr_FR", "Notre Histoire", ""); err != nil {
		t.Fatalf("seed fr: %v", err)
	}

	recorder, body := doRequest(t, mux, "/api/cms/page/about?lang=fr_FR")
	if recorder.Code != http.StatusOK || !body.Success {
		t.Fatalf("expected 200 success got %d %s", recorder.Code, recorder.Body.String())
	}
	var view assembler.PageView
	if err := json.Unmarshal(body.Data, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if len(view.Blocks) != 1 || view.Blocks[0].Text != "Notre Histoire" {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestPageGetUnknownSlug(t *testing.T) {
	mux, _, _ := newMux(t)

	recorder, body := doRequest(t, mux, "/api/cms/page/missing")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", recorder.Code)
	}
	if body.Success {
		t.Fatalf("expected failure envelope got %s", recorder.Body.String())
	}
	if body.Error == "" {
		t.Fatalf("expected error message in envelope")
	}
}

func TestTranslationsEndpoint(t *testing.T) {
	mux, _, store := newMux(t)
	ctx := context.Background()
	if _, err := store.AddDictionaryKey(ctx, "nav.home", ""); err != nil {
		t.Fatalf("add key: %v", err)
	}
	if err := store.SetDictionaryValue(ctx, "nav.home", "fr_FR", "Accueil"); err != nil {
		t.Fatalf("set value: %v", err)
	}

	recorder, body := doRequest(t, mux, "/api/translations/fr_FR")
	if recorder.Code != http.StatusOK || !body.Success {
		t.Fatalf("expected 200 success got %d %s", recorder.Code, recorder.Body.String())
	}
	var dictionary map[string]string
	if err := json.Unmarshal(body.Data, &dictionary); err != nil {
		t.Fatalf("decode dictionary: %v", err)
	}
	if dictionary["nav.home"] != "Accueil" {
		t.Fatalf("expected fr value got %q", dictionary["nav.home"])
	}
	if body.Count == nil || *body.Count != 1 {
		t.Fatalf("expected count 1 got %v", body.Count)
	}
}

func TestLanguagesEndpoint(t *testing.T) {
	mux, _, store := newMux(t)
	if _, err := store.AddLanguage(context.Background(), "fr_FR", "French", "fr"); err != nil {
		t.Fatalf("add language: %v", err)
	}

	recorder, body := doRequest(t, mux, "/api/languages")
	if recorder.Code != http.StatusOK || !body.Success {
		t.Fatalf("expected 200 success got %d %s", recorder.Code, recorder.Body.String())
	}
	var languages []struct {
		Code    string `json:"code"`
		Name    string `json:"name"`
		ISOCode string `json:"isoCode"`
	}
	if err := json.Unmarshal(body.Data, &languages); err != nil {
		t.Fatalf("decode languages: %v", err)
	}
	if len(languages) != 1 || languages[0].Code != "fr_FR" || languages[0].ISOCode != "fr" {
		t.Fatalf("unexpected languages %+v", languages)
	}
}

func TestUsersEndpoint(t *testing.T) {
	directory := staticUsers{
		{ID: uuid.NewString(), Name: "Ada Lovelace", Login: "ada", Active: true},
		{ID: uuid.NewString(), Name: "Alan Turing", Login: "alan", Active: true},
	}
	mux, _, _ := newMux(t, cmshttp.WithUserDirectory(directory))

	recorder, body := doRequest(t, mux, "/api/users?limit=1")
	if recorder.Code != http.StatusOK || !body.Success {
		t.Fatalf("expected 200 success got %d %s", recorder.Code, recorder.Body.String())
	}
	var users []interfaces.UserRecord
	if err := json.Unmarshal(body.Data, &users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(users) != 1 || users[0].Login != "ada" {
		t.Fatalf("unexpected users %+v", users)
	}

	// No directory wired: the endpoint degrades to an empty list.
	bare, _, _ := newMux(t)
	recorder, body = doRequest(t, bare, "/api/users")
	if recorder.Code != http.StatusOK || body.Count == nil || *body.Count != 0 {
		t.Fatalf("expected empty list got %d %s", recorder.Code, recorder.Body.String())
	}
}

func TestCustomBasePath(t *testing.T) {
	mux, _, _ := newMux(t, cmshttp.WithBasePath("/v1/api"))

	recorder, body := doRequest(t, mux, "/v1/api/cms/pages")
	if recorder.Code != http.StatusOK || !body.Success {
		t.Fatalf("expected 200 success got %d %s", recorder.Code, recorder.Body.String())
	}
}
