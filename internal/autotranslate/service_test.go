package autotranslate_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-pagecms/internal/autotranslate"
	"github.com/goliatone/go-pagecms/internal/content"
	"github.com/goliatone/go-pagecms/internal/translations"
	"github.com/goliatone/go-pagecms/pkg/interfaces"
	"github.com/google/uuid"
)

type fixture struct {
	content *content.Service
	store   *translations.Service
}

func newFixture(t *testing.T, langs ...string) *fixture {
	t.Helper()
	ctx := context.Background()
	contentSvc := content.NewService(content.NewMemoryRepository())
	store, err := translations.NewService(translations.NewMemoryRepository(), contentSvc,
		translations.WithBaseLanguage("en_US"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, lang := range langs {
		if _, err := store.AddLanguage(ctx, lang, lang, ""); err != nil {
			t.Fatalf("add language %s: %v", lang, err)
		}
	}
	return &fixture{content: contentSvc, store: store}
}

func (f *fixture) newTitleComponent(t *testing.T, baseValue string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	page, err := f.content.CreatePage(ctx, content.CreatePageInput{Name: "Home", Slug: "home-" + uuid.NewString()})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	block, err := f.content.CreateBlock(ctx, content.CreateBlockInput{
		PageID: page.ID,
		Name:   "Heading",
		Type:   content.BlockTypeHeading,
	})
	if err != nil {
		t.Fatalf("create block: %v", err)
	}
	if baseValue != "" {
		if err := f.content.SetComponentField(ctx, content.EntityBlockTitle, *block.HeadingTitleID, content.FieldTitle, baseValue); err != nil {
			t.Fatalf("seed base value: %v", err)
		}
	}
	return *block.HeadingTitleID
}

// stubTranslator tags texts with the target language; langs listed in fail
// return an error instead.
type stubTranslator struct {
	fail  map[string]bool
	calls []string
}

func (s *stubTranslator) Translate(_ context.Context, texts []string, _, targetLang string) ([]string, error) {
	s.calls = append(s.calls, targetLang)
	if s.fail[targetLang] {
		return nil, errors.New("provider unavailable")
	}
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = fmt.Sprintf("[%s] %s", targetLang, text)
	}
	return out, nil
}

func TestBootstrapFieldSeedsAllTargets(t *testing.T) {
	f := newFixture(t, "en_US", "fr_FR", "es_ES")
	componentID := f.newTitleComponent(t, "Welcome")
	provider := &stubTranslator{}
	svc := autotranslate.NewService(f.store, provider)
	ctx := context.Background()

	outcome, err := svc.BootstrapField(ctx, content.EntityBlockTitle, componentID, content.FieldTitle)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if outcome.Seeded() != 2 || outcome.Failed() != 0 {
		t.Fatalf("expected 2 seeded got %d seeded %d failed", outcome.Seeded(), outcome.Failed())
	}

	record, err := f.store.Get(ctx, content.EntityBlockTitle, componentID, content.FieldTitle, "fr_FR")
	if err != nil {
		t.Fatalf("get fr record: %v", err)
	}
	if record.Value != "[fr] Welcome" {
		t.Fatalf("expected provider value got %q", record.Value)
	}
	if record.State != translations.StateMachine {
		t.Fatalf("expected machine state got %q", record.State)
	}
}

func TestBootstrapFieldIsolatesFailures(t *testing.T) {
	f := newFixture(t, "en_US", "fr_FR", "es_ES", "de_DE")
	componentID := f.newTitleComponent(t, "Welcome")
	provider := &stubTranslator{fail: map[string]bool{"es": true}}
	svc := autotranslate.NewService(f.store, provider)
	ctx := context.Background()

	outcome, err := svc.BootstrapField(ctx, content.EntityBlockTitle, componentID, content.FieldTitle)
	if err != nil {
		t.Fatalf("expected per-language isolation, run failed: %v", err)
	}
	if outcome.Seeded() != 2 || outcome.Failed() != 1 {
		t.Fatalf("expected 2 seeded 1 failed got %d/%d", outcome.Seeded(), outcome.Failed())
	}

	// The failed language must have no stored record.
	if _, err := f.store.Get(ctx, content.EntityBlockTitle, componentID, content.FieldTitle, "es_ES"); !errors.Is(err, translations.ErrRecordNotFound) {
		t.Fatalf("expected no es record got %v", err)
	}
	if _, err := f.store.Get(ctx, content.EntityBlockTitle, componentID, content.FieldTitle, "de_DE"); err != nil {
		t.Fatalf("expected de record: %v", err)
	}
}

func TestBootstrapFieldEmptySource(t *testing.T) {
	f := newFixture(t, "en_US", "fr_FR")
	componentID := f.newTitleComponent(t, "")
	svc := autotranslate.NewService(f.store, &stubTranslator{})

	_, err := svc.BootstrapField(context.Background(), content.EntityBlockTitle, componentID, content.FieldTitle)
	if !errors.Is(err, autotranslate.ErrEmptySource) {
		t.Fatalf("expected ErrEmptySource got %v", err)
	}
}

func TestBootstrapFieldRequiresProvider(t *testing.T) {
	f := newFixture(t)
	svc := autotranslate.NewService(f.store, nil)

	_, err := svc.BootstrapField(context.Background(), content.EntityBlockTitle, uuid.New(), content.FieldTitle)
	if !errors.Is(err, autotranslate.ErrProviderRequired) {
		t.Fatalf("expected ErrProviderRequired got %v", err)
	}
}

func TestBootstrapFieldKeepsSourceOnEmptyBatch(t *testing.T) {
	f := newFixture(t, "en_US", "fr_FR")
	componentID := f.newTitleComponent(t, "Welcome")
	provider := interfaces.MachineTranslatorFunc(func(context.Context, []string, string, string) ([]string, error) {
		return nil, nil
	})
	svc := autotranslate.NewService(f.store, provider)
	ctx := context.Background()

	outcome, err := svc.BootstrapField(ctx, content.EntityBlockTitle, componentID, content.FieldTitle)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if outcome.Seeded() != 1 {
		t.Fatalf("expected 1 seeded got %d", outcome.Seeded())
	}
	record, err := f.store.Get(ctx, content.EntityBlockTitle, componentID, content.FieldTitle, "fr_FR")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if record.Value != "Welcome" {
		t.Fatalf("expected source text kept got %q", record.Value)
	}
}

func TestProviderLangCode(t *testing.T) {
	cases := map[string]string{
		"fr_FR":  "fr",
		"zh_CN":  "zh-CN",
		"zh_TW":  "zh-TW",
		"pt_BR":  "pt",
		"gl_ES":  "gl",
		"eo":     "eo",
		" en_US": "en",
	}
	for code, want := range cases {
		if got := autotranslate.ProviderLangCode(code); got != want {
			t.Fatalf("ProviderLangCode(%q) = %q want %q", code, got, want)
		}
	}
}
