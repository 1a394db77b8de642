package editing_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-pagecms/internal/content"
	"github.com/goliatone/go-pagecms/internal/editing"
	"github.com/goliatone/go-pagecms/internal/translations"
	"github.com/goliatone/go-pagecms/pkg/activity"
	"github.com/google/uuid"
)

// flakyRepository fails record upserts while armed, so autosave failure
// handling can be exercised without a real backend outage.
type flakyRepository struct {
	*translations.MemoryRepository
	failWrites bool
}

func (r *flakyRepository) UpsertRecord(ctx context.Context, record *translations.Record) (*translations.Record, error) {
	if r.failWrites {
		return nil, errors.New("backend unavailable")
	}
	return r.MemoryRepository.UpsertRecord(ctx, record)
}

type fixture struct {
	content *content.Service
	store   *translations.Service
	repo    *flakyRepository
	page    *content.Page
	hero    *content.Block
	heading *content.Block
	html    *content.Block
	image   *content.Block
	users   *content.Block
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	contentSvc := content.NewService(content.NewMemoryRepository())
	repo := &flakyRepository{MemoryRepository: translations.NewMemoryRepository()}
	store, err := translations.NewService(repo, contentSvc, translations.WithBaseLanguage("en_US"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	page, err := contentSvc.CreatePage(ctx, content.CreatePageInput{Name: "About", Slug: "about"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	f := &fixture{content: contentSvc, store: store, repo: repo, page: page}
	specs := []struct {
		target **content.Block
		name   string
		typ    content.BlockType
		seq    int
	}{
		{&f.hero, "Hero", content.BlockTypeHero, 10},
		{&f.heading, "Intro", content.BlockTypeHeading, 20},
		{&f.html, "Body", content.BlockTypeHTML, 30},
		{&f.image, "Banner", content.BlockTypeImage, 40},
		{&f.users, "Team", content.BlockTypeUserList, 50},
	}
	for _, spec := range specs {
		block, err := contentSvc.CreateBlock(ctx, content.CreateBlockInput{
			PageID:   page.ID,
			Name:     spec.name,
			Type:     spec.typ,
			Sequence: spec.seq,
		})
		if err != nil {
			t.Fatalf("create %s block: %v", spec.name, err)
		}
		*spec.target = block
	}

	set := func(entityType string, id uuid.UUID, field, value string) {
		if err := contentSvc.SetComponentField(ctx, entityType, id, field, value); err != nil {
			t.Fatalf("seed %s: %v", field, err)
		}
	}
	set(content.EntityBlockTitle, *f.hero.HeroTitleID, content.FieldTitle, "Welcome")
	set(content.EntityBlockTitle, *f.hero.HeroSubtitleID, content.FieldTitle, "We build things")
	set(content.EntityBlockTitle, *f.hero.HeroButtonTextID, content.FieldTitle, "Learn More")
	set(content.EntityBlockTitle, *f.heading.HeadingTitleID, content.FieldTitle, "Our Story")
	set(content.EntityBlockHTML, *f.html.HTMLComponentID, content.FieldContent, "<p>It began <b>small</b>.</p>")
	set(content.EntityBlockImage, *f.image.ImageComponentID, content.FieldAlt, "Team photo")
	return f
}

func (f *fixture) session(opts ...editing.SessionOption) *editing.Session {
	return editing.NewSession(f.content, f.store, opts...)
}

func lineByLabel(t *testing.T, session *editing.Session, label string) editing.TranslationLine {
	t.Helper()
	for _, line := range session.Lines() {
		if line.FieldLabel == label {
			return line
		}
	}
	t.Fatalf("no line labelled %q", label)
	return editing.TranslationLine{}
}

func TestOpenPageSkipsNonEditableBlocks(t *testing.T) {
	f := newFixture(t)
	session := f.session()

	if err := session.OpenPage(context.Background(), f.page.ID, "fr_FR"); err != nil {
		t.Fatalf("open page: %v", err)
	}
	if session.State() != editing.StateLoaded {
		t.Fatalf("expected loaded state got %s", session.State())
	}

	lines := session.Lines()
	// Hero contributes 3 lines, heading and html 1 each. Image and user list
	// blocks are excluded from page sessions.
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines got %d", len(lines))
	}
	for i, line := range lines {
		if line.ID != i+1 {
			t.Fatalf("expected sequential ids got %d at %d", line.ID, i)
		}
		if line.BlockID == f.image.ID || line.BlockID == f.users.ID {
			t.Fatalf("line %q leaked from excluded block", line.FieldLabel)
		}
	}

	htmlLine := lineByLabel(t, session, "HTML Content")
	if !htmlLine.IsHTMLContent {
		t.Fatalf("expected html line flagged as markup")
	}
	if lineByLabel(t, session, "Hero Title").IsHTMLContent {
		t.Fatalf("plain title flagged as markup")
	}
}

func TestOpenPageGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session := f.session()
	if err := session.OpenPage(ctx, f.page.ID, ""); !errors.Is(err, editing.ErrLangRequired) {
		t.Fatalf("expected ErrLangRequired got %v", err)
	}
	if err := session.OpenPage(ctx, f.page.ID, "en_US"); !errors.Is(err, editing.ErrBaseLangTarget) {
		t.Fatalf("expected ErrBaseLangTarget got %v", err)
	}

	if err := session.OpenPage(ctx, f.page.ID, "fr_FR"); err != nil {
		t.Fatalf("open page: %v", err)
	}
	if err := session.OpenPage(ctx, f.page.ID, "es_ES"); !errors.Is(err, editing.ErrSessionOpen) {
		t.Fatalf("expected ErrSessionOpen got %v", err)
	}
}

func TestOpenBlockIncludesImageAlt(t *testing.T) {
	f := newFixture(t)
	session := f.session()

	if err := session.OpenBlock(context.Background(), f.image.ID, "fr_FR"); err != nil {
		t.Fatalf("open block: %v", err)
	}
	lines := session.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line got %d", len(lines))
	}
	if lines[0].FieldLabel != "Image Alt Text" {
		t.Fatalf("expected alt line got %q", lines[0].FieldLabel)
	}
	if lines[0].SourceValue != "Team photo" {
		t.Fatalf("expected seeded alt got %q", lines[0].SourceValue)
	}
}

func TestEditLineAutosaves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := f.session()
	if err := session.OpenPage(ctx, f.page.ID, "fr_FR"); err != nil {
		t.Fatalf("open page: %v", err)
	}

	line := lineByLabel(t, session, "Hero Title")
	if err := session.EditLine(ctx, line.ID, "<p>Bienvenue</p>"); err != nil {
		t.Fatalf("edit line: %v", err)
	}
	if session.State() != editing.StateEditing {
		t.Fatalf("expected editing state got %s", session.State())
	}

	// Autosave persists the normalized value; the line keeps the raw edit.
	record, err := f.store.Get(ctx, content.EntityBlockTitle, line.ComponentID, content.FieldTitle, "fr_FR")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if record.Value != "Bienvenue" {
		t.Fatalf("expected normalized autosave got %q", record.Value)
	}
	if record.State != translations.StateHuman {
		t.Fatalf("expected human state got %q", record.State)
	}
	if got := lineByLabel(t, session, "Hero Title").TranslatedValue; got != "<p>Bienvenue</p>" {
		t.Fatalf("expected raw value retained got %q", got)
	}
}

func TestEditLineAutosaveGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := f.session()
	if err := session.OpenPage(ctx, f.page.ID, "fr_FR"); err != nil {
		t.Fatalf("open page: %v", err)
	}
	line := lineByLabel(t, session, "Hero Title")

	// Empty values and values equal to the source are not edits.
	for _, value := range []string{"", "   ", "Welcome", "<p>Welcome</p>"} {
		if err := session.EditLine(ctx, line.ID, value); err != nil {
			t.Fatalf("edit line %q: %v", value, err)
		}
		if _, err := f.store.Get(ctx, content.EntityBlockTitle, line.ComponentID, content.FieldTitle, "fr_FR"); !errors.Is(err, translations.ErrRecordNotFound) {
			t.Fatalf("guard failed for %q: record was written", value)
		}
	}

	if err := session.EditLine(ctx, 999, "Bonjour"); !errors.Is(err, editing.ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound got %v", err)
	}
}

func TestEditLineSurvivesStoreFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := f.session()
	if err := session.OpenPage(ctx, f.page.ID, "fr_FR"); err != nil {
		t.Fatalf("open page: %v", err)
	}

	f.repo.failWrites = true
	line := lineByLabel(t, session, "Hero Title")
	if err := session.EditLine(ctx, line.ID, "Bienvenue"); err != nil {
		t.Fatalf("expected autosave failure swallowed, got %v", err)
	}
	if session.State() != editing.StateEditing {
		t.Fatalf("expected editing state got %s", session.State())
	}
	if got := lineByLabel(t, session, "Hero Title").TranslatedValue; got != "Bienvenue" {
		t.Fatalf("expected in-session value kept got %q", got)
	}
}

func TestChangeLanguageRebuildsLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := f.session()
	if err := session.OpenPage(ctx, f.page.ID, "fr_FR"); err != nil {
		t.Fatalf("open page: %v", err)
	}
	line := lineByLabel(t, session, "Hero Title")
	if err := session.EditLine(ctx, line.ID, "Bienvenue"); err != nil {
		t.Fatalf("edit line: %v", err)
	}

	if err := session.ChangeLanguage(ctx, "es_ES"); err != nil {
		t.Fatalf("change language: %v", err)
	}
	if session.TargetLang() != "es_ES" {
		t.Fatalf("expected es_ES got %q", session.TargetLang())
	}
	lines := session.Lines()
	if len(lines) != 5 {
		t.Fatalf("expected rebuilt lines without duplicates got %d", len(lines))
	}
	// The fr edit must not leak into the es session.
	if got := lineByLabel(t, session, "Hero Title").TranslatedValue; got == "Bienvenue" {
		t.Fatalf("fr value leaked into es session")
	}

	closed := f.session()
	if err := closed.ChangeLanguage(ctx, "es_ES"); !errors.Is(err, editing.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed got %v", err)
	}
}

func TestSaveAllPersistsNonEmptyLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	capture := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{capture}, activity.Config{Enabled: true})
	actorID := uuid.New()

	session := f.session(
		editing.WithActivityEmitter(emitter),
		editing.WithActor(actorID),
	)
	if err := session.OpenPage(ctx, f.page.ID, "fr_FR"); err != nil {
		t.Fatalf("open page: %v", err)
	}

	hero := lineByLabel(t, session, "Hero Title")
	heading := lineByLabel(t, session, "Heading")
	if err := session.EditLine(ctx, hero.ID, "Bienvenue"); err != nil {
		t.Fatalf("edit hero: %v", err)
	}
	if err := session.EditLine(ctx, heading.ID, "<div>Notre Histoire</div>"); err != nil {
		t.Fatalf("edit heading: %v", err)
	}

	if err := session.SaveAll(ctx); err != nil {
		t.Fatalf("save all: %v", err)
	}
	if session.State() != editing.StateSaved {
		t.Fatalf("expected saved state got %s", session.State())
	}

	record, err := f.store.Get(ctx, content.EntityBlockTitle, heading.ComponentID, content.FieldTitle, "fr_FR")
	if err != nil {
		t.Fatalf("get heading record: %v", err)
	}
	if record.Value != "Notre Histoire" {
		t.Fatalf("expected normalized save got %q", record.Value)
	}

	// Untouched lines save their resolved value; lines that resolved empty in
	// the target language fall back to the base value, which is non-empty here,
	// so they are persisted too. Empty lines are skipped, never erased.
	if len(capture.Events) != 1 {
		t.Fatalf("expected 1 activity event got %d", len(capture.Events))
	}
	event := capture.Events[0]
	if event.Verb != "translate" || event.ObjectType != "page" || event.ObjectID != f.page.ID.String() {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.ActorID != actorID.String() {
		t.Fatalf("expected actor %s got %s", actorID, event.ActorID)
	}
	if event.Metadata["lang"] != "fr_FR" {
		t.Fatalf("expected lang metadata got %v", event.Metadata["lang"])
	}

	closed := f.session()
	if err := closed.SaveAll(ctx); !errors.Is(err, editing.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed got %v", err)
	}
}

func TestCloseResetsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := f.session()
	if err := session.OpenPage(ctx, f.page.ID, "fr_FR"); err != nil {
		t.Fatalf("open page: %v", err)
	}

	session.Close()
	if session.State() != editing.StateClosed {
		t.Fatalf("expected closed state got %s", session.State())
	}
	if len(session.Lines()) != 0 {
		t.Fatalf("expected lines discarded")
	}
	if err := session.OpenBlock(ctx, f.heading.ID, "es_ES"); err != nil {
		t.Fatalf("reopen after close: %v", err)
	}
}

func TestPreviewUsesUnsavedEdits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := f.session()
	if err := session.OpenPage(ctx, f.page.ID, "fr_FR"); err != nil {
		t.Fatalf("open page: %v", err)
	}

	hero := lineByLabel(t, session, "Hero Title")
	if err := session.EditLine(ctx, hero.ID, "<p>Bienvenue</p>"); err != nil {
		t.Fatalf("edit hero: %v", err)
	}

	preview, err := session.Preview(ctx)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.HasPrefix(preview, `<div class="cms-preview">`) {
		t.Fatalf("expected preview wrapper got %q", preview)
	}
	// The unsaved edit shows normalized; untouched fields resolve from the
	// store and fall back to their base values.
	if !strings.Contains(preview, `<h1 data-field="Hero Title">Bienvenue</h1>`) {
		t.Fatalf("expected edited hero title in preview:\n%s", preview)
	}
	if !strings.Contains(preview, `<p data-field="Hero Subtitle">We build things</p>`) {
		t.Fatalf("expected fallback subtitle in preview:\n%s", preview)
	}
	if !strings.Contains(preview, `<button data-field="Button Text">Learn More</button>`) {
		t.Fatalf("expected button text in preview:\n%s", preview)
	}
	// HTML content passes through unescaped.
	if !strings.Contains(preview, "<p>It began <b>small</b>.</p>") {
		t.Fatalf("expected raw html content in preview:\n%s", preview)
	}
	if !strings.Contains(preview, "<em>User List (dynamic content)</em>") {
		t.Fatalf("expected user list placeholder in preview:\n%s", preview)
	}
	if !strings.Contains(preview, `alt="Team photo"`) {
		t.Fatalf("expected image alt in preview:\n%s", preview)
	}

	closed := f.session()
	if _, err := closed.Preview(ctx); !errors.Is(err, editing.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed got %v", err)
	}
}

func TestPreviewHeroButtonDefault(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if err := f.content.SetComponentField(ctx, content.EntityBlockTitle, *f.hero.HeroButtonTextID, content.FieldTitle, ""); err != nil {
		t.Fatalf("clear button text: %v", err)
	}

	session := f.session()
	if err := session.OpenBlock(ctx, f.hero.ID, "fr_FR"); err != nil {
		t.Fatalf("open block: %v", err)
	}
	preview, err := session.Preview(ctx)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(preview, `<button data-field="Button Text">Get Started</button>`) {
		t.Fatalf("expected default button text in preview:\n%s", preview)
	}
}

func TestPreviewEscapesPlainFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := f.session()
	if err := session.OpenBlock(ctx, f.heading.ID, "fr_FR"); err != nil {
		t.Fatalf("open block: %v", err)
	}
	line := lineByLabel(t, session, "Heading")
	if err := session.EditLine(ctx, line.ID, `Bonjour & "amis"`); err != nil {
		t.Fatalf("edit line: %v", err)
	}

	preview, err := session.Preview(ctx)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(preview, "Bonjour &amp; &#34;amis&#34;") {
		t.Fatalf("expected escaped heading in preview:\n%s", preview)
	}
	if !strings.Contains(preview, "<h2 data-block=") {
		t.Fatalf("expected h2 heading tag in preview:\n%s", preview)
	}
}
