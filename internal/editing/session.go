package editing

import (
	"context"
	"strings"

	"github.com/goliatone/go-pagecms/internal/content"
	"github.com/goliatone/go-pagecms/internal/logging"
	"github.com/goliatone/go-pagecms/internal/translations"
	"github.com/goliatone/go-pagecms/pkg/activity"
	"github.com/goliatone/go-pagecms/pkg/interfaces"
	"github.com/google/uuid"
)

// State names a session's position in its lifecycle.
type State string

const (
	StateClosed  State = "closed"
	StateLoaded  State = "loaded"
	StateEditing State = "editing"
	StateSaved   State = "saved"
)

// TranslationLine is one editable (block, field) pair for the session's
// target language. Lines are transient; they live only while the session is
// open.
type TranslationLine struct {
	ID              int
	BlockID         uuid.UUID
	BlockName       string
	FieldLabel      string
	SourceValue     string
	TranslatedValue string
	ComponentType   string
	ComponentID     uuid.UUID
	ComponentField  string
	IsHTMLContent   bool
}

// Session drives interactive field-by-field translation editing over one page
// or one block. Edits autosave through the translation store; persistence
// failures are logged and never interrupt the editor.
type Session struct {
	content  *content.Service
	store    *translations.Service
	logger   interfaces.Logger
	activity *activity.Emitter
	actorID  uuid.UUID

	state      State
	pageID     uuid.UUID
	blockID    uuid.UUID
	targetLang string
	lines      []TranslationLine
}

// SessionOption configures a Session instance.
type SessionOption func(*Session)

// WithLogger injects the editing logger.
func WithLogger(logger interfaces.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithActivityEmitter wires the emitter used to record save events.
func WithActivityEmitter(emitter *activity.Emitter) SessionOption {
	return func(s *Session) {
		if emitter != nil {
			s.activity = emitter
		}
	}
}

// WithActor attributes emitted activity events to the given editor.
func WithActor(actorID uuid.UUID) SessionOption {
	return func(s *Session) {
		s.actorID = actorID
	}
}

// NewSession constructs a closed session over the given services.
func NewSession(contentSvc *content.Service, store *translations.Service, opts ...SessionOption) *Session {
	s := &Session{
		content:  contentSvc,
		store:    store,
		logger:   logging.NoOp(),
		activity: activity.NewEmitter(nil, activity.Config{}),
		state:    StateClosed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	return s.state
}

// TargetLang returns the language the session is editing.
func (s *Session) TargetLang() string {
	return s.targetLang
}

// Lines returns the session's translation lines in display order.
func (s *Session) Lines() []TranslationLine {
	out := make([]TranslationLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// OpenPage loads one line per translatable field across the page's active
// blocks. User list blocks carry no translatable fields and image alt text is
// edited per block, so both types are skipped here.
func (s *Session) OpenPage(ctx context.Context, pageID uuid.UUID, targetLang string) error {
	if err := s.checkOpen(targetLang); err != nil {
		return err
	}
	blocks, err := s.content.ListBlocksByPage(ctx, pageID)
	if err != nil {
		return err
	}

	s.pageID = pageID
	s.blockID = uuid.Nil
	s.targetLang = strings.TrimSpace(targetLang)
	s.lines = nil
	for _, block := range blocks {
		if !block.Active {
			continue
		}
		if block.Type == content.BlockTypeUserList || block.Type == content.BlockTypeImage {
			continue
		}
		if err := s.appendBlockLines(ctx, block); err != nil {
			return err
		}
	}
	s.state = StateLoaded
	s.logger.Debug("editing.session.opened", "page_id", pageID, "lang", s.targetLang, "lines", len(s.lines))
	return nil
}

// OpenBlock loads one line per translatable field of a single block,
// including image alt text.
func (s *Session) OpenBlock(ctx context.Context, blockID uuid.UUID, targetLang string) error {
	if err := s.checkOpen(targetLang); err != nil {
		return err
	}
	block, err := s.content.GetBlockByID(ctx, blockID)
	if err != nil {
		return err
	}

	s.pageID = uuid.Nil
	s.blockID = blockID
	s.targetLang = strings.TrimSpace(targetLang)
	s.lines = nil
	if err := s.appendBlockLines(ctx, block); err != nil {
		return err
	}
	s.state = StateLoaded
	s.logger.Debug("editing.session.opened", "block_id", blockID, "lang", s.targetLang, "lines", len(s.lines))
	return nil
}

// ChangeLanguage discards every line and rebuilds the set for the new target
// language, so switching never accumulates duplicates.
func (s *Session) ChangeLanguage(ctx context.Context, newLang string) error {
	if s.state == StateClosed {
		return ErrSessionClosed
	}
	pageID, blockID := s.pageID, s.blockID
	s.state = StateClosed
	s.lines = nil
	if blockID != uuid.Nil {
		return s.OpenBlock(ctx, blockID, newLang)
	}
	return s.OpenPage(ctx, pageID, newLang)
}

// EditLine updates a line's translated value and autosaves it. The save is
// best effort: guard skips and persistence failures are logged, never
// surfaced, so a flaky store cannot interrupt the editor mid-session.
func (s *Session) EditLine(ctx context.Context, lineID int, newValue string) error {
	if s.state == StateClosed {
		return ErrSessionClosed
	}
	line := s.findLine(lineID)
	if line == nil {
		return &LineNotFoundError{ID: lineID}
	}

	line.TranslatedValue = newValue
	s.state = StateEditing
	s.autosaveLine(ctx, line)
	return nil
}

// SaveAll persists every line in one pass using the autosave normalization
// rule. Empty lines are skipped, not erased. Failures are logged and the pass
// continues.
func (s *Session) SaveAll(ctx context.Context) error {
	if s.state == StateClosed {
		return ErrSessionClosed
	}

	saved := 0
	for i := range s.lines {
		line := &s.lines[i]
		value := line.TranslatedValue
		if !line.IsHTMLContent {
			value = NormalizeValue(value)
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		if line.ComponentID == uuid.Nil {
			s.logger.Warn("editing.save.missing_component", "block_id", line.BlockID, "field", line.FieldLabel)
			continue
		}
		if err := s.store.Set(ctx, line.ComponentType, line.ComponentID, line.ComponentField, s.targetLang, value, translations.StateHuman); err != nil {
			s.logger.Warn("editing.save.failed",
				"block_id", line.BlockID,
				"field", line.FieldLabel,
				"lang", s.targetLang,
				"error", err,
			)
			continue
		}
		saved++
	}

	s.state = StateSaved
	s.emitSaved(ctx, saved)
	s.logger.Info("editing.session.saved", "lang", s.targetLang, "lines", len(s.lines), "saved", saved)
	return nil
}

// Close discards the session's lines and returns it to the closed state.
func (s *Session) Close() {
	s.state = StateClosed
	s.pageID = uuid.Nil
	s.blockID = uuid.Nil
	s.targetLang = ""
	s.lines = nil
}

func (s *Session) checkOpen(targetLang string) error {
	if s.state != StateClosed {
		return ErrSessionOpen
	}
	lang := strings.TrimSpace(targetLang)
	if lang == "" {
		return ErrLangRequired
	}
	if lang == s.store.BaseLang() {
		return ErrBaseLangTarget
	}
	return nil
}

func (s *Session) appendBlockLines(ctx context.Context, block *content.Block) error {
	for _, ref := range block.TranslatableRefs() {
		source, err := s.store.Resolve(ctx, ref.EntityType, ref.EntityID, ref.Field, s.store.BaseLang())
		if err != nil {
			return err
		}
		translated, err := s.store.Resolve(ctx, ref.EntityType, ref.EntityID, ref.Field, s.targetLang)
		if err != nil {
			return err
		}
		s.lines = append(s.lines, TranslationLine{
			ID:              len(s.lines) + 1,
			BlockID:         block.ID,
			BlockName:       block.Name,
			FieldLabel:      ref.Label,
			SourceValue:     source,
			TranslatedValue: translated,
			ComponentType:   ref.EntityType,
			ComponentID:     ref.EntityID,
			ComponentField:  ref.Field,
			IsHTMLContent:   IsHTMLContent(source),
		})
	}
	return nil
}

func (s *Session) findLine(lineID int) *TranslationLine {
	for i := range s.lines {
		if s.lines[i].ID == lineID {
			return &s.lines[i]
		}
	}
	return nil
}

// autosaveLine applies the autosave guards: empty values and values equal to
// the source are not edits, and lines without a component reference have
// nowhere to write.
func (s *Session) autosaveLine(ctx context.Context, line *TranslationLine) {
	value := line.TranslatedValue
	if !line.IsHTMLContent {
		value = NormalizeValue(value)
	}
	if strings.TrimSpace(value) == "" {
		return
	}
	if value == line.SourceValue {
		return
	}
	if line.ComponentID == uuid.Nil {
		s.logger.Warn("editing.autosave.missing_component", "block_id", line.BlockID, "field", line.FieldLabel)
		return
	}
	if err := s.store.Set(ctx, line.ComponentType, line.ComponentID, line.ComponentField, s.targetLang, value, translations.StateHuman); err != nil {
		s.logger.Warn("editing.autosave.failed",
			"block_id", line.BlockID,
			"field", line.FieldLabel,
			"lang", s.targetLang,
			"error", err,
		)
	}
}

func (s *Session) emitSaved(ctx context.Context, saved int) {
	if !s.activity.Enabled() {
		return
	}
	objectType, objectID := "page", s.pageID
	if s.blockID != uuid.Nil {
		objectType, objectID = "block", s.blockID
	}
	if objectID == uuid.Nil {
		return
	}
	_ = s.activity.Emit(ctx, activity.Event{
		Verb:       "translate",
		ActorID:    s.actorID.String(),
		ObjectType: objectType,
		ObjectID:   objectID.String(),
		Metadata: map[string]any{
			"lang":  s.targetLang,
			"saved": saved,
		},
	})
}
