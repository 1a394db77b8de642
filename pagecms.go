// Package pagecms assembles the localizable page CMS: a content tree of pages,
// ordered blocks, and typed components, translation storage with deterministic
// language fallback, machine-translation seeding, and an editing workflow with
// live preview.
package pagecms

import (
	"errors"
	"strings"

	"github.com/goliatone/go-pagecms/internal/assembler"
	"github.com/goliatone/go-pagecms/internal/autotranslate"
	"github.com/goliatone/go-pagecms/internal/content"
	"github.com/goliatone/go-pagecms/internal/editing"
	pagecmshttp "github.com/goliatone/go-pagecms/internal/http"
	"github.com/goliatone/go-pagecms/internal/logging"
	"github.com/goliatone/go-pagecms/internal/logging/gologger"
	"github.com/goliatone/go-pagecms/internal/markdown"
	"github.com/goliatone/go-pagecms/internal/translations"
	"github.com/goliatone/go-pagecms/pkg/activity"
	"github.com/goliatone/go-pagecms/pkg/activity/usersink"
	"github.com/goliatone/go-pagecms/pkg/interfaces"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrDatabaseRequired indicates bun storage was configured without a database.
var ErrDatabaseRequired = errors.New("pagecms: bun storage requires a database connection")

// ContentService exports the content service contract.
type ContentService = content.Service

// TranslationService exports the translation store contract.
type TranslationService = translations.Service

// AutoTranslateService exports the bootstrapper contract.
type AutoTranslateService = autotranslate.Service

// AssemblerService exports the page assembly contract.
type AssemblerService = assembler.Service

// EditingSession exports the editing session contract.
type EditingSession = editing.Session

// API exports the read API contract.
type API = pagecmshttp.API

// Importer exports the markdown seeding contract.
type Importer = markdown.Importer

// Module is the top level runtime facade.
type Module struct {
	cfg           Config
	loggers       interfaces.LoggerProvider
	content       *content.Service
	translations  *translations.Service
	autotranslate *autotranslate.Service
	assembler     *assembler.Service
	importer      *markdown.Importer
	api           *pagecmshttp.API
	emitter       *activity.Emitter
}

// Option overrides module dependencies during construction.
type Option func(*dependencies)

type dependencies struct {
	db            *bun.DB
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	translator    interfaces.MachineTranslator
	users         interfaces.UserDirectory
	sink          interfaces.ActivitySink
	loggers       interfaces.LoggerProvider
}

// WithDB wires the bun database used when storage is configured as "bun".
func WithDB(db *bun.DB) Option {
	return func(d *dependencies) {
		d.db = db
	}
}

// WithCache wires the repository cache used when caching is enabled.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(d *dependencies) {
		d.cacheService = service
		d.keySerializer = serializer
	}
}

// WithMachineTranslator wires the external MT provider for auto-translation.
func WithMachineTranslator(translator interfaces.MachineTranslator) Option {
	return func(d *dependencies) {
		d.translator = translator
	}
}

// WithUserDirectory wires the source behind user list blocks and /users.
func WithUserDirectory(users interfaces.UserDirectory) Option {
	return func(d *dependencies) {
		d.users = users
	}
}

// WithActivitySink wires the go-users sink receiving translation audit events.
func WithActivitySink(sink interfaces.ActivitySink) Option {
	return func(d *dependencies) {
		d.sink = sink
	}
}

// WithLoggerProvider overrides the logger provider built from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(d *dependencies) {
		d.loggers = provider
	}
}

// New constructs the module from configuration plus dependency overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps := dependencies{}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}

	loggers, err := buildLoggerProvider(cfg, deps.loggers)
	if err != nil {
		return nil, err
	}

	contentRepo, translationRepo, err := buildRepositories(cfg, deps)
	if err != nil {
		return nil, err
	}

	contentSvc := content.NewService(contentRepo,
		content.WithLogger(logging.ContentLogger(loggers)),
	)

	translationSvc, err := translations.NewService(translationRepo, contentSvc,
		translations.WithBaseLanguage(cfg.BaseLanguage),
		translations.WithLogger(logging.TranslationsLogger(loggers)),
	)
	if err != nil {
		return nil, err
	}

	m := &Module{
		cfg:          cfg,
		loggers:      loggers,
		content:      contentSvc,
		translations: translationSvc,
		emitter:      activity.NewEmitter(nil, activity.Config{}),
	}

	if cfg.Features.AutoTranslate && deps.translator != nil {
		m.autotranslate = autotranslate.NewService(translationSvc, deps.translator,
			autotranslate.WithLogger(logging.AutoTranslateLogger(loggers)),
			autotranslate.WithProviderTimeout(cfg.AutoTranslate.ProviderTimeout),
		)
	}

	if cfg.Features.Activity && deps.sink != nil {
		m.emitter = activity.NewEmitter(
			activity.Hooks{usersink.Hook{Sink: deps.sink}},
			activity.Config{Enabled: true, Channel: "pagecms"},
		)
	}

	m.assembler = assembler.NewService(contentSvc, translationSvc,
		assembler.WithUserDirectory(deps.users),
		assembler.WithLogger(logging.ModuleLogger(loggers, "")),
	)

	m.api = pagecmshttp.NewAPI(m.assembler, translationSvc,
		pagecmshttp.WithBasePath(cfg.HTTP.BasePath),
		pagecmshttp.WithUserDirectory(deps.users),
		pagecmshttp.WithLogger(logging.HTTPLogger(loggers)),
	)

	if cfg.Features.Markdown {
		m.importer = markdown.NewImporter(contentSvc,
			markdown.WithLogger(logging.MarkdownLogger(loggers)),
		)
	}

	return m, nil
}

// Content returns the content service.
func (m *Module) Content() *ContentService {
	return m.content
}

// Translations returns the translation store.
func (m *Module) Translations() *TranslationService {
	return m.translations
}

// AutoTranslate returns the bootstrapper, or nil when the feature is off or
// no provider was wired.
func (m *Module) AutoTranslate() *AutoTranslateService {
	return m.autotranslate
}

// Assembler returns the page view assembler.
func (m *Module) Assembler() *AssemblerService {
	return m.assembler
}

// API returns the read API.
func (m *Module) API() *API {
	return m.api
}

// Markdown returns the markdown importer, or nil when the feature is off.
func (m *Module) Markdown() *Importer {
	return m.importer
}

// NewEditingSession creates a closed editing session attributed to the actor.
func (m *Module) NewEditingSession(actorID uuid.UUID) *EditingSession {
	return editing.NewSession(m.content, m.translations,
		editing.WithLogger(logging.EditingLogger(m.loggers)),
		editing.WithActivityEmitter(m.emitter),
		editing.WithActor(actorID),
	)
}

func buildLoggerProvider(cfg Config, override interfaces.LoggerProvider) (interfaces.LoggerProvider, error) {
	if override != nil {
		return override, nil
	}
	if !cfg.Features.Logger {
		return nil, nil
	}
	format := cfg.Logging.Format
	if normalized := cfg.Logging.Provider; normalized == "console" && format == "" {
		format = "console"
	}
	return gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    format,
		AddSource: cfg.Logging.AddSource,
		Focus:     cfg.Logging.Focus,
	})
}

func buildRepositories(cfg Config, deps dependencies) (content.Repository, translations.Repository, error) {
	if strings.EqualFold(strings.TrimSpace(cfg.Storage.Provider), "bun") {
		if deps.db == nil {
			return nil, nil, ErrDatabaseRequired
		}
		if cfg.Cache.Enabled && deps.cacheService != nil {
			return content.NewBunRepositoryWithCache(deps.db, deps.cacheService, deps.keySerializer),
				translations.NewBunRepositoryWithCache(deps.db, deps.cacheService, deps.keySerializer),
				nil
		}
		return content.NewBunRepository(deps.db), translations.NewBunRepository(deps.db), nil
	}
	return content.NewMemoryRepository(), translations.NewMemoryRepository(), nil
}
