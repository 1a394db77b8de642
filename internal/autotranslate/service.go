package autotranslate

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-pagecms/internal/logging"
	"github.com/goliatone/go-pagecms/internal/translations"
	"github.com/goliatone/go-pagecms/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	// ErrProviderRequired indicates the machine-translation provider was not configured.
	ErrProviderRequired = errors.New("autotranslate: machine translation provider is not configured")
	// ErrEmptySource indicates the base-language value is blank.
	ErrEmptySource = errors.New("autotranslate: no content to translate")
)

// Result captures one target language's outcome in a bootstrap run.
type Result struct {
	Lang  string
	Value string
	Err   error
}

// Outcome aggregates per-language results so callers can log or surface them.
type Outcome struct {
	EntityType string
	EntityID   uuid.UUID
	Field      string
	Results    []Result
}

// Seeded counts languages that were translated and stored.
func (o Outcome) Seeded() int {
	count := 0
	for _, result := range o.Results {
		if result.Err == nil {
			count++
		}
	}
	return count
}

// Failed counts languages whose provider call or store write failed.
func (o Outcome) Failed() int {
	return len(o.Results) - o.Seeded()
}

// Service seeds missing-language translations for a component field via the
// external machine-translation provider.
type Service struct {
	store    *translations.Service
	provider interfaces.MachineTranslator
	logger   interfaces.Logger
	timeout  time.Duration
}

// Option configures a Service instance.
type Option func(*Service)

// WithLogger injects the bootstrapper logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProviderTimeout bounds each provider call. Zero disables the bound.
func WithProviderTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.timeout = timeout
	}
}

// NewService constructs the bootstrapper.
func NewService(store *translations.Service, provider interfaces.MachineTranslator, opts ...Option) *Service {
	s := &Service{
		store:    store,
		provider: provider,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BootstrapField machine-translates one component field into every active
// non-base language. Each language is processed independently: a provider
// failure for one language is recorded and logged, and the loop continues.
// Re-running overwrites previously stored machine translations.
func (s *Service) BootstrapField(ctx context.Context, entityType string, entityID uuid.UUID, field string) (Outcome, error) {
	outcome := Outcome{EntityType: entityType, EntityID: entityID, Field: field}

	if s.provider == nil {
		return outcome, ErrProviderRequired
	}

	source, err := s.store.Resolve(ctx, entityType, entityID, field, s.store.BaseLang())
	if err != nil {
		return outcome, err
	}
	if strings.TrimSpace(source) == "" {
		return outcome, ErrEmptySource
	}

	targets, err := s.store.TargetLanguages(ctx)
	if err != nil {
		return outcome, err
	}

	sourceCode := ProviderLangCode(s.store.BaseLang())
	for _, target := range targets {
		result := Result{Lang: target.Code}
		result.Value, result.Err = s.translateOne(ctx, source, sourceCode, target.Code)
		if result.Err == nil {
			result.Err = s.store.Set(ctx, entityType, entityID, field, target.Code, result.Value, translations.StateMachine)
		}
		if result.Err != nil {
			s.logger.Warn("autotranslate.language.failed",
				"language", target.Name,
				"code", target.Code,
				"entity_type", entityType,
				"entity_id", entityID,
				"field", field,
				"error", result.Err,
			)
		}
		outcome.Results = append(outcome.Results, result)
	}

	s.logger.Info("autotranslate.bootstrap.done",
		"entity_type", entityType,
		"entity_id", entityID,
		"field", field,
		"seeded", outcome.Seeded(),
		"failed", outcome.Failed(),
	)
	return outcome, nil
}

func (s *Service) translateOne(ctx context.Context, source, sourceCode, targetCode string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	translated, err := s.provider.Translate(ctx, []string{source}, sourceCode, ProviderLangCode(targetCode))
	if err != nil {
		return "", err
	}
	if len(translated) == 0 || strings.TrimSpace(translated[0]) == "" {
		// Degraded providers sometimes return empty batches; keep the source
		// text rather than storing a blank translation.
		return source, nil
	}
	return translated[0], nil
}
