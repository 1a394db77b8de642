// Package http exposes the public read API: resolved pages, dictionary
// translations, languages, and the user directory.
package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-pagecms/internal/assembler"
	"github.com/goliatone/go-pagecms/internal/content"
	"github.com/goliatone/go-pagecms/internal/logging"
	"github.com/goliatone/go-pagecms/internal/translations"
	"github.com/goliatone/go-pagecms/pkg/interfaces"
)

// API registers the read endpoints under the configured base path.
type API struct {
	basePath string
	pages    *assembler.Service
	store    *translations.Service
	users    interfaces.UserDirectory
	logger   interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithUserDirectory wires the source behind /users.
func WithUserDirectory(users interfaces.UserDirectory) Option {
	return func(api *API) {
		api.users = users
	}
}

// WithLogger injects the http logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// NewAPI constructs the read API over the assembler and translation store.
func NewAPI(pages *assembler.Service, store *translations.Service, opts ...Option) *API {
	api := &API{
		basePath: "/api",
		pages:    pages,
		store:    store,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// Register mounts every route on the mux.
func (api *API) Register(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET "+joinPath(api.basePath, "cms/pages"), api.handlePageList)
	mux.HandleFunc("GET "+joinPath(api.basePath, "cms/page/{slug}"), api.handlePageGet)
	mux.HandleFunc("GET "+joinPath(api.basePath, "translations/{lang}"), api.handleTranslations)
	mux.HandleFunc("GET "+joinPath(api.basePath, "languages"), api.handleLanguages)
	mux.HandleFunc("GET "+joinPath(api.basePath, "users"), api.handleUsers)
}

func (api *API) handlePageList(w http.ResponseWriter, r *http.Request) {
	summaries, err := api.pages.ListPages(r.Context())
	if err != nil {
		api.logger.Error("http.pages.list.failed", "error", err)
		writeError(w, err)
		return
	}
	writeList(w, summaries, len(summaries))
}

func (api *API) handlePageGet(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	lang := r.URL.Query().Get("lang")

	view, err := api.pages.Assemble(r.Context(), slug, lang)
	if err != nil {
		if mapError(err) != http.StatusNotFound {
			api.logger.Error("http.page.get.failed", "slug", slug, "error", err)
		}
		writeError(w, err)
		return
	}
	writeData(w, view)
}

func (api *API) handleTranslations(w http.ResponseWriter, r *http.Request) {
	lang := r.PathValue("lang")
	dictionary, err := api.store.Translations(r.Context(), lang)
	if err != nil {
		api.logger.Error("http.translations.failed", "lang", lang, "error", err)
		writeError(w, err)
		return
	}
	writeList(w, dictionary, len(dictionary))
}

type languagePayload struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	ISOCode string `json:"isoCode"`
}

func (api *API) handleLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := api.store.ListLanguages(r.Context())
	if err != nil {
		api.logger.Error("http.languages.failed", "error", err)
		writeError(w, err)
		return
	}
	payload := make([]languagePayload, 0, len(languages))
	for _, language := range languages {
		payload = append(payload, languagePayload{
			Code:    language.Code,
			Name:    language.Name,
			ISOCode: language.ISOCode,
		})
	}
	writeList(w, payload, len(payload))
}

func (api *API) handleUsers(w http.ResponseWriter, r *http.Request) {
	if api.users == nil {
		writeList(w, []interfaces.UserRecord{}, 0)
		return
	}
	limit := content.DefaultUserListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	users, err := api.users.ListUsers(r.Context(), limit)
	if err != nil {
		api.logger.Error("http.users.failed", "error", err)
		writeError(w, err)
		return
	}
	writeList(w, users, len(users))
}
