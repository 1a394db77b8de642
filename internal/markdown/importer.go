// Package markdown seeds pages from Markdown documents with YAML frontmatter.
// Each document becomes one page holding a single rich-text block rendered
// from the body.
package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-pagecms/internal/content"
	"github.com/goliatone/go-pagecms/internal/identity"
	"github.com/goliatone/go-pagecms/internal/logging"
	"github.com/goliatone/go-pagecms/pkg/interfaces"
)

// ErrSlugMissing indicates a document whose frontmatter declares neither a
// slug nor a name to derive one from.
var ErrSlugMissing = errors.New("markdown importer: frontmatter slug is required")

// ImportResult summarizes one import run.
type ImportResult struct {
	Created []string
	Skipped []string
	Errors  []error
}

// Importer walks Markdown sources and creates pages through the content
// service.
type Importer struct {
	content *content.Service
	parser  *Parser
	logger  interfaces.Logger
}

// ImporterOption configures an Importer instance.
type ImporterOption func(*Importer)

// WithLogger injects the importer logger.
func WithLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewImporter constructs an importer over the content service.
func NewImporter(contentSvc *content.Service, opts ...ImporterOption) *Importer {
	i := &Importer{
		content: contentSvc,
		parser:  NewParser(),
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ImportDirectory loads every Markdown file under dir and creates one page
// per document. Per-file failures are collected, not fatal: one malformed
// document must not abort the seeding run. Existing slugs are skipped.
func (i *Importer) ImportDirectory(ctx context.Context, fsys fs.FS, dir string) (ImportResult, error) {
	result := ImportResult{}

	var paths []string
	walkErr := fs.WalkDir(fsys, filepath.ToSlash(filepath.Clean(dir)), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if walkErr != nil {
		return result, fmt.Errorf("markdown importer walk %s: %w", dir, walkErr)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		slug, err := i.importFile(ctx, fsys, path)
		switch {
		case err == nil:
			result.Created = append(result.Created, slug)
		case errors.Is(err, content.ErrSlugExists) || errors.Is(err, errDraftDocument):
			result.Skipped = append(result.Skipped, path)
			i.logger.Debug("markdown.import.skipped", "path", path, "reason", err)
		default:
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", path, err))
			i.logger.Warn("markdown.import.failed", "path", path, "error", err)
		}
	}

	i.logger.Info("markdown.import.done",
		"dir", dir,
		"created", len(result.Created),
		"skipped", len(result.Skipped),
		"errors", len(result.Errors),
	)
	return result, nil
}

var errDraftDocument = errors.New("markdown importer: document is a draft")

func (i *Importer) importFile(ctx context.Context, fsys fs.FS, path string) (string, error) {
	source, err := fs.ReadFile(fsys, path)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return "", err
	}
	if meta.Draft {
		return "", errDraftDocument
	}

	slug := strings.TrimSpace(meta.Slug)
	if slug == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		slug = base
	}
	name := strings.TrimSpace(meta.Name)
	if name == "" {
		name = slug
	}
	if slug == "" {
		return "", ErrSlugMissing
	}

	rendered, err := i.parser.Render(body)
	if err != nil {
		return "", err
	}

	// Derived ids keep page, block, and component identities stable across
	// reseeds, so translation records written against them survive.
	page, err := i.content.CreatePage(ctx, content.CreatePageInput{
		ID:              identity.PageUUID(slug),
		Name:            name,
		Slug:            slug,
		Title:           meta.Title,
		MetaDescription: meta.MetaDescription,
		Sequence:        meta.Sequence,
	})
	if err != nil {
		return "", err
	}

	block, err := i.content.CreateBlock(ctx, content.CreateBlockInput{
		ID:     identity.BlockUUID(page.ID, name+" Body"),
		PageID: page.ID,
		Name:   name + " Body",
		Type:   content.BlockTypeHTML,
	})
	if err != nil {
		return "", err
	}
	if block.HTMLComponentID != nil {
		if err := i.content.SetComponentField(ctx, content.EntityBlockHTML, *block.HTMLComponentID, content.FieldContent, rendered); err != nil {
			return "", err
		}
	}
	return page.Slug, nil
}
