package editing

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-pagecms/internal/content"
	"github.com/google/uuid"
)

// Preview renders the session's blocks as an HTML fragment using the current
// line values, so unsaved edits show immediately. Resolved store values fill
// any field the session is not editing.
func (s *Session) Preview(ctx context.Context) (string, error) {
	if s.state == StateClosed {
		return "", ErrSessionClosed
	}

	var blocks []*content.Block
	if s.blockID != uuid.Nil {
		block, err := s.content.GetBlockByID(ctx, s.blockID)
		if err != nil {
			return "", err
		}
		blocks = []*content.Block{block}
	} else {
		var err error
		blocks, err = s.content.ListBlocksByPage(ctx, s.pageID)
		if err != nil {
			return "", err
		}
	}

	overlay := s.lineOverlay()
	fragments := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if !block.Active {
			continue
		}
		fragment, err := s.renderBlock(ctx, block, overlay)
		if err != nil {
			return "", err
		}
		if fragment != "" {
			fragments = append(fragments, fragment)
		}
	}
	return `<div class="cms-preview">` + strings.Join(fragments, "\n") + `</div>`, nil
}

// lineOverlay indexes current line values by component reference. HTML lines
// pass through raw; plain lines are normalized the same way autosave would
// persist them.
func (s *Session) lineOverlay() map[string]string {
	overlay := make(map[string]string, len(s.lines))
	for _, line := range s.lines {
		value := line.TranslatedValue
		if !line.IsHTMLContent {
			value = NormalizeValue(value)
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		overlay[overlayKey(line.ComponentType, line.ComponentID, line.ComponentField)] = value
	}
	return overlay
}

func overlayKey(entityType string, entityID uuid.UUID, field string) string {
	return entityType + "|" + entityID.String() + "|" + field
}

func (s *Session) renderBlock(ctx context.Context, block *content.Block, overlay map[string]string) (string, error) {
	switch block.Type {
	case content.BlockTypeHero:
		title, err := s.previewValue(ctx, content.EntityBlockTitle, block.HeroTitleID, content.FieldTitle, overlay)
		if err != nil {
			return "", err
		}
		subtitle, err := s.previewValue(ctx, content.EntityBlockTitle, block.HeroSubtitleID, content.FieldTitle, overlay)
		if err != nil {
			return "", err
		}
		buttonText, err := s.previewValue(ctx, content.EntityBlockTitle, block.HeroButtonTextID, content.FieldTitle, overlay)
		if err != nil {
			return "", err
		}
		if buttonText == "" {
			buttonText = "Get Started"
		}
		return fmt.Sprintf(
			`<div class="hero-preview" data-block=%q><h1 data-field="Hero Title">%s</h1><p data-field="Hero Subtitle">%s</p><button data-field="Button Text">%s</button></div>`,
			block.ID, html.EscapeString(title), html.EscapeString(subtitle), html.EscapeString(buttonText),
		), nil
	case content.BlockTypeHeading:
		text, err := s.previewValue(ctx, content.EntityBlockTitle, block.HeadingTitleID, content.FieldTitle, overlay)
		if err != nil {
			return "", err
		}
		level := block.HeadingLevel
		if level == "" {
			level = "h2"
		}
		return fmt.Sprintf(`<%s data-block=%q data-field="Heading">%s</%s>`, level, block.ID, html.EscapeString(text), level), nil
	case content.BlockTypeText:
		text, err := s.previewValue(ctx, content.EntityBlockText, block.TextComponentID, content.FieldContent, overlay)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`<p data-block=%q data-field="Text Content">%s</p>`, block.ID, html.EscapeString(text)), nil
	case content.BlockTypeHTML:
		markup, err := s.previewValue(ctx, content.EntityBlockHTML, block.HTMLComponentID, content.FieldContent, overlay)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`<div data-block=%q data-field="HTML Content">%s</div>`, block.ID, markup), nil
	case content.BlockTypeImage:
		url := ""
		if block.ImageComponentID != nil {
			stored, err := s.content.ImageURL(ctx, *block.ImageComponentID)
			if err != nil {
				return "", err
			}
			url = stored
		}
		alt, err := s.previewValue(ctx, content.EntityBlockImage, block.ImageComponentID, content.FieldAlt, overlay)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`<img data-block=%q src=%q alt=%q style="max-width: 100%%;">`, block.ID, url, alt), nil
	case content.BlockTypeUserList:
		return fmt.Sprintf(`<div data-block=%q><em>User List (dynamic content)</em></div>`, block.ID), nil
	}
	return "", nil
}

func (s *Session) previewValue(ctx context.Context, entityType string, entityID *uuid.UUID, field string, overlay map[string]string) (string, error) {
	if entityID == nil {
		return "", nil
	}
	if value, ok := overlay[overlayKey(entityType, *entityID, field)]; ok {
		return value, nil
	}
	return s.store.Resolve(ctx, entityType, *entityID, field, s.targetLang)
}
