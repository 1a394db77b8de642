package editing

import (
	"regexp"
	"strings"
)

var (
	divWrapperRe  = regexp.MustCompile(`(?s)^<div[^>]*>(.*)</div>$`)
	paraWrapperRe = regexp.MustCompile(`(?s)^<p[^>]*>(.*)</p>$`)
	bareParaRe    = regexp.MustCompile(`(?s)^<p>(.*)</p>$`)
	htmlTagRe     = regexp.MustCompile(`(?i)<[a-z][\s\S]*>`)
)

// IsHTMLContent reports whether a source value carries real markup. A single
// bare paragraph wrapper does not count: "<p>Hello</p>" is plain text, while
// "<p><b>Hello</b></p>" is HTML because tags remain after stripping the
// wrapper.
func IsHTMLContent(value string) bool {
	trimmed := strings.TrimSpace(value)
	if match := bareParaRe.FindStringSubmatch(trimmed); match != nil {
		trimmed = strings.TrimSpace(match[1])
	}
	return htmlTagRe.MatchString(trimmed)
}

// NormalizeValue strips the wrapper markup rich-text widgets add around plain
// text values: at most one outer container tag pair, then at most one outer
// paragraph tag pair, attributes included. Inner markup is left untouched.
func NormalizeValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if match := divWrapperRe.FindStringSubmatch(trimmed); match != nil {
		trimmed = match[1]
	}
	if match := paraWrapperRe.FindStringSubmatch(trimmed); match != nil {
		trimmed = match[1]
	}
	return strings.TrimSpace(trimmed)
}
