// Package reporttext turns the free-form markdown a language model writes for a
// health consultation into structured sections for display, and into the plain
// text used for downloads.
//
// Every function in the package is pure and safe for concurrent use.
package reporttext

import (
	"regexp"
	"strings"
)

var (
	// A header is a line opened by ** or ## and closed by an optional ** or ##.
	// The title cannot contain '*' or a newline. Anchors are text-wide, so a
	// header directly following another header line is absorbed as content.
	headerPattern = regexp.MustCompile(`(?:^|\n)\s*(?:\*\*|##)\s*([^*\n]+?)(?:\*\*|##)?\s*(?:\n|$)`)

	boilerplatePattern = regexp.MustCompile(`(?i)^\s*Comprehensive Health Consultation Report\s*`)

	separatorPattern = regexp.MustCompile(`(?m)^[-=]+\s*\n?`)
)

// Section is a titled block of report text.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ParsedReport is the structured form of a report. Sections keep the order of
// their headers in the source and titles may repeat.
type ParsedReport struct {
	Intro    string    `json:"intro"`
	Sections []Section `json:"sections"`
}

// Empty reports whether there is nothing to display.
func (p ParsedReport) Empty() bool {
	return p.Intro == "" && len(p.Sections) == 0
}

// ParsePtr parses text, treating a nil pointer as empty input.
func ParsePtr(text *string) ParsedReport {
	if text == nil {
		return ParsedReport{}
	}
	return Parse(*text)
}

// Parse splits report text into an intro and header-delimited sections.
func Parse(text string) ParsedReport {
	text = strings.TrimSpace(text)
	if text == "" {
		return ParsedReport{}
	}

	matches := headerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return ParsedReport{Intro: stripBoilerplate(text)}
	}

	parsed := ParsedReport{
		Intro:    stripBoilerplate(text[:matches[0][0]]),
		Sections: make([]Section, 0, len(matches)),
	}

	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		parsed.Sections = append(parsed.Sections, Section{
			Title:   cleanTitle(text[m[2]:m[3]]),
			Content: cleanContent(text[m[1]:end]),
		})
	}

	return parsed
}

func stripBoilerplate(s string) string {
	return strings.TrimSpace(boilerplatePattern.ReplaceAllString(s, ""))
}

// cleanTitle trims whitespace and any heading hashes left over from ### style headers.
func cleanTitle(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "#"))
}

func cleanContent(s string) string {
	return strings.TrimSpace(separatorPattern.ReplaceAllString(s, ""))
}
