// Package journal parses and regenerates the markdown task log. The grammar
// it owns is deliberately narrow: date section headers, checkbox task lines,
// and indented note lines. Every other line is freeform text that must be
// reproduced byte-for-byte, so classification is conservative and any
// near-match falls back to freeform rather than partial structure.
package journal

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Options control how a log is parsed and rendered.
type Options struct {
	// DateLayout is the Go time layout for section header dates.
	DateLayout string
	// NoteIndent is the exact number of leading spaces on a note line.
	NoteIndent int
	// ScanWindow bounds parsing to the trailing ScanWindow lines of the
	// file. Zero means no bound.
	ScanWindow int
}

const headerPrefix = "### "

var (
	// taskRe matches the exact task line shape. The tag is lowercase
	// alphanumeric segments joined by single hyphens; the last hyphen
	// separates tag from number. The number must not carry a leading
	// zero: "dev-07" would reprint as "dev-7", so it is not ours.
	taskRe = regexp.MustCompile(`^- \[([ x])\] ([a-z0-9]+(?:-[a-z0-9]+)*)-([1-9][0-9]*) (.+)$`)
	tagRe  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// ValidTag reports whether tag is a well-formed tag token.
func ValidTag(tag string) bool {
	return tagRe.MatchString(tag)
}

// parseHeader recognizes a section header line. The text after "### " must
// parse as a calendar date in the configured layout and format back to the
// identical string; anything looser is freeform.
func parseHeader(line, layout string) (string, bool) {
	if !strings.HasPrefix(line, headerPrefix) {
		return "", false
	}
	date := line[len(headerPrefix):]
	t, err := time.Parse(layout, date)
	if err != nil || t.Format(layout) != date {
		return "", false
	}
	return date, true
}

// parseTask recognizes a task line. Returns nil if the line deviates from
// the grammar in any way.
func parseTask(line string) *Task {
	m := taskRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	number, err := strconv.Atoi(m[3])
	if err != nil {
		return nil
	}
	return &Task{
		Tag:    m[2],
		Number: number,
		Done:   m[1] == "x",
		Title:  m[4],
	}
}

// parseNote recognizes a note line: exactly indent leading spaces, "- ",
// then non-empty text. Whether the note actually belongs to a task is the
// parser's decision, not the classifier's.
func parseNote(line string, indent int) (string, bool) {
	if len(line) <= indent+2 {
		return "", false
	}
	for i := 0; i < indent; i++ {
		if line[i] != ' ' {
			return "", false
		}
	}
	if line[indent] != '-' || line[indent+1] != ' ' {
		return "", false
	}
	return line[indent+2:], true
}
