package journal

import (
	"fmt"
	"strings"
)

// Task is a single tracked task inside the log. Notes are the contiguous
// indented lines directly below the task line, in append order.
type Task struct {
	Tag    string
	Number int
	Done   bool
	Title  string
	Notes  []string
}

// ID returns the task's globally unique identifier, e.g. "dev-12".
func (t *Task) ID() string {
	return fmt.Sprintf("%s-%d", t.Tag, t.Number)
}

type nodeKind int

const (
	nodeRaw nodeKind = iota
	nodeSection
	nodeTask
)

// node is one structural element of the parsed window: a verbatim freeform
// line, a section header, or a task together with its notes.
type node struct {
	kind nodeKind
	raw  string
	date string
	task *Task
}

func (n node) lines(indent string) []string {
	switch n.kind {
	case nodeSection:
		return []string{headerPrefix + n.date}
	case nodeTask:
		box := " "
		if n.task.Done {
			box = "x"
		}
		out := []string{fmt.Sprintf("- [%s] %s-%d %s", box, n.task.Tag, n.task.Number, n.task.Title)}
		for _, note := range n.task.Notes {
			out = append(out, indent+"- "+note)
		}
		return out
	default:
		return []string{n.raw}
	}
}

// Document is the in-memory model of the log: the verbatim prefix before the
// scan window, the ordered structural nodes of the window, and whether the
// file ended with a newline. Parsing followed by Render with no mutation is
// byte-identical to the input.
type Document struct {
	opts         Options
	prefix       []string
	nodes        []node
	finalNewline bool
}

// Parse builds a Document from raw log content. Only the trailing
// opts.ScanWindow lines are classified; everything before them is kept as an
// opaque prefix and reproduced verbatim.
func Parse(content string, opts Options) *Document {
	d := &Document{
		opts:         opts,
		finalNewline: strings.HasSuffix(content, "\n"),
	}

	var all []string
	if content != "" {
		all = strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	}

	start := 0
	if opts.ScanWindow > 0 && len(all) > opts.ScanWindow {
		start = len(all) - opts.ScanWindow
	}
	d.prefix = all[:start]

	// lastTask is the O(1) lookback: a note line only attaches when the
	// immediately preceding line was the task line or another of its notes.
	var lastTask *Task
	for _, line := range all[start:] {
		if date, ok := parseHeader(line, opts.DateLayout); ok {
			d.nodes = append(d.nodes, node{kind: nodeSection, date: date})
			lastTask = nil
			continue
		}
		if t := parseTask(line); t != nil {
			d.nodes = append(d.nodes, node{kind: nodeTask, task: t})
			lastTask = t
			continue
		}
		if text, ok := parseNote(line, opts.NoteIndent); ok && lastTask != nil {
			lastTask.Notes = append(lastTask.Notes, text)
			continue
		}
		// Orphaned note lines land here too: without an open task in
		// scope they are freeform and pass through untouched.
		d.nodes = append(d.nodes, node{kind: nodeRaw, raw: line})
		lastTask = nil
	}
	return d
}

// Render serializes the document back to file content. Freeform lines and
// the prefix are copied unchanged; structured lines are regenerated from the
// model.
func (d *Document) Render() string {
	indent := strings.Repeat(" ", d.opts.NoteIndent)
	out := make([]string, 0, len(d.prefix)+len(d.nodes))
	out = append(out, d.prefix...)
	for _, n := range d.nodes {
		out = append(out, n.lines(indent)...)
	}
	if len(out) == 0 {
		return ""
	}
	s := strings.Join(out, "\n")
	if d.finalNewline {
		s += "\n"
	}
	return s
}

// Tasks returns every task in the window in file encounter order.
func (d *Document) Tasks() []*Task {
	var tasks []*Task
	for _, n := range d.nodes {
		if n.kind == nodeTask {
			tasks = append(tasks, n.task)
		}
	}
	return tasks
}

// Find returns the first task with the given ID, or nil. The engine never
// reconciles hand-typed duplicate IDs; the first occurrence wins.
func (d *Document) Find(id string) *Task {
	for _, n := range d.nodes {
		if n.kind == nodeTask && n.task.ID() == id {
			return n.task
		}
	}
	return nil
}

// findSection returns the index of the last section node for date, or -1.
func (d *Document) findSection(date string) int {
	idx := -1
	for i, n := range d.nodes {
		if n.kind == nodeSection && n.date == date {
			idx = i
		}
	}
	return idx
}

// HasSection reports whether a section header for date exists in the window.
func (d *Document) HasSection(date string) bool {
	return d.findSection(date) >= 0
}

// SectionText returns the verbatim text of the section for date: the header
// line through the line before the next header (or end of file). Empty if
// the section does not exist in the window.
func (d *Document) SectionText(date string) string {
	idx := d.findSection(date)
	if idx < 0 {
		return ""
	}
	indent := strings.Repeat(" ", d.opts.NoteIndent)
	var out []string
	out = append(out, d.nodes[idx].lines(indent)...)
	for _, n := range d.nodes[idx+1:] {
		if n.kind == nodeSection {
			break
		}
		out = append(out, n.lines(indent)...)
	}
	return strings.Join(out, "\n")
}

// EnsureSection appends a section header for date at the end of the document
// unless one already exists in the window. A blank line separates it from
// any preceding content. Existing sections are never reordered.
func (d *Document) EnsureSection(date string) {
	if d.HasSection(date) {
		return
	}
	if len(d.nodes) > 0 || len(d.prefix) > 0 {
		d.nodes = append(d.nodes, node{kind: nodeRaw, raw: ""})
	}
	d.nodes = append(d.nodes, node{kind: nodeSection, date: date})
	d.finalNewline = true
}

// AppendTask inserts t at the end of the section for date: directly before
// the next section header, or at the end of the document. The section must
// exist; call EnsureSection first.
func (d *Document) AppendTask(date string, t *Task) bool {
	idx := d.findSection(date)
	if idx < 0 {
		return false
	}
	pos := len(d.nodes)
	for i := idx + 1; i < len(d.nodes); i++ {
		if d.nodes[i].kind == nodeSection {
			pos = i
			break
		}
	}
	d.nodes = append(d.nodes, node{})
	copy(d.nodes[pos+1:], d.nodes[pos:])
	d.nodes[pos] = node{kind: nodeTask, task: t}
	d.finalNewline = true
	return true
}
