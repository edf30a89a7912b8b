package journal

import (
	"strings"
	"testing"
)

func testOpts() Options {
	return Options{DateLayout: testLayout, NoteIndent: 6, ScanWindow: 5000}
}

const sampleLog = `random thoughts at the top
not owned by the tool

### 29/08/2026
- [ ] dev-1 implement login flow
      - waiting on design review
      - switched to OAuth2
- [x] infra-3 rotate production keys
some freeform line between tasks
- [ ] dev-2 fix flaky websocket test

### 30/08/2026
- [ ] infra-4 upgrade postgres
  * a bullet the grammar does not own
`

func TestRoundTrip(t *testing.T) {
	cases := []string{
		sampleLog,
		"",
		"\n",
		"no structure at all",
		"no structure at all\n",
		"### 30/08/2026",
		"### 30/08/2026\n- [ ] dev-1 one\n      - note\n",
		"      - orphan note with no task above\n",
		"- [ ] dev-1 task\n\n      - note after blank line is freeform\n",
	}
	for _, content := range cases {
		doc := Parse(content, testOpts())
		if got := doc.Render(); got != content {
			t.Errorf("round trip mismatch:\ninput:  %q\noutput: %q", content, got)
		}
	}
}

func TestParseStructure(t *testing.T) {
	doc := Parse(sampleLog, testOpts())

	tasks := doc.Tasks()
	if len(tasks) != 4 {
		t.Fatalf("got %d tasks, want 4", len(tasks))
	}

	ids := []string{"dev-1", "infra-3", "dev-2", "infra-4"}
	for i, id := range ids {
		if tasks[i].ID() != id {
			t.Errorf("task %d = %s, want %s (encounter order)", i, tasks[i].ID(), id)
		}
	}

	dev1 := doc.Find("dev-1")
	if dev1 == nil {
		t.Fatal("dev-1 not found")
	}
	if len(dev1.Notes) != 2 || dev1.Notes[0] != "waiting on design review" || dev1.Notes[1] != "switched to OAuth2" {
		t.Errorf("dev-1 notes = %q", dev1.Notes)
	}

	if infra3 := doc.Find("infra-3"); infra3 == nil || !infra3.Done {
		t.Error("infra-3 should be found and done")
	}
	if doc.Find("dev-99") != nil {
		t.Error("dev-99 should not exist")
	}
}

func TestNoteChainBreaks(t *testing.T) {
	content := "- [ ] dev-1 task\n" +
		"      - first note\n" +
		"plain line breaks the chain\n" +
		"      - not a note anymore\n"
	doc := Parse(content, testOpts())
	task := doc.Find("dev-1")
	if task == nil {
		t.Fatal("dev-1 not found")
	}
	if len(task.Notes) != 1 || task.Notes[0] != "first note" {
		t.Errorf("notes = %q, want only the first", task.Notes)
	}
	if doc.Render() != content {
		t.Error("broken chain content must still round trip verbatim")
	}
}

func TestScanWindowBoundary(t *testing.T) {
	var b strings.Builder
	b.WriteString("### 01/01/2026\n")
	b.WriteString("- [ ] old-1 task beyond the horizon\n")
	for i := 0; i < 50; i++ {
		b.WriteString("filler line\n")
	}
	b.WriteString("- [ ] dev-1 recent task\n")
	content := b.String()

	opts := testOpts()
	opts.ScanWindow = 10
	doc := Parse(content, opts)

	if doc.Find("old-1") != nil {
		t.Error("task above the scan window must be invisible")
	}
	if doc.Find("dev-1") == nil {
		t.Error("task inside the scan window must be visible")
	}
	if doc.Render() != content {
		t.Error("windowed parse must still reproduce the whole file")
	}
}

func TestWindowSplitsNoteBlock(t *testing.T) {
	// The window boundary lands between a task line and its notes: the
	// in-window note lines have no owning task, so they are freeform and
	// must be preserved, never attached or dropped.
	content := "- [ ] dev-1 task\n" +
		"      - note one\n" +
		"      - note two\n" +
		"      - note three\n"
	opts := testOpts()
	opts.ScanWindow = 2
	doc := Parse(content, opts)

	if doc.Find("dev-1") != nil {
		t.Error("task line above the window must not be modeled")
	}
	if len(doc.Tasks()) != 0 {
		t.Errorf("no tasks expected, got %d", len(doc.Tasks()))
	}
	if doc.Render() != content {
		t.Errorf("render = %q, want input verbatim", doc.Render())
	}
}

func TestEnsureSectionAndAppendTask(t *testing.T) {
	// Empty log: header first, no leading blank line.
	doc := Parse("", testOpts())
	doc.EnsureSection("30/08/2026")
	doc.AppendTask("30/08/2026", &Task{Tag: "dev", Number: 1, Title: "implement login flow"})
	want := "### 30/08/2026\n- [ ] dev-1 implement login flow\n"
	if got := doc.Render(); got != want {
		t.Errorf("empty log create:\ngot:  %q\nwant: %q", got, want)
	}

	// Existing content: blank line before the new header.
	doc = Parse("older notes\n", testOpts())
	doc.EnsureSection("30/08/2026")
	doc.AppendTask("30/08/2026", &Task{Tag: "dev", Number: 1, Title: "first"})
	want = "older notes\n\n### 30/08/2026\n- [ ] dev-1 first\n"
	if got := doc.Render(); got != want {
		t.Errorf("append section:\ngot:  %q\nwant: %q", got, want)
	}

	// EnsureSection is a no-op when the section exists.
	doc.EnsureSection("30/08/2026")
	if got := doc.Render(); got != want {
		t.Errorf("EnsureSection not idempotent:\ngot: %q", got)
	}
}

func TestAppendTaskIntoMiddleSection(t *testing.T) {
	content := "### 30/08/2026\n" +
		"- [ ] dev-1 newest first layout\n" +
		"\n" +
		"### 29/08/2026\n" +
		"- [x] dev-2 yesterday\n"
	doc := Parse(content, testOpts())
	doc.AppendTask("30/08/2026", &Task{Tag: "infra", Number: 1, Title: "added today"})
	want := "### 30/08/2026\n" +
		"- [ ] dev-1 newest first layout\n" +
		"\n" +
		"- [ ] infra-1 added today\n" +
		"### 29/08/2026\n" +
		"- [x] dev-2 yesterday\n"
	if got := doc.Render(); got != want {
		t.Errorf("middle section insert:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestSectionText(t *testing.T) {
	doc := Parse(sampleLog, testOpts())

	got := doc.SectionText("29/08/2026")
	want := "### 29/08/2026\n" +
		"- [ ] dev-1 implement login flow\n" +
		"      - waiting on design review\n" +
		"      - switched to OAuth2\n" +
		"- [x] infra-3 rotate production keys\n" +
		"some freeform line between tasks\n" +
		"- [ ] dev-2 fix flaky websocket test\n"
	if got != want {
		t.Errorf("section text:\ngot:  %q\nwant: %q", got, want)
	}

	if doc.SectionText("01/01/2020") != "" {
		t.Error("missing section should yield empty text")
	}
}

func TestLeadingZeroNumberStaysFreeform(t *testing.T) {
	const log = `### 30/08/2026
- [ ] dev-07 hand written task
- [ ] dev-1 owned task
`
	doc := Parse(log, testOpts())
	if got := doc.Render(); got != log {
		t.Errorf("round trip altered content:\n got: %q\nwant: %q", got, log)
	}
	if len(doc.Tasks()) != 1 {
		t.Fatalf("got %d tasks, want 1 (dev-07 is not ours)", len(doc.Tasks()))
	}
	if doc.Find("dev-7") != nil || doc.Find("dev-07") != nil {
		t.Error("leading-zero line must not be addressable as a task")
	}

	// An unrelated mutation must leave the line byte-identical.
	doc.Find("dev-1").Done = true
	if !strings.Contains(doc.Render(), "- [ ] dev-07 hand written task\n") {
		t.Error("unrelated mutation rewrote the hand-written line")
	}
}

func TestMutationPreservesFreeform(t *testing.T) {
	doc := Parse(sampleLog, testOpts())
	doc.Find("dev-2").Done = true
	dev1 := doc.Find("dev-1")
	dev1.Notes = append(dev1.Notes, "new note")

	out := doc.Render()
	for _, line := range []string{
		"random thoughts at the top",
		"not owned by the tool",
		"some freeform line between tasks",
		"  * a bullet the grammar does not own",
	} {
		if !strings.Contains(out, line+"\n") && !strings.HasSuffix(out, line) {
			t.Errorf("freeform line %q altered or lost", line)
		}
	}
	if !strings.Contains(out, "- [x] dev-2 fix flaky websocket test\n") {
		t.Error("dev-2 should be rendered done")
	}
	if !strings.Contains(out, "      - switched to OAuth2\n      - new note\n") {
		t.Error("new note should follow existing notes")
	}
}
