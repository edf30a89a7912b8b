package journal

import "testing"

const testLayout = "02/01/2006"

func TestParseHeader(t *testing.T) {
	cases := []struct {
		line string
		date string
		ok   bool
	}{
		{"### 30/08/2026", "30/08/2026", true},
		{"### 01/01/2026", "01/01/2026", true},
		{"### meeting notes", "", false},
		{"### 32/01/2026", "", false}, // invalid calendar date
		{"### 30-08-2026", "", false}, // wrong separators
		{"### 30/08/2026 ", "", false},
		{"## 30/08/2026", "", false},
		{"####30/08/2026", "", false},
		{"30/08/2026", "", false},
	}
	for _, tc := range cases {
		date, ok := parseHeader(tc.line, testLayout)
		if ok != tc.ok || date != tc.date {
			t.Errorf("parseHeader(%q) = (%q, %v), want (%q, %v)", tc.line, date, ok, tc.date, tc.ok)
		}
	}
}

func TestParseTask(t *testing.T) {
	cases := []struct {
		line string
		want *Task
	}{
		{"- [ ] dev-1 implement login flow", &Task{Tag: "dev", Number: 1, Title: "implement login flow"}},
		{"- [x] infra-3 rotate production keys", &Task{Tag: "infra", Number: 3, Done: true, Title: "rotate production keys"}},
		{"- [ ] dev-ops-12 tune autoscaler", &Task{Tag: "dev-ops", Number: 12, Title: "tune autoscaler"}},
		{"- [X] dev-1 uppercase marker", nil},
		{"- [] dev-1 missing space in checkbox", nil},
		{"-  [ ] dev-1 extra space", nil},
		{"- [ ]  dev-1 double space after checkbox", nil},
		{"- [ ] dev- missing number", nil},
		{"- [ ] dev-1", nil}, // no title
		{"- [ ] dev-1  ", &Task{Tag: "dev", Number: 1, Title: " "}},
		{"- [ ] Dev-1 uppercase tag", nil},
		{"- [ ] dev_1 wrong separator", nil},
		{"  - [ ] dev-1 indented task", nil},
		{"- [ ] 7-2 numeric tag", &Task{Tag: "7", Number: 2, Title: "numeric tag"}},
		{"- [ ] dev-07 leading zero number", nil},
		{"- [ ] dev-0 zero number", nil},
		{"- [ ] dev-0-7 zero tag segment", &Task{Tag: "dev-0", Number: 7, Title: "zero tag segment"}},
	}
	for _, tc := range cases {
		got := parseTask(tc.line)
		if tc.want == nil {
			if got != nil {
				t.Errorf("parseTask(%q) = %+v, want nil", tc.line, got)
			}
			continue
		}
		if got == nil {
			t.Errorf("parseTask(%q) = nil, want %+v", tc.line, tc.want)
			continue
		}
		if got.Tag != tc.want.Tag || got.Number != tc.want.Number || got.Done != tc.want.Done || got.Title != tc.want.Title {
			t.Errorf("parseTask(%q) = %+v, want %+v", tc.line, got, tc.want)
		}
	}
}

func TestParseNote(t *testing.T) {
	cases := []struct {
		line   string
		indent int
		text   string
		ok     bool
	}{
		{"      - blocked on access request", 6, "blocked on access request", true},
		{"  - two space note", 2, "two space note", true},
		{"     - five spaces under six", 6, "", false},
		{"       - seven spaces over six", 6, "", false},
		{"      -missing space", 6, "", false},
		{"      - ", 6, "", false},
		{"- top level bullet", 6, "", false},
	}
	for _, tc := range cases {
		text, ok := parseNote(tc.line, tc.indent)
		if ok != tc.ok || text != tc.text {
			t.Errorf("parseNote(%q, %d) = (%q, %v), want (%q, %v)", tc.line, tc.indent, text, ok, tc.text, tc.ok)
		}
	}
}

func TestValidTag(t *testing.T) {
	valid := []string{"dev", "infra", "dev-ops", "a", "x1", "1a-2b"}
	invalid := []string{"", "Dev", "dev_", "-dev", "dev-", "dev--ops", "dev ops", "dév"}
	for _, tag := range valid {
		if !ValidTag(tag) {
			t.Errorf("ValidTag(%q) = false, want true", tag)
		}
	}
	for _, tag := range invalid {
		if ValidTag(tag) {
			t.Errorf("ValidTag(%q) = true, want false", tag)
		}
	}
}
