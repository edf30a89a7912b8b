package config

import (
	"testing"
	"time"
)

func TestDateLayout(t *testing.T) {
	cases := []struct {
		format  string
		layout  string
		wantErr bool
	}{
		{format: "DD/MM/YYYY", layout: "02/01/2006"},
		{format: "YYYY-MM-DD", layout: "2006-01-02"},
		{format: "DD.MM.YYYY", layout: "02.01.2006"},
		{format: "MM DD YYYY", layout: "01 02 2006"},
		{format: "DD/MM", wantErr: true},
		{format: "DD/MM/YY", wantErr: true},
		{format: "DD/MM/YYYY/DD", wantErr: true},
		{format: "DDxMMxYYYY", wantErr: true},
		{format: "", wantErr: true},
	}

	for _, tc := range cases {
		layout, err := DateLayout(tc.format)
		if tc.wantErr {
			if err == nil {
				t.Errorf("DateLayout(%q) expected error, got layout %q", tc.format, layout)
			}
			continue
		}
		if err != nil {
			t.Errorf("DateLayout(%q) unexpected error: %v", tc.format, err)
			continue
		}
		if layout != tc.layout {
			t.Errorf("DateLayout(%q) = %q, want %q", tc.format, layout, tc.layout)
		}
	}
}

func TestDateLayoutRoundTrip(t *testing.T) {
	layout, err := DateLayout("DD/MM/YYYY")
	if err != nil {
		t.Fatalf("DateLayout failed: %v", err)
	}
	day := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	got := day.Format(layout)
	if got != "30/08/2026" {
		t.Errorf("formatted date = %q, want %q", got, "30/08/2026")
	}
	parsed, err := time.Parse(layout, got)
	if err != nil {
		t.Fatalf("parse %q failed: %v", got, err)
	}
	if !parsed.Equal(day) {
		t.Errorf("round trip parsed %v, want %v", parsed, day)
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	bad := Defaults()
	bad.LogPath = ""
	if err := bad.Validate(); err == nil {
		t.Error("empty logPath should fail validation")
	}

	bad = Defaults()
	bad.DateFormat = "not-a-format"
	if err := bad.Validate(); err == nil {
		t.Error("bogus dateFormat should fail validation")
	}

	bad = Defaults()
	bad.NoteIndent = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero noteIndent should fail validation")
	}

	bad = Defaults()
	bad.ScanWindow = 1
	if err := bad.Validate(); err == nil {
		t.Error("tiny scanWindow should fail validation")
	}
}
