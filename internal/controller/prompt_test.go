// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package controller

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joncrangle/iadownload/internal/console"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewPrompter(strings.NewReader(input), console.NewPlain(&buf)), &buf
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"collection:test", "collection:test", true},
		{"  spaced query  ", "spaced query", true},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseQuery(tt.line)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseQuery(%q) = %q, %v, want %q, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		line string
		want Action
		ok   bool
	}{
		{"1", ActionSizeCheck, true},
		{"2", ActionDownload, true},
		{" 2 ", ActionDownload, true},
		{"3", 0, false},
		{"download", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAction(tt.line)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAction(%q) = %v, %v, want %v, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		line   string
		answer bool
		ok     bool
	}{
		{"y", true, true},
		{"YES", true, true},
		{"n", false, true},
		{"No", false, true},
		{"maybe", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		answer, ok := ParseYesNo(tt.line)
		if answer != tt.answer || ok != tt.ok {
			t.Errorf("ParseYesNo(%q) = %v, %v, want %v, %v", tt.line, answer, ok, tt.answer, tt.ok)
		}
	}
}

func TestSanitizeDirName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"downloads", "downloads"},
		{"my downloads", "my_downloads"},
		{`bad<>:"/\|?*name`, "bad_________name"},
		{"  spaced  out  ", "spaced_out"},
		{"___", ""},
	}
	for _, tt := range tests {
		if got := SanitizeDirName(tt.in); got != tt.want {
			t.Errorf("SanitizeDirName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveDirectory(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	got, err := ResolveDirectory("")
	if err != nil || got != cwd {
		t.Errorf("ResolveDirectory(\"\") = %q, %v, want cwd", got, err)
	}

	got, err = ResolveDirectory("my pdfs")
	if err != nil || got != filepath.Join(cwd, "my_pdfs") {
		t.Errorf("ResolveDirectory(\"my pdfs\") = %q, %v", got, err)
	}
}

func TestAskQueryRepromptsOnEmpty(t *testing.T) {
	p, out := newTestPrompter("\n\ncollection:test\n")

	query, err := p.AskQuery()
	if err != nil {
		t.Fatalf("AskQuery: %v", err)
	}
	if query != "collection:test" {
		t.Errorf("query = %q", query)
	}
	if n := strings.Count(out.String(), "Please enter a valid search query."); n != 2 {
		t.Errorf("re-prompt count = %d, want 2", n)
	}
}

func TestAskActionRepromptsOnInvalid(t *testing.T) {
	p, out := newTestPrompter("x\n9\n1\n")

	action, err := p.AskAction()
	if err != nil {
		t.Fatalf("AskAction: %v", err)
	}
	if action != ActionSizeCheck {
		t.Errorf("action = %v", action)
	}
	if n := strings.Count(out.String(), "Please enter 1 or 2."); n != 2 {
		t.Errorf("re-prompt count = %d, want 2", n)
	}
}

func TestAskConfirmRepromptsOnInvalid(t *testing.T) {
	p, _ := newTestPrompter("perhaps\nyes\n")

	ok, err := p.AskConfirm("Proceed?")
	if err != nil {
		t.Fatalf("AskConfirm: %v", err)
	}
	if !ok {
		t.Error("expected yes")
	}
}

func TestAskQueryEOF(t *testing.T) {
	p, _ := newTestPrompter("")
	if _, err := p.AskQuery(); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}
