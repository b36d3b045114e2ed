// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package controller sequences the interactive flow: prompt for a
// query, search, prompt for an action, then run the size-check or
// download stage. The prompt sequence is a linear state machine; the
// only loop is re-asking the current state on invalid input.
package controller

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joncrangle/iadownload/internal/console"
)

// Action is the user's choice at the AwaitAction state.
type Action int

const (
	// ActionSizeCheck reports aggregate PDF sizes without downloading.
	ActionSizeCheck Action = 1

	// ActionDownload downloads PDFs and records metadata.
	ActionDownload Action = 2
)

// Prompter reads one line per prompt and validates it against the
// current state's accepted input set. Invalid input re-asks; it never
// advances the state.
type Prompter struct {
	scanner *bufio.Scanner
	console console.Console
}

// NewPrompter reads prompts from r and writes them through c.
func NewPrompter(r io.Reader, c console.Console) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(r), console: c}
}

func (p *Prompter) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// ParseQuery accepts any non-empty line.
func ParseQuery(line string) (string, bool) {
	line = strings.TrimSpace(line)
	return line, line != ""
}

// ParseAction accepts exactly "1" or "2".
func ParseAction(line string) (Action, bool) {
	switch strings.TrimSpace(line) {
	case "1":
		return ActionSizeCheck, true
	case "2":
		return ActionDownload, true
	}
	return 0, false
}

// ParseYesNo accepts y/yes/n/no, case-insensitive.
func ParseYesNo(line string) (answer, ok bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

var dirUnsafe = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeDirName cleans a user-entered directory name the way the
// archive's own filenames are cleaned: path-hostile characters and
// whitespace runs become underscores.
func SanitizeDirName(name string) string {
	name = dirUnsafe.ReplaceAllString(strings.TrimSpace(name), "_")
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}

// ResolveDirectory maps the AwaitDirectory input to a target path:
// empty means the current directory, anything else a sanitized
// subdirectory of it.
func ResolveDirectory(line string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving current directory: %w", err)
	}
	name := SanitizeDirName(line)
	if name == "" {
		return cwd, nil
	}
	return filepath.Join(cwd, name), nil
}

// AskQuery runs the AwaitQuery state: re-prompts until a non-empty
// query is entered.
func (p *Prompter) AskQuery() (string, error) {
	for {
		p.console.Printf("Enter your Internet Archive search query: ")
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if query, ok := ParseQuery(line); ok {
			return query, nil
		}
		p.console.Errorf("Please enter a valid search query.\n")
	}
}

// AskAction runs the AwaitAction state.
func (p *Prompter) AskAction() (Action, error) {
	p.console.Printf("\nChoose an action:\n")
	p.console.Printf("1. Check total PDF file size only\n")
	p.console.Printf("2. Download PDFs and create metadata CSV\n")
	for {
		p.console.Printf("Enter your choice (1 or 2): ")
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if action, ok := ParseAction(line); ok {
			return action, nil
		}
		p.console.Errorf("Please enter 1 or 2.\n")
	}
}

// AskDirectory runs the AwaitDirectory state. Empty input selects the
// current directory.
func (p *Prompter) AskDirectory() (string, error) {
	p.console.Printf("\nEnter download directory name (or press Enter for current directory): ")
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return ResolveDirectory(line)
}

// AskConfirm asks a yes/no question, re-prompting on anything else.
func (p *Prompter) AskConfirm(question string) (bool, error) {
	for {
		p.console.Printf("%s (y/n): ", question)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		if answer, ok := ParseYesNo(line); ok {
			return answer, nil
		}
		p.console.Errorf("Please answer y or n.\n")
	}
}
