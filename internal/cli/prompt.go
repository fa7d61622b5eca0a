// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prompt.go - Coefficient input for the solve command.
//
// USABILITY: On a terminal the prompts use liner, so arrow keys edit the line
// and recall earlier entries. Piped input is read line by line.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/parabola/internal/config"
	"github.com/jeranaias/parabola/internal/i18n"
	"github.com/jeranaias/parabola/internal/util"
)

// historyFileName is the liner history file inside the config directory.
const historyFileName = "input_history"

// Prompter reads one line of input after showing a prompt.
type Prompter interface {
	Prompt(label string) (string, error)
	Close() error
}

// =============================================================================
// LINE EDITING PROMPTER
// =============================================================================

// linePrompter provides input history and line editing on a terminal.
type linePrompter struct {
	line        *liner.State
	historyFile string
}

// newLinePrompter creates a liner-backed prompter and loads saved history.
func newLinePrompter() *linePrompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	p := &linePrompter{
		line:        line,
		historyFile: filepath.Join(configDir, historyFileName),
	}

	if f, err := os.Open(p.historyFile); err == nil {
		_, _ = p.line.ReadHistory(f)
		f.Close()
	}
	return p
}

// Prompt reads a line. Ctrl+C and Ctrl+D report errInputInterrupted.
func (p *linePrompter) Prompt(label string) (string, error) {
	input, err := p.line.Prompt(label)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", errInputInterrupted
		}
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		p.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history with owner-only permissions and restores the terminal.
func (p *linePrompter) Close() error {
	defer p.line.Close()

	if err := os.MkdirAll(filepath.Dir(p.historyFile), 0700); err != nil {
		return nil
	}
	f, err := os.OpenFile(p.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil
	}
	defer f.Close()
	_, _ = p.line.WriteHistory(f)
	return nil
}

// =============================================================================
// PLAIN PROMPTER
// =============================================================================

// readerPrompter reads newline-terminated values from a non-terminal input.
type readerPrompter struct {
	r *bufio.Reader
	w io.Writer
}

func newReaderPrompter(r io.Reader, w io.Writer) *readerPrompter {
	return &readerPrompter{r: bufio.NewReader(r), w: w}
}

// Prompt writes label and reads up to the next newline. A final line
// without a newline is accepted.
func (p *readerPrompter) Prompt(label string) (string, error) {
	fmt.Fprint(p.w, label)
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", io.ErrUnexpectedEOF)
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *readerPrompter) Close() error { return nil }

// newPrompter picks line editing when stdin and stdout are terminals.
// In JSON mode prompts go to stderr so stdout stays machine-readable.
func newPrompter(s Streams, jsonMode bool) Prompter {
	if jsonMode {
		return newReaderPrompter(s.In, s.Err)
	}
	if s.In == io.Reader(os.Stdin) && isTerminalReader(s.In) && isTerminalWriter(s.Out) {
		return newLinePrompter()
	}
	return newReaderPrompter(s.In, s.Out)
}

// =============================================================================
// COEFFICIENTS
// =============================================================================

// coefficientNames are the prompt order.
var coefficientNames = [3]string{"a", "b", "c"}

// readCoefficients parses given values, prompting for each one when given
// is empty.
func readCoefficients(given []string, p func() Prompter, pr *i18n.Printer) ([3]float64, error) {
	var out [3]float64
	promptKeys := [3]string{i18n.KeyPromptA, i18n.KeyPromptB, i18n.KeyPromptC}

	var prompter Prompter
	if len(given) == 0 {
		prompter = p()
		defer prompter.Close()
	}

	for i, name := range coefficientNames {
		var text string
		if prompter != nil {
			input, err := prompter.Prompt(pr.Sprintf(promptKeys[i]))
			if err != nil {
				if errors.Is(err, errInputInterrupted) {
					return out, interruptedError{msg: pr.Sprintf(i18n.KeyInputInterrupted)}
				}
				return out, err
			}
			text = input
		} else {
			text = given[i]
		}

		v, err := util.ParseFloat(text)
		if err != nil {
			return out, NewValidationError(name, strings.TrimSpace(text),
				pr.Sprintf(i18n.KeyInvalidNumber, strings.TrimSpace(text)))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return out, NewValidationError(name, strings.TrimSpace(text), "must be a finite number")
		}
		out[i] = v
	}
	return out, nil
}

// interruptedError is errInputInterrupted with a localized message.
type interruptedError struct {
	msg string
}

func (e interruptedError) Error() string { return e.msg }

func (e interruptedError) Is(target error) bool { return target == errInputInterrupted }
