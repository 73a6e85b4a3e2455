package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// EnvEditor builds commands for the user's $EDITOR (vi when unset). Running
// them is left to the caller, which hands the command to tea.ExecProcess so
// the terminal leaves raw mode first.
type EnvEditor struct{}

func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const headerEnd = "-->"

const instructionTemplate = `<!--
TerminalQA: Edit %s below.

Save and quit to submit. Text up to the end of this comment is discarded.
` + headerEnd + `

`

// Cmd writes content beneath an instruction header into a fresh draft file
// and returns the editor command for it together with the draft path.
func (e *EnvEditor) Cmd(subject, content string) (*exec.Cmd, string, error) {
	argv := strings.Fields(os.Getenv("EDITOR"))
	if len(argv) == 0 {
		argv = []string{"vi"}
	}

	draft, err := os.CreateTemp("", "terminalqa-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("create draft: %w", err)
	}
	path := draft.Name()
	_, err = fmt.Fprintf(draft, instructionTemplate+"%s", subject, content)
	if cerr := draft.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, "", fmt.Errorf("write draft: %w", err)
	}

	switch filepath.Base(argv[0]) {
	case "vi", "vim", "nvim":
		argv = append(argv, "+") // open at the last line
	}
	argv = append(argv, path)
	return exec.Command(argv[0], argv[1:]...), path, nil
}

// ReadContent returns the trimmed draft text after the instruction header
// and deletes the draft.
func (e *EnvEditor) ReadContent(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read draft: %w", err)
	}
	text := string(data)
	if _, after, ok := strings.Cut(text, headerEnd); ok {
		text = after
	}
	return strings.TrimSpace(text), nil
}
