package compose

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/terminalqa/domain"
	"github.com/CrestNiraj12/terminalqa/tui/common"
)

// View renders the compose view based on the active mode.
func (m Model) View() string {
	switch m.mode {
	case editorMode:
		return m.status + "\n"

	case inlineMode:
		var b strings.Builder
		b.WriteString(common.AppTitleStyle.Render(domain.AppTitle))
		if m.purpose == PurposeAnswer {
			b.WriteString("  Answer\n")
			b.WriteString(common.TaglineStyle.Render(m.title))
			b.WriteString("\n\n")
		} else {
			b.WriteString("  Edit profile\n\n")
		}
		b.WriteString(m.textarea.View())
		b.WriteString("\n\n")

		if m.status != "" {
			b.WriteString(common.StatusBarStyle.Render(m.status))
		} else {
			b.WriteString(common.StatusBarStyle.Render(
				fmt.Sprintf("  ctrl+d: send • esc: cancel • %d/%d chars",
					len(m.textarea.Value()), m.textarea.CharLimit),
			))
		}
		return b.String()
	}
	return ""
}
