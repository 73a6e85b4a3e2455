package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalqa/app"
	"github.com/CrestNiraj12/terminalqa/tui/common"
)

// View renders the cards that fit around the cursor.
func (m Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n %s Loading questions...\n", m.spinner.View())
	}
	if m.view.Empty() {
		if m.view.Reduced {
			return common.TaglineStyle.Render(fmt.Sprintf("No questions match %q. r: back to all", m.view.Keyword)) + "\n"
		}
		return common.TaglineStyle.Render("No questions yet. r: load") + "\n"
	}

	var header string
	if m.view.Reduced {
		header = common.TaglineStyle.Render(fmt.Sprintf("Search: %q (%d) • r: back to all", m.view.Keyword, len(m.view.Nodes))) + "\n"
	}

	selected, _ := m.Selected()
	cards := make([]string, 0, len(m.view.Nodes))
	focus := m.top
	for i, n := range m.view.Nodes {
		hasCursor := containsControl(n, selected) && len(m.controls) > 0
		if hasCursor {
			focus = i
		}
		cards = append(cards, m.renderCard(n, selected, hasCursor))
	}

	body := strings.Join(visibleWindow(cards, focus, m.height-6), "\n")
	return header + common.ClampLines(body, m.width)
}

func (m Model) renderCard(n app.Node, selected app.Control, hasCursor bool) string {
	width := max(m.width-4, 20)

	var b strings.Builder
	b.WriteString(common.QuestionStyle.Width(width - 4).Render(n.Text))

	if !m.view.Reduced {
		b.WriteString("\n")
		b.WriteString(m.renderControl(n.Like, selected))
		for _, a := range n.Answers {
			b.WriteString("\n")
			b.WriteString(common.AnswerStyle.Width(width - 4).Render("↳ " + a.Content))
			b.WriteString("\n  ")
			b.WriteString(m.renderControl(a.Like, selected))
		}
		if n.AnswerForm != nil {
			b.WriteString("\n")
			b.WriteString(m.renderControl(*n.AnswerForm, selected))
		}
	}

	style := common.UnselectedStyle
	if hasCursor {
		style = common.SelectedStyle
	}
	return style.Width(width).Render(b.String())
}

func (m Model) renderControl(c app.Control, selected app.Control) string {
	if !c.Actionable() {
		return common.LabelStyle.Render(c.Label)
	}
	if c.Action == selected.Action && c.Target == selected.Target {
		return common.ActionActiveStyle.Render("[" + c.Label + "]")
	}
	return common.ActionInactiveStyle.Render("[" + c.Label + "]")
}

func containsControl(n app.Node, c app.Control) bool {
	if !c.Actionable() {
		return false
	}
	if n.Like.Action == c.Action && n.Like.Target == c.Target {
		return true
	}
	for _, a := range n.Answers {
		if a.Like.Action == c.Action && a.Like.Target == c.Target {
			return true
		}
	}
	return n.AnswerForm != nil && n.AnswerForm.Action == c.Action && n.AnswerForm.Target == c.Target
}

// visibleWindow returns consecutive cards including focus whose total
// height fits in budget. A non-positive budget shows everything.
func visibleWindow(cards []string, focus, budget int) []string {
	if budget <= 0 || len(cards) == 0 {
		return cards
	}
	start, end := focus, focus+1
	used := lipgloss.Height(cards[focus])
	for end < len(cards) && used+lipgloss.Height(cards[end]) <= budget {
		used += lipgloss.Height(cards[end])
		end++
	}
	for start > 0 && used+lipgloss.Height(cards[start-1]) <= budget {
		start--
		used += lipgloss.Height(cards[start])
	}
	return cards[start:end]
}
