package app

import (
	"fmt"

	"github.com/CrestNiraj12/terminalqa/domain"
)

// Action names what activating a control does. The UI maps each action to a
// handler; the render output itself carries no behaviour.
type Action string

const (
	ActionNone         Action = ""
	ActionRateQuestion Action = "rate_question"
	ActionRateAnswer   Action = "rate_answer"
	ActionSubmitAnswer Action = "submit_answer"
)

// Control is either an actionable affordance or a static label.
type Control struct {
	Action Action
	Label  string
	Count  int
	Target domain.Target
}

// Actionable reports whether the control can be activated.
func (c Control) Actionable() bool {
	return c.Action != ActionNone
}

// AnswerNode is one rendered answer.
type AnswerNode struct {
	ID      int64
	Content string
	Like    Control
}

// Node is one rendered question. In reduced mode only Text is populated.
type Node struct {
	QuestionID int64
	Text       string
	Like       Control
	Answers    []AnswerNode
	AnswerForm *Control
}

// View is the output of one full render pass.
type View struct {
	Mode    Mode
	Reduced bool
	Keyword string
	Nodes   []Node
}

// Empty reports whether there is nothing to show.
func (v View) Empty() bool {
	return len(v.Nodes) == 0
}

// Controls lists the actionable controls in display order.
func (v View) Controls() []Control {
	var out []Control
	for _, n := range v.Nodes {
		if n.Like.Actionable() {
			out = append(out, n.Like)
		}
		for _, a := range n.Answers {
			if a.Like.Actionable() {
				out = append(out, a.Like)
			}
		}
		if n.AnswerForm != nil {
			out = append(out, *n.AnswerForm)
		}
	}
	return out
}

// Render projects a snapshot and session mode into view nodes. It always
// rebuilds the whole list.
func Render(snap domain.Snapshot, mode Mode) View {
	v := View{
		Mode:    mode,
		Reduced: snap.IsSearch(),
		Keyword: snap.Keyword,
		Nodes:   make([]Node, 0, len(snap.Questions)),
	}
	for _, q := range snap.Questions {
		if v.Reduced {
			v.Nodes = append(v.Nodes, Node{QuestionID: q.ID, Text: q.Text})
			continue
		}
		v.Nodes = append(v.Nodes, renderQuestion(q, mode))
	}
	return v
}

func renderQuestion(q domain.Question, mode Mode) Node {
	n := Node{
		QuestionID: q.ID,
		Text:       q.Text,
		Like:       likeControl(domain.Target{Type: domain.TargetQuestion, ID: q.ID}, q.Likes, mode),
		Answers:    make([]AnswerNode, 0, len(q.Answers)),
	}
	for _, a := range q.Answers {
		n.Answers = append(n.Answers, AnswerNode{
			ID:      a.ID,
			Content: a.Content,
			Like:    likeControl(domain.Target{Type: domain.TargetAnswer, ID: a.ID}, a.Likes, mode),
		})
	}
	if mode == ModeAuthenticated {
		n.AnswerForm = &Control{
			Action: ActionSubmitAnswer,
			Label:  "Answer",
			Target: domain.Target{Type: domain.TargetQuestion, ID: q.ID},
		}
	}
	return n
}

func likeControl(target domain.Target, count int, mode Mode) Control {
	if count < 0 {
		count = 0
	}
	if mode != ModeAuthenticated {
		return Control{Label: fmt.Sprintf("Likes: %d", count), Count: count, Target: target}
	}

	action, label := ActionRateAnswer, fmt.Sprintf("Rate (%d)", count)
	if target.Type == domain.TargetQuestion {
		action, label = ActionRateQuestion, fmt.Sprintf("Rate question (%d)", count)
	}
	return Control{Action: action, Label: label, Count: count, Target: target}
}
