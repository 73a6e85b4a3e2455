package tui

import (
	"github.com/CrestNiraj12/terminalqa/app"
	"github.com/CrestNiraj12/terminalqa/domain"
	"github.com/CrestNiraj12/terminalqa/tui/compose"
)

// loginDoneMsg reports a login attempt and the refresh that followed it.
type loginDoneMsg struct {
	refresh app.Refresh
	err     error
}

type registerDoneMsg struct {
	err error
}

// loadedMsg reports a full load or a search.
type loadedMsg struct {
	op   app.Op
	snap domain.Snapshot
	err  error
}

// mutationDoneMsg reports a write and, if it succeeded, its refresh.
type mutationDoneMsg struct {
	op      app.Op
	draft   compose.SubmitMsg
	refresh app.Refresh
	err     error
}

type profileLoadedMsg struct {
	text      string
	useEditor bool
}

type profileSavedMsg struct {
	err error
}
