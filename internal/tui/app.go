package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// Pages of the sign-in flow.
const (
	pageMenu     = "menu"
	pageLogin    = "login"
	pageRegister = "register"
)

// RootModel switches between the sign-in pages. The program ends when the
// user quits or a session is opened; signedIn tells the two apart.
type RootModel struct {
	pages   map[string]tea.Model
	current tea.Model

	buildInfo     models.AppBuildInfo
	showBuildInfo bool

	quitByUser bool
	signedIn   bool
	username   string
}

// NewRootModel opens startPage among pages.
func NewRootModel(pages map[string]tea.Model, startPage string, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		pages:     pages,
		current:   pages[startPage],
		buildInfo: buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := r.handleGlobalKey(msg); handled {
			return r, cmd
		}
		if r.showBuildInfo {
			return r, nil
		}
	case NavigateTo:
		return r.navigate(msg)
	case LoginResult:
		if msg.Err == nil {
			return r.finishSignIn(msg.Username)
		}
	case RegisterResult:
		if msg.Err == nil {
			return r.finishSignIn(msg.Username)
		}
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

// handleGlobalKey covers ctrl+c everywhere and the menu-only hotkeys. Form
// pages need "q" and "v" as plain letters.
func (r *RootModel) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		r.quitByUser = true
		return true, tea.Quit
	case r.showBuildInfo && key.Matches(msg, keys.esc):
		r.showBuildInfo = false
		return true, nil
	case !r.onMenu():
		return false, nil
	case key.Matches(msg, keys.showVersion):
		r.showBuildInfo = !r.showBuildInfo
		return true, nil
	case key.Matches(msg, keys.quit):
		r.quitByUser = true
		return true, tea.Quit
	}
	return false, nil
}

func (r RootModel) navigate(nav NavigateTo) (tea.Model, tea.Cmd) {
	next, ok := r.pages[nav.Page]
	if !ok {
		return r, nil
	}

	r.showBuildInfo = false
	r.current = next

	if nav.Payload != nil {
		return r, func() tea.Msg { return nav.Payload }
	}
	return r, r.current.Init()
}

func (r RootModel) finishSignIn(username string) (tea.Model, tea.Cmd) {
	r.signedIn = true
	r.username = username
	return r, tea.Quit
}

func (r RootModel) View() string {
	switch {
	case r.showBuildInfo:
		return renderBuildInfoWindow(r.buildInfo)
	case r.current == nil:
		return renderPage("TODO KEEPER", "", "")
	default:
		return r.current.View()
	}
}

func (r RootModel) onMenu() bool {
	_, ok := r.current.(*MenuModel)
	return ok
}
