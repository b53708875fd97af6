package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up          key.Binding
	down        key.Binding
	enter       key.Binding
	esc         key.Binding
	tab         key.Binding
	backtab     key.Binding
	save        key.Binding
	quit        key.Binding
	logout      key.Binding
	newTask     key.Binding
	sync        key.Binding
	edit        key.Binding
	toggle      key.Binding
	delete      key.Binding
	copy        key.Binding
	conflicts   key.Binding
	keepLocal   key.Binding
	keepRemote  key.Binding
	localAll    key.Binding
	remoteAll   key.Binding
	yes         key.Binding
	no          key.Binding
	showVersion key.Binding
}

var keys = keyMap{
	up:          key.NewBinding(key.WithKeys("up", "k")),
	down:        key.NewBinding(key.WithKeys("down", "j")),
	enter:       key.NewBinding(key.WithKeys("enter")),
	esc:         key.NewBinding(key.WithKeys("esc")),
	tab:         key.NewBinding(key.WithKeys("tab")),
	backtab:     key.NewBinding(key.WithKeys("shift+tab")),
	save:        key.NewBinding(key.WithKeys("ctrl+s")),
	quit:        key.NewBinding(key.WithKeys("q", "ctrl+c")),
	logout:      key.NewBinding(key.WithKeys("ctrl+l")),
	newTask:     key.NewBinding(key.WithKeys("a")),
	sync:        key.NewBinding(key.WithKeys("s")),
	edit:        key.NewBinding(key.WithKeys("e")),
	toggle:      key.NewBinding(key.WithKeys(" ", "x")),
	delete:      key.NewBinding(key.WithKeys("ctrl+d")),
	copy:        key.NewBinding(key.WithKeys("c")),
	conflicts:   key.NewBinding(key.WithKeys("!")),
	keepLocal:   key.NewBinding(key.WithKeys("l")),
	keepRemote:  key.NewBinding(key.WithKeys("r")),
	localAll:    key.NewBinding(key.WithKeys("L")),
	remoteAll:   key.NewBinding(key.WithKeys("R")),
	yes:         key.NewBinding(key.WithKeys("y")),
	no:          key.NewBinding(key.WithKeys("n")),
	showVersion: key.NewBinding(key.WithKeys("v")),
}
