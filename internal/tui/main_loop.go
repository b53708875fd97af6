// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type mainView int

const (
	viewList mainView = iota
	viewDetail
	viewForm
	viewConflicts
)

const (
	statusTickInterval = time.Second
	statusClearDelay   = 2 * time.Second
)

// mainLoopModel is the signed-in part of the UI. Every mutation goes
// through the client services; the model only keeps what it last read
// from them.
type mainLoopModel struct {
	ctx          context.Context
	services     *service.ClientServices
	connectivity Connectivity
	events       <-chan models.SyncEvent
	buildInfo    models.AppBuildInfo
	login        string

	view mainView

	tasks   []models.Task
	idx     int
	loading bool

	conflicts   []models.Conflict
	conflictIdx int

	form taskFormModel

	syncing   bool
	spinner   spinner.Model
	syncState models.SyncState
	online    bool
	status    string

	showError     bool
	errorMessage  string
	showConfirm   bool
	confirmName   string
	pendingDelete string
	showBuildInfo bool

	logout bool
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, connectivity Connectivity, events <-chan models.SyncEvent, buildInfo models.AppBuildInfo) mainLoopModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	m := mainLoopModel{
		ctx:          ctx,
		services:     services,
		connectivity: connectivity,
		events:       events,
		buildInfo:    buildInfo,
		login:        services.AuthService.Session().Login,
		loading:      true,
		spinner:      s,
		online:       true,
	}
	m.refreshStatus()
	return m
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(
		m.cmdLoadTasks(),
		m.cmdLoadConflicts(),
		m.cmdWaitSyncEvent(),
		cmdStatusTick(),
	)
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorMessage = ""
			}
			return m, nil
		}
		if m.showConfirm {
			return m.updateConfirm(msg)
		}
		if m.showBuildInfo {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.showVersion) {
				m.showBuildInfo = false
			}
			return m, nil
		}
	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
			return m, nil
		}
		m.tasks = msg.tasks
		m.idx = clampIndex(m.idx, len(m.tasks))
		return m, nil
	case conflictsLoadedMsg:
		m.conflicts = msg.conflicts
		m.conflictIdx = clampIndex(m.conflictIdx, len(m.conflicts))
		if m.view == viewConflicts && len(m.conflicts) == 0 {
			m.view = viewList
		}
		return m, nil
	case syncEventMsg:
		m.syncing = false
		m.refreshStatus()
		if msg.event.Err != nil {
			m.status = syncErrorMessage(msg.event.Err)
		} else {
			m.status = "Синхронизировано в " + msg.event.LastSyncAt.Local().Format(clockForm)
		}
		return m, tea.Batch(m.cmdLoadTasks(), m.cmdLoadConflicts(), m.cmdWaitSyncEvent())
	case statusTickMsg:
		m.refreshStatus()
		cmds := []tea.Cmd{cmdStatusTick()}
		if m.syncState.InFlight && !m.syncing {
			m.syncing = true
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)
	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case taskSavedMsg:
		if msg.err != nil {
			if m.view == viewForm {
				m.form.submitting = false
				m.form.errMsg = humanizeError(msg.err)
			} else {
				m.showErrorf(humanizeError(msg.err))
			}
			return m, nil
		}
		if m.view == viewForm {
			m.form.submitting = false
			m.view = viewList
		}
		m.status = "Сохранено: " + msg.task.Name
		return m, tea.Batch(m.cmdLoadTasks(), cmdClearStatus())
	case taskDeletedMsg:
		m.pendingDelete = ""
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
			return m, nil
		}
		m.view = viewList
		m.status = "Задача удалена"
		return m, tea.Batch(m.cmdLoadTasks(), m.cmdLoadConflicts(), cmdClearStatus())
	case conflictResolvedMsg:
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
		} else {
			m.status = fmt.Sprintf("Разрешено конфликтов: %d", msg.resolved)
		}
		return m, tea.Batch(m.cmdLoadTasks(), m.cmdLoadConflicts(), cmdClearStatus())
	case copiedMsg:
		if msg.err != nil {
			m.status = "Не удалось скопировать: " + msg.err.Error()
		} else {
			m.status = "Скопировано!"
		}
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.view {
	case viewDetail:
		return m.updateDetail(msg)
	case viewForm:
		return m.updateForm(msg)
	case viewConflicts:
		return m.updateConflicts(msg)
	default:
		return m.updateList(msg)
	}
}

func (m mainLoopModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.showConfirm = false
		if m.pendingDelete == "" {
			return m, nil
		}
		return m, m.cmdDeleteTask(m.pendingDelete)
	case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
		m.showConfirm = false
		m.pendingDelete = ""
	}
	return m, nil
}

func (m mainLoopModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.tasks)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if _, ok := m.current(); ok {
			m.view = viewDetail
		}
	case key.Matches(keyMsg, keys.newTask):
		m.form = newTaskFormModel(nil)
		m.view = viewForm
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.sync):
		return m.requestSync()
	case key.Matches(keyMsg, keys.conflicts):
		if len(m.conflicts) > 0 {
			m.view = viewConflicts
		}
	case key.Matches(keyMsg, keys.showVersion):
		m.showBuildInfo = true
	case key.Matches(keyMsg, keys.logout):
		m.logout = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	default:
		return m.updateTaskAction(keyMsg)
	}
	return m, nil
}

func (m mainLoopModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Matches(keyMsg, keys.esc) {
		m.view = viewList
		return m, nil
	}
	return m.updateTaskAction(keyMsg)
}

// updateTaskAction handles the keys that act on the selected task. They
// work the same in the list and in the detail view.
func (m mainLoopModel) updateTaskAction(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	task, ok := m.current()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.edit):
		m.form = newTaskFormModel(&task)
		m.view = viewForm
		return m, textinput.Blink
	case key.Matches(msg, keys.toggle):
		return m, m.cmdToggle(task.ID)
	case key.Matches(msg, keys.delete):
		m.showConfirm = true
		m.confirmName = task.Name
		m.pendingDelete = task.ID
	case key.Matches(msg, keys.copy):
		return m, cmdCopyToClipboard(task.Name)
	}
	return m, nil
}

func (m mainLoopModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.view = viewList
			if m.form.editing != nil {
				m.view = viewDetail
			}
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.form = m.form.setFocus(m.form.focus + 1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.form = m.form.setFocus(m.form.focus - 1)
			return m, nil
		case key.Matches(keyMsg, keys.save),
			key.Matches(keyMsg, keys.enter) && m.form.focus != fieldDescription:
			return m.submitForm()
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m mainLoopModel) submitForm() (tea.Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}

	fields, err := parseTaskFields(m.form.values())
	if err != nil {
		m.form.errMsg = err.Error()
		return m, nil
	}

	m.form.errMsg = ""
	m.form.submitting = true
	if m.form.editing != nil {
		return m, m.cmdUpdate(fields.applyTo(*m.form.editing))
	}
	return m, m.cmdCreate(fields.draft())
}

func (m mainLoopModel) updateConflicts(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.view = viewList
	case key.Matches(keyMsg, keys.up):
		if m.conflictIdx > 0 {
			m.conflictIdx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.conflictIdx < len(m.conflicts)-1 {
			m.conflictIdx++
		}
	case key.Matches(keyMsg, keys.keepLocal):
		return m, m.cmdResolve(models.ChoiceLocal)
	case key.Matches(keyMsg, keys.keepRemote):
		return m, m.cmdResolve(models.ChoiceRemote)
	case key.Matches(keyMsg, keys.localAll):
		return m, m.cmdResolveAll(models.ChoiceLocal)
	case key.Matches(keyMsg, keys.remoteAll):
		return m, m.cmdResolveAll(models.ChoiceRemote)
	}
	return m, nil
}

func (m mainLoopModel) requestSync() (tea.Model, tea.Cmd) {
	if m.syncing {
		return m, nil
	}
	m.syncing = true
	m.status = "Синхронизация..."
	m.services.SyncJob.Trigger(models.TriggerManual)
	return m, m.spinner.Tick
}

func (m *mainLoopModel) refreshStatus() {
	m.syncState = m.services.SyncService.State()
	if m.connectivity != nil {
		m.online = m.connectivity.Online()
	}
}

func (m *mainLoopModel) showErrorf(message string) {
	m.showError = true
	m.errorMessage = message
}

func (m mainLoopModel) current() (models.Task, bool) {
	if len(m.tasks) == 0 || m.idx < 0 || m.idx >= len(m.tasks) {
		return models.Task{}, false
	}
	return m.tasks[m.idx], true
}

func (m mainLoopModel) currentConflict() (models.Conflict, bool) {
	if len(m.conflicts) == 0 || m.conflictIdx < 0 || m.conflictIdx >= len(m.conflicts) {
		return models.Conflict{}, false
	}
	return m.conflicts[m.conflictIdx], true
}

func (m mainLoopModel) inConflict(id string) bool {
	for _, c := range m.conflicts {
		if c.ID == id {
			return true
		}
	}
	return false
}

func clampIndex(idx, n int) int {
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func (m mainLoopModel) View() string {
	var body string
	switch {
	case m.showBuildInfo:
		body = renderBuildInfoWindow(m.buildInfo)
	case m.view == viewDetail:
		body = m.viewDetail()
	case m.view == viewForm:
		body = m.form.View()
	case m.view == viewConflicts:
		body = m.viewConflicts()
	default:
		body = m.viewList()
	}

	if m.showConfirm {
		body += "\n\n" + renderConfirmDelete(m.confirmName)
	}
	if m.showError {
		body += "\n\n" + renderErrorOverlay(m.errorMessage)
	}

	return appStyle.Render(body)
}

func (m mainLoopModel) statusLine() string {
	network := onlineStyle.Render("онлайн")
	if !m.online {
		network = offlineStyle.Render("офлайн")
	}

	last := "никогда"
	if !m.syncState.LastSyncAt.IsZero() {
		last = m.syncState.LastSyncAt.Local().Format(clockForm)
	}

	line := fmt.Sprintf("%s │ сеть: %s │ синхр.: %s", m.login, network, last)
	if m.syncing {
		line += " " + m.spinner.View()
	}
	if n := len(m.conflicts); n > 0 {
		line += " │ " + conflictStyle.Render(fmt.Sprintf("конфликты: %d", n))
	}
	return line
}

func (m mainLoopModel) viewList() string {
	var b strings.Builder
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	} else if m.syncState.LastError != "" {
		b.WriteString(errorStyle.Render(m.syncState.LastError))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString("Загрузка списка...\n")
	case len(m.tasks) == 0:
		b.WriteString("Задач нет\n")
	default:
		b.WriteString("    │     │ Название                 │ Приоритет │ Срок       │ Категория\n")
		b.WriteString("────┼─────┼──────────────────────────┼───────────┼────────────┼──────────\n")
		for i, t := range m.tasks {
			cursor := cursorMark(i == m.idx)
			mark := " "
			if m.inConflict(t.ID) {
				mark = conflictStyle.Render("!")
			}
			name := padRight(fitText(t.Name, 24), 24)
			if t.Completed {
				name = doneStyle.Render(name)
			}
			fmt.Fprintf(&b, "%s %s │ %s │ %s │ %s │ %s │ %s\n",
				cursor,
				mark,
				checkbox(t.Completed),
				name,
				padRight(priorityLabel(t.Priority), 9),
				padRight(deadlineLabel(t.Deadline), 10),
				valueOrDash(t.Category),
			)
		}
	}

	return renderPage(
		"ЗАДАЧИ",
		strings.TrimRight(b.String(), "\n"),
		"a: добавить │ enter: открыть │ e: изм. │ x: выполнено │ ctrl+d: уд. │ c: копир. │ s: синхр. │ !: конфликты │ ctrl+l: выйти из аккаунта │ v: версия",
	)
}

func (m mainLoopModel) viewDetail() string {
	task, ok := m.current()
	if !ok {
		return renderPage("ЗАДАЧА", "Задача не найдена", "esc: назад")
	}

	out := taskDetails(task)
	if m.inConflict(task.ID) {
		out += "\n\n" + conflictStyle.Render("Задача изменена на другом устройстве, см. конфликты (!)")
	}
	if m.status != "" {
		out += "\n\n" + m.status
	}
	return renderPage("ЗАДАЧА", out, "e: изм. │ x: выполнено │ ctrl+d: уд. │ c: копир. название │ esc: назад")
}

func (m mainLoopModel) viewConflicts() string {
	var b strings.Builder
	for i, c := range m.conflicts {
		cursor := cursorMark(i == m.conflictIdx)
		fmt.Fprintf(&b, "%s %s  (обнаружен %s)\n", cursor, fitText(c.Local.Name, 40), c.DetectedAt.Local().Format(deadlineForm+" "+clockForm))
	}

	if c, ok := m.currentConflict(); ok {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Локальная версия"))
		b.WriteString("\n")
		b.WriteString(taskDetails(c.Local))
		b.WriteString("\n\n")
		b.WriteString(titleStyle.Render("Версия сервера"))
		b.WriteString("\n")
		b.WriteString(taskDetails(c.Remote))
		b.WriteString("\n")
	}

	return renderPage(
		"КОНФЛИКТЫ",
		strings.TrimRight(b.String(), "\n"),
		"l: оставить мою │ r: взять с сервера │ L/R: для всех │ ↑/↓: нав. │ esc: назад",
	)
}

func (m mainLoopModel) cmdLoadTasks() tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	return func() tea.Msg {
		list, err := tasks.List(ctx)
		return tasksLoadedMsg{tasks: list, err: err}
	}
}

func (m mainLoopModel) cmdLoadConflicts() tea.Cmd {
	conflicts := m.services.ConflictService
	return func() tea.Msg {
		return conflictsLoadedMsg{conflicts: conflicts.ListConflicts()}
	}
}

// cmdWaitSyncEvent blocks until the next finished pass. A closed channel
// ends the wait without a message.
func (m mainLoopModel) cmdWaitSyncEvent() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return syncEventMsg{event: event}
	}
}

func (m mainLoopModel) cmdCreate(draft models.TaskDraft) tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	return func() tea.Msg {
		task, err := tasks.Create(ctx, draft)
		return taskSavedMsg{task: task, err: err}
	}
}

func (m mainLoopModel) cmdUpdate(task models.Task) tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	return func() tea.Msg {
		updated, err := tasks.Update(ctx, task)
		return taskSavedMsg{task: updated, err: err}
	}
}

func (m mainLoopModel) cmdToggle(id string) tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	return func() tea.Msg {
		task, err := tasks.ToggleComplete(ctx, id)
		return taskSavedMsg{task: task, err: err}
	}
}

func (m mainLoopModel) cmdDeleteTask(id string) tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	return func() tea.Msg {
		return taskDeletedMsg{err: tasks.Delete(ctx, id)}
	}
}

func (m mainLoopModel) cmdResolve(choice models.ResolutionChoice) tea.Cmd {
	c, ok := m.currentConflict()
	if !ok {
		return nil
	}
	ctx := m.ctx
	conflicts := m.services.ConflictService
	return func() tea.Msg {
		if err := conflicts.Resolve(ctx, c.ID, choice); err != nil {
			return conflictResolvedMsg{err: err}
		}
		return conflictResolvedMsg{resolved: 1}
	}
}

func (m mainLoopModel) cmdResolveAll(choice models.ResolutionChoice) tea.Cmd {
	ctx := m.ctx
	conflicts := m.services.ConflictService
	return func() tea.Msg {
		n, err := conflicts.ResolveAll(ctx, choice)
		return conflictResolvedMsg{resolved: n, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusClearDelay, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func cmdStatusTick() tea.Cmd {
	return tea.Tick(statusTickInterval, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}
