package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

// Connectivity reports whether the server answered the latest probe.
type Connectivity interface {
	Online() bool
}

// TUI runs the two Bubble Tea programs of the client: the sign-in flow and
// the signed-in task screen.
type TUI struct {
	services     *service.ClientServices
	connectivity Connectivity
	buildInfo    models.AppBuildInfo
	logger       *logger.Logger
}

func New(services *service.ClientServices, connectivity Connectivity, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, errors.New("client services are required")
	}
	return &TUI{
		services:     services,
		connectivity: connectivity,
		buildInfo:    buildInfo,
		logger:       logger,
	}, nil
}

// LoginFlow blocks until the user signed in or registered. It returns
// [ErrUserQuit] when the user left instead.
func (t *TUI) LoginFlow(ctx context.Context, notice string) error {
	pages := map[string]tea.Model{
		pageMenu:     NewMenuModel(notice),
		pageLogin:    NewLoginModel(ctx, t.services.AuthService),
		pageRegister: NewRegisterModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(pages, pageMenu, t.buildInfo)
	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser || !result.signedIn {
		return ErrUserQuit
	}

	t.logger.Info().Str("login", result.username).Msg("signed in")
	return nil
}

// MainLoop shows the task screen until the user quits or logs out.
func (t *TUI) MainLoop(ctx context.Context) (logout bool, err error) {
	events, unsubscribe := t.services.SyncService.Subscribe()
	defer unsubscribe()

	model := newMainLoopModel(ctx, t.services, t.connectivity, events, t.buildInfo)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return false, err
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
