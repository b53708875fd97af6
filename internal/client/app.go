// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/tui"
)

const noticeLoggedOut = "Сеанс завершён"

// App is the interactive client: a sign-in flow, then the task screen with
// the background workers running, repeated after every logout.
type App struct {
	services *service.ClientServices
	ui       UI
	workers  Workers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, workers Workers, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil || workers == nil {
		return nil, errors.New("client app: services, ui and workers are required")
	}
	return &App{
		services: services,
		ui:       ui,
		workers:  workers,
		logger:   logger,
	}, nil
}

// Run blocks until the user quits or the process receives SIGINT/SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	log := a.logger.GetChildLogger()
	log.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("func", "client.App.run")
	})

	if err := a.services.Reload(ctx); err != nil {
		return fmt.Errorf("load local state: %w", err)
	}

	signedIn, err := a.services.AuthService.RestoreSession(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	notice := ""
	for {
		if !signedIn {
			if err = a.ui.LoginFlow(ctx, notice); err != nil {
				if errors.Is(err, tui.ErrUserQuit) {
					return nil
				}
				return fmt.Errorf("login flow: %w", err)
			}
		}

		log.Info().Str("login", a.services.AuthService.Session().Login).Msg("session started")

		a.workers.Run(ctx)
		logout, loopErr := a.ui.MainLoop(ctx)
		a.workers.Stop()

		if loopErr != nil {
			return fmt.Errorf("main loop: %w", loopErr)
		}
		if !logout {
			return nil
		}

		if err = a.services.Logout(ctx); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		log.Info().Msg("logged out")

		signedIn = false
		notice = noticeLoggedOut
	}
}
