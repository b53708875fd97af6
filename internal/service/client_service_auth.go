package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-todo-keeper/internal/adapter"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
	"github.com/MKhiriev/go-todo-keeper/models"
)

var deviceIDs = utils.NewUUIDGenerator()

type clientAuthService struct {
	sessions  store.SessionSaver
	adapter   adapter.ServerAdapter
	validator validators.Validator

	mu      sync.RWMutex
	session models.Session

	logger *logger.Logger
}

func NewClientAuthService(sessions store.SessionSaver, serverAdapter adapter.ServerAdapter, validator validators.Validator, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		sessions:  sessions,
		adapter:   serverAdapter,
		validator: validator,
		logger:    logger,
	}
}

func (a *clientAuthService) Register(ctx context.Context, user models.User) error {
	if err := a.validator.Validate(ctx, user); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	a.prepareDevice(ctx)

	if _, err := a.adapter.Register(ctx, user); err != nil {
		return fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	return a.establish(ctx, user.Login)
}

func (a *clientAuthService) Login(ctx context.Context, user models.User) error {
	if err := a.validator.Validate(ctx, user); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	a.prepareDevice(ctx)

	if _, err := a.adapter.Login(ctx, user); err != nil {
		return fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	return a.establish(ctx, user.Login)
}

func (a *clientAuthService) RestoreSession(ctx context.Context) (bool, error) {
	session, err := a.sessions.LoadSession(ctx)
	if errors.Is(err, store.ErrSessionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	if session.Token == "" {
		return false, nil
	}

	if session.DeviceID == "" {
		session.DeviceID = deviceIDs.Generate()
	}
	a.install(session)

	return true, nil
}

// Logout forgets the token and wipes the local replica. The device id is
// kept for the next login of this process.
func (a *clientAuthService) Logout(ctx context.Context) error {
	a.mu.Lock()
	deviceID := a.session.DeviceID
	a.session = models.Session{DeviceID: deviceID}
	a.mu.Unlock()

	a.adapter.SetToken("")

	if err := a.sessions.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (a *clientAuthService) IsAuthenticated() bool {
	return a.AuthToken() != ""
}

func (a *clientAuthService) AuthToken() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session.Token
}

func (a *clientAuthService) Session() models.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

// prepareDevice makes sure the adapter sends a stable device id, reusing the
// persisted one when there is one.
func (a *clientAuthService) prepareDevice(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session.DeviceID == "" {
		if saved, err := a.sessions.LoadSession(ctx); err == nil {
			a.session.DeviceID = saved.DeviceID
		}
	}
	if a.session.DeviceID == "" {
		a.session.DeviceID = deviceIDs.Generate()
	}
	a.adapter.SetDeviceID(a.session.DeviceID)
}

func (a *clientAuthService) establish(ctx context.Context, login string) error {
	log := a.logger.GetChildLogger()

	a.mu.Lock()
	a.session.Login = login
	a.session.Token = a.adapter.Token()
	session := a.session
	a.mu.Unlock()

	if err := a.sessions.SaveSession(ctx, session); err != nil {
		log.Err(err).Str("func", "clientAuthService.establish").Str("login", login).Msg("failed to persist session")
		return fmt.Errorf("%w: save session: %w", ErrPersistLocalState, err)
	}

	log.Info().Str("func", "clientAuthService.establish").Str("login", login).Str("device_id", session.DeviceID).Msg("session established")
	return nil
}

func (a *clientAuthService) install(session models.Session) {
	a.mu.Lock()
	a.session = session
	a.mu.Unlock()

	a.adapter.SetDeviceID(session.DeviceID)
	a.adapter.SetToken(session.Token)
}
