// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/models"
)

const (
	defaultProbeInterval = 15 * time.Second
	defaultProbeTimeout  = 5 * time.Second
)

// ConnectivityWorker probes the server on a fixed interval and fires a
// reconnect trigger when a probe succeeds after one or more failed probes.
// The server is assumed reachable until the first probe says otherwise.
type ConnectivityWorker struct {
	pinger   Pinger
	trigger  service.SyncTrigger
	interval time.Duration
	timeout  time.Duration

	mu     sync.RWMutex
	online bool
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

func NewConnectivityWorker(pinger Pinger, trigger service.SyncTrigger, interval time.Duration, logger *logger.Logger) *ConnectivityWorker {
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	return &ConnectivityWorker{
		pinger:   pinger,
		trigger:  trigger,
		interval: interval,
		timeout:  min(defaultProbeTimeout, interval),
		online:   true,
		logger:   logger,
	}
}

func (w *ConnectivityWorker) Run(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	probeCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-probeCtx.Done():
				return
			case <-t.C:
				w.probe(probeCtx)
			}
		}
	}()
}

func (w *ConnectivityWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

// Online reports the result of the latest probe.
func (w *ConnectivityWorker) Online() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.online
}

func (w *ConnectivityWorker) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, w.timeout)
	err := w.pinger.Ping(pingCtx)
	cancel()

	// a probe cut short by shutdown says nothing about the server
	if ctx.Err() != nil {
		return
	}

	w.mu.Lock()
	wasOnline := w.online
	w.online = err == nil
	w.mu.Unlock()

	switch {
	case err != nil && wasOnline:
		w.logger.Warn().Err(err).Str("func", "ConnectivityWorker.probe").Msg("server is unreachable")
	case err == nil && !wasOnline:
		w.logger.Info().Str("func", "ConnectivityWorker.probe").Msg("server is reachable again")
		w.trigger.Trigger(models.TriggerReconnect)
	}
}
