// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	gwlog "github.com/ManuGH/geowatch/internal/log"
)

// Holder holds a configuration document with atomic reloading capability.
// It provides thread-safe access and supports hot reloading from file
// changes or manual trigger via API.
type Holder struct {
	mu         sync.RWMutex
	current    Document
	loader     *Loader
	configPath string
	watcher    *fsnotify.Watcher
	logger     zerolog.Logger

	// Reload notifications
	reloadMu        sync.RWMutex
	reloadListeners []chan<- Document
}

// NewHolder creates a new configuration holder with initial document.
func NewHolder(initial Document, loader *Loader, configPath string) *Holder {
	return &Holder{
		current:         initial,
		loader:          loader,
		configPath:      configPath,
		logger:          gwlog.WithComponent("config"),
		reloadListeners: make([]chan<- Document, 0),
	}
}

// Path returns the watched config file path (empty for ENV-only setups).
func (h *Holder) Path() string {
	return h.configPath
}

// Get returns the current document (thread-safe read).
func (h *Holder) Get() Document {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current.DeepCopy()
}

// Reload reloads the document from file and validates it.
// If validation fails, the old document is kept and an error is returned.
// This ensures atomic config updates: either the full document is valid
// and applied, or the old document remains unchanged.
func (h *Holder) Reload(_ context.Context) error {
	h.logger.Info().Str("event", "config.reload_start").Msg("reloading configuration")

	newDoc, err := h.loader.Load()
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("event", "config.reload_failed").
			Msg("failed to load new configuration")
		return fmt.Errorf("load config: %w", err)
	}

	// Atomically swap configuration
	h.mu.Lock()
	oldDoc := h.current
	h.current = newDoc
	h.mu.Unlock()

	// Notify listeners of config change
	h.notifyListeners(newDoc)

	// Log configuration changes
	h.logChanges(oldDoc, newDoc)

	h.logger.Info().
		Str("event", "config.reload_success").
		Msg("configuration reloaded successfully")

	return nil
}

// StartWatcher starts watching the config file for changes.
// If configPath is empty, this is a no-op (config comes from ENV only).
func (h *Holder) StartWatcher(ctx context.Context) error {
	if h.configPath == "" {
		h.logger.Info().
			Str("event", "config.watcher_disabled").
			Msg("config file watcher disabled (using ENV-only configuration)")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	h.watcher = watcher

	if err := watcher.Add(h.configPath); err != nil {
		_ = watcher.Close() // Ignore close error in error path
		return fmt.Errorf("watch config file: %w", err)
	}

	h.logger.Info().
		Str("event", "config.watcher_started").
		Str("path", h.configPath).
		Msg("watching config file for changes")

	go h.watchLoop(ctx)

	return nil
}

// watchLoop is the main file watcher loop.
func (h *Holder) watchLoop(ctx context.Context) {
	// Debounce timer to avoid multiple reloads for rapid file changes
	var debounceTimer *time.Timer
	debounceDuration := 500 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Str("event", "config.watcher_stopped").Msg("config watcher stopped")
			if h.watcher != nil {
				_ = h.watcher.Close()
			}
			return

		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}

			// Watch for Write and Create events (covers vim, nano, echo)
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				h.logger.Debug().
					Str("event", "config.file_changed").
					Str("op", event.Op.String()).
					Msg("config file changed")

				// Debounce: reset timer on each event
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, func() {
					if err := h.Reload(ctx); err != nil {
						h.logger.Error().
							Err(err).
							Str("event", "config.auto_reload_failed").
							Msg("automatic config reload failed")
					}
				})
			}

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().
				Err(err).
				Str("event", "config.watcher_error").
				Msg("config watcher error")
		}
	}
}

// Stop stops the config watcher (if running).
func (h *Holder) Stop() {
	if h.watcher != nil {
		_ = h.watcher.Close()
	}
}

// RegisterListener registers a channel to receive config reload notifications.
// The channel will receive the new document whenever a reload succeeds.
// The caller is responsible for closing the channel.
func (h *Holder) RegisterListener(ch chan<- Document) {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()
	h.reloadListeners = append(h.reloadListeners, ch)
}

// notifyListeners sends the new document to all registered listeners (non-blocking).
func (h *Holder) notifyListeners(newDoc Document) {
	h.reloadMu.RLock()
	defer h.reloadMu.RUnlock()

	for _, ch := range h.reloadListeners {
		select {
		case ch <- newDoc.DeepCopy():
		default:
			// Skip if channel is full (non-blocking send)
			h.logger.Warn().
				Str("event", "config.listener_skip").
				Msg("skipped notifying listener (channel full)")
		}
	}
}

// logChanges logs the differences between old and new configuration.
func (h *Holder) logChanges(old, newDoc Document) {
	if old.ModelParameters.ConfidenceThreshold != newDoc.ModelParameters.ConfidenceThreshold {
		h.logger.Info().
			Float64("old", old.ModelParameters.ConfidenceThreshold).
			Float64("new", newDoc.ModelParameters.ConfidenceThreshold).
			Msg("config changed: ConfidenceThreshold")
	}
	if old.ModelParameters.ChangeSensitivity != newDoc.ModelParameters.ChangeSensitivity {
		h.logger.Info().
			Float64("old", old.ModelParameters.ChangeSensitivity).
			Float64("new", newDoc.ModelParameters.ChangeSensitivity).
			Msg("config changed: ChangeSensitivity")
	}
	if old.OperationalSettings.AlertThresholdHigh != newDoc.OperationalSettings.AlertThresholdHigh {
		h.logger.Info().
			Float64("old", old.OperationalSettings.AlertThresholdHigh).
			Float64("new", newDoc.OperationalSettings.AlertThresholdHigh).
			Msg("config changed: AlertThresholdHigh")
	}
	if old.OperationalSettings.AlertThresholdMedium != newDoc.OperationalSettings.AlertThresholdMedium {
		h.logger.Info().
			Float64("old", old.OperationalSettings.AlertThresholdMedium).
			Float64("new", newDoc.OperationalSettings.AlertThresholdMedium).
			Msg("config changed: AlertThresholdMedium")
	}
	if old.OperationalSettings.AlertEmail != newDoc.OperationalSettings.AlertEmail {
		h.logger.Info().
			Str("old", maskEmail(old.OperationalSettings.AlertEmail)).
			Str("new", maskEmail(newDoc.OperationalSettings.AlertEmail)).
			Msg("config changed: AlertEmail")
	}
	if old.OperationalSettings.RegionOfInterest != newDoc.OperationalSettings.RegionOfInterest {
		h.logger.Info().
			Str("old", old.OperationalSettings.RegionOfInterest).
			Str("new", newDoc.OperationalSettings.RegionOfInterest).
			Msg("config changed: RegionOfInterest")
	}
}
