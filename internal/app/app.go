package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/lcalzada-xor/wparse/internal/adapters/capture"
	"github.com/lcalzada-xor/wparse/internal/adapters/storage"
	webserver "github.com/lcalzada-xor/wparse/internal/adapters/web/server"
	"github.com/lcalzada-xor/wparse/internal/config"
	"github.com/lcalzada-xor/wparse/internal/core/domain"
	"github.com/lcalzada-xor/wparse/internal/core/ports"
	"github.com/lcalzada-xor/wparse/internal/ie"
	"github.com/lcalzada-xor/wparse/internal/telemetry"
)

// Application holds the core components of the application.
// It acts as the Facade for the system: capture feeds the decoder, decoded
// networks are aggregated per BSSID and persisted, the web server reads back.
type Application struct {
	Config    *config.Config
	Store     ports.Storage
	WebServer *webserver.Server
	Reader    ports.Capture
	SessionID string
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config:    cfg,
		SessionID: uuid.NewString(),
	}

	if err := app.bootstrap(); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}

	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap() error {
	telemetry.InitMetrics()

	store, err := app.initStorage()
	if err != nil {
		return err
	}
	app.Store = store

	opts := ie.CapabilityOptions{
		OWESupported:           app.Config.OWETransition,
		RSNOverridingSupported: app.Config.RSNOverriding,
	}
	app.Reader = capture.NewPcapReader(app.Config.PcapPaths, opts, app.Config.Debug)

	app.WebServer = webserver.NewServer(app.Config.Addr, app.Store)
	return nil
}

func (app *Application) initStorage() (*storage.SQLiteAdapter, error) {
	if err := os.MkdirAll(filepath.Dir(app.Config.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	store, err := storage.NewSQLiteAdapter(app.Config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	return store, nil
}

// Run starts the application components and manages their execution lifecycle.
func (app *Application) Run(ctx context.Context) error {
	slog.Info("Starting wparse components...")

	errChan := make(chan error, 2)

	go func() {
		if err := app.WebServer.Run(ctx); err != nil {
			errChan <- fmt.Errorf("web server error: %w", err)
		}
	}()

	if len(app.Config.PcapPaths) > 0 {
		go func() {
			if err := app.decodeCaptures(ctx); err != nil {
				errChan <- fmt.Errorf("capture decode error: %w", err)
			}
		}()
	} else {
		slog.Info("No capture files configured, serving stored results only")
	}

	slog.Info("wparse ready. Press Ctrl+C to terminate.")

	select {
	case <-ctx.Done():
		slog.Info("Termination signal received")
	case err := <-errChan:
		return err
	}

	return app.cleanup()
}

// decodeCaptures runs the capture reader and persists the aggregated result.
func (app *Application) decodeCaptures(ctx context.Context) error {
	started := time.Now()
	networks := make(chan domain.Network, 100)
	readErr := make(chan error, 1)

	go func() {
		defer close(networks)
		readErr <- app.Reader.Run(ctx, networks)
	}()

	merged := aggregate(ctx, networks)

	if err := <-readErr; err != nil && err != context.Canceled {
		return err
	}

	batch := make([]domain.Network, 0, len(merged))
	for _, n := range merged {
		n.SessionID = app.SessionID
		batch = append(batch, *n)
	}
	if err := app.Store.SaveNetworksBatch(batch); err != nil {
		return fmt.Errorf("persisting networks: %w", err)
	}
	telemetry.NetworksStored.WithLabelValues(app.SessionID).Add(float64(len(batch)))

	session := domain.ScanSession{
		ID:        app.SessionID,
		Sources:   app.Reader.Sources(),
		StartedAt: started,
		Networks:  len(batch),
	}
	if err := app.Store.SaveSession(session); err != nil {
		log.Printf("Failed to save session: %v", err)
	}

	slog.Info("Capture decode complete",
		"session", app.SessionID,
		"networks", len(batch),
		"elapsed", time.Since(started).String())
	return nil
}

// aggregate folds per-frame observations into one record per BSSID. The
// strongest observation wins the decoded fields; timestamps and beacon
// counts accumulate.
func aggregate(ctx context.Context, networks <-chan domain.Network) map[string]*domain.Network {
	merged := make(map[string]*domain.Network)
	for {
		select {
		case <-ctx.Done():
			return merged
		case n, ok := <-networks:
			if !ok {
				return merged
			}
			existing, seen := merged[n.BSSID]
			if !seen {
				nn := n
				merged[n.BSSID] = &nn
				continue
			}
			existing.Beacons += n.Beacons
			if n.FirstSeen.Before(existing.FirstSeen) {
				existing.FirstSeen = n.FirstSeen
			}
			if n.LastSeen.After(existing.LastSeen) {
				existing.LastSeen = n.LastSeen
			}
			if n.RSSI > existing.RSSI {
				beacons, firstSeen, lastSeen := existing.Beacons, existing.FirstSeen, existing.LastSeen
				*existing = n
				existing.Beacons = beacons
				existing.FirstSeen = firstSeen
				existing.LastSeen = lastSeen
			}
			// A later frame may reveal the SSID of a previously hidden BSS
			if existing.Hidden && !n.Hidden {
				existing.SSID = n.SSID
				existing.Hidden = false
			}
		}
	}
}

func (app *Application) cleanup() error {
	slog.Info("Cleaning up resources...")

	if app.Store != nil {
		return app.Store.Close()
	}
	return nil
}
