package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/semmidev/mediasafe/internal/adapter/diagnostics"
	"github.com/semmidev/mediasafe/internal/adapter/medialib"
	"github.com/semmidev/mediasafe/internal/adapter/network"
	"github.com/semmidev/mediasafe/internal/adapter/remote"
	"github.com/semmidev/mediasafe/internal/adapter/store"
	"github.com/semmidev/mediasafe/internal/config"
	"github.com/semmidev/mediasafe/internal/domain"
	"github.com/semmidev/mediasafe/internal/infrastructure/logger"
	"github.com/semmidev/mediasafe/internal/infrastructure/scheduler"
	"github.com/semmidev/mediasafe/internal/usecase"
)

type App struct {
	config    *config.Config
	logger    *logger.Logger
	state     *store.SQLite
	scheduler *scheduler.Scheduler
	backupUC  *usecase.Backup

	mu      sync.Mutex
	current *usecase.Session
}

func New(cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg.App.LogLevel, cfg.App.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Infof("Starting %s", cfg.App.Name)

	state, err := store.New(cfg.Backup.StatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	remoteStorage, err := initializeRemote(cfg, log)
	if err != nil {
		return nil, err
	}

	diag := initializeDiagnostics(cfg, log)
	library := medialib.NewLocalLibrary(cfg.Library.Path, cfg.Library.FolderName)
	netChecker := network.NewChecker(cfg.Network.UnrestrictedInterfaces)

	backupUC := usecase.NewBackup(
		library,
		remoteStorage,
		netChecker,
		state,
		state,
		diag,
		newEventLogger(log),
		log,
		cfg.Backup.WatchdogCeiling,
	)

	return &App{
		config:    cfg,
		logger:    log,
		state:     state,
		scheduler: scheduler.New(),
		backupUC:  backupUC,
	}, nil
}

func initializeRemote(cfg *config.Config, log *logger.Logger) (domain.RemoteStorage, error) {
	switch cfg.Remote.Type {
	case "s3":
		stor, err := remote.NewS3(&cfg.Remote)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3: %w", err)
		}
		log.Infof("✓ S3 backup target enabled (bucket: %s)", cfg.Remote.Bucket)
		return stor, nil

	case "gdrive":
		stor, err := remote.NewGDrive(&cfg.Remote)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Drive: %w", err)
		}
		log.Infof("✓ Google Drive backup target enabled")
		return stor, nil

	default:
		return nil, fmt.Errorf("unknown remote type: %s", cfg.Remote.Type)
	}
}

func initializeDiagnostics(cfg *config.Config, log *logger.Logger) domain.Diagnostics {
	logReporter := diagnostics.NewLogReporter(log)
	if !cfg.Diagnostics.Telegram {
		return logReporter
	}

	tg, err := diagnostics.NewTelegram(&cfg.Diagnostics)
	if err != nil {
		log.Errorf("Failed to initialize Telegram diagnostics: %v", err)
		return logReporter
	}
	log.Infof("✓ Telegram diagnostics enabled")
	return diagnostics.NewMulti(logReporter, tg)
}

// Run schedules automatic backup sessions and blocks until the context is
// cancelled. The scheduler only runs while the opt-in setting is on.
func (a *App) Run(ctx context.Context) error {
	if err := a.scheduler.AddJob(a.config.Backup.Schedule, a.runScheduledSession); err != nil {
		return fmt.Errorf("failed to schedule backup: %w", err)
	}

	settings, err := a.state.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	a.scheduler.SetEnabled(settings.BackupImages)

	a.logger.Infof("Automatic backup schedule: %s (enabled: %v)",
		a.config.Backup.Schedule, settings.BackupImages)

	<-ctx.Done()
	a.cancelCurrent()
	return nil
}

// RunOnce performs a single manual backup session.
func (a *App) RunOnce(ctx context.Context) error {
	sess := a.backupUC.NewSession()
	a.setCurrent(sess)
	defer a.setCurrent(nil)
	return a.backupUC.StartMediaBackup(ctx, sess, a.config.Backup.TargetFolder, domain.ModeManual)
}

// SetBackupImages toggles the automatic-backup opt-in, wiring the scheduler
// in as the background updater.
func (a *App) SetBackupImages(ctx context.Context, enabled bool) (bool, error) {
	return a.backupUC.SetBackupImages(ctx, a.scheduler, enabled)
}

func (a *App) runScheduledSession(ctx context.Context) error {
	sess := a.backupUC.NewSession()
	a.setCurrent(sess)
	defer a.setCurrent(nil)

	err := a.backupUC.StartMediaBackup(ctx, sess, a.config.Backup.TargetFolder, domain.ModeAutomatic)
	if err != nil && err != domain.ErrSessionActive {
		a.logger.Errorf("Scheduled backup failed: %v", err)
	}
	return err
}

func (a *App) setCurrent(sess *usecase.Session) {
	a.mu.Lock()
	a.current = sess
	a.mu.Unlock()
}

func (a *App) cancelCurrent() {
	a.mu.Lock()
	sess := a.current
	a.mu.Unlock()
	if sess != nil {
		a.backupUC.CancelMediaBackup(sess)
	}
}

func (a *App) Shutdown() {
	a.logger.Infof("Shutting down...")
	a.scheduler.Stop()
	if err := a.state.Close(); err != nil {
		a.logger.Errorf("Failed to close state store: %v", err)
	}
	a.logger.Close()
}
