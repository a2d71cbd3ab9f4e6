package store

import (
	"fmt"

	"gorm.io/gorm"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// BackendType identifies a RecordStore implementation.
type BackendType string

const (
	// PostgresBackend is the remote relational store.
	PostgresBackend BackendType = "postgres"
	// LocalBackend is the durable key-value fallback for developer/demo use.
	LocalBackend BackendType = "local"
)

// IsValid returns true if the backend type is known.
func (bt BackendType) IsValid() bool {
	return bt == PostgresBackend || bt == LocalBackend
}

// SelectBackend decides which backend to use. An explicit STORE_BACKEND
// setting wins; otherwise the remote store is used when database credentials
// are configured, falling back to the local store when they are not. The
// choice is made once at startup and never changes mid-session.
func SelectBackend(cfg *config.Config) (BackendType, error) {
	if cfg.StoreBackend != "" {
		bt := BackendType(cfg.StoreBackend)
		if !bt.IsValid() {
			return "", fmt.Errorf("invalid store backend: %s", cfg.StoreBackend)
		}
		return bt, nil
	}
	if cfg.DBHost != "" {
		return PostgresBackend, nil
	}
	return LocalBackend, nil
}

// CleanupFunc releases the resources held by a store.
type CleanupFunc func() error

// Result contains the opened record store, the database handle shared with
// the user table, and a cleanup function to call at shutdown.
type Result struct {
	Store   RecordStore
	DB      *gorm.DB
	Cleanup CleanupFunc
}

// Open creates the RecordStore for the selected backend, running migrations
// for the relational backend.
func Open(cfg *config.Config) (*Result, error) {
	backend, err := SelectBackend(cfg)
	if err != nil {
		return nil, err
	}

	switch backend {
	case PostgresBackend:
		manager, err := database.NewManager(database.NewConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("create database manager: %w", err)
		}
		if err := manager.RunMigrations(); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Get().Infow("record store initialized", "backend", backend, "host", cfg.DBHost)
		return &Result{
			Store:   NewRelationalStore(manager.DB()),
			DB:      manager.DB(),
			Cleanup: manager.Close,
		}, nil

	case LocalBackend:
		s, cleanup, err := NewLocalStore(cfg.LocalStorePath)
		if err != nil {
			return nil, fmt.Errorf("open local store: %w", err)
		}
		// The user table lives in the same SQLite file as the key-value
		// collections; no SQL migrations run in local mode.
		db := s.(*localStore).db
		if err := db.AutoMigrate(&models.User{}); err != nil {
			_ = cleanup()
			return nil, fmt.Errorf("migrate local user table: %w", err)
		}
		logger.Get().Infow("record store initialized", "backend", backend, "path", cfg.LocalStorePath)
		return &Result{Store: s, DB: db, Cleanup: cleanup}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s", backend)
	}
}
