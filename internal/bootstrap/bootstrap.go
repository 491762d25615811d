// Package bootstrap opens the configured snapshot sink and builds the entity
// store at process start: restore the latest snapshot when one exists,
// otherwise seed the fixed first super-admin account.
package bootstrap

import (
	"fmt"

	"github.com/chathub/backend/internal/config"
	"github.com/chathub/backend/internal/models"
	"github.com/chathub/backend/internal/snapshot"
	"github.com/chathub/backend/internal/store"
	"github.com/google/uuid"
)

func OpenSink(cfg config.SnapshotConfig) (snapshot.Sink, error) {
	switch cfg.Backend {
	case "file":
		return snapshot.NewFileSink(cfg.FilePath), nil
	case "sqlite":
		return snapshot.NewArchiveSink(cfg.ArchivePath, cfg.ArchiveKeep)
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
	}
}

func LoadStore(sink snapshot.Sink, seed config.SeedConfig) (*store.Store, error) {
	st := store.New()

	data, err := sink.Load()
	if err != nil {
		return nil, err
	}
	if data != nil {
		st.Restore(data)
		return st, nil
	}

	if err := seedSuperAdmin(st, seed); err != nil {
		return nil, err
	}
	if err := sink.Persist(st.Snapshot()); err != nil {
		return nil, fmt.Errorf("persisting seeded state: %w", err)
	}
	return st, nil
}

func seedSuperAdmin(st *store.Store, seed config.SeedConfig) error {
	return st.Update(func(state *store.State) error {
		state.InsertUser(&models.User{
			ID:       uuid.New(),
			Username: seed.Username,
			Password: seed.Password,
			Email:    seed.Email,
			Roles:    models.RoleSet{models.RoleUser, models.RoleSuperAdmin},
		})
		return nil
	})
}
