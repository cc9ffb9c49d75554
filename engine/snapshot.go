package engine

import (
	"errors"
	"io/fs"

	"github.com/himakhaitan/redis-lite/pkg/config"
	"github.com/himakhaitan/redis-lite/rdb"
	"go.uber.org/zap"
)

// LoadSnapshot populates the store from the configured dir/dbfilename
func (db *DB) LoadSnapshot(loader *rdb.Loader) (*rdb.LoadResult, error) {
	dir, _ := db.settings.Get(config.KeyDir)
	filename, _ := db.settings.Get(config.KeyDBFilename)
	return loader.PopulateStore(db.Store, dir, filename)
}

// loadSnapshot runs once during startup. A missing or corrupt snapshot
// leaves the store empty and does not stop the server.
func loadSnapshot(db *DB, loader *rdb.Loader, logger *zap.Logger) {
	_, err := db.LoadSnapshot(loader)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("No snapshot found, starting empty", zap.Error(err))
	default:
		logger.Error("Could not load snapshot, starting empty", zap.Error(err))
	}
}
