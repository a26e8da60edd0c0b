package database

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tauraamui/dragonframes/pkg/database/models"
	"github.com/tauraamui/dragonframes/pkg/database/repos"
	"github.com/tauraamui/dragonframes/pkg/log"
	"github.com/tauraamui/xerror"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	vendorName       = "tacusci"
	appName          = "dragonframes"
	databaseFileName = "runs.db"
	databasePathEnv  = "DRAGON_FRAMES_DB"

	SQLITE_INMEM_FILE_PATH = "file::memory:?cache=shared"
)

var uc = os.UserCacheDir
var fs = afero.NewOsFs()

// Connect opens the run ledger, creating the database file and its
// parent directories if needed. An empty path falls back to
// DRAGON_FRAMES_DB, then to the user cache directory.
func Connect(path string) (repos.GormWrapper, error) {
	dbPath, err := resolveDBPath(path, uc)
	if err != nil {
		return nil, err
	}

	if !isInMemory(dbPath) {
		if err := fs.MkdirAll(filepath.Dir(dbPath), os.ModeDir|os.ModePerm); err != nil {
			return nil, xerror.Errorf("unable to create database directory: %w", err)
		}
	}

	log.Debug("Connecting to DB: %s", dbPath)
	db, err := openDBConnection(dbPath)
	if err != nil {
		return nil, xerror.Errorf("unable to open db connection: %w", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn("unable to close db connection: %s", closeErr.Error())
		}
		return nil, xerror.Errorf("unable to run automigrations: %w", err)
	}

	return db, nil
}

// Record stores a single run in the ledger at path.
func Record(path string, run *models.Run) error {
	db, err := Connect(path)
	if err != nil {
		return err
	}
	defer db.Close()

	runRepo := repos.RunRepository{DB: db}
	if err := runRepo.Create(run); err != nil {
		return xerror.Errorf("unable to record %s run: %w", run.Kind, err)
	}
	return nil
}

var openDBConnection = func(path string) (repos.GormWrapper, error) {
	logger := logger.New(nil, logger.Config{LogLevel: logger.Silent})
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger})
	if err != nil {
		return nil, err
	}
	return repos.Wrap(db), nil
}

func resolveDBPath(path string, uc func() (string, error)) (string, error) {
	if len(path) > 0 {
		return path, nil
	}

	databasePath := os.Getenv(databasePathEnv)
	if len(databasePath) > 0 {
		return databasePath, nil
	}

	databaseParentDir, err := uc()
	if err != nil {
		return "", xerror.Errorf("unable to resolve %s database file location: %w", databaseFileName, err)
	}

	return filepath.Join(
		databaseParentDir,
		vendorName,
		appName,
		databaseFileName), nil
}

func isInMemory(path string) bool {
	return strings.HasPrefix(path, "file::memory:") || path == ":memory:"
}
