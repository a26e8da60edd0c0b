package runner

import (
	"errors"
	"os"

	"github.com/tauraamui/dragonframes/internal/config"
	"github.com/tauraamui/dragonframes/pkg/configdef"
	"github.com/tauraamui/dragonframes/pkg/log"
)

var defaultCreator = config.DefaultCreator

// InitConfig writes the default config file so the operator has
// somewhere to put their paths. An existing file is left alone.
func InitConfig() error {
	path, err := defaultCreator().Create()
	if err != nil {
		if errors.Is(err, configdef.ErrConfigAlreadyExists) {
			log.Warn("%s: %s", err.Error(), path)
			return nil
		}
		return err
	}
	log.Info("Wrote default config to %s", path)
	return nil
}

// LoadConfig resolves the config file, falling back to defaults. The
// config's debug flag only raises the logging level when no level was
// given through the environment.
func LoadConfig() (configdef.Values, error) {
	values, err := config.DefaultResolver().Resolve()
	if err != nil {
		return values, err
	}
	if values.Debug && len(os.Getenv(log.LevelEnv)) == 0 {
		log.Configure("debug")
	}
	return values, nil
}
