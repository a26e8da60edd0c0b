package config

import (
	"encoding/json"
	"errors"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/tauraamui/dragonframes/pkg/configdef"
	"github.com/tauraamui/dragonframes/pkg/log"
)

// load reads the config file if there is one. A missing file is not an
// error, the built in defaults are used instead.
func load() (configdef.Values, error) {
	values := defaultValues()

	configPath, err := resolveConfigPath()
	if err != nil {
		return configdef.Values{}, err
	}

	file, err := readConfigFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("No config file at %s, using defaults", configPath)
			return values, nil
		}
		return configdef.Values{}, err
	}

	log.Debug("Resolved config file location: %s", configPath)
	if err := unmarshal(file, &values); err != nil {
		return configdef.Values{}, err
	}

	if err = values.RunValidate(); err != nil {
		return configdef.Values{}, err
	}

	loadDefaultSettings(&values)

	return values, nil
}

var readConfigFile = func(path string) ([]byte, error) {
	return afero.ReadFile(fs, path)
}

func unmarshal(content []byte, values *configdef.Values) error {
	err := json.Unmarshal(content, values)
	if err != nil {
		return pkgerrors.Errorf("parsing configuration error: %v", err)
	}
	return nil
}
