package config

import (
	"github.com/tauraamui/dragonframes/pkg/configdef"
	"github.com/tauraamui/dragonframes/pkg/rename"
	"github.com/tauraamui/dragonframes/pkg/video/videobackend"
)

type defaultSettingKey uint

const (
	VIDEOBACKEND   defaultSettingKey = 0x0
	MOCKFRAMECOUNT defaultSettingKey = 0x1
	RENAMEPREFIX   defaultSettingKey = 0x2
)

var defaultSettings = map[defaultSettingKey]interface{}{
	VIDEOBACKEND:   configdef.BackendOpenCV,
	MOCKFRAMECOUNT: videobackend.DefaultMockFrameCount,
	RENAMEPREFIX:   rename.DefaultPrefix,
}

func defaultValues() configdef.Values {
	return configdef.Values{
		VideoBackend: defaultSettings[VIDEOBACKEND].(string),
		Extract: configdef.Extract{
			MockFrameCount: defaultSettings[MOCKFRAMECOUNT].(int),
		},
		Rename: configdef.Rename{
			Prefix: defaultSettings[RENAMEPREFIX].(string),
		},
	}
}

func loadDefaultSettings(values *configdef.Values) {
	if len(values.VideoBackend) == 0 {
		values.VideoBackend = defaultSettings[VIDEOBACKEND].(string)
	}
	if len(values.Rename.Prefix) == 0 {
		values.Rename.Prefix = defaultSettings[RENAMEPREFIX].(string)
	}
}
