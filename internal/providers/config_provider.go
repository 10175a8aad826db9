package providers

import (
	"alarmbot/internal/structures"
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"strings"
	"time"
)

const AppName = "AlarmBot"

func setDefaults(v *viper.Viper) {
	v.SetDefault("alarm.checkInterval", 30*time.Second)
	v.SetDefault("alarm.tolerance", 0.001)
	v.SetDefault("alarm.maxPerOwner", 10)
	v.SetDefault("persistence.driver", "file")
	v.SetDefault("persistence.filePath", "alarms.json")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "./logs")
	v.SetDefault("telegram.pollTimeout", 10*time.Second)
	v.SetDefault("market.quoteAsset", "USDT")
	v.SetDefault("market.symbolTTL", time.Hour)
	v.SetDefault("market.timeout", 10*time.Second)
	v.SetDefault("cache.ttl", 5*time.Second)
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8090)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "ALARMBOT_LOG_LEVEL")
	v.BindEnv("telegram.token", "ALARMBOT_TELEGRAM_TOKEN")
	v.BindEnv("alarm.checkInterval", "ALARMBOT_CHECK_INTERVAL")
	v.BindEnv("alarm.tolerance", "ALARMBOT_TOLERANCE")
	v.BindEnv("alarm.maxPerOwner", "ALARMBOT_MAX_ALARMS_PER_OWNER")
	v.BindEnv("persistence.filePath", "ALARMBOT_STORE_PATH")
	v.BindEnv("cache.enabled", "ALARMBOT_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
