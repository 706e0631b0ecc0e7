package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"archivebot/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "ARCHIVEBOT_LOG_LEVEL")
	viper.BindEnv("bot.interval", "ARCHIVEBOT_RUN_INTERVAL")
	viper.BindEnv("bot.dryRun", "ARCHIVEBOT_DRY_RUN")
	viper.BindEnv("wiki.username", "ARCHIVEBOT_USERNAME")
	viper.BindEnv("wiki.password", "ARCHIVEBOT_PASSWORD")
	viper.BindEnv("persistence.saveInterval", "ARCHIVEBOT_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "ARCHIVEBOT_CACHE_ENABLED")
	viper.BindEnv("cache.size", "ARCHIVEBOT_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ArchiveBot"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode
	if flags.DryRun {
		conf.Bot.DryRun = true
	}

	return &conf, nil
}
