package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"archivebot/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		Wiki: structures.WikiConfig{
			APIURL: "https://en.wikipedia.org/w/api.php",
			Lang:   "en",
		},
		Bot: structures.BotConfig{
			Pages:    []string{"Talk:Example"},
			Template: "User:ArchiveBot/config",
			Interval: time.Hour,
		},
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Persistence: structures.Persistence{
			FilePath:     "/tmp/archivebot.dat",
			SaveInterval: 30 * time.Second,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_MissingAPIURL(t *testing.T) {
	c := validConfig()
	c.Wiki.APIURL = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_BadAPIURL(t *testing.T) {
	c := validConfig()
	c.Wiki.APIURL = "not a url"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_NoPages(t *testing.T) {
	c := validConfig()
	c.Bot.Pages = nil
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_NoTemplate(t *testing.T) {
	c := validConfig()
	c.Bot.Template = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}
