package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type WikiConfig struct {
	APIURL    string `yaml:"apiUrl" validate:"required|fullUrl"`
	Lang      string `yaml:"lang" validate:"required"`
	UserAgent string `yaml:"userAgent"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	// Timezone is the abbreviation the wiki appends to signatures,
	// UTCOffset the fixed offset behind it (minutes).
	Timezone  string `yaml:"timezone"`
	UTCOffset int    `yaml:"utcOffset"`
}

type BotConfig struct {
	Pages    []string      `yaml:"pages" validate:"required"`
	Template string        `yaml:"template" validate:"required"`
	Salt     string        `yaml:"salt"`
	Interval time.Duration `yaml:"interval" validate:"required|min:1"`
	Force    bool          `yaml:"force"`
	DryRun   bool          `yaml:"dryRun"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Wiki        WikiConfig    `yaml:"wiki"`
	Bot         BotConfig     `yaml:"bot"`
	WebServer   Server        `yaml:"webServer"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
}
