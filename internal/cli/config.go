package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cfgview/pkg/pipeline"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// configFile is the file name looked up in the config directory.
const configFile = "config.toml"

// Config is the contents of config.toml. Every field is optional; flags
// override it.
//
//	[render]
//	formats = ["svg", "png"]
//	arrow = "path"
//	style = "light"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds default pipeline options.
type RenderConfig struct {
	Formats    []string `toml:"formats"`
	Arrow      string   `toml:"arrow"`
	Style      string   `toml:"style"`
	FontSize   float64  `toml:"font_size"`
	Scale      float64  `toml:"scale"`
	EdgeColors bool     `toml:"edge_colors"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	MaxBody int64  `toml:"max_body"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			Formats:  []string{pipeline.FormatSVG},
			Style:    pipeline.DefaultStyle,
			FontSize: pipeline.DefaultFontSize,
			Scale:    pipeline.DefaultScale,
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
		},
		Server: ServerConfig{
			Addr: "localhost:8080",
		},
	}
}

// LoadConfig reads path over [DefaultConfig]. An empty path reads the
// default location, where a missing file is not an error. Unknown keys are.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Options converts the render section to pipeline options.
func (r RenderConfig) Options() pipeline.Options {
	return pipeline.Options{
		Formats:    append([]string(nil), r.Formats...),
		Arrow:      r.Arrow,
		Style:      r.Style,
		FontSize:   r.FontSize,
		Scale:      r.Scale,
		EdgeColors: r.EdgeColors,
	}
}
