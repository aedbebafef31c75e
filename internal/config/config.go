// Package config loads the strada.json project configuration: the route
// manifest, the base path, and server and metrics settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/strada-dev/strada/internal/errors"
	"github.com/strada-dev/strada/pkg/router"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "strada.json"

	// DefaultPort is the default serve port.
	DefaultPort = 3000

	// DefaultHost is the default serve host.
	DefaultHost = "localhost"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "strada"
)

// Config represents the complete strada.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Base scopes the whole route tree under a path prefix.
	Base string `json:"base,omitempty"`

	// Server contains serve-command settings.
	Server ServerConfig `json:"server,omitempty"`

	// Metrics contains metrics settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Routes is the declarative route manifest.
	Routes []RouteConfig `json:"routes,omitempty"`

	// configPath stores the path the config was loaded from.
	configPath string
}

// ServerConfig contains serve-command settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	// Enabled controls metric registration.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty"`
}

// RouteConfig is one node of the declarative route manifest.
type RouteConfig struct {
	// Path follows the route pattern grammar.
	Path string `json:"path"`

	// Redirect, when set, navigates to the given target (replacing the
	// history entry) whenever this route matches.
	Redirect string `json:"redirect,omitempty"`

	// Children nest under this route.
	Children []RouteConfig `json:"children,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
	}
}

// Load reads configuration from the specified directory, looking for
// strada.json in it.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigMissing(path)
		}
		return nil, errors.ConfigInvalid("failed to read "+path, err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigInvalid("failed to parse "+path, err)
	}
	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration as indented JSON.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return err
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Exists reports whether a strada.json is present in dir.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks the configuration for errors a router build would reject.
func (c *Config) Validate() error {
	if _, ok := router.ResolvePath("", c.Base, ""); !ok {
		return errors.InvalidBase(c.Base)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.ConfigInvalid(fmt.Sprintf("port %d out of range", c.Server.Port), nil)
	}
	return validateRoutes(c.Routes)
}

func validateRoutes(routes []RouteConfig) error {
	for _, rc := range routes {
		if rc.Redirect != "" {
			if _, ok := router.ResolvePath("", rc.Redirect, ""); !ok {
				return errors.ConfigInvalid(
					fmt.Sprintf("route %q redirects to unroutable target %q", rc.Path, rc.Redirect), nil)
			}
		}
		if err := validateRoutes(rc.Children); err != nil {
			return err
		}
	}
	return nil
}

// Address returns the serve host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Definitions converts the route manifest into a definition tree. Redirect
// entries become data loaders that replace the location with their target.
func (c *Config) Definitions() []router.Definition {
	return buildDefinitions(c.Routes)
}

func buildDefinitions(routes []RouteConfig) []router.Definition {
	defs := make([]router.Definition, 0, len(routes))
	for _, rc := range routes {
		def := router.Definition{
			Path:     rc.Path,
			Children: buildDefinitions(rc.Children),
		}
		if target := rc.Redirect; target != "" {
			def.Data = func(args router.LoaderArgs) any {
				if err := args.Navigate(target, router.WithReplace(), router.WithoutResolve()); err != nil {
					return err
				}
				return nil
			}
		}
		defs = append(defs, def)
	}
	return defs
}
