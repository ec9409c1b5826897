package conf

import (
	"errors"
	"flag"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var configDir = flag.String("config", ".", "directory holding the configuration file")

type Option func(*conf)

type conf struct {
	configFileType string
	configFilename string
	configDir      string
	envFiles       []string
}

func defaultConf() *conf {
	return &conf{
		configFileType: "yaml",
		configFilename: "config",
	}
}

func apply(opts ...Option) *conf {
	newConf := defaultConf()
	for _, opt := range opts {
		opt(newConf)
	}
	if newConf.configDir == "" {
		newConf.configDir = *configDir
	}
	return newConf
}

func WithFileType(fileType string) Option {
	return func(c *conf) {
		c.configFileType = fileType
	}
}

func WithFileName(filename string) Option {
	return func(c *conf) {
		c.configFilename = filename
	}
}

// WithDir overrides the -config flag.
func WithDir(dir string) Option {
	return func(c *conf) {
		c.configDir = dir
	}
}

// WithEnvFiles lists dotenv files to load, ".env" when none are given.
func WithEnvFiles(files ...string) Option {
	return func(c *conf) {
		c.envFiles = files
	}
}

// Init loads dotenv files into the process environment and reads the config
// file into viper. Neither the dotenv files nor the config file have to exist;
// environment variables bound by the caller are enough to run.
func Init(opts ...Option) error {
	cur := apply(opts...)

	// godotenv never overrides variables that are already set.
	_ = godotenv.Load(cur.envFiles...)

	viper.SetConfigType(cur.configFileType)
	viper.AddConfigPath(cur.configDir)
	viper.SetConfigName(cur.configFilename)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}
