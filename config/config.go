// Package config loads the settings of the connect four shell from flags,
// the environment and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug            = "debug"
	ConfigVariant          = "variant"
	ConfigPlayer1          = "player1"
	ConfigPlayer2          = "player2"
	ConfigPlayer1Name      = "player1-name"
	ConfigPlayer2Name      = "player2-name"
	ConfigDifficulty1      = "difficulty1"
	ConfigDifficulty2      = "difficulty2"
	ConfigSearchTrace      = "search-trace"
	ConfigAutoplayThreads  = "autoplay-threads"
	ConfigAutoplayGames    = "autoplay-games"
	ConfigAutoplayMaxMoves = "autoplay-max-moves"
	ConfigCPUProfile       = "cpu-profile"
	ConfigFile             = "config-file"
)

const envPrefix = "CONNECTFOUR"

type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config holding only the defaults.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigVariant, "classic")
	c.SetDefault(ConfigPlayer1, "human")
	c.SetDefault(ConfigPlayer2, "ai")
	c.SetDefault(ConfigPlayer1Name, "Player1")
	c.SetDefault(ConfigPlayer2Name, "Player2")
	c.SetDefault(ConfigDifficulty1, "medium")
	c.SetDefault(ConfigDifficulty2, "medium")
	c.SetDefault(ConfigSearchTrace, false)
	c.SetDefault(ConfigAutoplayThreads, 4)
	c.SetDefault(ConfigAutoplayGames, 100)
	c.SetDefault(ConfigAutoplayMaxMoves, 200)
	c.SetDefault(ConfigCPUProfile, "")
}

// Load parses args as flags and reads the environment. Arguments that are
// not flags are left for the caller in Args.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("connectfour", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigVariant, "classic", "game variant: classic or popout")
	fs.String(ConfigPlayer1, "human", "player one: human or ai")
	fs.String(ConfigPlayer2, "ai", "player two: human or ai")
	fs.String(ConfigPlayer1Name, "Player1", "name of player one")
	fs.String(ConfigPlayer2Name, "Player2", "name of player two")
	fs.String(ConfigDifficulty1, "medium", "difficulty of player one if it is a computer: easy, medium, hard, pro")
	fs.String(ConfigDifficulty2, "medium", "difficulty of player two if it is a computer: easy, medium, hard, pro")
	fs.Bool(ConfigSearchTrace, false, "print the search trace of computer players")
	fs.Int(ConfigAutoplayThreads, 4, "number of games played at once by autoplay")
	fs.Int(ConfigAutoplayGames, 100, "number of games played by autoplay")
	fs.Int(ConfigAutoplayMaxMoves, 200, "games longer than this are stopped and counted as draws")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigFile, "", "YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if f := c.GetString(ConfigFile); f != "" {
		c.SetConfigFile(f)
		if err := c.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			log.Warn().Str("file", f).Msg("config-file-not-found")
		}
	}
	c.Set("args", fs.Args())
	return nil
}

// Args returns the non-flag arguments of the last Load.
func (c *Config) Args() []string {
	return c.GetStringSlice("args")
}

// Settings returns every key with its value, for display.
func (c *Config) Settings() map[string]any {
	s := c.AllSettings()
	delete(s, "args")
	return s
}
