package pluginhello

import (
	"github.com/Luo9/Plugin-Hello/lib/database/config"
)

const (
	// DefaultGreeting is the reply to a greeting keyword.
	DefaultGreeting = "你好啊！我是洛玖机器人！"
	// DefaultPokeReply is the reply when the bot itself is poked.
	DefaultPokeReply = "别戳我，我怕痒！"
)

// Settings is data/config/hello_plugin/config.yaml.
type Settings struct {
	Greeting  string `yaml:"greeting"`
	PokeReply string `yaml:"poke_reply"`
	// Whitelist restricts group events to groups in data/config/whitelist/config.yaml.
	Whitelist bool `yaml:"whitelist"`
	// ReplyLog is a SQLite path recording every reply; empty disables it.
	ReplyLog string `yaml:"reply_log"`
}

// DefaultSettings returns the settings written on first start.
func DefaultSettings() Settings {
	return Settings{
		Greeting:  DefaultGreeting,
		PokeReply: DefaultPokeReply,
	}
}

// LoadSettings reads the plugin settings under dataDir, writing defaults if the
// file does not exist. Blank texts fall back to the defaults, and the poke reply
// always differs from the greeting.
func LoadSettings(dataDir string) (Settings, error) {
	s := DefaultSettings()
	if err := config.ReadOrInit(config.DataDir(dataDir), PluginName, &s); err != nil {
		return Settings{}, err
	}
	if s.Greeting == "" {
		s.Greeting = DefaultGreeting
	}
	if s.PokeReply == "" || s.PokeReply == s.Greeting {
		s.PokeReply = DefaultPokeReply
	}
	if s.PokeReply == s.Greeting {
		s.Greeting = DefaultGreeting
	}
	return s, nil
}
