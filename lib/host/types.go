// Package host defines the contract between the Luo9 bot host and its plugins:
// plugin metadata, the typed events the host delivers, the read-only host config,
// and the API capability a plugin uses to reply.
package host

import (
	"context"
	"slices"
	"time"
)

// Event kinds a plugin may declare in Metadata.MessageTypes.
const (
	MessageTypeGroup     = "group_message"
	MessageTypePrivate   = "private_message"
	MessageTypeGroupPoke = "group_poke"
)

// Metadata is the static record a plugin exposes for discovery.
// MessageTypes must list exactly the event kinds the plugin responds to.
type Metadata struct {
	Name         string
	Describe     string
	Author       string
	Version      string
	MessageTypes []string
}

// Clone returns a copy that does not share MessageTypes with m.
func (m Metadata) Clone() Metadata {
	m.MessageTypes = slices.Clone(m.MessageTypes)
	return m
}

// Handles reports whether kind is one of the declared message types.
func (m Metadata) Handles(kind string) bool {
	return slices.Contains(m.MessageTypes, kind)
}

// GroupMessage is a text message received in a group chat.
type GroupMessage struct {
	GroupID  string
	SenderID string
	Content  string
}

// PrivateMessage is a text message received in a one-to-one chat.
type PrivateMessage struct {
	SenderID string
	Content  string
}

// Config is the host configuration shared read-only with every plugin.
type Config struct {
	// BotID is the bot's own account ID, compared against poke targets.
	BotID string `yaml:"bot_id"`
	// DataDir is the root data directory; empty means $DATA_DIR or "data".
	DataDir string    `yaml:"data_dir"`
	API     APIConfig `yaml:"api"`
}

// APIConfig locates the messaging API the host exposes to plugins.
type APIConfig struct {
	URL         string        `yaml:"url"`
	AccessToken string        `yaml:"access_token"`
	Timeout     time.Duration `yaml:"timeout"`
}

// API is the outbound messaging capability. Implementations must be safe for concurrent use.
type API interface {
	SendGroupMessage(ctx context.Context, groupID, text string) error
	SendPrivateMsg(ctx context.Context, userID, text string) error
}

// Plugin is implemented by every plugin the host loads. The host may call the
// handlers concurrently for different events.
type Plugin interface {
	Metadata() Metadata
	HandleGroupMessage(ctx context.Context, msg *GroupMessage) error
	HandlePrivateMessage(ctx context.Context, msg *PrivateMessage) error
	HandleGroupPoke(ctx context.Context, targetID, userID, groupID string) error
}

// Factory builds a plugin instance once at load time.
type Factory func(ctx context.Context, cfg *Config) (Plugin, error)
