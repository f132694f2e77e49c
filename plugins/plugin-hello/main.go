// Package pluginhello: example plugin that greets users who say "你好" or "hello"
// in a group or private chat, and answers when someone pokes the bot in a group.
package pluginhello

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Luo9/Plugin-Hello/lib/host"
	"github.com/Luo9/Plugin-Hello/lib/onebot"
	"github.com/Luo9/Plugin-Hello/middlewares/replylog"
	"github.com/Luo9/Plugin-Hello/middlewares/whitelist"
)

// PluginName is the registered name and the config dir name.
const PluginName = "hello_plugin"

// ErrAPIInit matches every *InitError under errors.Is.
var ErrAPIInit = errors.New("API initialization failed")

// InitError reports that the API capability could not be built from the host config.
type InitError struct {
	Cause error
}

func (e *InitError) Error() string {
	return ErrAPIInit.Error() + ": " + e.Cause.Error()
}

func (e *InitError) Unwrap() error { return e.Cause }

func (e *InitError) Is(target error) bool { return target == ErrAPIInit }

// APIFactory builds the API capability from the host config.
type APIFactory func(cfg *host.Config) (host.API, error)

// Option configures New.
type Option func(*options)

type options struct {
	logger *zap.Logger
	newAPI APIFactory
}

// WithLogger sets the plugin logger. Default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithAPIFactory replaces the OneBot HTTP client.
func WithAPIFactory(f APIFactory) Option {
	return func(o *options) { o.newAPI = f }
}

// Plugin is the hello plugin instance. Nothing in it changes after New returns,
// so handlers may run concurrently.
type Plugin struct {
	metadata host.Metadata
	config   *host.Config
	settings Settings
	api      host.API
	store    *replylog.Store
	logger   *zap.Logger
}

var _ host.Plugin = (*Plugin)(nil)

func init() {
	host.Register(PluginName, create)
}

// New creates a hello plugin bound to the read-only host config cfg.
func New(_ context.Context, cfg *host.Config, opts ...Option) (*Plugin, error) {
	o := options{newAPI: onebot.FromHost}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if cfg == nil {
		return nil, fmt.Errorf("%s: nil host config", PluginName)
	}

	api, err := o.newAPI(cfg)
	if err != nil {
		return nil, &InitError{Cause: err}
	}

	// Unreadable settings never block loading; the fixed texts still apply.
	settings, err := LoadSettings(cfg.DataDir)
	if err != nil {
		o.logger.Warn("plugin settings unavailable, using defaults", zap.Error(err))
		settings = DefaultSettings()
	}

	p := &Plugin{
		metadata: host.Metadata{
			Name:     PluginName,
			Describe: "一个简单的示例插件，用于演示基本功能",
			Author:   "Luo9",
			Version:  "0.1.0",
			MessageTypes: []string{
				host.MessageTypeGroup,
				host.MessageTypePrivate,
				host.MessageTypeGroupPoke,
			},
		},
		config:   cfg,
		settings: settings,
		api:      api,
		logger:   o.logger,
	}

	if settings.ReplyLog != "" {
		store, err := replylog.Open(settings.ReplyLog)
		if err != nil {
			return nil, fmt.Errorf("%s: reply log: %w", PluginName, err)
		}
		p.store = store
		p.api = replylog.Wrap(api, store, o.logger.Named("replylog"))
	}
	return p, nil
}

// Metadata returns the plugin metadata.
func (p *Plugin) Metadata() host.Metadata {
	return p.metadata.Clone()
}

// Settings returns the settings loaded at construction.
func (p *Plugin) Settings() Settings {
	return p.settings
}

// Close releases the reply log, if one is open.
func (p *Plugin) Close() error {
	if p.store == nil {
		return nil
	}
	return p.store.Close()
}

// create is the factory registered with the host.
func create(ctx context.Context, cfg *host.Config) (host.Plugin, error) {
	logger := zap.L().Named(PluginName)
	logger.Info("creating plugin instance")

	p, err := New(ctx, cfg, WithLogger(logger))
	if err != nil {
		return nil, err
	}
	var plugin host.Plugin = p
	if p.settings.Whitelist {
		list, err := whitelist.Load(cfg.DataDir)
		if err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("%s: whitelist: %w", PluginName, err)
		}
		plugin = whitelist.Wrap(p, list, logger.Named("whitelist"))
	}

	logger.Info("plugin instance created", zap.String("name", p.metadata.Name))
	return plugin, nil
}
