// Package whitelist gates a plugin so it only sees group events from groups listed in config.
// Config is read from data/config/whitelist/config.yaml; if missing, a default empty list is created and saved.
package whitelist

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Luo9/Plugin-Hello/lib/database/config"
	"github.com/Luo9/Plugin-Hello/lib/host"
)

const pluginName = "whitelist"

// Config is the whitelist config file structure.
type Config struct {
	GroupIDs []string `yaml:"group_ids"`
}

// List is the in-memory set of allowed group IDs.
type List struct {
	dataDir string

	mu      sync.RWMutex
	allowed map[string]struct{}
}

// Load reads the whitelist under dataDir ("" means $DATA_DIR or "data").
func Load(dataDir string) (*List, error) {
	l := &List{dataDir: config.DataDir(dataDir)}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload re-reads the config file, creating a default one if needed.
// The gate never re-reads the file itself; edits take effect only when the
// host calls Reload or rebuilds the plugin.
func (l *List) Reload() error {
	cfg := Config{GroupIDs: []string{}}
	if err := config.ReadOrInit(l.dataDir, pluginName, &cfg); err != nil {
		return err
	}
	allowed := make(map[string]struct{}, len(cfg.GroupIDs))
	for _, id := range cfg.GroupIDs {
		if id != "" {
			allowed[id] = struct{}{}
		}
	}
	l.mu.Lock()
	l.allowed = allowed
	l.mu.Unlock()
	return nil
}

// Allowed reports whether groupID is on the list.
func (l *List) Allowed(groupID string) bool {
	l.mu.RLock()
	_, ok := l.allowed[groupID]
	l.mu.RUnlock()
	return ok
}

type gate struct {
	next   host.Plugin
	list   *List
	logger *zap.Logger
}

// Wrap returns a plugin that forwards group messages and pokes to next only
// when the group is allowed. Private messages always pass.
func Wrap(next host.Plugin, list *List, logger *zap.Logger) host.Plugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gate{next: next, list: list, logger: logger}
}

func (g *gate) Metadata() host.Metadata {
	return g.next.Metadata()
}

func (g *gate) HandleGroupMessage(ctx context.Context, msg *host.GroupMessage) error {
	if msg == nil || !g.list.Allowed(msg.GroupID) {
		g.drop(msg)
		return nil
	}
	return g.next.HandleGroupMessage(ctx, msg)
}

func (g *gate) HandlePrivateMessage(ctx context.Context, msg *host.PrivateMessage) error {
	return g.next.HandlePrivateMessage(ctx, msg)
}

func (g *gate) HandleGroupPoke(ctx context.Context, targetID, userID, groupID string) error {
	if !g.list.Allowed(groupID) {
		g.logger.Debug("poke dropped, group not whitelisted", zap.String("group_id", groupID))
		return nil
	}
	return g.next.HandleGroupPoke(ctx, targetID, userID, groupID)
}

// Close closes next if it holds resources.
func (g *gate) Close() error {
	if c, ok := g.next.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (g *gate) drop(msg *host.GroupMessage) {
	var groupID string
	if msg != nil {
		groupID = msg.GroupID
	}
	g.logger.Debug("group message dropped, group not whitelisted", zap.String("group_id", groupID))
}
