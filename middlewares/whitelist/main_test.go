package whitelist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luo9/Plugin-Hello/lib/database/config"
	"github.com/Luo9/Plugin-Hello/lib/host"
)

type countingPlugin struct {
	group, private, poke int
	closed               bool
}

func (c *countingPlugin) Metadata() host.Metadata {
	return host.Metadata{Name: "counting"}
}

func (c *countingPlugin) HandleGroupMessage(context.Context, *host.GroupMessage) error {
	c.group++
	return nil
}

func (c *countingPlugin) HandlePrivateMessage(context.Context, *host.PrivateMessage) error {
	c.private++
	return nil
}

func (c *countingPlugin) HandleGroupPoke(context.Context, string, string, string) error {
	c.poke++
	return nil
}

func (c *countingPlugin) Close() error {
	c.closed = true
	return nil
}

func TestLoadCreatesDefault(t *testing.T) {
	dir := t.TempDir()
	l, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, config.Exists(dir, pluginName))
	assert.False(t, l.Allowed("1"))

	var cfg Config
	require.NoError(t, config.Read(dir, pluginName, &cfg))
	assert.Empty(t, cfg.GroupIDs)
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	l, err := Load(dir)
	require.NoError(t, err)

	require.NoError(t, config.Save(dir, pluginName, &Config{GroupIDs: []string{"100", ""}}))
	require.NoError(t, l.Reload())
	assert.True(t, l.Allowed("100"))
	assert.False(t, l.Allowed(""))
}

func TestGate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.Save(dir, pluginName, &Config{GroupIDs: []string{"100"}}))
	l, err := Load(dir)
	require.NoError(t, err)

	next := &countingPlugin{}
	p := Wrap(next, l, nil)
	ctx := context.Background()

	assert.Equal(t, "counting", p.Metadata().Name)

	require.NoError(t, p.HandleGroupMessage(ctx, &host.GroupMessage{GroupID: "100", Content: "hello"}))
	require.NoError(t, p.HandleGroupMessage(ctx, &host.GroupMessage{GroupID: "200", Content: "hello"}))
	require.NoError(t, p.HandleGroupMessage(ctx, nil))
	assert.Equal(t, 1, next.group)

	require.NoError(t, p.HandleGroupPoke(ctx, "bot", "u", "100"))
	require.NoError(t, p.HandleGroupPoke(ctx, "bot", "u", "200"))
	assert.Equal(t, 1, next.poke)

	require.NoError(t, p.HandlePrivateMessage(ctx, &host.PrivateMessage{SenderID: "u", Content: "hello"}))
	assert.Equal(t, 1, next.private)

	require.NoError(t, p.(interface{ Close() error }).Close())
	assert.True(t, next.closed)
}
