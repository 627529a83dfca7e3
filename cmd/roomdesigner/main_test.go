package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/roomdesigner"
	"github.com/phanxgames/roomdesigner/appctx"
	"github.com/phanxgames/roomdesigner/catalog"
)

func parseFlags(t *testing.T, args ...string) options {
	t.Helper()
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(args))
	var opts options
	f := cmd.Flags()
	opts.catalogPath, _ = f.GetString("catalog")
	opts.productID, _ = f.GetInt("product")
	opts.color, _ = f.GetString("color")
	opts.scale, _ = f.GetFloat64("scale")
	opts.width, _ = f.GetFloat64("width")
	opts.length, _ = f.GetFloat64("length")
	opts.height, _ = f.GetFloat64("height")
	opts.wall, _ = f.GetString("wall")
	opts.debug, _ = f.GetBool("debug")
	return opts
}

func TestFlagDefaults(t *testing.T) {
	opts := parseFlags(t)
	assert.Equal(t, "", opts.catalogPath)
	assert.Equal(t, 0, opts.productID)
	assert.Equal(t, 1.0, opts.scale)
	assert.False(t, opts.debug)
}

func TestBuildConfigRoom(t *testing.T) {
	opts := parseFlags(t, "--width", "7", "--height", "2.5", "--wall", "lightblue")
	app := appctx.New()
	cfg, err := buildConfig(context.Background(), opts, catalog.Default(), app)
	require.NoError(t, err)

	assert.Equal(t, 7.0, cfg.Room.Width)
	assert.Equal(t, roomdesigner.DefaultRoomConfig().Length, cfg.Room.Length)
	assert.Equal(t, 2.5, cfg.Room.Height)
	assert.Equal(t, "#ADD8E6", cfg.Room.WallColor.Hex())
	_, ok := app.TakeHandoff()
	assert.False(t, ok, "no --product means no hand-off")
}

func TestBuildConfigHandoff(t *testing.T) {
	opts := parseFlags(t, "--product", "2", "--color", "#000000", "--scale", "1.5")
	app := appctx.New()
	ctx := context.Background()
	cfg, err := buildConfig(ctx, opts, catalog.Default(), app)
	require.NoError(t, err)

	d, err := roomdesigner.New(ctx, cfg)
	require.NoError(t, err)
	defer d.Close()

	snap := d.Store().Snapshot()
	require.Equal(t, 1, snap.Len())
	it := snap.Item(0)
	assert.Equal(t, 2, it.Product.ID)
	assert.Equal(t, "#000000", it.Color.Hex())
	assert.Equal(t, 1.5, it.Scale)
}

func TestBuildConfigErrors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		args []string
	}{
		{"bad wall", []string{"--wall", "plaid"}},
		{"bad color", []string{"--product", "1", "--color", "#12"}},
		{"unknown product", []string{"--product", "999"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildConfig(ctx, parseFlags(t, tt.args...), catalog.Default(), appctx.New())
			assert.Error(t, err)
		})
	}

	_, err := buildConfig(ctx, parseFlags(t, "--product", "999"), catalog.Default(), appctx.New())
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}

func TestRejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(new(nopWriter))
	cmd.SetErr(new(nopWriter))
	assert.Error(t, cmd.Execute())
}

type nopWriter struct{}

func (*nopWriter) Write(p []byte) (int, error) { return len(p), nil }
