package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCommand struct {
	name string
	args []string
	ctx  context.Context
}

func (c *recordingCommand) Name() string        { return c.name }
func (c *recordingCommand) Description() string { return "records " + c.name }
func (c *recordingCommand) Run(ctx context.Context, args []string) error {
	c.ctx, c.args = ctx, args
	return nil
}

func TestRegistry_Execute(t *testing.T) {
	mine := &recordingCommand{name: "mine"}
	registry := NewRegistry(mine, &recordingCommand{name: "migrate"})

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	require.NoError(t, registry.Execute(ctx, []string{"mine", "-items", "3"}))

	assert.Equal(t, []string{"-items", "3"}, mine.args)
	assert.Equal(t, "v", mine.ctx.Value(ctxKey{}))
}

func TestRegistry_ExecuteUnknown(t *testing.T) {
	registry := NewRegistry(&recordingCommand{name: "mine"})

	assert.ErrorIs(t, registry.Execute(context.Background(), []string{"dig"}), errUnknownCommand)
	assert.ErrorIs(t, registry.Execute(context.Background(), nil), errUnknownCommand)
}

func TestRegistry_RegisterReplacesInPlace(t *testing.T) {
	first := &recordingCommand{name: "mine"}
	second := &recordingCommand{name: "mine"}
	registry := NewRegistry(first, &recordingCommand{name: "migrate"})
	registry.Register(second)

	cmd, ok := registry.Get("mine")
	require.True(t, ok)
	assert.Same(t, second, cmd)
	assert.Len(t, registry.order, 2)
}

func TestRegistry_WriteHelpKeepsRegistrationOrder(t *testing.T) {
	registry := NewRegistry(
		&recordingCommand{name: "wait-for-db"},
		&recordingCommand{name: "mine"},
	)

	var out bytes.Buffer
	registry.WriteHelp(&out)

	help := out.String()
	assert.Contains(t, help, "Usage: devtool")
	assert.Less(t, strings.Index(help, "wait-for-db"), strings.Index(help, "  mine"))
	assert.Contains(t, help, "records mine")
}
