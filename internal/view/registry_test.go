package view

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryMemoizesModules(t *testing.T) {
	api := newFakeAPI(t)
	reg := NewRegistry(api.client, "DukaPOS")

	branch := uuid.New()
	assert.Same(t, reg.Dashboard(branch), reg.Dashboard(branch))
	assert.Same(t, reg.Transfers(), reg.Transfers())
}

func TestRegistryResetTearsDownAndRebuilds(t *testing.T) {
	api := newFakeAPI(t)
	reg := NewRegistry(api.client, "DukaPOS")
	branch := uuid.New()

	old := reg.Checkout(branch)
	old.Load(context.Background())
	require.Equal(t, PhaseReady, old.Phase())

	reg.Reset()

	// The old module is closed; a new sign-in gets a fresh one
	assert.ErrorIs(t, old.beginSubmit(), ErrViewClosed)
	fresh := reg.Checkout(branch)
	assert.NotSame(t, old, fresh)
	assert.Equal(t, PhaseIdle, fresh.Phase())
}
