package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/hexfsm/pkg/adapters/memory"
	"github.com/aretw0/hexfsm/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunMachineStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	data := []byte("blob")
	require.NoError(t, store.Save(ctx, "m", data))
	data[0] = 'X'

	loaded, err := store.Load(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, "blob", string(loaded))

	loaded[0] = 'Y'
	again, err := store.Load(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, "blob", string(again))
}
