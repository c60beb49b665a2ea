package ports

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/hexfsm/pkg/archive"
	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunMachineStoreContract runs a suite of tests to verify that a MachineStore
// implementation adheres to the defined interface contract.
func RunMachineStoreContract(t *testing.T, store MachineStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	blob := func(t *testing.T, hex string) []byte {
		data, err := archive.Bytes(archive.Contents{
			Machine: []byte(hex),
			Labels:  []byte("[fsm]\nversion = 1\ntype = \"dfa\"\n"),
		})
		require.NoError(t, err)
		return data
	}

	t.Run("Save and Load", func(t *testing.T) {
		data := blob(t, "0000 0000:0000 0001:0000")
		require.NoError(t, store.Save(ctx, name, data), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, data, loaded)

		contents, err := archive.FromBytes(loaded)
		require.NoError(t, err)
		assert.Equal(t, "0000 0000:0000 0001:0000", string(contents.Machine))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, blob(t, "0000 0000:0000 0001:0000")))
		second := blob(t, "0002 0000:0001 0000:0000")
		require.NoError(t, store.Save(ctx, name, second))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, second, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-"+name)
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, blob(t, "0000 0000:0000 0001:0000")))

		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrMachineNotFound, "Load after Delete should return ErrMachineNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Deleting a missing name should succeed")
	})

	t.Run("List", func(t *testing.T) {
		b := name + "-b"
		a := name + "-a"
		require.NoError(t, store.Save(ctx, b, blob(t, "0000 0000:0000 0001:0000")))
		require.NoError(t, store.Save(ctx, a, blob(t, "0000 0000:0000 0001:0000")))
		defer func() {
			_ = store.Delete(ctx, a)
			_ = store.Delete(ctx, b)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)

		var ours []string
		for _, n := range names {
			if strings.HasPrefix(n, name) {
				ours = append(ours, n)
			}
		}
		assert.Equal(t, []string{a, b}, ours)
	})

	t.Run("Invalid Name", func(t *testing.T) {
		for _, bad := range []string{"", "../escape", "a/b", ".hidden"} {
			err := store.Save(ctx, bad, blob(t, "0000 0000:0000 0001:0000"))
			assert.ErrorIs(t, err, ErrInvalidName, "name %q", bad)
		}
	})
}
