package middleware_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/aretw0/hexfsm/pkg/adapters/memory"
	"github.com/aretw0/hexfsm/pkg/archive"
	"github.com/aretw0/hexfsm/pkg/persistence/middleware"
	"github.com/aretw0/hexfsm/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, middleware.KeySize)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func sealed(t *testing.T, next ports.MachineStore, cfg middleware.EncryptionConfig) ports.MachineStore {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	require.NoError(t, err)
	return middleware.Chain(next, mw)
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	ports.RunMachineStoreContract(t, sealed(t, memory.NewStore(), middleware.EncryptionConfig{ActiveKey: generateKey(t)}))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	store := sealed(t, underlying, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ctx := context.Background()

	blob, err := archive.Bytes(archive.Contents{Machine: []byte("0002 0000:0001 0000:0000")})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "door", blob))

	raw, err := underlying.Load(ctx, "door")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("HXE1")))
	assert.NotContains(t, string(raw), "machine.hex")

	loaded, err := store.Load(ctx, "door")
	require.NoError(t, err)
	assert.Equal(t, blob, loaded)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)
	ctx := context.Background()

	require.NoError(t, sealed(t, underlying, middleware.EncryptionConfig{ActiveKey: oldKey}).Save(ctx, "door", []byte("payload")))

	rotated := sealed(t, underlying, middleware.EncryptionConfig{ActiveKey: newKey, FallbackKeys: [][]byte{oldKey}})
	data, err := rotated.Load(ctx, "door")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	withoutOld := sealed(t, underlying, middleware.EncryptionConfig{ActiveKey: newKey})
	_, err = withoutOld.Load(ctx, "door")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_RejectsPlain(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlying.Save(ctx, "plain", []byte("PK plain zip")))

	_, err := sealed(t, underlying, middleware.EncryptionConfig{ActiveKey: generateKey(t)}).Load(ctx, "plain")
	assert.ErrorIs(t, err, middleware.ErrNotSealed)
}

func TestEncryptionMiddleware_BadKeys(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	assert.Error(t, err)

	_, err = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    generateKey(t),
		FallbackKeys: [][]byte{[]byte("short")},
	})
	assert.Error(t, err)
}
