package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentohumano/expediente-api/internal/infrastructure/storage"
)

func TestLocalStore_GuardaAbreYBorra(t *testing.T) {
	s, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := "u1/curp/archivo.pdf"
	require.NoError(t, s.Save(ctx, key, strings.NewReader("contenido"), "application/pdf"))

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, "contenido", string(b))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Open(ctx, key)
	assert.Error(t, err)
}

func TestLocalStore_BorrarInexistenteNoEsError(t *testing.T) {
	s, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, s.Delete(context.Background(), "u1/curp/nada.pdf"))
}

func TestLocalStore_RechazaLlavesFueraDelBase(t *testing.T) {
	s, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"../fuera.pdf", "/etc/passwd", "a/../../fuera.pdf", "."} {
		err := s.Save(ctx, key, strings.NewReader("x"), "application/pdf")
		assert.Error(t, err, "llave %q debe rechazarse", key)
	}
}

func TestLocalStore_SobrescribeMismaLlave(t *testing.T) {
	s, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := "u1/ine/archivo.pdf"
	require.NoError(t, s.Save(ctx, key, strings.NewReader("uno"), "application/pdf"))
	require.NoError(t, s.Save(ctx, key, strings.NewReader("dos"), "application/pdf"))

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "dos", string(b))
}
