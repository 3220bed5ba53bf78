// Package storage implementa el puerto FileStore sobre disco local o S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/talentohumano/expediente-api/internal/application/ports"
)

var _ ports.FileStore = (*LocalStore)(nil)

// LocalStore guarda los archivos en disco bajo un directorio base. Es el
// driver de desarrollo y de despliegues de un solo nodo.
type LocalStore struct {
	base string
}

// NewLocalStore construye el store y crea el directorio base si no existe.
func NewLocalStore(base string) (*LocalStore, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio base: %w", err)
	}
	return &LocalStore{base: base}, nil
}

// resolve valida la llave y la convierte en ruta física bajo el directorio base.
func (s *LocalStore) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("llave inválida: %q", key)
	}
	return filepath.Join(s.base, clean), nil
}

// Save escribe el archivo, creando los directorios intermedios.
func (s *LocalStore) Save(ctx context.Context, key string, r io.Reader, contentType string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("crear directorio: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear archivo: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("escribir archivo: %w", err)
	}
	return f.Close()
}

// Open abre el archivo para lectura.
func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir archivo: %w", err)
	}
	return f, nil
}

// Delete elimina el archivo; borrar uno inexistente no es error.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("borrar archivo: %w", err)
	}
	return nil
}
