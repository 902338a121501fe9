package core

import (
	"context"
	"io/fs"
	"os"
)

// PermOwnerRW defines secure file permissions (owner read/write only).
const PermOwnerRW fs.FileMode = 0o600

// PermDocFile defines the default permissions for rewritten documentation files.
const PermDocFile fs.FileMode = 0o644

// FileSystem abstracts filesystem operations so the engine and walker can be
// exercised against an in-memory implementation in tests.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte, perm fs.FileMode) error
	Rename(ctx context.Context, oldPath, newPath string) error
	Remove(ctx context.Context, path string) error
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
	ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error)
}

// OSFileSystem is the production FileSystem backed by the os package.
type OSFileSystem struct{}

// NewOSFileSystem creates a FileSystem backed by the real filesystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (o *OSFileSystem) ReadFile(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (o *OSFileSystem) WriteFile(_ context.Context, path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (o *OSFileSystem) Rename(_ context.Context, oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (o *OSFileSystem) Remove(_ context.Context, path string) error {
	return os.Remove(path)
}

func (o *OSFileSystem) Stat(_ context.Context, path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (o *OSFileSystem) ReadDir(_ context.Context, path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}
