// Package core holds the shared filesystem abstraction used across the
// autoversion CLI. Production code runs against OSFileSystem; tests run
// against MockFileSystem so documents never touch the real disk.
package core
