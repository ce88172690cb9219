// Package filesystem provides the file access abstraction used by the loader.
//
// FileSystemProvider covers existence checks and streaming reads, so the loader
// never holds a whole CSV file in memory and can be tested without touching disk.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
