// Package files groups the file-side packages of the loader:
//   - filesystem: existence checks and streaming reads (OS and in-memory)
//   - csvstream: header-line handling for CSV streams fed to COPY
package files
