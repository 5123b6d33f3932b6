package ipc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/weft-term/weftctl/internal/target"
)

// DefaultClass is the rendezvous name used when auto-detecting an
// instance and WEFT_SOCKET is not set.
const DefaultClass = "weft"

// DefaultSocketDir returns the directory weft instances place their
// command sockets in.
func DefaultSocketDir() string {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir != "" {
		return filepath.Join(runtimeDir, "weft")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("weft-%d", os.Getuid()))
}

// SocketPath resolves the command socket for the selected instance.
// An explicit identity names the socket directly. Auto-detection
// honors WEFT_SOCKET (weft sets it for processes it spawns) before
// falling back to the default class socket. dir overrides the socket
// directory; empty means DefaultSocketDir.
func SocketPath(dir string, sel target.Selector) string {
	if id, ok := sel.Identity(); ok {
		return filepath.Join(socketDir(dir), id+".sock")
	}
	if path := os.Getenv("WEFT_SOCKET"); path != "" {
		return path
	}
	return filepath.Join(socketDir(dir), DefaultClass+".sock")
}

func socketDir(dir string) string {
	if dir != "" {
		return dir
	}
	return DefaultSocketDir()
}
