// Package nfsmount exports an in-memory layout preview over NFS so it can be
// browsed with ordinary tools before anything is written to disk.
package nfsmount

import (
	"fmt"
	"net"
	"os/exec"
	"runtime"

	billy "github.com/go-git/go-billy/v5"
	nfs "github.com/willscott/go-nfs"
	nfshelper "github.com/willscott/go-nfs/helpers"
)

// handleCacheSize bounds go-nfs's file handle cache. Previews are small.
const handleCacheSize = 1024

// Server is a running read-only NFS export.
type Server struct {
	listener net.Listener
	port     int
}

// NewServer serves fs read-only on an ephemeral localhost port.
// Writes are refused by the server itself, whatever the client mounts with.
func NewServer(fs billy.Filesystem) (*Server, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("nfs listen: %w", err)
	}

	handler := nfshelper.NewCachingHandler(nfshelper.NewNullAuthHandler(ReadOnly(fs)), handleCacheSize)
	go func() {
		_ = nfs.Serve(listener, handler)
	}()

	return &Server{
		listener: listener,
		port:     listener.Addr().(*net.TCPAddr).Port,
	}, nil
}

// Addr is the host:port the export listens on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

func (s *Server) Port() int {
	return s.port
}

// Close stops serving.
func (s *Server) Close() error {
	return s.listener.Close()
}

// mountArgs returns the mount(8) arguments for a read-only NFSv3 mount of
// the export on goos.
func mountArgs(goos string, port int, mountpoint string) ([]string, error) {
	var opts string
	switch goos {
	case "darwin":
		opts = fmt.Sprintf("port=%d,mountport=%d,vers=3,tcp,locallocks,noresvport,rdonly", port, port)
	case "linux":
		opts = fmt.Sprintf("port=%d,mountport=%d,vers=3,tcp,local_lock=all,nolock,ro", port, port)
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
	return []string{"mount", "-t", "nfs", "-o", opts, "localhost:/", mountpoint}, nil
}

// Mount mounts the export at mountpoint through sudo.
func Mount(port int, mountpoint string) error {
	args, err := mountArgs(runtime.GOOS, port, mountpoint)
	if err != nil {
		return err
	}
	if output, err := exec.Command("sudo", args...).CombinedOutput(); err != nil {
		return fmt.Errorf("mount %s: %w\n%s", mountpoint, err, output)
	}
	return nil
}

// Unmount releases mountpoint. On macOS diskutil is tried first since it
// needs no sudo for user mounts.
func Unmount(mountpoint string) error {
	if runtime.GOOS == "darwin" {
		if err := exec.Command("diskutil", "unmount", mountpoint).Run(); err == nil {
			return nil
		}
	}
	if output, err := exec.Command("sudo", "umount", mountpoint).CombinedOutput(); err != nil {
		return fmt.Errorf("unmount %s: %w\n%s", mountpoint, err, output)
	}
	return nil
}
