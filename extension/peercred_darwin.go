//go:build darwin

package extension

import (
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// peerAllowed accepts the agent socket only when the peer runs as the
// same user. The socket equivalent of the page's origin allow-list.
func peerAllowed(conn net.Conn) bool {
	uc, ok := conn.(*net.UnixConn)
	if !ok {
		return false
	}
	raw, err := uc.SyscallConn()
	if err != nil {
		return false
	}

	allowed := false
	ctrlErr := raw.Control(func(fd uintptr) {
		cred, err := unix.GetsockoptXucred(int(fd), unix.SOL_LOCAL, unix.LOCAL_PEERCRED)
		if err != nil {
			return
		}
		allowed = int(cred.Uid) == os.Getuid()
	})
	return ctrlErr == nil && allowed
}
