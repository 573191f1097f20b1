//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package inventory

import (
	"os"
	"runtime"
)

func uname() (System, error) {
	name, _ := os.Hostname()
	return System{
		Sysname:  runtime.GOOS,
		Nodename: name,
		Machine:  runtime.GOARCH,
	}, nil
}
