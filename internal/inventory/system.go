package inventory

import "strings"

// System is the kernel identification of a host, as printed by uname.
type System struct {
	Sysname  string
	Nodename string
	Release  string
	Version  string
	Machine  string
}

// String joins the non-empty fields in `uname -a` order.
func (s System) String() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{s.Sysname, s.Nodename, s.Release, s.Version, s.Machine} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
