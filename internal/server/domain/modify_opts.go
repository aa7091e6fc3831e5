package domain

// ModifyServerOpts is the explicit set of server fields the modify operation
// may change. Storage devices and IP addresses are deliberately absent: they
// are managed through their own operations, and listing the fields here keeps
// unknown or disallowed updates out at the type level.
//
// Zero values mean "leave unchanged".
type ModifyServerOpts struct {
	CoreNumber   int
	MemoryAmount int // megabytes
	Hostname     string
	Zone         Zone
	Title        string
	Firewall     string // "on" or "off"
	BootOrder    string // e.g. "disk", "cdrom,disk"
}

// IsZero reports whether no field is set.
func (o ModifyServerOpts) IsZero() bool {
	return o == ModifyServerOpts{}
}
