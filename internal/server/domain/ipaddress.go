package domain

// IPAddress represents a network address assigned to a server. IP addresses
// are always remote-derived; they are never part of a creation request.
type IPAddress struct {
	Access  string `json:"access"` // "public" or "private"
	Address string `json:"address"`
}
