package domain

// FirewallRule is a single entry in a server's firewall rule list.
type FirewallRule struct {
	Position             string `json:"position,omitempty"`
	Direction            string `json:"direction"` // "in" or "out"
	Protocol             string `json:"protocol,omitempty"`
	Action               string `json:"action"` // "accept" or "drop"
	SourcePortStart      string `json:"source_port_start,omitempty"`
	SourcePortEnd        string `json:"source_port_end,omitempty"`
	DestinationPortStart string `json:"destination_port_start,omitempty"`
	DestinationPortEnd   string `json:"destination_port_end,omitempty"`
}
