package domain

// Owner is a property owner record. Birthday is carried as the upstream's
// ISO date string; the gateway never interprets it.
type Owner struct {
	ID         string     `json:"id,omitempty"`
	IDOwner    string     `json:"idOwner,omitempty"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	Photo      string     `json:"photo,omitempty"`
	Birthday   string     `json:"birthday"`
	Properties []Property `json:"properties,omitempty"`
}
