package models

// Provider is one entry of the provider directory widget.
type Provider struct {
	Moniker  string `json:"moniker"`
	Address  string `json:"address"`
	Endpoint string `json:"endpoint"`
	Status   string `json:"status"`
}
