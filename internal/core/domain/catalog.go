package domain

// Commodity is one entry of the externally-refreshed commodity
// catalog. Variants are cultivar or product-form names ("heirloom",
// "raw honey") matched independently of the commodity itself.
type Commodity struct {
	Name     string   `json:"name"`
	Variants []string `json:"variants,omitempty"`
}
