package domain

// Item is a read-only projection of one row of the remote catalog.
// Description is lazily populated: list endpoints omit it, and the gateway
// fills it in on demand.
type Item struct {
	ID          int    `json:"item_id"`
	Name        string `json:"name"`
	Tradeable   bool   `json:"tradeable"`
	Level       int    `json:"item_level"`
	Description string `json:"description,omitempty"`
	CanBeHQ     bool   `json:"can_be_hq"`
}
