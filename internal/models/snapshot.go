package models

// Snapshot is the full read-only state pushed to observers. It is always
// recomputed from storage, never stored.
type Snapshot struct {
	Products     []Product     `json:"products"`
	Transactions []Transaction `json:"transactions"`
	Users        []PublicUser  `json:"users"`
}
