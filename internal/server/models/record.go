package models

// Record is an opaque text record kept by the record store.
type Record struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}
