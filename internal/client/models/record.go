package models

type Record struct {
	ID      int64
	Content string
}

// ExportResult points at an export document in object storage.
type ExportResult struct {
	Key   string
	URL   string
	Count int
}
