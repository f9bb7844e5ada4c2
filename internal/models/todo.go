package models

// Item is a single todo entry. The id is assigned by the store on insert
// and never changes afterwards.
type Item struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}
