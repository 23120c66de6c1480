package domain

// Item represents an FFXIV item known to the local catalog.
// Identity is the numeric ID; the name is treated as a stable lookup
// key in practice but is not guaranteed unique.
type Item struct {
	ID       int    `json:"item_id"`
	Name     string `json:"item_name"`
	Emoji    string `json:"emoji"`
	Category string `json:"category"`
	IconURL  string `json:"icon_url"`
}

// Equal reports whether two items carry the same field values.
// Used by the store to decide whether an upsert needs a file rewrite.
func (i Item) Equal(other Item) bool {
	return i.ID == other.ID &&
		i.Name == other.Name &&
		i.Emoji == other.Emoji &&
		i.Category == other.Category &&
		i.IconURL == other.IconURL
}
