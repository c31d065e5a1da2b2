package model

// Category is a named, ordered taxonomy tag attachable to messages or
// events. The two domains keep structurally identical but data-isolated
// registries; which registry a Category belongs to is decided by the
// repository it came from, not by the value itself.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Order       int16  `json:"order"`
}

// CategoryPatch holds fields that can be updated on a category.
// Nil fields are left untouched.
type CategoryPatch struct {
	Name        *string
	Description *string
	Slug        *string
	Order       *int16
}
