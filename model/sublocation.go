package model

// SubLocation is a named area (wing, room) inside a facility.
type SubLocation struct {
	ID          ID      `json:"id"`
	Name        string  `json:"name"`
	Location    *ID     `json:"location,omitempty"` // parent location id
	DateCreated *string `json:"date_created,omitempty"`
	DateUpdated *string `json:"date_updated,omitempty"`
}

// BelongsTo reports whether the sub-location's parent is locationID.
func (s SubLocation) BelongsTo(locationID ID) bool {
	return s.Location != nil && *s.Location == locationID
}
