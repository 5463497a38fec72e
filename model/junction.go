package model

// Link is a complete junction row: both the owning id and the target id are set.
type Link[O comparable, T comparable] struct {
	Owner  O
	Target T
}

// Linker is implemented by junction rows. ok is false for placeholder rows
// where either side of the relation is null.
type Linker[O comparable, T comparable] interface {
	Link() (link Link[O, T], ok bool)
}

// CompleteLinks drops incomplete rows and returns the remaining links in input order.
func CompleteLinks[O comparable, T comparable, R Linker[O, T]](rows []R) []Link[O, T] {
	links := make([]Link[O, T], 0, len(rows))
	for _, row := range rows {
		if link, ok := row.Link(); ok {
			links = append(links, link)
		}
	}
	return links
}

// FirstLink returns the first complete link, ignoring any later ones.
func FirstLink[O comparable, T comparable, R Linker[O, T]](rows []R) (Link[O, T], bool) {
	for _, row := range rows {
		if link, ok := row.Link(); ok {
			return link, true
		}
	}
	return Link[O, T]{}, false
}

func link[O comparable, T comparable](owner *O, target *T) (Link[O, T], bool) {
	if owner == nil || target == nil {
		return Link[O, T]{}, false
	}
	return Link[O, T]{Owner: *owner, Target: *target}, true
}

// UserLocationUser maps a user onto a userLocation (userLocation_user).
type UserLocationUser struct {
	ID             int     `json:"id"`
	UserLocationID *int    `json:"userLocation_id"`
	UserID         *string `json:"user_id"`
}

// Link is owned by the user and targets the userLocation.
func (r UserLocationUser) Link() (Link[string, int], bool) {
	return link(r.UserID, r.UserLocationID)
}

// UserLocationLocation maps a userLocation onto a location (userLocation_location).
type UserLocationLocation struct {
	ID             int  `json:"id"`
	UserLocationID *int `json:"userLocation_id"`
	LocationID     *ID  `json:"location_id"`
}

func (r UserLocationLocation) Link() (Link[int, ID], bool) {
	return link(r.UserLocationID, r.LocationID)
}

// ScheduleSubLocation maps a taskSchedule row onto a sub-location.
type ScheduleSubLocation struct {
	ID            int  `json:"id"`
	ScheduleID    *int `json:"taskSchedule_id"`
	SubLocationID *ID  `json:"subLocation_id"`
}

func (r ScheduleSubLocation) Link() (Link[int, ID], bool) {
	return link(r.ScheduleID, r.SubLocationID)
}

// ScheduleUser assigns a user to a taskSchedule row.
type ScheduleUser struct {
	ID         int     `json:"id"`
	ScheduleID *int    `json:"taskSchedule_id"`
	UserID     *string `json:"user_id"`
}

func (r ScheduleUser) Link() (Link[int, string], bool) {
	return link(r.ScheduleID, r.UserID)
}

// EventSubLocation maps an event onto a sub-location.
type EventSubLocation struct {
	ID            int  `json:"id"`
	EventID       *int `json:"event_id"`
	SubLocationID *ID  `json:"subLocation_id"`
}

func (r EventSubLocation) Link() (Link[int, ID], bool) {
	return link(r.EventID, r.SubLocationID)
}
