package domain

// VenueBooking is a user-entered performance venue for one city.
// It is stored verbatim; nothing about it is derived.
type VenueBooking struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Seats   int    `json:"seats"`
	MapLink string `json:"map_link"`
}
