package entity

type Hotel struct {
	ID        int64        `json:"hotelId"`
	OwnerID   int64        `json:"ownerId"`
	Name      string       `json:"name"`
	Location  string       `json:"location"`
	Category  string       `json:"category"`
	Rating    float64      `json:"rating"`
	Address   Address      `json:"address"`
	Amenities []string     `json:"amenities"`
	Gallery   []string     `json:"gallery"`
	Rooms     []Room       `json:"rooms,omitempty"`
	Details   HotelDetails `json:"details"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

// HotelDetails carries the free-form description fields updated via the
// /hotel/{id}/details endpoint.
type HotelDetails struct {
	Description string `json:"description"`
	Policies    string `json:"policies"`
}

type Room struct {
	ID            int64   `json:"roomId"`
	HotelID       int64   `json:"hotelId"`
	RoomType      string  `json:"roomType"`
	PricePerNight float64 `json:"pricePerNight"`
	Capacity      int     `json:"capacity"`
	Available     bool    `json:"available"`
}
