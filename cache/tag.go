package cache

import "strconv"

// Entity types used as tag namespaces.
const (
	TypeBooking = "Booking"
	TypeHotel   = "Hotel"
	TypeRoom    = "Room"
	TypePayment = "Payment"
	TypeTicket  = "Ticket"
)

const listID = "LIST"

// Tag identifies either a single entity instance or a named collection.
// Queries provide tags for the data they return; mutations invalidate tags
// for the data they may have made stale.
type Tag struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func (t Tag) String() string {
	return t.Type + "/" + t.ID
}

// ItemTag addresses one entity instance by numeric identity.
func ItemTag(entityType string, id int64) Tag {
	return Tag{Type: entityType, ID: strconv.FormatInt(id, 10)}
}

// ListTag addresses "the list of all entities of this type".
func ListTag(entityType string) Tag {
	return Tag{Type: entityType, ID: listID}
}

// UserTag addresses a user-scoped list, so that a create or delete for that
// user invalidates the scoped list even when the collection tag belongs to a
// different query.
func UserTag(entityType string, userID int64) Tag {
	return Tag{Type: entityType, ID: "USER-" + strconv.FormatInt(userID, 10)}
}
