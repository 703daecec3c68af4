package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stayfront/entity"
	"stayfront/view"
)

func bookingID(b entity.Booking) int64 { return b.ID }

func TestAccumulator_DeduplicatesAcrossPages(t *testing.T) {
	acc := view.NewAccumulator(bookingID)

	a := entity.Booking{ID: 1}
	b := entity.Booking{ID: 2}
	c := entity.Booking{ID: 3}

	// B arrives on both pages; it must be kept exactly once, in the
	// relative order A, B, C.
	acc.Append([]entity.Booking{a, b})
	acc.Append([]entity.Booking{b, c})

	got := acc.Items()
	assert.Equal(t, []int64{1, 2, 3}, bookingIDs(got))
}

func TestAccumulator_PreservesArrivalOrder(t *testing.T) {
	acc := view.NewAccumulator(bookingID)

	acc.Append([]entity.Booking{{ID: 5}, {ID: 2}})
	acc.Append([]entity.Booking{{ID: 9}, {ID: 1}})

	assert.Equal(t, []int64{5, 2, 9, 1}, bookingIDs(acc.Items()))
}

func TestAccumulator_PageCounter(t *testing.T) {
	acc := view.NewAccumulator(bookingID)

	assert.Equal(t, 1, acc.NextPage())
	acc.Append([]entity.Booking{{ID: 1}})
	assert.Equal(t, 2, acc.NextPage())
	acc.Append([]entity.Booking{{ID: 2}})
	assert.Equal(t, 3, acc.NextPage())
}

func TestAccumulator_StatusSwitchResets(t *testing.T) {
	acc := view.NewAccumulator(bookingID)
	acc.SetStatus("Confirmed")
	acc.Append([]entity.Booking{{ID: 1}, {ID: 2}})

	// Switching tabs must clear the accumulator and rewind to page 1
	// before the next request goes out.
	acc.SetStatus("Cancelled")
	assert.Empty(t, acc.Items())
	assert.Equal(t, 1, acc.NextPage())

	// Ids seen under the previous tab are accepted again.
	acc.Append([]entity.Booking{{ID: 2}})
	assert.Equal(t, []int64{2}, bookingIDs(acc.Items()))
}

func TestAccumulator_SameStatusDoesNotReset(t *testing.T) {
	acc := view.NewAccumulator(bookingID)
	acc.SetStatus("Confirmed")
	acc.Append([]entity.Booking{{ID: 1}})

	acc.SetStatus("Confirmed")
	assert.Equal(t, []int64{1}, bookingIDs(acc.Items()))
	assert.Equal(t, 2, acc.NextPage())
}

func bookingIDs(bookings []entity.Booking) []int64 {
	out := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}
