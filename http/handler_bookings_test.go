package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayfront/cache"
	"stayfront/entity"
	"stayfront/gateway"
	stayfronthttp "stayfront/http"
	"stayfront/query"
)

type directPublisher struct {
	rt *query.Runtime
}

func (p *directPublisher) PublishInvalidation(ctx context.Context, tags []cache.Tag) error {
	return p.rt.ApplyInvalidation(ctx, tags)
}

func newDashboard(bookings *gateway.BookingsMock) *httptest.Server {
	pub := &directPublisher{}
	rt := query.NewRuntime(cache.NewStore(), pub)
	pub.rt = rt

	server := stayfronthttp.NewServer(
		"",
		rt,
		query.NewBookings(bookings),
		query.NewHotels(&gateway.HotelsMock{}),
		query.NewPayments(&gateway.PaymentsMock{}),
		query.NewTickets(&gateway.TicketsMock{}),
	)
	return httptest.NewServer(server.Handler())
}

func TestUserFeedTabsAccumulateIndependently(t *testing.T) {
	api := &gateway.BookingsMock{
		Bookings: map[int64]entity.Booking{
			1: {ID: 1, UserID: 7, BookingStatus: entity.BookingPending},
			2: {ID: 2, UserID: 7, BookingStatus: entity.BookingPending},
			3: {ID: 3, UserID: 7, BookingStatus: entity.BookingConfirmed},
		},
		NextID: 3,
	}
	dashboard := newDashboard(api)
	defer dashboard.Close()

	pendingURL := dashboard.URL + "/users/7/bookings?status=Pending&limit=1"
	confirmedURL := dashboard.URL + "/users/7/bookings?status=Confirmed&limit=1"

	first := getFeed(t, pendingURL)
	require.Equal(t, []int64{1}, feedIDs(first))

	// Paging another status tab must not reset the pending feed.
	confirmed := getFeed(t, confirmedURL)
	require.Equal(t, []int64{3}, feedIDs(confirmed))

	second := getFeed(t, pendingURL)
	assert.Equal(t, []int64{1, 2}, feedIDs(second))
}

type feedResponse struct {
	Data        []entity.Booking `json:"data"`
	HasNextPage bool             `json:"hasNextPage"`
}

func getFeed(t *testing.T, url string) feedResponse {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var feed feedResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&feed))
	return feed
}

func feedIDs(feed feedResponse) []int64 {
	ids := make([]int64, 0, len(feed.Data))
	for _, b := range feed.Data {
		ids = append(ids, b.ID)
	}
	return ids
}
