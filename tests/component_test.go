package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"stayfront/cache"
	"stayfront/entity"
	"stayfront/gateway"
	stayfronthttp "stayfront/http"
	"stayfront/pubsub"
	"stayfront/query"
	"stayfront/session"
	"stayfront/stubapi"
)

// TestComponent runs the whole read path end to end: dashboard HTTP server,
// query runtime, invalidation bus and gateway against a stub of the remote
// API. Mutations land through HTTP and the refreshed state becomes visible
// to readers asynchronously, once the bus delivers the invalidation.
func TestComponent(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)

	ctx, cancel := context.WithCancel(context.Background())

	stub := stubapi.NewServer()
	stub.AddUser(entity.User{ID: 1, FirstName: "John", LastName: "Doe", Email: "john.doe@example.com"})
	remote := httptest.NewServer(stub.Handler())

	apiClient := gateway.NewClient(remote.URL, session.Static("component-test-token"))

	watermillLogger := pubsub.NewLogger(logrus.NewEntry(logrus.StandardLogger()))
	publisher, subscriberConstructor := pubsub.NewPubSub(nil, watermillLogger)

	bus, err := pubsub.NewInvalidationBus(publisher)
	require.NoError(t, err)

	runtime := query.NewRuntime(cache.NewStore(), bus)

	router, err := pubsub.NewWatermillRouter(subscriberConstructor, runtime, watermillLogger)
	require.NoError(t, err)

	routerStopped := make(chan struct{})
	go func() {
		assert.NoError(t, router.Run(ctx))
		close(routerStopped)
	}()
	<-router.Running()

	dashboard := httptest.NewServer(stayfronthttp.NewServer(
		"",
		runtime,
		query.NewBookings(gateway.NewBookingsClient(apiClient)),
		query.NewHotels(gateway.NewHotelsClient(apiClient)),
		query.NewPayments(gateway.NewPaymentsClient(apiClient)),
		query.NewTickets(gateway.NewTicketsClient(apiClient)),
	).Handler())

	defer func() {
		dashboard.Close()
		cancel()
		<-routerStopped
		remote.Close()
	}()

	t.Run("created booking reaches the mounted list", func(t *testing.T) {
		var before entity.Paginated[entity.Booking]
		getJSON(t, dashboard.URL+"/bookings", &before)
		require.Empty(t, before.Data)

		var created entity.Booking
		postJSON(t, dashboard.URL+"/bookings", entity.NewBooking{
			RoomID:       1,
			UserID:       1,
			CheckInDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			CheckOutDate: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
			TotalAmount:  540,
		}, &created)
		require.NotZero(t, created.ID)

		assert.Eventually(t, func() bool {
			var page entity.Paginated[entity.Booking]
			getJSON(t, dashboard.URL+"/bookings", &page)
			for _, b := range page.Data {
				if b.ID == created.ID {
					return true
				}
			}
			return false
		}, 5*time.Second, 50*time.Millisecond)
	})

	t.Run("cancel refreshes detail and confirmed list", func(t *testing.T) {
		booking := stub.AddBooking(entity.Booking{
			RoomID:        2,
			UserID:        1,
			CheckInDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			CheckOutDate:  time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
			BookingStatus: entity.BookingConfirmed,
			TotalAmount:   360,
		})
		detailURL := fmt.Sprintf("%s/bookings/%d", dashboard.URL, booking.ID)
		confirmedURL := dashboard.URL + "/bookings?status=Confirmed"

		var detail entity.Booking
		getJSON(t, detailURL, &detail)
		require.Equal(t, entity.BookingConfirmed, detail.BookingStatus)

		var confirmed entity.Paginated[entity.Booking]
		getJSON(t, confirmedURL, &confirmed)
		require.NotEmpty(t, confirmed.Data)

		resp, err := http.Post(fmt.Sprintf("%s/bookings/%d/cancel", dashboard.URL, booking.ID), "application/json", nil)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, http.StatusOK, resp.StatusCode)

		assert.Eventually(t, func() bool {
			var after entity.Booking
			getJSON(t, detailURL, &after)
			return after.BookingStatus == entity.BookingCancelled
		}, 5*time.Second, 50*time.Millisecond)

		assert.Eventually(t, func() bool {
			var after entity.Paginated[entity.Booking]
			getJSON(t, confirmedURL, &after)
			for _, b := range after.Data {
				if b.ID == booking.ID {
					return false
				}
			}
			return true
		}, 5*time.Second, 50*time.Millisecond)
	})

	t.Run("deleted payment stops resolving", func(t *testing.T) {
		payment := stub.AddPayment(entity.Payment{
			BookingID: 1,
			UserID:    1,
			Amount:    540,
			Status:    entity.PaymentCompleted,
			Method:    "card",
		})
		detailURL := fmt.Sprintf("%s/payments/%d", dashboard.URL, payment.ID)

		var detail entity.Payment
		getJSON(t, detailURL, &detail)
		require.Equal(t, payment.ID, detail.ID)

		req, err := http.NewRequest(http.MethodDelete, detailURL, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		assert.Eventually(t, func() bool {
			resp, err := http.Get(detailURL)
			if err != nil {
				return false
			}
			defer resp.Body.Close()
			_, _ = io.Copy(io.Discard, resp.Body)
			return resp.StatusCode == http.StatusNotFound
		}, 5*time.Second, 50*time.Millisecond)
	})

	t.Run("tickets filtered by customer name and status", func(t *testing.T) {
		open := stub.AddTicket(entity.Ticket{
			UserID:  1,
			Subject: "Late check-in",
			Status:  entity.TicketOpen,
		})
		stub.AddTicket(entity.Ticket{
			UserID:  1,
			Subject: "Refund request",
			Status:  entity.TicketResolved,
		})

		var tickets []entity.Ticket
		getJSON(t, dashboard.URL+"/tickets?user=john+doe&status=Open", &tickets)
		require.Len(t, tickets, 1)
		assert.Equal(t, open.ID, tickets[0].ID)
	})
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func postJSON(t *testing.T, url string, body, out any) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
