package chipsandguac

import (
	"testing"

	_ "embed"

	"github.com/stretchr/testify/require"
)

//go:embed testdata/order_history.html
var orderHistoryPage []byte

//go:embed testdata/order_review.html
var orderReviewPage []byte

//go:embed testdata/locations.html
var locationsPage []byte

func TestParseOrderHistory(t *testing.T) {
	orders, err := parseOrderHistory(orderHistoryPage)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	require.Equal(t, int64(101), orders[0].Id)
	require.Equal(t, "Friday Usual", orders[0].Name)
	require.Len(t, orders[0].Items, 2)
	require.Equal(t, "Burrito", orders[0].Items[0].Name)
	require.Equal(t, "Steak, Pinto Beans, Hot Salsa", orders[0].Items[0].Details)
	require.Equal(t, "Chips & Guacamole", orders[0].Items[1].Name)

	require.Equal(t, int64(102), orders[1].Id)
	require.Equal(t, "Veggie", orders[1].Name)
	require.Len(t, orders[1].Items, 1)
}

func TestParseOrderHistoryEmpty(t *testing.T) {
	orders, err := parseOrderHistory([]byte(`<html><body></body></html>`))
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestParseOrderReview(t *testing.T) {
	pickup := pickupTimesResponse{
		SelectList: []pickupTimeOption{
			{Text: "12:00 PM", Value: "2016-01-01T12:00"},
			{Text: "12:15 PM", Value: "2016-01-01T12:15"},
		},
	}
	pickup.IsSuccessful = true

	review, err := parseOrderReview(orderReviewPage, pickup)
	require.NoError(t, err)

	require.Equal(t, "123 Main St", review.Location)
	require.Equal(t, []string{"2016-01-01T12:00", "2016-01-01T12:15"}, review.PickupTimes)

	require.Len(t, review.Items, 2)
	require.Equal(t, "Burrito Bowl", review.Items[0].Name)
	require.Equal(t, "Chicken Bowl", review.Items[0].ItemName)
	require.Equal(t, "White Rice, Black Beans, Mild Salsa", review.Items[0].ItemDetails)
	require.Equal(t, "Side", review.Items[1].Name)
	require.Equal(t, "Chips", review.Items[1].ItemName)
}

func TestParseLocations(t *testing.T) {
	locations, err := parseLocations(locationsPage)
	require.NoError(t, err)
	require.Len(t, locations, 2)

	require.Equal(t, 512, locations[0].Id)
	require.Equal(t, "Downtown Plaza", locations[0].Name)
	require.Equal(t, 640, locations[1].Id)
	require.Equal(t, "Uptown Mall", locations[1].Name)
}

func TestParseLocationsEmpty(t *testing.T) {
	locations, err := parseLocations([]byte(`<html><body><p>no results</p></body></html>`))
	require.NoError(t, err)
	require.Empty(t, locations)
}
