package chipsandguac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newFakeLocator(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write(homePage)
	})
	mux.HandleFunc("POST /{$}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(tokenHeader) == "" {
			http.Error(w, "missing verification token", http.StatusBadRequest)
			return
		}
		if r.FormValue("PartialAddress") == "" {
			http.Error(w, "missing zipcode", http.StatusBadRequest)
			return
		}
		w.Write(locationsPage)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGetNearbyLocations(t *testing.T) {
	server := newFakeLocator(t)

	locations, err := GetNearbyLocations(context.Background(), server.URL, "90210")
	require.NoError(t, err)
	require.Equal(t, []Location{
		{Id: 512, Name: "Downtown Plaza"},
		{Id: 640, Name: "Uptown Mall"},
	}, locations)
}

func TestFindNearbyLocation(t *testing.T) {
	server := newFakeLocator(t)

	location, err := FindNearbyLocation(context.Background(), server.URL, "90210", "uptown mall")
	require.NoError(t, err)
	require.Equal(t, 640, location.Id)

	location, err = FindNearbyLocation(context.Background(), server.URL, "90210", "downtown")
	require.NoError(t, err)
	require.Equal(t, 512, location.Id)
}
