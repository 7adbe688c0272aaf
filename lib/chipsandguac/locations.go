package chipsandguac

import (
	"context"
	"fmt"

	"github.com/jquatier/chipsandguac/lib/textutil"

	"github.com/antzucaro/matchr"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

// GetNearbyLocations looks up restaurants near a zipcode. The lookup is
// anonymous and stateless: it runs on its own cookie jar and shares nothing
// with any ordering session. Pass an empty baseUrl for the production site.
func GetNearbyLocations(ctx context.Context, baseUrl, zip string) ([]Location, error) {
	ctx, span := tracer.Start(ctx, "GetNearbyLocations")
	defer span.End()

	if baseUrl == "" {
		baseUrl = BaseOrderUrl
	}
	http, err := newHttpClient(baseUrl)
	if err != nil {
		return nil, err
	}

	landing, err := execute(http.R().SetContext(ctx), resty.MethodGet, "/")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch landing page")
		return nil, err
	}
	token, err := requireActionToken(landing)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	results, err := execute(
		http.R().
			SetContext(ctx).
			SetHeader(tokenHeader, token).
			SetFormData(map[string]string{"PartialAddress": zip}),
		resty.MethodPost, "/",
	)
	if err != nil {
		span.SetStatus(codes.Error, "zipcode search failed")
		return nil, err
	}

	return parseLocations(results)
}

// FindNearbyLocation looks up locations near zip and returns the one whose
// display name is most similar to name.
func FindNearbyLocation(ctx context.Context, baseUrl, zip, name string) (Location, error) {
	ctx, span := tracer.Start(ctx, "FindNearbyLocation")
	defer span.End()

	locations, err := GetNearbyLocations(ctx, baseUrl, zip)
	if err != nil {
		return Location{}, err
	}
	if len(locations) == 0 {
		err := fmt.Errorf("no locations found near %s", zip)
		span.SetStatus(codes.Error, err.Error())
		return Location{}, err
	}

	want := textutil.NormalizeName(name)
	var best Location
	var mostSimilarity float64
	for _, loc := range locations {
		similarity := matchr.JaroWinkler(want, textutil.NormalizeName(loc.Name), false)
		if similarity > mostSimilarity {
			mostSimilarity = similarity
			best = loc
		}
	}
	return best, nil
}
