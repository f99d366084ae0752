package zone

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/elliottskebab/ordering/consts"
	"github.com/elliottskebab/ordering/internal/httpclient"
	"github.com/elliottskebab/ordering/log"
)

// Place is a reverse-geocoded point.
type Place struct {
	DisplayName string `json:"display_name"`
}

// Geocoder resolves coordinates to an address via the Nominatim API.
// Unauthenticated; be polite with call volume.
type Geocoder struct {
	baseURL string
	http    *httpclient.Client
}

// userAgent identifies this application to Nominatim, per its usage policy.
const userAgent = "elliotts-kebab-ordering/1.0 (kontakt@elliottskebab.no)"

func NewGeocoder(client *http.Client, logger log.Logger) *Geocoder {
	headers := map[string]string{"User-Agent": userAgent}
	return &Geocoder{
		baseURL: consts.DefaultGeocodeBaseURL,
		http:    httpclient.New(client, nil, logger, 1, 0, headers, nil, false),
	}
}

// SetBaseURL overrides the geocoding endpoint. For tests.
func (g *Geocoder) SetBaseURL(baseURL string) {
	if g != nil && baseURL != "" {
		g.baseURL = baseURL
	}
}

// Reverse looks up the address at a point.
func (g *Geocoder) Reverse(ctx context.Context, lat, lng float64) (*Place, error) {
	if g == nil || g.http == nil {
		return nil, fmt.Errorf("geocoder is not initialized")
	}

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("zoom", "18")
	q.Set("addressdetails", "1")
	full := g.baseURL + consts.ReverseGeocodePath + "?" + q.Encode()

	var out Place
	if _, _, err := g.http.DoJSON(ctx, http.MethodGet, full, nil, &out); err != nil {
		return nil, fmt.Errorf("reverse geocode: %w", err)
	}
	return &out, nil
}
