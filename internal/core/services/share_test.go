package services

import (
	"math/rand"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

func place(lat, lng float64, addr string) *domain.Place {
	return &domain.Place{Coordinate: domain.Coordinate{Lat: lat, Lng: lng}, Address: addr}
}

func testSelection() domain.RouteSelection {
	return domain.RouteSelection{
		Origin:      place(40.7128, -74.006, "New York, NY"),
		Destination: place(40.1, -74.1, "Somewhere & Co, NJ"),
	}
}

func TestShareCodec_EncodeKeyOrder(t *testing.T) {
	codec := NewShareCodec("https://example.com/map")

	query, err := codec.Encode(testSelection())

	require.NoError(t, err)
	assert.Equal(t,
		"origin=40.7128%2C-74.006&originAddress=New+York%2C+NY"+
			"&destination=40.1%2C-74.1&destinationAddress=Somewhere+%26+Co%2C+NJ",
		query)
}

func TestShareCodec_EncodeRequiresBothEndpoints(t *testing.T) {
	codec := NewShareCodec("")

	_, err := codec.Encode(domain.RouteSelection{Origin: place(1, 2, "A")})
	assert.ErrorIs(t, err, domain.ErrIncompleteSelection)

	_, err = codec.Encode(domain.RouteSelection{})
	assert.ErrorIs(t, err, domain.ErrIncompleteSelection)
}

func TestShareCodec_RoundTrip(t *testing.T) {
	codec := NewShareCodec("")
	rng := rand.New(rand.NewSource(7))
	addresses := []string{"Home", "Café Ümlaut", "a=b&c=d", "100% sure?", "#hash;semi", "  spaced  ", "→ arrow"}

	for i := 0; i < 500; i++ {
		sel := domain.RouteSelection{
			Origin:      place(rng.Float64()*180-90, rng.Float64()*360-180, addresses[rng.Intn(len(addresses))]),
			Destination: place(rng.Float64()*180-90, rng.Float64()*360-180, addresses[rng.Intn(len(addresses))]),
		}

		query, err := codec.Encode(sel)
		require.NoError(t, err)

		decoded, ok := codec.Decode(query)
		require.True(t, ok, "query %q", query)
		assert.True(t, sel.Equal(decoded), "round trip mismatch for %q", query)
	}
}

func TestShareCodec_RoundTripBoundaries(t *testing.T) {
	codec := NewShareCodec("")
	sel := domain.RouteSelection{
		Origin:      place(-90, -180, "South"),
		Destination: place(90, 180, "North"),
	}

	query, err := codec.Encode(sel)
	require.NoError(t, err)

	decoded, ok := codec.Decode(query)
	require.True(t, ok)
	assert.Equal(t, sel, decoded)
}

func TestShareCodec_DecodeMissingKeys(t *testing.T) {
	codec := NewShareCodec("")
	full, err := codec.Encode(testSelection())
	require.NoError(t, err)

	for _, key := range []string{"origin", "originAddress", "destination", "destinationAddress"} {
		values, err := url.ParseQuery(full)
		require.NoError(t, err)
		values.Del(key)

		_, ok := codec.Decode(values.Encode())
		assert.False(t, ok, "decode without %s", key)
	}
}

func TestShareCodec_DecodeRejectsMalformed(t *testing.T) {
	codec := NewShareCodec("")
	tests := map[string]string{
		"empty":                  "",
		"garbage":                "%%%",
		"one number":             "origin=40&originAddress=A&destination=1,2&destinationAddress=B",
		"three numbers":          "origin=1,2,3&originAddress=A&destination=1,2&destinationAddress=B",
		"not a number":           "origin=abc,2&originAddress=A&destination=1,2&destinationAddress=B",
		"NaN":                    "origin=NaN,2&originAddress=A&destination=1,2&destinationAddress=B",
		"infinite":               "origin=1,Inf&originAddress=A&destination=1,2&destinationAddress=B",
		"latitude out of range":  "origin=91,2&originAddress=A&destination=1,2&destinationAddress=B",
		"longitude out of range": "origin=1,2&originAddress=A&destination=1,181&destinationAddress=B",
		"empty address":          "origin=1,2&originAddress=&destination=1,2&destinationAddress=B",
	}

	for name, query := range tests {
		t.Run(name, func(t *testing.T) {
			sel, ok := codec.Decode(query)
			assert.False(t, ok)
			assert.Equal(t, domain.RouteSelection{}, sel)
		})
	}
}

func TestShareCodec_DecodeAcceptsPrefixAndURL(t *testing.T) {
	codec := NewShareCodec("https://example.com/map")
	link, err := codec.Link(testSelection())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://example.com/map?origin="))

	fromURL, ok := codec.Decode(link)
	require.True(t, ok)
	assert.True(t, testSelection().Equal(fromURL))

	query, _ := codec.Encode(testSelection())
	fromPrefixed, ok := codec.Decode("?" + query)
	require.True(t, ok)
	assert.True(t, testSelection().Equal(fromPrefixed))
}

func TestShareCodec_LinkAppendsToExistingQuery(t *testing.T) {
	codec := NewShareCodec("https://example.com/map?lang=en")

	link, err := codec.Link(testSelection())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://example.com/map?lang=en&origin="))
}

func TestShareCodec_ShareText(t *testing.T) {
	codec := NewShareCodec("")
	result := domain.RouteResult{DistanceMeters: 14000, DurationSeconds: 900}

	text := codec.ShareText(testSelection(), result, "https://example.com/x")

	assert.Equal(t,
		"Route: New York, NY → Somewhere & Co, NJ\nDistance: 14.0 km\nDuration: 15 min\n\nView route: https://example.com/x",
		text)
}

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate("40.5, -73.25")
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinate{Lat: 40.5, Lng: -73.25}, c)

	_, err = ParseCoordinate("Times Square")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
