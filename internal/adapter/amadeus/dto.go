package amadeus

// Wire types for the Amadeus REST responses. Only the fields the tracker
// reads are declared; everything else in the payload is ignored.

// tokenResponse is the OAuth2 client-credentials grant response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// flightDatesResponse is the cheapest-date search response envelope.
type flightDatesResponse struct {
	Data []flightDate `json:"data"`
}

// flightDate is one (date, price) pair from the cheapest-date search.
type flightDate struct {
	DepartureDate string    `json:"departureDate"`
	Price         datePrice `json:"price"`
}

// datePrice carries the total price as a decimal string.
type datePrice struct {
	Total string `json:"total"`
}

// offersResponse is the flight-offers search response envelope.
type offersResponse struct {
	Data []offerPayload `json:"data"`
}

// offerPayload is one priced itinerary from the flight-offers search.
type offerPayload struct {
	ID          string             `json:"id"`
	Itineraries []itineraryPayload `json:"itineraries"`
	Price       offerPrice         `json:"price"`
}

// offerPrice carries the total price and currency of an offer.
type offerPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// itineraryPayload is one direction of travel within an offer.
type itineraryPayload struct {
	// Duration is an ISO 8601 duration, e.g. "PT11H45M"
	Duration string           `json:"duration"`
	Segments []segmentPayload `json:"segments"`
}

// segmentPayload is one flight leg.
type segmentPayload struct {
	Departure   segmentPoint `json:"departure"`
	Arrival     segmentPoint `json:"arrival"`
	CarrierCode string       `json:"carrierCode"`
	Number      string       `json:"number"`
}

// segmentPoint is a departure or arrival within a segment.
type segmentPoint struct {
	IataCode string `json:"iataCode"`
	// At is a naive local timestamp, e.g. "2025-12-05T11:55:00"
	At string `json:"at"`
}

// locationResponse is the reference-data airport lookup response.
type locationResponse struct {
	Data locationPayload `json:"data"`
}

// locationPayload holds the airport's address block.
type locationPayload struct {
	Address struct {
		CountryCode string `json:"countryCode"`
	} `json:"address"`
}
