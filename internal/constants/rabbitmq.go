package constants

// Exchange for listing lifecycle events. The event kind doubles as the
// routing key; consumers bind with "listing.*".
const (
	ListingEventsExchange     = "listing_events"
	ListingEventsExchangeType = "topic"
)
