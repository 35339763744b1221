// Package investorslounge fetches PSX price history through the
// Investors Lounge JSON proxy API.
package investorslounge

// Config holds the settings for the Investors Lounge client.
type Config struct {
	// BaseURL is the site root, e.g. "https://www.investorslounge.com".
	BaseURL string
}
