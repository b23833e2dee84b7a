package config

import "scrollforcause/platform/internal/feed"

// Constants defining default values for application configuration
const (
	DefaultDBPath = "./platform.db"

	DefaultServerPort = 8080
	DefaultServerHost = "" // Empty string means all interfaces

	// Feed pagination bounds. Clients may ask for 1..MaxFeedPageSize items
	// per page; anything else is rejected before touching the store. The
	// configured default page size must stay inside the same bounds or every
	// cursorless request would be rejected.
	DefaultFeedPageSize = 10
	MaxFeedPageSize     = feed.MaxLimit

	DefaultLogLevel = "debug"
)
