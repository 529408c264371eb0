package discord

import "time"

// DefaultIdentityTTL is how long a resolved display name is reused.
const DefaultIdentityTTL = 10 * time.Minute

const (
	// Display limits
	maxMessageLength     = 2000
	maxMessageTruncation = 1990
	maxEmbedFieldLength  = 1024
	maxEmbedDescription  = 4096

	// Embed colors
	colorGold   = 0xFFD700 // Leaderboard
	colorOrange = 0xE67E22 // Player stats
	colorRed    = 0xE74C3C // Corrections
	colorBlue   = 0x3498DB // History

	requestTimeout = 10 * time.Second
	exportFileName = "война_%s.xlsx"
)
