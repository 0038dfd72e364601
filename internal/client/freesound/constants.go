package freesound

const (
	// playerClassName is the CSS class token of the embedded player element.
	playerClassName = "bw-player"
	// defaultTitle is used when the player has no data-title attribute.
	defaultTitle = "unknown"
)

// Player attributes.
const (
	attrClass    = "class"
	attrMP3      = "data-mp3"
	attrOGG      = "data-ogg"
	attrTitle    = "data-title"
	attrSoundID  = "data-sound-id"
	attrDuration = "data-duration"
)

const (
	// soundInfoCacheSize defines the maximum number of parsed pages to cache.
	// A run rarely touches more than a few hundred sounds.
	soundInfoCacheSize = 1000
	// maxPageSize caps the amount of HTML read from a single page.
	maxPageSize = 16 * 1024 * 1024
)
