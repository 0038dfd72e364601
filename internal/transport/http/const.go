package http

import "time"

const (
	// dialKeepAlive is the keep-alive period of connections opened by NewTransport.
	dialKeepAlive = 30 * time.Second

	// maxIdleConnsPerHost keeps a few connections to the asset CDN warm between sounds.
	maxIdleConnsPerHost = 4

	// truncatedSuffix marks a dump that was cut at the maximum log length.
	truncatedSuffix = "... [truncated]"
)
