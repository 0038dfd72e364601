// Package freesound fetches Freesound sound pages and audio assets.
// It extracts the embedded player metadata from a page into a SoundInfo,
// retries page requests with exponential backoff, memoises parsed pages
// in an LRU cache and streams asset bodies for the download service.
package freesound
