// Package freesound implements the download pipeline of freesound-grabber.
//
// For every input URL the service validates the domain, fetches and parses the
// sound page through the client, derives one asset request per requested and
// available format, and streams each asset into the output directory through a
// temporary .part file. Failures abandon only the current URL or file and are
// collected into the statistics printed at the end of the run.
package freesound
