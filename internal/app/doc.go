// Package app wires the Freesound client, the URL and tag processors and the
// download service together and runs the commands of freesound-grabber.
package app
