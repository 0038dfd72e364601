package freesound

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ExtractSoundInfo parses a sound page and reads the embedded player attributes.
// The player is the first element with the "bw-player" class token,
// or failing that the first element carrying a data-mp3 attribute.
// Blank audio attributes count as absent.
func ExtractSoundInfo(pageURL, content string) (*SoundInfo, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	player := findElement(doc, hasPlayerClass)
	if player == nil {
		player = findElement(doc, func(n *html.Node) bool {
			_, ok := getAttr(n, attrMP3)

			return ok
		})
	}

	if player == nil {
		return nil, ErrPlayerNotFound
	}

	info := &SoundInfo{
		SourceURL: pageURL,
		Title:     defaultTitle,
	}

	if value, ok := getAttr(player, attrMP3); ok {
		info.MP3URL = strings.TrimSpace(value)
	}

	if value, ok := getAttr(player, attrOGG); ok {
		info.OGGURL = strings.TrimSpace(value)
	}

	if !info.HasMP3() && !info.HasOGG() {
		return nil, ErrNoAudioURLs
	}

	if value, ok := getAttr(player, attrTitle); ok {
		info.Title = value
	}

	if value, ok := getAttr(player, attrSoundID); ok {
		info.SoundID = strings.TrimSpace(value)
	}

	if value, ok := getAttr(player, attrDuration); ok {
		info.DurationSeconds = strings.TrimSpace(value)
	}

	return info, nil
}

// findElement walks the tree in document order and returns the first element matching fn.
func findElement(n *html.Node, fn func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && fn(n) {
		return n
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, fn); found != nil {
			return found
		}
	}

	return nil
}

func hasPlayerClass(n *html.Node) bool {
	classes, ok := getAttr(n, attrClass)
	if !ok {
		return false
	}

	for _, class := range strings.Fields(classes) {
		if class == playerClassName {
			return true
		}
	}

	return false
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}

	return "", false
}
