package freesound

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/oshokin/freesound-grabber/internal/constants"
	"github.com/oshokin/freesound-grabber/internal/logger"
	"github.com/oshokin/freesound-grabber/internal/utils"
)

// URLProcessor defines the interface for turning user input into download items.
type URLProcessor interface {
	// ExtractDownloadItems flattens .txt URL lists, removes duplicates and classifies every URL.
	ExtractDownloadItems(ctx context.Context, urls []string) ([]*DownloadItem, error)
}

// URLProcessorImpl implements the URLProcessor interface.
type URLProcessorImpl struct{}

// freesoundDomain must be part of the host of every accepted URL.
const freesoundDomain = "freesound.org"

var (
	// soundIDPattern matches the numeric sound identifier at the end of a page path.
	//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
	soundIDPattern = regexp.MustCompile(`/sounds/(?<ID>\d+)/?$`)

	// uploaderPattern matches the uploader name of a page path.
	//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
	uploaderPattern = regexp.MustCompile(`/people/(?<Uploader>[^/]+)/`)
)

// NewURLProcessor creates and returns a new instance of URLProcessorImpl.
func NewURLProcessor() URLProcessor {
	return &URLProcessorImpl{}
}

// ExtractDownloadItems flattens .txt URL lists, removes duplicates and classifies every URL.
// The order of first appearance is kept.
func (up *URLProcessorImpl) ExtractDownloadItems(ctx context.Context, urls []string) ([]*DownloadItem, error) {
	urls, err := up.processAndFlattenURLs(urls)
	if err != nil {
		return nil, err
	}

	items := make([]*DownloadItem, 0, len(urls))

	for _, rawURL := range urls {
		item := up.parseDownloadItem(rawURL)
		if item.Category == DownloadCategorySound && item.SoundID == "" {
			logger.Debugf(ctx, "No sound ID in the path of %s, relying on the page", rawURL)
		}

		items = append(items, item)
	}

	return items, nil
}

func (up *URLProcessorImpl) parseDownloadItem(rawURL string) *DownloadItem {
	item := &DownloadItem{
		Category: DownloadCategoryUnknown,
		URL:      rawURL,
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil || !strings.Contains(strings.ToLower(parsedURL.Host), freesoundDomain) {
		return item
	}

	item.Category = DownloadCategorySound
	item.SoundID = utils.ExtractNamedGroup(soundIDPattern, "ID", parsedURL.Path)
	item.Uploader = utils.ExtractNamedGroup(uploaderPattern, "Uploader", parsedURL.Path)

	if uploader, unescapeErr := url.PathUnescape(item.Uploader); unescapeErr == nil {
		item.Uploader = uploader
	}

	return item
}

func (up *URLProcessorImpl) processAndFlattenURLs(urls []string) ([]string, error) {
	var (
		// Track processed URLs.
		processedSet = make(map[string]struct{})
		// Track processed text files.
		processedTextFiles = make(map[string]struct{})
		// Store the final list of URLs.
		processedURLs []string
	)

	addURL := func(rawURL string) {
		rawURL = strings.TrimSpace(rawURL)
		if rawURL == "" {
			return
		}

		if _, ok := processedSet[rawURL]; ok {
			return
		}

		processedSet[rawURL] = struct{}{}

		processedURLs = append(processedURLs, rawURL)
	}

	for _, arg := range urls {
		if !strings.HasSuffix(strings.ToLower(arg), constants.ExtensionTXT) {
			addURL(arg)

			continue
		}

		// Skip already processed text files.
		if _, exists := processedTextFiles[arg]; exists {
			continue
		}

		lines, err := utils.ReadUniqueLinesFromFile(arg)
		if err != nil {
			return nil, err
		}

		for _, line := range lines {
			addURL(line)
		}

		processedTextFiles[arg] = struct{}{}
	}

	return processedURLs, nil
}
