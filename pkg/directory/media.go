package directory

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// MediaItem is one media asset with an optional caption. On the wire an
// item may be a bare URL string or an object; both decode to the same
// shape, and encoding always emits the object form.
type MediaItem struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// mediaItemWire accepts the historical field spellings. Older documents
// use "description" where newer ones use "caption"; caption wins when
// both are present.
type mediaItemWire struct {
	URL         string `json:"url"`
	Caption     string `json:"caption"`
	Description string `json:"description"`
}

// UnmarshalJSON decodes either a bare URL string or a {url, caption|description}
// object. null decodes to the zero item.
func (m *MediaItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = MediaItem{}
		return nil
	}

	switch data[0] {
	case '"':
		var url string
		if err := json.Unmarshal(data, &url); err != nil {
			return fmt.Errorf("failed to decode media url: %w", err)
		}
		*m = MediaItem{URL: url}
		return nil

	case '{':
		var wire mediaItemWire
		if err := json.Unmarshal(data, &wire); err != nil {
			return fmt.Errorf("failed to decode media object: %w", err)
		}
		caption := wire.Caption
		if caption == "" {
			caption = wire.Description
		}
		*m = MediaItem{URL: wire.URL, Caption: caption}
		return nil
	}

	return fmt.Errorf("unsupported media form %s", previewJSON(data))
}

// MediaList is an ordered collection of media assets. The wire form is
// polymorphic: a bare URL string, an array of URL strings, an array of
// objects, or any mix of the two inside one array. All forms normalize
// here, at the decode boundary, so nothing downstream ever sniffs types.
// Entries without a URL are dropped during normalization.
type MediaList []MediaItem

// UnmarshalJSON normalizes every accepted wire form into the canonical
// ordered list.
func (l *MediaList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	switch data[0] {
	case '"':
		var item MediaItem
		if err := item.UnmarshalJSON(data); err != nil {
			return err
		}
		if item.URL == "" {
			*l = nil
			return nil
		}
		*l = MediaList{item}
		return nil

	case '[':
		// Element decoding goes through MediaItem.UnmarshalJSON, so
		// strings and objects may be mixed within one array.
		var items []MediaItem
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("failed to decode media list: %w", err)
		}
		kept := items[:0]
		for _, item := range items {
			if item.URL != "" {
				kept = append(kept, item)
			}
		}
		if len(kept) == 0 {
			*l = nil
			return nil
		}
		*l = MediaList(kept)
		return nil
	}

	return fmt.Errorf("unsupported media list form %s", previewJSON(data))
}

// First returns the leading media item, if any.
func (l MediaList) First() (MediaItem, bool) {
	if len(l) == 0 {
		return MediaItem{}, false
	}
	return l[0], true
}

// URLs returns the item URLs in order.
func (l MediaList) URLs() []string {
	if len(l) == 0 {
		return nil
	}
	urls := make([]string, len(l))
	for i, item := range l {
		urls[i] = item.URL
	}
	return urls
}

const previewLimit = 32

// previewJSON truncates raw JSON for error messages.
func previewJSON(data []byte) string {
	if len(data) > previewLimit {
		return string(data[:previewLimit]) + "..."
	}
	return string(data)
}
