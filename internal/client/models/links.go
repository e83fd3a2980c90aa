package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// LinkKind tags the shape the download endpoint answered with.
type LinkKind int

const (
	// Single: the endpoint returned one {"url": ...} object.
	Single LinkKind = iota + 1
	// Many: the endpoint returned an array of {"url": ...} objects.
	Many
)

func (k LinkKind) String() string {
	switch k {
	case Single:
		return "single"
	case Many:
		return "many"
	default:
		return "unknown"
	}
}

var ErrMalformedLinks = errors.New("download links must be an object or an array")

type link struct {
	URL string `json:"url"`
}

// DownloadLinks is the decoded answer of GET /s3/download/user/{ids}.
// The shape is resolved once, in UnmarshalJSON; callers only see Kind and
// the ordered URL list.
type DownloadLinks struct {
	Kind LinkKind
	urls []string
}

// SingleLink and ManyLinks build the two variants directly.
func SingleLink(url string) DownloadLinks {
	return DownloadLinks{Kind: Single, urls: []string{url}}
}

func ManyLinks(urls ...string) DownloadLinks {
	return DownloadLinks{Kind: Many, urls: append([]string(nil), urls...)}
}

// URLs returns the links in response order.
func (d DownloadLinks) URLs() []string {
	return append([]string(nil), d.urls...)
}

func (d DownloadLinks) Len() int { return len(d.urls) }

func (d *DownloadLinks) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ErrMalformedLinks
	}

	switch b[0] {
	case '{':
		var l link
		if err := json.Unmarshal(b, &l); err != nil {
			return fmt.Errorf("decode single link: %w", err)
		}
		*d = SingleLink(l.URL)
	case '[':
		var ls []link
		if err := json.Unmarshal(b, &ls); err != nil {
			return fmt.Errorf("decode link list: %w", err)
		}
		urls := make([]string, 0, len(ls))
		for _, l := range ls {
			urls = append(urls, l.URL)
		}
		*d = ManyLinks(urls...)
	default:
		return ErrMalformedLinks
	}
	return nil
}

func (d DownloadLinks) MarshalJSON() ([]byte, error) {
	if d.Kind == Single && len(d.urls) == 1 {
		return json.Marshal(link{URL: d.urls[0]})
	}
	ls := make([]link, 0, len(d.urls))
	for _, u := range d.urls {
		ls = append(ls, link{URL: u})
	}
	return json.Marshal(ls)
}
