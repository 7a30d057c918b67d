package flickrwarc

import (
	"net/textproto"
	"strings"
)

// WARC header names used for dispatch.
const (
	HeaderWARCType      = "WARC-Type"
	HeaderWARCTargetURI = "WARC-Target-URI"
)

// Target URL markers for the Flickr capture layout.
const (
	PageURLPrefix   = "https://www.flickr.com/photos/"
	ImageAssetHost  = "staticflickr.com"
	IconAssetMarker = "buddyicons"
)

// Record is one archive record: its WARC header block and raw body.
// A Record is only valid for the iteration step that produced it.
type Record struct {
	Header textproto.MIMEHeader
	Body   []byte
}

// Type returns the WARC-Type header value.
func (r *Record) Type() string {
	return r.Header.Get(HeaderWARCType)
}

// TargetURI returns the WARC-Target-URI header value.
func (r *Record) TargetURI() string {
	// Some writers wrap the URI in angle brackets (WARC/1.1 draft syntax).
	uri := r.Header.Get(HeaderWARCTargetURI)
	return strings.TrimSuffix(strings.TrimPrefix(uri, "<"), ">")
}

// Kind classifies the record by its WARC-Type.
func (r *Record) Kind() RecordKind {
	if r.Type() == "response" {
		return RecordResponse
	}
	return RecordOther
}

// RecordReader iterates archive records in order.
// Next returns io.EOF when the archive is exhausted.
type RecordReader interface {
	Next() (*Record, error)
}

// RecordKind is the closed set of archive record types the pipeline cares about.
type RecordKind int

const (
	RecordOther RecordKind = iota
	RecordResponse
)

// String returns the kind name.
func (k RecordKind) String() string {
	switch k {
	case RecordResponse:
		return "response"
	default:
		return "other"
	}
}

// TargetCategory is the closed set of target URL categories.
type TargetCategory int

const (
	TargetUncategorized TargetCategory = iota
	TargetPage
	TargetImageAsset
	TargetIconAsset
)

// String returns the category name.
func (c TargetCategory) String() string {
	switch c {
	case TargetPage:
		return "page"
	case TargetImageAsset:
		return "image"
	case TargetIconAsset:
		return "icon"
	default:
		return "uncategorized"
	}
}

// ClassifyTarget maps a target URI onto its category.
func ClassifyTarget(uri string) TargetCategory {
	switch {
	case strings.HasPrefix(uri, PageURLPrefix):
		return TargetPage
	case strings.Contains(uri, ImageAssetHost):
		if strings.Contains(uri, IconAssetMarker) {
			return TargetIconAsset
		}
		return TargetImageAsset
	default:
		return TargetUncategorized
	}
}
