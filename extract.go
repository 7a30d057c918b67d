package flickrwarc

import (
	"strconv"
	"strings"
)

// Selectors for the Flickr photo page layout.
const (
	SelectorRestricted   = ".restricted-interstitial-message"
	SelectorMapOverlay   = "#f_div_osm_cc"
	SelectorAllSizes     = "#all-sizes-header"
	SelectorLicense      = ".photo-license-url"
	SelectorCommentCount = ".comment-count-label"
	SelectorFaveCount    = ".fave-count-label"
	SelectorViewCount    = ".view-count-label"
	SelectorTitle        = `meta[property="og:title"]`
	SelectorDescription  = `meta[property="og:description"]`
	SelectorKeywords     = `meta[name="keywords"]`
	SelectorOwner        = ".owner-name"
	SelectorMainPhoto    = ".main-photo"
)

// exclusions are checked in order before any field is read.
var exclusions = []struct {
	selector string
	reason   string
}{
	{SelectorRestricted, "restricted content interstitial"},
	{SelectorMapOverlay, "map overlay page"},
	{SelectorAllSizes, "all sizes listing"},
}

// defaultDescriptionSuffix ends the description Flickr generates for
// uploads without one.
const defaultDescriptionSuffix = " photos to Flickr."

// ExtractImageMetadata reads and cleans the photo metadata from a page.
// Excluded pages return an EFILTERED error before any field is read.
func ExtractImageMetadata(doc Document) (*ImageMetadata, error) {
	for _, ex := range exclusions {
		if doc.Has(ex.selector) {
			return nil, Errorf(EFILTERED, "%s", ex.reason)
		}
	}

	license, err := selectAttr(doc, SelectorLicense, "href")
	if err != nil {
		return nil, err
	}

	commentCount, err := selectCount(doc, SelectorCommentCount)
	if err != nil {
		return nil, err
	}
	faveCount, err := selectCount(doc, SelectorFaveCount)
	if err != nil {
		return nil, err
	}
	viewCount, err := selectCount(doc, SelectorViewCount)
	if err != nil {
		return nil, err
	}

	title := metaContent(doc, SelectorTitle)
	if !CleanTitle(title) {
		title = ""
	}
	description := CleanDescription(metaContent(doc, SelectorDescription))
	tags := metaContent(doc, SelectorKeywords)

	owner, err := doc.SelectOne(SelectorOwner)
	if err != nil {
		return nil, err
	}

	src, err := selectAttr(doc, SelectorMainPhoto, "src")
	if err != nil {
		return nil, err
	}

	return &ImageMetadata{
		CommentCount: commentCount,
		FaveCount:    faveCount,
		ViewCount:    viewCount,
		License:      license,
		Tags:         tags,
		Title:        title,
		Description:  description,
		Owner:        strings.TrimSpace(owner.Text()),
		ImgSrc:       "https:" + src,
	}, nil
}

// CleanTitle reports whether a title is worth keeping. Camera default
// filenames like "DSC_0001" are rejected: after lower-casing and removing
// "img", "dcim", "dsc" and "untitled", a title made of 50% or more digits
// is dropped.
func CleanTitle(title string) bool {
	t := strings.ToLower(title)
	for _, s := range []string{"img", "dcim", "dsc", "untitled"} {
		t = strings.ReplaceAll(t, s, "")
	}

	digits := 0
	for _, c := range t {
		if c >= '0' && c <= '9' {
			digits++
		}
	}

	return digits*2 < len(t)
}

// CleanDescription clears the description Flickr generates by default.
func CleanDescription(description string) string {
	if strings.HasSuffix(description, defaultDescriptionSuffix) {
		return ""
	}
	return description
}

// ParseCount parses a displayed counter such as " 1,234 ".
func ParseCount(text string) (uint64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	n, err := strconv.ParseUint(s, 10, 63)
	if err != nil {
		return 0, Errorf(EINVALID, "invalid count %q", text)
	}
	return n, nil
}

func selectAttr(doc Document, selector, attr string) (string, error) {
	el, err := doc.SelectOne(selector)
	if err != nil {
		return "", err
	}
	v, ok := el.Attr(attr)
	if !ok {
		return "", Errorf(EINVALID, "%s has no %s attribute", selector, attr)
	}
	return v, nil
}

func selectCount(doc Document, selector string) (uint64, error) {
	el, err := doc.SelectOne(selector)
	if err != nil {
		return 0, err
	}
	return ParseCount(el.Text())
}

// metaContent returns the content of a unique meta tag, or "" when the tag
// is missing or repeated.
func metaContent(doc Document, selector string) string {
	el, err := doc.SelectOne(selector)
	if err != nil {
		return ""
	}
	v, _ := el.Attr("content")
	return v
}
