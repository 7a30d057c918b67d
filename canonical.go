package flickrwarc

import (
	"net/url"
	"regexp"
	"strings"
)

// variantSuffix matches the size suffix Flickr adds to derived images,
// e.g. the "_m." in 123_abc_m.jpg.
var variantSuffix = regexp.MustCompile(`_[a-z]\.`)

// IsCanonical reports whether rawURL names an original-resolution asset
// rather than a resized variant.
func IsCanonical(rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, Errorf(EINVALID, "invalid image URL: %v", err)
	}
	if !u.IsAbs() {
		return false, Errorf(EINVALID, "image URL %q has no scheme", rawURL)
	}
	if u.Opaque != "" || u.Path == "" {
		return false, Errorf(EINVALID, "image URL %q has no path segments", rawURL)
	}

	segments := strings.Split(u.Path, "/")
	filename := segments[len(segments)-1]

	return !variantSuffix.MatchString(filename), nil
}
