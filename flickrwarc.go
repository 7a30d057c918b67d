// Package flickrwarc converts WARC captures of Flickr photo pages into
// TFRecord training examples that pair each original-resolution image with
// the metadata scraped from its photo page.
//
// This package contains domain types, interfaces and the site-specific rules
// (selectors, cleaning, URL classification) following Ben Johnson's Standard
// Package Layout. Implementations live in subdirectories named after their
// primary dependency (e.g., goquery/, tfrecord/, sqlite/).
package flickrwarc
