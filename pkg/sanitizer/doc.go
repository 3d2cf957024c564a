// Package sanitizer cleans user input before it is stored or rendered.
//
// HTML handling is built on [github.com/microcosm-cc/bluemonday]:
// [StripHTML] keeps only text, [SanitizeHTML] keeps a small set of
// formatting tags. [StripUnprintable] and [NormalizeWhitespace] clean plain
// text.
package sanitizer
