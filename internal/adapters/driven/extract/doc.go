// Package extract pulls plain text out of source files. One extractor
// per format; a Registry dispatches on the file extension.
package extract
