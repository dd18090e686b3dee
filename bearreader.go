// Package bearreader provides a command-line reader for the Bear blogging
// platform. Bear exposes no content API, so listings and posts are scraped
// from server-rendered HTML and turned into structured content blocks.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, htmltomarkdown/).
package bearreader
