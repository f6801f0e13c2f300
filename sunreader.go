// Package sunreader turns CMS-authored article HTML into an ordered sequence
// of typed content blocks that any renderer (mobile, web, terminal) can
// consume the same way.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package sunreader
