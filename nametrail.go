// Package nametrail provides a bounded, name-guided focused crawler.
// Starting from seed pages it follows only the outbound links that
// textually correlate with a person named on the current page, saving
// each page's readable text along the way.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, sqlite/, prose/).
package nametrail
