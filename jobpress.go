// Package jobpress turns loosely structured job-listing pages into
// canonical structured posts and publishes each distinct item exactly
// once to a content store. It harvests candidate links from listing
// pages, extracts normalized fields from detail pages, classifies each
// item into a fixed category set, composes a format-stable document,
// and gates publication on an idempotent duplicate check.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency or concern
// (e.g., goquery/, wordpress/, sqlite/).
package jobpress
