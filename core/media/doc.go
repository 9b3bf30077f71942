// Package media implements media-type matching and content negotiation for
// route dispatch.
//
// Declared route types (produces/consumes) are plain type/subtype pairs;
// Accept-header ranking with q-weights and specificity is delegated to
// github.com/elnormous/contenttype. Negotiation failures surface as boolean
// results here; mapping them to not-acceptable or unsupported-media-type
// responses is the dispatcher's job.
package media
