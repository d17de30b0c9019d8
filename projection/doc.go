// Package projection defines the per-entity-kind field subsets persisted by
// the cache and their archived binary forms.
//
// Each kind has three representations: the projection struct (the retained
// field subset, built from the decoded payload), the encoded record produced
// by Marshal, and an Archived* view overlaying the record's raw bytes. Views
// come in a validating flavor (View*) and an unchecked flavor (View*Trusted)
// for deployments that treat the backing store as a trusted source.
//
// Fixed-width fields live in the record header at fixed offsets and can be
// patched in place through the view's setters. Variable-length fields live in
// the tail; changing one requires Deserialize, mutate, re-Marshal.
//
// The field set of every projection is fixed: records written by an older
// layout cannot be read by a newer one, so fields are never added or removed
// once a deployment has stored data.
package projection
