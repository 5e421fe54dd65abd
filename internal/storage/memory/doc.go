// Package memory provides the in-memory key-value store for kvmesh.
//
// Entries live in an xsync.MapOf keyed by string and hashed with murmur3.
// Each key maps to one Entry holding the value and an optional expiry.
//
// Expiry is lazy: an expired entry stays in the map until the next Get on
// that key, which deletes it and reports the key as absent. There is no
// background sweep and no capacity bound.
//
// Thread Safety:
//
// Put and Get are safe for concurrent use. Put replaces the whole entry in
// one step, and Get performs its expiry check and delete inside a single
// MapOf.Compute call, so no caller observes a half-written entry.
package memory
