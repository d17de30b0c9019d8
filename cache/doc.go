// Package cache keeps a Redis-backed, write-through view of gateway state.
//
// Every dispatched event updates three layers in one pipelined round trip:
// the archived record under its primary key, the id sets that track
// collection membership globally and per guild, and the per-channel message
// index ordered newest first. Reads overlay the stored bytes directly
// through the projection package, so a getter costs one GET and no decode.
//
// Records may carry per-kind TTLs. Because expiry removes only the value,
// the package listens for keyspace expiration events and repairs the index
// sets afterwards, using small companion meta records for the kinds whose
// key names do not identify their owning guild or channel.
package cache
