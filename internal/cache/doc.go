// Package cache memoizes raw response bodies keyed by request URL.
//
// A Cache sits in front of a Fetcher. The first request for a URL goes to the
// network; the body is stored and the full mapping is written to durable
// storage before the call returns. Later requests for the same URL, in this run
// or any later one, are answered from the cache. Entries never expire.
//
// Two Store backends are provided: FileStore keeps the mapping in a single
// JSON text file, SQLiteStore keeps it in a SQLite database.
package cache
