// Package collection aggregates instincts from caller-supplied storage roots.
//
// Each Root names a directory (or any fs.FS) and the role label stamped on
// every record loaded from it. Files are matched with doublestar patterns and
// read whole; a file that cannot be read or parsed is skipped and reported as
// a Warning so one malformed file never blocks the rest of the load.
package collection
