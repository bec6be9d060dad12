// Package collection builds collection.db entries from the beatmap listing.
package collection
