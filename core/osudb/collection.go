package osudb

import (
	"fmt"
	"io"
)

// CollectionList is the decoded collection.db.
type CollectionList struct {
	Version     int32
	Collections []Collection
}

// Collection is a named list of beatmap hashes. Membership is not deduplicated.
type Collection struct {
	Name          *string
	BeatmapHashes []*string
}

// DecodeCollectionList decodes a collection.db stream.
func DecodeCollectionList(r io.Reader) (*CollectionList, error) {
	d := newDecoder(r)
	cl := &CollectionList{Version: d.i32()}
	n := d.count("collection")
	for i := 0; i < n && d.err == nil; i++ {
		c := Collection{Name: d.str()}
		hashes := d.count("beatmap hash")
		for j := 0; j < hashes && d.err == nil; j++ {
			c.BeatmapHashes = append(c.BeatmapHashes, d.str())
		}
		if d.err != nil {
			return nil, fmt.Errorf("collection %d: %w", i, d.err)
		}
		cl.Collections = append(cl.Collections, c)
	}
	if d.err != nil {
		return nil, d.err
	}
	return cl, nil
}

// Encode writes the collection list.
func (cl *CollectionList) Encode(w io.Writer) error {
	e := newEncoder(w)
	e.i32(cl.Version)
	e.i32(int32(len(cl.Collections)))
	for _, c := range cl.Collections {
		e.str(c.Name)
		e.i32(int32(len(c.BeatmapHashes)))
		for _, h := range c.BeatmapHashes {
			e.str(h)
		}
	}
	return e.flush()
}

// Save atomically replaces the file at path with the encoded collection list.
func (cl *CollectionList) Save(path string) error {
	return saveFile(path, cl)
}

// LoadCollectionList reads and decodes a collection.db file.
func LoadCollectionList(path string) (*CollectionList, error) {
	return loadFile(path, DecodeCollectionList)
}
