package levelwalk

import (
	"testing/fstest"
)

// boxLevel is one quad on the floor plus a player start facing +Y.
func boxLevel() fstest.MapFS {
	return fstest.MapFS{
		"maps/box.vertices.json": {Data: []byte(`{ "vertices" : [
			0, 0, 0, 0, 0, 1,
			64, 0, 0, 0, 0, 1,
			64, 64, 0, 0, 0, 1,
			0, 64, 0, 0, 0, 1 ] }`)},
		"maps/box.indices.json": {Data: []byte(`{ "indices"  : [ 0, 1, 2, 0, 2, 3 ] }`)},
		"maps/box.entities.json": {Data: []byte(`{"entities": [
			{"classname": "worldspawn", "wad": "gfx/base.wad"},
			{"classname": "info_player_start", "origin": "32 16 24", "angle": "90"}
		]}`)},
		"maps/bare.vertices.json":   {Data: []byte(`{"vertices": [0,0,0,0,0,1, 1,0,0,0,0,1, 0,1,0,0,0,1]}`)},
		"maps/bare.indices.json":    {Data: []byte(`{"indices": [0,1,2]}`)},
		"maps/broken.vertices.json": {Data: []byte(`{"vertices": [0,0,0`)},
		"maps/broken.indices.json":  {Data: []byte(`{"indices": [0]}`)},
		"maps/oob.vertices.json":    {Data: []byte(`{"vertices": [0,0,0,0,0,1]}`)},
		"maps/oob.indices.json":     {Data: []byte(`{"indices": [0,0,1]}`)},
	}
}
