package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// TreeFeatureCollection renders a planning run as GeoJSON for an external viewer:
// one MultiLineString for the tree edges, a LineString for the path and points for
// the start and goal. Coordinates stay in map pixels.
func TreeFeatureCollection(tree *Tree, path Path) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	edges := make(orb.MultiLineString, 0, tree.Len())
	for _, seg := range tree.Segments() {
		edges = append(edges, orb.LineString{seg[0].ToOrb(), seg[1].ToOrb()})
	}
	treeFeature := geojson.NewFeature(edges)
	treeFeature.Properties["kind"] = "tree"
	treeFeature.Properties["nodes"] = tree.Len()
	fc.Append(treeFeature)

	if len(path.Waypoints) > 1 {
		line := make(orb.LineString, 0, len(path.Waypoints))
		for _, p := range path.Waypoints {
			line = append(line, p.ToOrb())
		}
		pathFeature := geojson.NewFeature(line)
		pathFeature.Properties["kind"] = "path"
		pathFeature.Properties["validated"] = path.Validated
		pathFeature.Properties["length"] = path.Length()
		fc.Append(pathFeature)
	}

	start := geojson.NewFeature(tree.Pos(tree.Root()).ToOrb())
	start.Properties["kind"] = "start"
	fc.Append(start)

	goal := geojson.NewFeature(tree.Goal().ToOrb())
	goal.Properties["kind"] = "goal"
	goal.Properties["connected"] = tree.Success()
	fc.Append(goal)

	return fc
}
