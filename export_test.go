package main

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"
)

func TestTreeFeatureCollection(t *testing.T) {
	tree, ids := buildTree(t)
	_, err := tree.ConnectGoal(ids[2])
	require.NoError(t, err)

	fc := TreeFeatureCollection(tree, ExtractPath(tree))
	require.Len(t, fc.Features, 4)

	edges, ok := fc.Features[0].Geometry.(orb.MultiLineString)
	require.True(t, ok)
	require.Len(t, edges, tree.Len()-1)
	require.Equal(t, "tree", fc.Features[0].Properties["kind"])

	line, ok := fc.Features[1].Geometry.(orb.LineString)
	require.True(t, ok)
	require.Len(t, line, 4)
	require.Equal(t, "path", fc.Features[1].Properties["kind"])
	require.Equal(t, true, fc.Features[1].Properties["validated"])

	start := fc.Features[2].Geometry.(orb.Point)
	require.Equal(t, Point{0, 0}, PointFromOrb(start))
	goal := fc.Features[3].Geometry.(orb.Point)
	require.Equal(t, tree.Goal(), PointFromOrb(goal))
	require.Equal(t, true, fc.Features[3].Properties["connected"])

	data, err := fc.MarshalJSON()
	require.NoError(t, err)
	decoded, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, decoded.Features, 4)
}

// TestTreeFeatureCollection_RootOnly omits the path feature when it has a single waypoint.
func TestTreeFeatureCollection_RootOnly(t *testing.T) {
	tree := NewTree(Point{1, 1}, Point{8, 8})
	fc := TreeFeatureCollection(tree, ExtractPath(tree))
	require.Len(t, fc.Features, 3)
	require.Equal(t, "start", fc.Features[1].Properties["kind"])
	require.Equal(t, false, fc.Features[2].Properties["connected"])
}
