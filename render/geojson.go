package render

import (
	"campus-navigator/algo"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RouteFeatureCollection 把路线转换为 GeoJSON FeatureCollection
// 一条 LineString 是整条路线，另有起点和终点两个 Point。
// 没找到路径时返回空集合
func RouteFeatureCollection(g *algo.Graph, result algo.PathResult) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if !result.Found || len(result.Path) == 0 {
		return fc
	}

	// GeoJSON 坐标顺序是 [lng, lat]
	if len(result.Coords) >= 2 {
		line := make(orb.LineString, 0, len(result.Coords))
		for _, p := range result.Coords {
			line = append(line, orb.Point{p.Lng, p.Lat})
		}

		lineFeature := geojson.NewFeature(line)
		lineFeature.Properties["kind"] = "route"
		lineFeature.Properties["distance"] = result.Distance
		fc.Append(lineFeature)
	}

	if start := g.Nodes[result.Path[0]]; start != nil {
		f := geojson.NewFeature(orb.Point{start.Lng, start.Lat})
		f.Properties["kind"] = "start"
		f.Properties["name"] = start.Name
		fc.Append(f)
	}

	if end := g.Nodes[result.Path[len(result.Path)-1]]; end != nil {
		f := geojson.NewFeature(orb.Point{end.Lng, end.Lat})
		f.Properties["kind"] = "end"
		f.Properties["name"] = end.Name
		fc.Append(f)
	}

	return fc
}
