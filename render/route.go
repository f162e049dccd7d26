package render

import (
	"campus-navigator/algo"
	"campus-navigator/model"
)

// NodeView 路线中的节点信息
type NodeView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Category string  `json:"category"`
	Floor    string  `json:"floor,omitempty"`
}

// SegmentView 路线中相邻两点之间的一段 (含节点名称)
type SegmentView struct {
	FromID   string  `json:"from_id"`
	FromName string  `json:"from_name"`
	ToID     string  `json:"to_id"`
	ToName   string  `json:"to_name"`
	Distance float64 `json:"distance"`
	Time     float64 `json:"time"` // 预计步行时间 (秒)
}

// RouteView 面向绘制方的完整路线视图
type RouteView struct {
	Found         bool          `json:"found"`
	Nodes         []NodeView    `json:"nodes,omitempty"`
	Segments      []SegmentView `json:"segments,omitempty"`
	SegmentIDs    []string      `json:"segment_ids,omitempty"` // 预绘制路段的高亮顺序
	Distance      float64       `json:"distance,omitempty"`    // 总距离 (米)
	EstimatedTime float64       `json:"estimated_time,omitempty"`
	Message       string        `json:"message,omitempty"`
}

// BuildRouteView 把寻路结果组装成路线视图
func BuildRouteView(g *algo.Graph, result algo.PathResult) RouteView {
	if !result.Found {
		return RouteView{
			Found:   false,
			Message: "未找到路径",
		}
	}

	// 构建路径节点信息
	nodes := make([]NodeView, 0, len(result.Path))
	for _, nodeID := range result.Path {
		node := g.Nodes[nodeID]
		if node == nil {
			continue
		}
		nodes = append(nodes, NodeView{
			ID:       node.ID,
			Name:     node.Name,
			Lat:      node.Lat,
			Lng:      node.Lng,
			Category: node.Category,
			Floor:    node.Floor,
		})
	}

	// 构建路径段信息 (包含节点名称)
	segments := make([]SegmentView, 0, len(result.Path))
	for i := 0; i < len(result.Path)-1; i++ {
		fromID := result.Path[i]
		toID := result.Path[i+1]
		edge := edgeBetween(g, fromID, toID)
		if edge == nil {
			continue
		}

		fromName, toName := fromID, toID
		if fromNode := g.Nodes[fromID]; fromNode != nil {
			fromName = fromNode.Name
		}
		if toNode := g.Nodes[toID]; toNode != nil {
			toName = toNode.Name
		}

		segments = append(segments, SegmentView{
			FromID:   fromID,
			FromName: fromName,
			ToID:     toID,
			ToName:   toName,
			Distance: edge.Weight,
			Time:     model.EstimateWalkTime(edge.Weight),
		})
	}

	return RouteView{
		Found:         true,
		Nodes:         nodes,
		Segments:      segments,
		SegmentIDs:    result.Segments,
		Distance:      result.Distance,
		EstimatedTime: model.EstimateWalkTime(result.Distance),
		Message:       "路径规划成功",
	}
}

// edgeBetween 在邻接表中找 from -> to 的边 (取声明顺序中的第一条)
func edgeBetween(g *algo.Graph, fromID, toID string) *model.Edge {
	for _, edge := range g.GetNeighbors(fromID) {
		if edge.To == toID {
			return edge
		}
	}
	return nil
}
