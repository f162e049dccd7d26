package model

// Edge 对应两点之间的一条连线
// Weight 和 Segments 都是可选的: 权重为 0 时按两端坐标自动计算，
// 路段列表只在边对应一串预绘制的走道时出现 (高亮用)
type Edge struct {
	From     string   `json:"from" validate:"required"`
	To       string   `json:"to" validate:"required"`
	Weight   float64  `json:"weight,omitempty"`   // 距离 (米), 0 表示按坐标计算
	Segments []string `json:"segments,omitempty"` // 有序路段 ID 列表
	Desc     string   `json:"desc,omitempty"`     // 描述
}

// MapData 用于解析整个 JSON 文件
type MapData struct {
	Meta  map[string]interface{} `json:"meta"` // 存版本号等元数据
	Nodes []Node                 `json:"nodes" validate:"required,min=1,dive"`
	Edges []Edge                 `json:"edges" validate:"omitempty,dive"`
}

// SpeedWalk 步行平均速度 (米/秒), 约 5 km/h
const SpeedWalk = 1.4

// EstimateWalkTime 根据距离估算步行时间 (秒)
func EstimateWalkTime(distance float64) float64 {
	return distance / SpeedWalk
}

// ReverseSegments 返回路段列表的精确倒序副本
// 反向通行时按原路段倒序高亮，不重新推导
func ReverseSegments(segments []string) []string {
	if len(segments) == 0 {
		return nil
	}
	reversed := make([]string, len(segments))
	for i, s := range segments {
		reversed[len(segments)-1-i] = s
	}
	return reversed
}
