package model

// Point 代表一个经纬度点 (WGS84)
type Point struct {
	Lat float64 // 纬度
	Lng float64 // 经度
}

// 节点类别 (封闭集合)
// junction 是纯路径拐点，只参与寻路，不能被选为目的地
const (
	CategoryAcademic  = "academic"  // 教学科研
	CategoryHostel    = "hostel"    // 宿舍
	CategoryFood      = "food"      // 餐饮
	CategoryEmergency = "emergency" // 医疗应急
	CategoryService   = "service"   // 行政服务
	CategoryLandmark  = "landmark"  // 地标景观
	CategoryJunction  = "junction"  // 路口
)

// Node 对应校园地图上的一个点 (建筑、设施、路口)
type Node struct {
	ID       string   `json:"id" validate:"required"`
	Name     string   `json:"name" validate:"required"`
	Lat      float64  `json:"lat" validate:"gte=-90,lte=90"`
	Lng      float64  `json:"lng" validate:"gte=-180,lte=180"`
	Category string   `json:"category" validate:"required,oneof=academic hostel food emergency service landmark junction"`
	Floor    string   `json:"floor,omitempty"`  // 楼层标签
	Facts    []string `json:"facts,omitempty"`  // 介绍信息
	Parent   string   `json:"parent,omitempty"` // 所属建筑的节点 ID，用于同楼判断
}

// Selectable 判断节点能否被选为目的地
func (n *Node) Selectable() bool {
	return n.Category != CategoryJunction
}

// Position 返回节点坐标
func (n *Node) Position() Point {
	return Point{Lat: n.Lat, Lng: n.Lng}
}
