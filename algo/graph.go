package algo

import (
	"campus-navigator/model"
	"campus-navigator/utils"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator"
)

// 数据错误在加载时直接失败，查询类错误由调用方按需提示用户
var (
	ErrEmptyGraph     = errors.New("图中没有节点")
	ErrDuplicateNode  = errors.New("节点 ID 重复")
	ErrNodeNotFound   = errors.New("节点不存在")
	ErrSelfLoop       = errors.New("边的两个端点相同")
	ErrNegativeWeight = errors.New("边的权重为负")
)

var validate = validator.New()

// Graph 图结构，用于路径规划
// 加载完成后只读，可以被多个读者安全共享
type Graph struct {
	Nodes    map[string]*model.Node   // 节点字典 (ID -> Node)
	AdjList  map[string][]*model.Edge // 邻接表 (ID -> 边列表)
	NodeList []model.Node             // 节点列表 (按声明顺序，用于确定性遍历)
}

// NewGraph 创建一个空的图
func NewGraph() *Graph {
	return &Graph{
		Nodes:   make(map[string]*model.Node),
		AdjList: make(map[string][]*model.Edge),
	}
}

// LoadFromJSON 从 JSON 文件加载地图数据
func LoadFromJSON(filepath string) (*Graph, error) {
	file, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("读取文件失败: %w", err)
	}

	return LoadFromBytes(file)
}

// LoadFromBytes 从 JSON 字节串加载地图数据 (内置数据用)
func LoadFromBytes(data []byte) (*Graph, error) {
	var mapData model.MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("解析 JSON 失败: %w", err)
	}

	return buildGraph(mapData)
}

// buildGraph 校验地图数据并构建图
// 数据错误一律在这里报出，而不是留给寻路时崩溃
func buildGraph(data model.MapData) (*Graph, error) {
	if len(data.Nodes) == 0 {
		return nil, ErrEmptyGraph
	}
	if err := validate.Struct(&data); err != nil {
		return nil, fmt.Errorf("地图数据校验失败: %w", err)
	}

	g := NewGraph()

	// 加载节点
	for i := range data.Nodes {
		node := &data.Nodes[i]
		if g.Nodes[node.ID] != nil {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, node.ID)
		}
		g.Nodes[node.ID] = node
		g.NodeList = append(g.NodeList, *node)
	}

	// 加载声明的边
	for i := range data.Edges {
		edge := &data.Edges[i]
		if edge.From == edge.To {
			return nil, fmt.Errorf("%w: %s", ErrSelfLoop, edge.From)
		}
		from := g.Nodes[edge.From]
		to := g.Nodes[edge.To]
		if from == nil {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, edge.From)
		}
		if to == nil {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, edge.To)
		}
		if edge.Weight < 0 {
			return nil, fmt.Errorf("%w: %s -> %s", ErrNegativeWeight, edge.From, edge.To)
		}

		// 如果权重为 0，则按两端坐标自动计算
		if edge.Weight == 0 {
			edge.Weight = utils.HaversineDistance(from.Position(), to.Position())
		}

		g.AdjList[edge.From] = append(g.AdjList[edge.From], edge)
	}

	// 边在逻辑上双向通行，这里在构建时直接物化反向边:
	// 权重相同，路段列表精确倒序。已显式声明的反向边不再补
	for i := range data.Edges {
		edge := &data.Edges[i]
		reverseExists := false
		for _, existingEdge := range g.AdjList[edge.To] {
			if existingEdge.From == edge.To && existingEdge.To == edge.From {
				reverseExists = true
				break
			}
		}
		if !reverseExists {
			reverseEdge := &model.Edge{
				From:     edge.To,
				To:       edge.From,
				Weight:   edge.Weight,
				Segments: model.ReverseSegments(edge.Segments),
				Desc:     edge.Desc,
			}
			g.AdjList[edge.To] = append(g.AdjList[edge.To], reverseEdge)
		}
	}

	return g, nil
}

// GetNeighbors 获取指定节点的邻居边 (按声明顺序，物化的反向边在后)
// 节点不存在或没有出边时返回空列表，搜索方把它当作正常的终止情况
func (g *Graph) GetNeighbors(nodeID string) []*model.Edge {
	return g.AdjList[nodeID]
}

// GetNode 根据 ID 获取节点
func (g *Graph) GetNode(nodeID string) (*model.Node, error) {
	node := g.Nodes[nodeID]
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}
	return node, nil
}

// NearestResult 最近节点查询结果
type NearestResult struct {
	NodeID   string
	Node     *model.Node
	Distance float64 // 米
}

// FindNearestNode 找到离给定坐标最近的节点
// 按声明顺序线性扫描，距离相同时先声明的节点胜出，结果确定。
// 节点只有几十个，且调用频率受 GPS 定位频率限制，O(n) 足够
func (g *Graph) FindNearestNode(lat, lng float64) (*NearestResult, error) {
	if len(g.NodeList) == 0 {
		return nil, ErrEmptyGraph
	}

	target := model.Point{Lat: lat, Lng: lng}
	var nearestID string
	minDist := -1.0

	for i := range g.NodeList {
		node := &g.NodeList[i]
		dist := utils.HaversineDistance(target, node.Position())

		if minDist < 0 || dist < minDist {
			minDist = dist
			nearestID = node.ID
		}
	}

	return &NearestResult{
		NodeID:   nearestID,
		Node:     g.Nodes[nearestID],
		Distance: minDist,
	}, nil
}

// SelectableNodes 返回所有能被选为目的地的节点 (按声明顺序，路口除外)
func (g *Graph) SelectableNodes() []model.Node {
	nodes := make([]model.Node, 0, len(g.NodeList))
	for _, node := range g.NodeList {
		if node.Selectable() {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// SearchNodes 按名称或 ID 模糊搜索可选节点 (不区分大小写)
func (g *Graph) SearchNodes(query string) []model.Node {
	results := make([]model.Node, 0)
	q := strings.ToLower(query)
	for _, node := range g.NodeList {
		if !node.Selectable() {
			continue
		}
		if strings.Contains(strings.ToLower(node.Name), q) ||
			strings.Contains(strings.ToLower(node.ID), q) {
			results = append(results, node)
		}
	}
	return results
}
