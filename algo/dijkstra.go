package algo

import (
	"campus-navigator/model"
	"container/heap"
	"fmt"
	"math"
	"slices"
)

// PathResult 路径规划结果
// Coords 与 Path 一一对应 (画线用)，Segments 按通行顺序串联、不去重 (高亮用)
type PathResult struct {
	Path     []string      // 节点 ID 序列
	Coords   []model.Point // 节点坐标序列
	Segments []string      // 所经路段 ID 序列
	Distance float64       // 总距离 (米)
	Found    bool          // 是否找到路径
}

// PriorityQueueItem 优先队列中的元素
type PriorityQueueItem struct {
	NodeID string
	Cost   float64 // 距离成本 (米)
	Index  int     // 在堆中的索引
}

// PriorityQueue 实现 heap.Interface 接口的优先队列
type PriorityQueue []*PriorityQueueItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	return pq[i].Cost < pq[j].Cost
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*PriorityQueueItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // 避免内存泄漏
	item.Index = -1 // 标记为已移除
	*pq = old[0 : n-1]
	return item
}

// FindShortestPath 使用 Dijkstra 算法寻找最短距离路径
// 起点或终点不存在时返回 ErrNodeNotFound；两点不连通时返回 Found=false，不报错
func (g *Graph) FindShortestPath(startID, endID string) (PathResult, error) {
	if g.Nodes[startID] == nil {
		return PathResult{Found: false}, fmt.Errorf("%w: %s", ErrNodeNotFound, startID)
	}
	if g.Nodes[endID] == nil {
		return PathResult{Found: false}, fmt.Errorf("%w: %s", ErrNodeNotFound, endID)
	}

	// 起点即终点，不进搜索
	if startID == endID {
		return g.buildResult([]string{startID}, nil), nil
	}

	// 初始化距离和前驱
	dist := make(map[string]float64)
	prev := make(map[string]string)
	prevEdge := make(map[string]*model.Edge)
	visited := make(map[string]bool)

	for id := range g.Nodes {
		dist[id] = math.Inf(1) // 无穷大
	}
	dist[startID] = 0

	// 初始化优先队列
	pq := make(PriorityQueue, 0)
	heap.Init(&pq)
	heap.Push(&pq, &PriorityQueueItem{
		NodeID: startID,
		Cost:   0,
	})

	// Dijkstra 主循环
	for pq.Len() > 0 {
		current := heap.Pop(&pq).(*PriorityQueueItem)
		currentID := current.NodeID

		// 如果已访问过，跳过
		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		// 终点出队 (而不是首次被发现) 时提前退出，继续跑结果也不会变
		if currentID == endID {
			break
		}

		// 遍历邻居
		for _, edge := range g.GetNeighbors(currentID) {
			neighborID := edge.To
			newCost := dist[currentID] + edge.Weight

			// 如果找到更短的路径
			if newCost < dist[neighborID] {
				dist[neighborID] = newCost
				prev[neighborID] = currentID
				prevEdge[neighborID] = edge
				heap.Push(&pq, &PriorityQueueItem{
					NodeID: neighborID,
					Cost:   newCost,
				})
			}
		}
	}

	// 回溯路径
	path := []string{}
	for at := endID; at != ""; at = prev[at] {
		path = append(path, at)
		if at == startID {
			break
		}
	}
	slices.Reverse(path)

	// 回溯后第一个元素不是起点，说明两点不连通
	if path[0] != startID {
		return PathResult{Found: false}, nil
	}

	return g.buildResult(path, prevEdge), nil
}

// buildResult 根据节点序列和每个节点的来边汇总路径结果
// prevEdge 以"到达节点"为键，路径上的节点不会重复，键不会冲突
func (g *Graph) buildResult(path []string, prevEdge map[string]*model.Edge) PathResult {
	coords := make([]model.Point, 0, len(path))
	for _, nodeID := range path {
		if node := g.Nodes[nodeID]; node != nil {
			coords = append(coords, node.Position())
		}
	}

	segments := []string{}
	totalDist := 0.0
	for i := 1; i < len(path); i++ {
		edge := prevEdge[path[i]]
		if edge == nil {
			continue
		}
		totalDist += edge.Weight
		segments = append(segments, edge.Segments...)
	}

	return PathResult{
		Path:     path,
		Coords:   coords,
		Segments: segments,
		Distance: totalDist,
		Found:    true,
	}
}

// FormatPath 格式化路径结果为可读字符串
func (g *Graph) FormatPath(result PathResult) string {
	if !result.Found {
		return "未找到路径"
	}

	walkTime := model.EstimateWalkTime(result.Distance)
	output := fmt.Sprintf("总距离: %.2f 米 (%.2f 公里)\n", result.Distance, result.Distance/1000)
	output += fmt.Sprintf("预计步行时间: %.0f 秒 (%.1f 分钟)\n", walkTime, walkTime/60)
	output += "路径:\n"

	for i, nodeID := range result.Path {
		node := g.Nodes[nodeID]
		if node != nil {
			output += fmt.Sprintf("%d. %s (%s)\n", i+1, node.Name, nodeID)
		}
	}

	return output
}
