package algo

import (
	"campus-navigator/model"
	"fmt"
	"slices"
)

// FindPath 使用 BFS 寻找跳数最少的路径
// 邻居按声明顺序入队、先进先出，跳数相同时先声明的分支胜出。
// 起点或终点不存在时返回 ErrNodeNotFound；两点不连通时返回 Found=false，不报错
func (g *Graph) FindPath(startID, endID string) (PathResult, error) {
	if g.Nodes[startID] == nil {
		return PathResult{Found: false}, fmt.Errorf("%w: %s", ErrNodeNotFound, startID)
	}
	if g.Nodes[endID] == nil {
		return PathResult{Found: false}, fmt.Errorf("%w: %s", ErrNodeNotFound, endID)
	}

	// 起点即终点，必须在搜索前判断，直接返回零长度路径
	if startID == endID {
		return g.buildResult([]string{startID}, nil), nil
	}

	prev := make(map[string]string)
	prevEdge := make(map[string]*model.Edge)
	visited := map[string]bool{startID: true}

	// FIFO 队列
	queue := []string{startID}
	found := false

	for len(queue) > 0 && !found {
		currentID := queue[0]
		queue = queue[1:]

		for _, edge := range g.GetNeighbors(currentID) {
			neighborID := edge.To
			if visited[neighborID] {
				continue
			}
			visited[neighborID] = true
			prev[neighborID] = currentID
			prevEdge[neighborID] = edge

			// BFS 首次发现即最少跳数，可以立即收队
			if neighborID == endID {
				found = true
				break
			}
			queue = append(queue, neighborID)
		}
	}

	if !found {
		return PathResult{Found: false}, nil
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

	return g.buildResult(path, prevEdge), nil
}
