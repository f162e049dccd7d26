package session

import (
	"campus-navigator/algo"
	"campus-navigator/logger"
	"errors"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrNotSelectable 路口等纯路径节点不能被选为目的地
var ErrNotSelectable = errors.New("节点不能被选为目的地")

// State 会话所处的导航状态
type State int

const (
	StateIdle          State = iota // 无定位，无路线
	StateLocationKnown              // 已定位，无路线
	StateRouted                     // 已定位且路线生效
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLocationKnown:
		return "location_known"
	case StateRouted:
		return "routed"
	default:
		return "unknown"
	}
}

// Outcome 每次操作的结果信号
// 核心只产出信号，怎么提示用户由 UI 协作方决定
type Outcome int

const (
	OutcomeUnchanged     Outcome = iota // 最近节点没变，什么都不用做
	OutcomeMoved                        // 位置更新，没有目的地
	OutcomeRouted                       // 路线已规划
	OutcomeWaitingForGPS                // 已选目的地，等待定位
	OutcomeAlreadyThere                 // 目的地就是当前位置
	OutcomeSameBuilding                 // 同一栋楼，不做寻路
	OutcomeNoPath                       // 两点不连通
	OutcomeCleared                      // 路线已清除
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeMoved:
		return "moved"
	case OutcomeRouted:
		return "routed"
	case OutcomeWaitingForGPS:
		return "waiting_for_gps"
	case OutcomeAlreadyThere:
		return "already_there"
	case OutcomeSameBuilding:
		return "same_building"
	case OutcomeNoPath:
		return "no_path"
	case OutcomeCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Algorithm 寻路算法选择
type Algorithm int

const (
	AlgorithmDijkstra Algorithm = iota // 按距离最短 (默认)
	AlgorithmBFS                       // 按跳数最少
)

// ActiveRoute 当前生效的路线
type ActiveRoute struct {
	ID     string // 路线标识，用于日志关联
	From   string
	To     string
	Result algo.PathResult
}

// Session 一次浏览会话的导航状态机
// 显式持有图和全部可变状态，不依赖包级全局变量。
// 所有方法都假定在同一个 goroutine 里被串行调用
type Session struct {
	graph     *algo.Graph
	algorithm Algorithm

	state       State
	current     string // 当前位置解析出的最近节点 ID
	destination string // 已选目的地节点 ID
	route       *ActiveRoute
}

// Params 创建会话所需的配置
type Params struct {
	Graph     *algo.Graph
	Algorithm Algorithm
}

// New 创建一个空会话
func New(params Params) *Session {
	return &Session{
		graph:     params.Graph,
		algorithm: params.Algorithm,
		state:     StateIdle,
	}
}

// State 返回当前状态
func (s *Session) State() State {
	return s.state
}

// CurrentNode 返回当前位置对应的节点 ID (还没定位时为空)
func (s *Session) CurrentNode() string {
	return s.current
}

// Destination 返回已选目的地节点 ID (未选择时为空)
func (s *Session) Destination() string {
	return s.destination
}

// Route 返回当前生效的路线 (没有路线时为 nil)
func (s *Session) Route() *ActiveRoute {
	return s.route
}

// UpdatePosition 处理一次 GPS 定位
// 解析最近节点；没变则不做任何事，变了且有目的地则重新规划
func (s *Session) UpdatePosition(lat, lng float64) (Outcome, error) {
	nearest, err := s.graph.FindNearestNode(lat, lng)
	if err != nil {
		return OutcomeUnchanged, err
	}

	// 最近节点没变，跳过
	if nearest.NodeID == s.current {
		return OutcomeUnchanged, nil
	}

	s.current = nearest.NodeID
	logger.Debug("定位更新", "node", s.current, "distance", nearest.Distance)

	// 没有目的地，只更新位置
	if s.destination == "" {
		s.route = nil
		s.state = StateLocationKnown
		return OutcomeMoved, nil
	}

	// 走到了目的地，清掉路线 (目的地保留，离开后会重新规划)
	if s.destination == s.current {
		s.route = nil
		s.state = StateLocationKnown
		return OutcomeAlreadyThere, nil
	}

	return s.computeRoute()
}

// SelectDestination 处理一次目的地选择
// 未知节点返回 ErrNodeNotFound，路口返回 ErrNotSelectable
func (s *Session) SelectDestination(nodeID string) (Outcome, error) {
	node, err := s.graph.GetNode(nodeID)
	if err != nil {
		return OutcomeUnchanged, err
	}
	if !node.Selectable() {
		return OutcomeUnchanged, fmt.Errorf("%w: %s", ErrNotSelectable, nodeID)
	}

	s.destination = nodeID

	// 还没有定位，记下目的地等 GPS
	if s.current == "" {
		return OutcomeWaitingForGPS, nil
	}

	// 目的地就是当前位置
	if s.destination == s.current {
		s.route = nil
		s.state = StateLocationKnown
		return OutcomeAlreadyThere, nil
	}

	return s.computeRoute()
}

// Reset 清除目的地和路线，回到已定位或空闲状态
func (s *Session) Reset() Outcome {
	s.destination = ""
	s.route = nil
	if s.current != "" {
		s.state = StateLocationKnown
	} else {
		s.state = StateIdle
	}
	return OutcomeCleared
}

// computeRoute 规划当前位置到目的地的路线
// 同楼判断优先于寻路：哪怕图上存在路径也不跑算法
func (s *Session) computeRoute() (Outcome, error) {
	if s.sameBuilding(s.current, s.destination) {
		s.route = nil
		s.state = StateLocationKnown
		return OutcomeSameBuilding, nil
	}

	var result algo.PathResult
	var err error
	switch s.algorithm {
	case AlgorithmBFS:
		result, err = s.graph.FindPath(s.current, s.destination)
	default:
		result, err = s.graph.FindShortestPath(s.current, s.destination)
	}
	if err != nil {
		return OutcomeUnchanged, err
	}

	// 不连通：清掉旧路线，目的地保留
	if !result.Found {
		s.route = nil
		s.state = StateLocationKnown
		return OutcomeNoPath, nil
	}

	routeID, err := gonanoid.New()
	if err != nil {
		return OutcomeUnchanged, err
	}

	s.route = &ActiveRoute{
		ID:     routeID,
		From:   s.current,
		To:     s.destination,
		Result: result,
	}
	s.state = StateRouted
	logger.Info("路线已规划",
		"route", routeID,
		"from", s.current,
		"to", s.destination,
		"distance", result.Distance,
	)
	return OutcomeRouted, nil
}

// sameBuilding 判断两个节点是否属于同一栋建筑
// 三种情况：目的地的父节点是起点、起点的父节点是目的地、两者有相同的非空父节点
func (s *Session) sameBuilding(fromID, toID string) bool {
	from := s.graph.Nodes[fromID]
	to := s.graph.Nodes[toID]
	if from == nil || to == nil {
		return false
	}
	if to.Parent == from.ID || from.Parent == to.ID {
		return true
	}
	return from.Parent != "" && from.Parent == to.Parent
}
