package algo

import (
	"campus-navigator/model"
	"errors"
	"testing"
)

// 链式测试图: gate - j1 - lib - dorm，外加孤立的 pavilion
// gate->j1 带路段列表，lib->dorm 带显式权重
const chainMapJSON = `{
  "meta": {"name": "test"},
  "nodes": [
    {"id": "gate", "name": "正门", "category": "landmark", "lat": 0, "lng": 0},
    {"id": "j1", "name": "路口", "category": "junction", "lat": 0, "lng": 0.001},
    {"id": "lib", "name": "图书馆", "category": "academic", "lat": 0, "lng": 0.002},
    {"id": "dorm", "name": "宿舍", "category": "hostel", "lat": 0, "lng": 0.003},
    {"id": "pavilion", "name": "湖心亭", "category": "landmark", "lat": 0.01, "lng": 0.01}
  ],
  "edges": [
    {"from": "gate", "to": "j1", "segments": ["s1", "s2"]},
    {"from": "j1", "to": "lib", "segments": ["s3"]},
    {"from": "lib", "to": "dorm", "weight": 250}
  ]
}`

// mustLoad 构建测试图，失败直接终止测试
func mustLoad(t *testing.T, data string) *Graph {
	t.Helper()
	g, err := LoadFromBytes([]byte(data))
	if err != nil {
		t.Fatalf("LoadFromBytes returned error: %v", err)
	}
	return g
}

// equalStrings 比较两个字符串切片
func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLoadFromBytes(t *testing.T) {
	g := mustLoad(t, chainMapJSON)

	if len(g.Nodes) != 5 {
		t.Fatalf("loaded %d nodes, want 5", len(g.Nodes))
	}
	if len(g.NodeList) != 5 {
		t.Fatalf("NodeList has %d entries, want 5", len(g.NodeList))
	}
	if g.NodeList[0].ID != "gate" || g.NodeList[4].ID != "pavilion" {
		t.Fatalf("NodeList order not preserved: %v, %v", g.NodeList[0].ID, g.NodeList[4].ID)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr error
	}{
		{
			"DuplicateNodeID",
			`{"nodes": [
				{"id": "a", "name": "A", "category": "landmark", "lat": 0, "lng": 0},
				{"id": "a", "name": "A2", "category": "landmark", "lat": 1, "lng": 1}
			], "edges": []}`,
			ErrDuplicateNode,
		},
		{
			"EdgeToUnknownNode",
			`{"nodes": [
				{"id": "a", "name": "A", "category": "landmark", "lat": 0, "lng": 0}
			], "edges": [{"from": "a", "to": "ghost"}]}`,
			ErrNodeNotFound,
		},
		{
			"EdgeFromUnknownNode",
			`{"nodes": [
				{"id": "a", "name": "A", "category": "landmark", "lat": 0, "lng": 0}
			], "edges": [{"from": "ghost", "to": "a"}]}`,
			ErrNodeNotFound,
		},
		{
			"SelfLoop",
			`{"nodes": [
				{"id": "a", "name": "A", "category": "landmark", "lat": 0, "lng": 0}
			], "edges": [{"from": "a", "to": "a"}]}`,
			ErrSelfLoop,
		},
		{
			"NegativeWeight",
			`{"nodes": [
				{"id": "a", "name": "A", "category": "landmark", "lat": 0, "lng": 0},
				{"id": "b", "name": "B", "category": "landmark", "lat": 1, "lng": 1}
			], "edges": [{"from": "a", "to": "b", "weight": -5}]}`,
			ErrNegativeWeight,
		},
		{"NoNodes", `{"nodes": [], "edges": []}`, ErrEmptyGraph},
		{
			"BadCategory",
			`{"nodes": [{"id": "a", "name": "A", "category": "castle", "lat": 0, "lng": 0}], "edges": []}`,
			nil,
		},
		{
			"LatOutOfRange",
			`{"nodes": [{"id": "a", "name": "A", "category": "landmark", "lat": 91, "lng": 0}], "edges": []}`,
			nil,
		},
		{"BadJSON", `{"nodes": [`, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tc.json))
			if err == nil {
				t.Fatalf("LoadFromBytes succeeded, want error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("LoadFromBytes error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestWeightDefaulting(t *testing.T) {
	g := mustLoad(t, chainMapJSON)

	// gate->j1 没写权重，按坐标计算: 赤道上 0.001 度约 111.19 米
	edges := g.GetNeighbors("gate")
	if len(edges) != 1 {
		t.Fatalf("gate has %d edges, want 1", len(edges))
	}
	if edges[0].Weight < 111 || edges[0].Weight > 112 {
		t.Fatalf("defaulted weight = %v, want about 111.19", edges[0].Weight)
	}

	// lib->dorm 显式权重保持不变
	for _, edge := range g.GetNeighbors("lib") {
		if edge.To == "dorm" && edge.Weight != 250 {
			t.Fatalf("explicit weight = %v, want 250", edge.Weight)
		}
	}
}

func TestReverseEdgeMaterialized(t *testing.T) {
	g := mustLoad(t, chainMapJSON)

	// j1->gate 是物化出来的反向边: 权重相同，路段精确倒序
	var reverse *model.Edge
	for _, edge := range g.GetNeighbors("j1") {
		if edge.To == "gate" {
			reverse = edge
		}
	}
	if reverse == nil {
		t.Fatalf("reverse edge j1->gate not materialized")
	}

	forward := g.GetNeighbors("gate")[0]
	if reverse.Weight != forward.Weight {
		t.Fatalf("reverse weight = %v, forward weight = %v", reverse.Weight, forward.Weight)
	}
	if !equalStrings(reverse.Segments, []string{"s2", "s1"}) {
		t.Fatalf("reverse segments = %v, want [s2 s1]", reverse.Segments)
	}
}

func TestReverseEdgeNotDuplicated(t *testing.T) {
	// 两个方向都显式声明时不再补反向边
	bothWays := `{
	  "nodes": [
	    {"id": "a", "name": "A", "category": "landmark", "lat": 0, "lng": 0},
	    {"id": "b", "name": "B", "category": "landmark", "lat": 0, "lng": 0.001}
	  ],
	  "edges": [
	    {"from": "a", "to": "b", "segments": ["s1"]},
	    {"from": "b", "to": "a", "segments": ["s9"]}
	  ]
	}`
	g := mustLoad(t, bothWays)

	if n := len(g.GetNeighbors("a")); n != 1 {
		t.Fatalf("a has %d edges, want 1", n)
	}
	if n := len(g.GetNeighbors("b")); n != 1 {
		t.Fatalf("b has %d edges, want 1", n)
	}
	// 显式声明的反向边保持自己的路段列表
	if !equalStrings(g.GetNeighbors("b")[0].Segments, []string{"s9"}) {
		t.Fatalf("declared reverse segments = %v, want [s9]", g.GetNeighbors("b")[0].Segments)
	}
}

func TestNeighborOrder(t *testing.T) {
	// 声明的边按声明顺序排列，物化的反向边排在后面
	fanOut := `{
	  "nodes": [
	    {"id": "a", "name": "A", "category": "landmark", "lat": 0, "lng": 0},
	    {"id": "b", "name": "B", "category": "landmark", "lat": 0, "lng": 0.001},
	    {"id": "c", "name": "C", "category": "landmark", "lat": 0.001, "lng": 0},
	    {"id": "d", "name": "D", "category": "landmark", "lat": 0.001, "lng": 0.001}
	  ],
	  "edges": [
	    {"from": "a", "to": "b"},
	    {"from": "a", "to": "c"},
	    {"from": "d", "to": "a"}
	  ]
	}`
	g := mustLoad(t, fanOut)

	got := []string{}
	for _, edge := range g.GetNeighbors("a") {
		got = append(got, edge.To)
	}
	if !equalStrings(got, []string{"b", "c", "d"}) {
		t.Fatalf("neighbor order = %v, want [b c d]", got)
	}
}

func TestGetNeighborsUnknownNode(t *testing.T) {
	g := mustLoad(t, chainMapJSON)
	if edges := g.GetNeighbors("ghost"); len(edges) != 0 {
		t.Fatalf("GetNeighbors(ghost) = %v, want empty", edges)
	}
}

func TestFindNearestNodeSelfMatch(t *testing.T) {
	g := mustLoad(t, chainMapJSON)

	for _, node := range g.NodeList {
		got, err := g.FindNearestNode(node.Lat, node.Lng)
		if err != nil {
			t.Fatalf("FindNearestNode returned error: %v", err)
		}
		if got.NodeID != node.ID {
			t.Fatalf("FindNearestNode(%s coords) = %s, want %s", node.ID, got.NodeID, node.ID)
		}
		if got.Distance != 0 {
			t.Fatalf("self-match distance = %v, want 0", got.Distance)
		}
	}
}

func TestFindNearestNodeTieBreak(t *testing.T) {
	// 两个节点到原点距离完全相同，先声明的胜出
	tie := `{
	  "nodes": [
	    {"id": "east", "name": "E", "category": "landmark", "lat": 0, "lng": 0.001},
	    {"id": "west", "name": "W", "category": "landmark", "lat": 0, "lng": -0.001}
	  ],
	  "edges": []
	}`
	g := mustLoad(t, tie)

	for i := 0; i < 10; i++ {
		got, err := g.FindNearestNode(0, 0)
		if err != nil {
			t.Fatalf("FindNearestNode returned error: %v", err)
		}
		if got.NodeID != "east" {
			t.Fatalf("tie-break winner = %s, want east", got.NodeID)
		}
	}
}

func TestFindNearestNodeEmptyGraph(t *testing.T) {
	g := NewGraph()
	_, err := g.FindNearestNode(0, 0)
	if !errors.Is(err, ErrEmptyGraph) {
		t.Fatalf("FindNearestNode on empty graph = %v, want ErrEmptyGraph", err)
	}
}

func TestGetNode(t *testing.T) {
	g := mustLoad(t, chainMapJSON)

	node, err := g.GetNode("lib")
	if err != nil {
		t.Fatalf("GetNode returned error: %v", err)
	}
	if node.Name != "图书馆" {
		t.Fatalf("GetNode(lib).Name = %q, want 图书馆", node.Name)
	}

	_, err = g.GetNode("ghost")
	if !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("GetNode(ghost) = %v, want ErrNodeNotFound", err)
	}
}

func TestSelectableNodes(t *testing.T) {
	g := mustLoad(t, chainMapJSON)

	nodes := g.SelectableNodes()
	if len(nodes) != 4 {
		t.Fatalf("SelectableNodes returned %d nodes, want 4", len(nodes))
	}
	for _, node := range nodes {
		if node.ID == "j1" {
			t.Fatalf("junction j1 should not be selectable")
		}
	}
}

func TestSearchNodes(t *testing.T) {
	g := mustLoad(t, chainMapJSON)

	if results := g.SearchNodes("图书"); len(results) != 1 || results[0].ID != "lib" {
		t.Fatalf("SearchNodes(图书) = %v, want [lib]", results)
	}
	// 大小写不敏感，按 ID 也能搜
	if results := g.SearchNodes("LIB"); len(results) != 1 || results[0].ID != "lib" {
		t.Fatalf("SearchNodes(LIB) = %v, want [lib]", results)
	}
	// 路口不出现在搜索结果里
	if results := g.SearchNodes("j1"); len(results) != 0 {
		t.Fatalf("SearchNodes(j1) = %v, want empty", results)
	}
}
