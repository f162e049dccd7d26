package main

import (
	"campus-navigator/algo"
	"campus-navigator/gps"
	"campus-navigator/logger"
	"campus-navigator/logger/console"
	"campus-navigator/render"
	"campus-navigator/session"
	"campus-navigator/utils"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

//go:embed map_data.json
var defaultMapData []byte

func main() {
	fmt.Println("=== 欢迎使用校园导航 Campus Navigator ===")

	// 1. 加载环境变量
	utils.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. 初始化日志
	debug := utils.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	// 3. 加载地图数据 (MAP_DATA 指定的文件优先，默认用内置数据)
	graph, err := loadGraph()
	if err != nil {
		logger.Fatal("加载地图失败", "err", err)
	}
	logger.Info("地图加载成功", "nodes", len(graph.Nodes))

	// 4. 创建会话，显式持有全部导航状态
	// ALGO=bfs 时按跳数最少寻路，默认按距离最短
	algorithm := session.AlgorithmDijkstra
	if utils.GetEnvString("ALGO", "") == "bfs" {
		algorithm = session.AlgorithmBFS
	}
	sess := session.New(session.Params{
		Graph:     graph,
		Algorithm: algorithm,
	})

	// 5. 加载演示脚本 (SCENARIO 指定的文件优先，默认用内置脚本)
	scenario, err := loadScenario()
	if err != nil {
		logger.Fatal("加载脚本失败", "err", err)
	}
	logger.Info("脚本加载成功", "name", scenario.Name, "steps", len(scenario.Steps))

	// 6. 回放脚本，驱动状态机
	// 定位回调和用户操作都汇到同一个通道，由单个 goroutine 串行消费
	interval := time.Duration(utils.GetEnvNumeric("STEP_DELAY_MS", 300)) * time.Millisecond
	steps := gps.Replay(ctx, scenario, interval)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return runSession(ctx, sess, graph, steps)
	})

	if err := group.Wait(); err != nil {
		logger.Fatal("会话异常退出", "err", err)
	}
	fmt.Println("\n演示结束")
}

// loadGraph 加载地图数据
func loadGraph() (*algo.Graph, error) {
	if path := utils.GetEnvString("MAP_DATA", ""); path != "" {
		return algo.LoadFromJSON(path)
	}
	return algo.LoadFromBytes(defaultMapData)
}

// loadScenario 加载演示脚本
func loadScenario() (*gps.Scenario, error) {
	if path := utils.GetEnvString("SCENARIO", ""); path != "" {
		return gps.LoadScenario(path)
	}
	return gps.DefaultScenario(), nil
}

// runSession 事件循环：所有状态变更都在这一个 goroutine 里串行执行
func runSession(ctx context.Context, sess *session.Session, graph *algo.Graph, steps <-chan gps.Step) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case step, ok := <-steps:
			if !ok {
				return nil
			}
			handleStep(sess, graph, step)
		}
	}
}

// handleStep 把脚本中的一步转发给状态机并打印结果
func handleStep(sess *session.Session, graph *algo.Graph, step gps.Step) {
	if step.Note != "" {
		fmt.Printf("\n>> %s\n", step.Note)
	}

	var outcome session.Outcome
	var err error
	switch step.Kind {
	case gps.StepFix:
		// 坐标超出范围的定位直接丢弃，会话保持原状
		if !utils.IsValidLatLng(step.Lat, step.Lng) {
			logger.Warn("忽略非法坐标", "lat", step.Lat, "lng", step.Lng)
			return
		}
		outcome, err = sess.UpdatePosition(step.Lat, step.Lng)
	case gps.StepSelect:
		outcome, err = sess.SelectDestination(step.NodeID)
	case gps.StepReset:
		outcome = sess.Reset()
	}
	if err != nil {
		logger.Warn("操作失败", "kind", step.Kind, "err", err)
		return
	}

	printOutcome(sess, graph, outcome)
}

// printOutcome 把状态机的结果信号转成给用户看的提示
func printOutcome(sess *session.Session, graph *algo.Graph, outcome session.Outcome) {
	switch outcome {
	case session.OutcomeUnchanged:
		fmt.Println("   (位置没有变化)")
	case session.OutcomeMoved:
		fmt.Printf("   当前位置: %s\n", nodeName(graph, sess.CurrentNode()))
	case session.OutcomeWaitingForGPS:
		fmt.Println("   已记下目的地，等待定位...")
	case session.OutcomeAlreadyThere:
		fmt.Println("   您已经在目的地了")
	case session.OutcomeSameBuilding:
		fmt.Println("   目的地就在这栋楼里，请按楼层指引步行")
	case session.OutcomeNoPath:
		fmt.Println("   两点之间暂时不连通")
	case session.OutcomeCleared:
		fmt.Println("   路线已清除")
	case session.OutcomeRouted:
		printRoute(sess, graph)
	}
}

// printRoute 打印当前路线的概要、分段明细和可选的 GeoJSON
func printRoute(sess *session.Session, graph *algo.Graph) {
	route := sess.Route()
	if route == nil {
		return
	}

	fmt.Printf("   路线 %s: %s -> %s\n",
		route.ID, nodeName(graph, route.From), nodeName(graph, route.To))
	fmt.Print(graph.FormatPath(route.Result))

	view := render.BuildRouteView(graph, route.Result)
	for _, seg := range view.Segments {
		fmt.Printf("   - %s -> %s: %.0f 米, 约 %.0f 秒\n",
			seg.FromName, seg.ToName, seg.Distance, seg.Time)
	}
	if len(view.SegmentIDs) > 0 {
		fmt.Printf("   高亮路段: %v\n", view.SegmentIDs)
	}

	// ROUTE_GEOJSON=true 时输出整条路线的 GeoJSON，方便直接贴进地图工具
	if utils.GetEnvBool("ROUTE_GEOJSON", false) {
		fc := render.RouteFeatureCollection(graph, route.Result)
		if data, err := json.Marshal(fc); err == nil {
			fmt.Printf("   GeoJSON: %s\n", data)
		}
	}
}

func nodeName(graph *algo.Graph, nodeID string) string {
	if node := graph.Nodes[nodeID]; node != nil {
		return node.Name
	}
	return nodeID
}
