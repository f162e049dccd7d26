package gps

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator"
)

// 脚本步骤类型
const (
	StepFix    = "fix"    // 一次 GPS 定位
	StepSelect = "select" // 用户选择目的地
	StepReset  = "reset"  // 清除路线
)

// Step 演示脚本中的一步
type Step struct {
	Kind   string  `json:"kind" validate:"required,oneof=fix select reset"`
	Lat    float64 `json:"lat,omitempty" validate:"gte=-90,lte=90"`
	Lng    float64 `json:"lng,omitempty" validate:"gte=-180,lte=180"`
	NodeID string  `json:"node_id,omitempty"`
	Note   string  `json:"note,omitempty"` // 展示给用户的说明
}

// Scenario 一段可回放的定位与操作序列
// 回放它就相当于外部的定位回调和用户点击依次到达
type Scenario struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps" validate:"required,min=1,dive"`
}

var validate = validator.New()

// LoadScenario 从 JSON 文件加载演示脚本
func LoadScenario(filepath string) (*Scenario, error) {
	file, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("读取文件失败: %w", err)
	}

	var s Scenario
	if err := json.Unmarshal(file, &s); err != nil {
		return nil, fmt.Errorf("解析 JSON 失败: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("脚本校验失败: %w", err)
	}

	return &s, nil
}

// DefaultScenario 内置演示脚本，对应 map_data.json 的校园数据
func DefaultScenario() *Scenario {
	return &Scenario{
		Name: "campus-walk",
		Steps: []Step{
			{Kind: StepFix, Lat: 30.53598, Lng: 114.36001, Note: "到达正门"},
			{Kind: StepSelect, NodeID: "library", Note: "选择图书馆"},
			{Kind: StepFix, Lat: 30.53652, Lng: 114.36058, Note: "走到1号路口"},
			{Kind: StepFix, Lat: 30.53721, Lng: 114.36109, Note: "走到图书馆门口"},
			{Kind: StepSelect, NodeID: "reading_room", Note: "想去三楼阅览室"},
			{Kind: StepSelect, NodeID: "pavilion", Note: "想去湖心亭"},
			{Kind: StepReset, Note: "清除路线"},
			{Kind: StepSelect, NodeID: "dorm_7", Note: "回七号宿舍楼"},
			{Kind: StepFix, Lat: 30.53692, Lng: 114.36248, Note: "路过第一食堂"},
			{Kind: StepReset, Note: "结束导航"},
		},
	}
}

// Replay 按固定间隔回放脚本
// 每一步依次送入返回的通道；ctx 取消时停止回放并关闭通道
func Replay(ctx context.Context, scenario *Scenario, interval time.Duration) <-chan Step {
	out := make(chan Step)

	go func() {
		defer close(out)
		for _, step := range scenario.Steps {
			select {
			case <-ctx.Done():
				return
			case <-time.After(interval):
			}

			select {
			case <-ctx.Done():
				return
			case out <- step:
			}
		}
	}()

	return out
}
