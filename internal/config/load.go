// internal/config/load.go

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fancontrol/internal/logger"
)

// 配置文件名
const (
	ZonesFileName  = "zones.json"
	GroupsFileName = "groups.json"
	EventsFileName = "events.json"
)

// LoadEngine 从配置目录加载三个引擎配置文件
//
// zones.json 与 groups.json 必须存在，events.json 可以缺省。
// 没有事件时所有风区在启动后直接运行在 full_speed。
func LoadEngine(dir string) (*EngineConfig, error) {
	cfg := &EngineConfig{}

	if err := loadJSONFile(filepath.Join(dir, ZonesFileName), &cfg.Zones); err != nil {
		return nil, err
	}
	if err := loadJSONFile(filepath.Join(dir, GroupsFileName), &cfg.Groups); err != nil {
		return nil, err
	}

	eventsPath := filepath.Join(dir, EventsFileName)
	if _, err := os.Stat(eventsPath); os.IsNotExist(err) {
		logger.Info("No %s found, zones will run at full speed", EventsFileName)
	} else {
		if err := loadJSONFile(eventsPath, &cfg.Events); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Info("Loaded engine config: %d zones, %d groups, %d events",
		len(cfg.Zones), len(cfg.Groups), len(cfg.Events))
	return cfg, nil
}

func loadJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Validate 检查配置的结构性约束
//
// 引用类校验（事件引用的组、风区是否存在，策略与动作名称是否
// 已注册）在管理器构建时完成，这里只做单文件内能判定的部分。
func (c *EngineConfig) Validate() error {
	if len(c.Zones) == 0 {
		return fmt.Errorf("%s: at least one zone is required", ZonesFileName)
	}

	zoneIDs := make(map[string]bool)
	for i, z := range c.Zones {
		if z.ID == "" {
			return fmt.Errorf("%s: zone #%d has no id", ZonesFileName, i)
		}
		if zoneIDs[z.ID] {
			return fmt.Errorf("%s: duplicate zone id %q", ZonesFileName, z.ID)
		}
		zoneIDs[z.ID] = true
		if z.Ceiling == 0 {
			return fmt.Errorf("%s: zone %q has zero ceiling", ZonesFileName, z.ID)
		}
		if z.Floor > z.Ceiling {
			return fmt.Errorf("%s: zone %q floor %d exceeds ceiling %d",
				ZonesFileName, z.ID, z.Floor, z.Ceiling)
		}
		if z.DefaultFloor < z.Floor || z.DefaultFloor > z.Ceiling {
			return fmt.Errorf("%s: zone %q default_floor %d outside [%d, %d]",
				ZonesFileName, z.ID, z.DefaultFloor, z.Floor, z.Ceiling)
		}
		if z.FullSpeed < z.Floor || z.FullSpeed > z.Ceiling {
			return fmt.Errorf("%s: zone %q full_speed %d outside [%d, %d]",
				ZonesFileName, z.ID, z.FullSpeed, z.Floor, z.Ceiling)
		}
	}

	groupNames := make(map[string]bool)
	for i, g := range c.Groups {
		if g.Name == "" {
			return fmt.Errorf("%s: group #%d has no name", GroupsFileName, i)
		}
		if groupNames[g.Name] {
			return fmt.Errorf("%s: duplicate group name %q", GroupsFileName, g.Name)
		}
		groupNames[g.Name] = true
		if len(g.Members) == 0 {
			return fmt.Errorf("%s: group %q has no members", GroupsFileName, g.Name)
		}
		included := 0
		for j, m := range g.Members {
			if m.Sensor == "" {
				return fmt.Errorf("%s: group %q member #%d has no sensor", GroupsFileName, g.Name, j)
			}
			if m.IncludeInTrust == nil || *m.IncludeInTrust {
				included++
			}
		}
		if included == 0 {
			return fmt.Errorf("%s: group %q has no members included in trust", GroupsFileName, g.Name)
		}
		if g.TrustPolicy == "" {
			return fmt.Errorf("%s: group %q has no trust_policy", GroupsFileName, g.Name)
		}
	}

	eventNames := make(map[string]bool)
	for i, e := range c.Events {
		if e.Name == "" {
			return fmt.Errorf("%s: event #%d has no name", EventsFileName, i)
		}
		if eventNames[e.Name] {
			return fmt.Errorf("%s: duplicate event name %q", EventsFileName, e.Name)
		}
		eventNames[e.Name] = true
		if len(e.Groups) == 0 {
			return fmt.Errorf("%s: event %q has no groups", EventsFileName, e.Name)
		}
		if len(e.Triggers) == 0 {
			return fmt.Errorf("%s: event %q has no triggers", EventsFileName, e.Name)
		}
		if len(e.Actions) == 0 {
			return fmt.Errorf("%s: event %q has no actions", EventsFileName, e.Name)
		}
		for _, t := range e.Triggers {
			switch t.Class {
			case TriggerStartup, TriggerSignal:
			case TriggerTimer:
				if t.IntervalMS <= 0 {
					return fmt.Errorf("%s: event %q timer trigger needs a positive interval_ms",
						EventsFileName, e.Name)
				}
			default:
				return fmt.Errorf("%s: event %q has unknown trigger class %q",
					EventsFileName, e.Name, t.Class)
			}
		}
	}
	return nil
}
