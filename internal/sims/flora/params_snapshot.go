package flora

import (
	"strconv"

	"bloomfield/internal/core"
)

func (f *Field) Parameters() core.ParameterSnapshot {
	p := f.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Field",
			Params: []core.Parameter{
				intParam("count", "Base count", f.cfg.BaseCount),
				int64Param("seed", "Seed", f.cfg.Seed),
				intParam("color_mode", "Color mode", f.cfg.ColorMode),
				boolParam("reactive", "Reactive population", f.cfg.Reactive),
			},
		},
		{
			Name: "Population",
			Params: []core.Parameter{
				intParam("grow_batch", "Grow batch", p.GrowBatch),
				intParam("fast_death_batch", "Fast death batch", p.FastDeathBatch),
				intParam("reactive_min", "Reactive min", p.ReactiveMin),
				intParam("reactive_max", "Reactive max", p.ReactiveMax),
				floatParam("life_speed", "Life speed base", p.LifeSpeedBase),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func (f *Field) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "count", Label: "Base count", Type: core.ParamTypeInt, Step: 10, Min: 1, Max: 5000, HasMin: true, HasMax: true},
		{Key: "color_mode", Label: "Color mode", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 9, HasMin: true, HasMax: true},
		{Key: "reactive", Label: "Reactive", Type: core.ParamTypeBool},
		{Key: "grow_batch", Label: "Grow batch", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 100, HasMin: true, HasMax: true},
		{Key: "fast_death_batch", Label: "Fast death batch", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 100, HasMin: true, HasMax: true},
		{Key: "reactive_min", Label: "Reactive min", Type: core.ParamTypeInt, Step: 10, Min: 1, Max: 5000, HasMin: true, HasMax: true},
		{Key: "reactive_max", Label: "Reactive max", Type: core.ParamTypeInt, Step: 50, Min: 1, Max: 10000, HasMin: true, HasMax: true},
		{Key: "life_speed", Label: "Life speed", Type: core.ParamTypeFloat, Step: 0.005, Min: 0.001, Max: 1, HasMin: true, HasMax: true},
	}
}

func (f *Field) SetIntParameter(key string, value int) bool {
	switch key {
	case "count":
		if value < 1 {
			return false
		}
		f.cfg.BaseCount = value
	case "color_mode":
		if value < 0 || value > 9 {
			return false
		}
		f.cfg.ColorMode = value
	case "grow_batch":
		if value < 1 {
			return false
		}
		f.cfg.Params.GrowBatch = value
	case "fast_death_batch":
		if value < 0 {
			return false
		}
		f.cfg.Params.FastDeathBatch = value
	case "reactive_min":
		if value < 1 {
			return false
		}
		f.cfg.Params.ReactiveMin = value
	case "reactive_max":
		if value < f.cfg.Params.ReactiveMin {
			return false
		}
		f.cfg.Params.ReactiveMax = value
	default:
		return false
	}
	return true
}

func (f *Field) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "life_speed":
		if value <= 0 {
			return false
		}
		f.cfg.Params.LifeSpeedBase = value
	default:
		return false
	}
	return true
}

func (f *Field) SetBoolParameter(key string, value bool) bool {
	switch key {
	case "reactive":
		f.cfg.Reactive = value
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
