package flora

import "testing"

func TestFromMapParsesKnownKeys(t *testing.T) {
	c := FromMap(map[string]string{
		"count":        "200",
		"seed":         "-4",
		"color_mode":   "3",
		"reactive":     "false",
		"grow_batch":   "20",
		"reactive_min": "10",
		"reactive_max": "400",
	})
	if c.BaseCount != 200 || c.Seed != -4 || c.ColorMode != 3 || c.Reactive {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.Params.GrowBatch != 20 || c.Params.ReactiveMin != 10 || c.Params.ReactiveMax != 400 {
		t.Fatalf("unexpected params: %+v", c.Params)
	}
}

func TestFromMapIgnoresInvalidValues(t *testing.T) {
	def := DefaultConfig()
	c := FromMap(map[string]string{
		"count":      "zero",
		"color_mode": "-2",
		"life_speed": "0",
	})
	if c.BaseCount != def.BaseCount || c.ColorMode != def.ColorMode || c.Params.LifeSpeedBase != def.Params.LifeSpeedBase {
		t.Fatalf("invalid values leaked into config: %+v", c)
	}
}

func TestFromMapClampsReactiveBounds(t *testing.T) {
	c := FromMap(map[string]string{"reactive_min": "500", "reactive_max": "100"})
	if c.Params.ReactiveMax < c.Params.ReactiveMin {
		t.Fatalf("reactive_max %d below reactive_min %d", c.Params.ReactiveMax, c.Params.ReactiveMin)
	}
}

func TestSetParameterGuards(t *testing.T) {
	f := New()
	if !f.SetIntParameter("color_mode", 5) || f.ColorMode() != 5 {
		t.Fatalf("color_mode setter rejected a valid value")
	}
	if f.SetIntParameter("color_mode", 12) {
		t.Fatalf("color_mode setter accepted 12")
	}
	if f.SetIntParameter("reactive_max", f.cfg.Params.ReactiveMin-1) {
		t.Fatalf("reactive_max setter accepted a value below reactive_min")
	}
	if !f.SetBoolParameter("reactive", false) || f.Reactive() {
		t.Fatalf("reactive setter did not apply")
	}
	if f.SetFloatParameter("unknown", 1) {
		t.Fatalf("unknown float key accepted")
	}
}
