package sensor

import (
	"context"

	"github.com/hashicorp/hcl/v2/hcldec"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/firmgen/internal/codegen"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/schema"
)

var (
	dhtNS = cpp.EsphomeNS.Namespace("dht")
	// DHT is the C++ class declared for `sensor.dht` blocks.
	DHT      = dhtNS.Class("DHT", cpp.PollingComponent)
	dhtModel = dhtNS.Enum("DHTModel", false)
)

var dhtModels = []string{"AUTO_DETECT", "DHT11", "DHT22", "AM2302", "RHT03", "SI7021", "DHT22_TYPE2"}

// DHTConfig is the decoded `sensor.dht` block.
type DHTConfig struct {
	Pin             int      `cty:"pin"`
	Model           string   `cty:"model"`
	TemperatureName *string  `cty:"temperature_name"`
	HumidityName    *string  `cty:"humidity_name"`
	UpdateInterval  *string  `cty:"update_interval"`
	SetupPriority   *float64 `cty:"setup_priority"`
}

var dhtSpec = schema.Object(schema.Polling, hcldec.ObjectSpec{
	"pin":              schema.Required("pin", cty.Number),
	"model":            schema.Default("model", cty.StringVal("AUTO_DETECT")),
	"temperature_name": schema.Optional("temperature_name", cty.String),
	"humidity_name":    schema.Optional("humidity_name", cty.String),
})

// GenerateDHT emits a DHT sensor and its temperature and humidity children.
func GenerateDHT(ctx context.Context, gen *codegen.Context, cfg *DHTConfig) error {
	model, err := schema.OneOf("model", cfg.Model, dhtModels...)
	if err != nil {
		return err
	}
	opts, err := schema.Options(cfg.SetupPriority, cfg.UpdateInterval)
	if err != nil {
		return err
	}

	dht, err := gen.NewPvariable(gen.ID())
	if err != nil {
		return err
	}
	if err := gen.RegisterComponent(dht, opts); err != nil {
		return err
	}
	if err := gen.Add(dht.Call("set_pin", cfg.Pin)); err != nil {
		return err
	}
	if err := gen.Add(dht.Call("set_dht_model", dhtModel.Value("DHT_MODEL_"+model))); err != nil {
		return err
	}
	if err := subSensor(gen, dht, "temperature", "set_temperature_sensor", cfg.TemperatureName, "°C"); err != nil {
		return err
	}
	return subSensor(gen, dht, "humidity", "set_humidity_sensor", cfg.HumidityName, "%")
}
