package app

import (
	"github.com/specialistvlad/firmgen/internal/registry"
	"github.com/specialistvlad/firmgen/modules/core"
	"github.com/specialistvlad/firmgen/modules/globals"
	"github.com/specialistvlad/firmgen/modules/http_request"
	"github.com/specialistvlad/firmgen/modules/i2c"
	"github.com/specialistvlad/firmgen/modules/json"
	"github.com/specialistvlad/firmgen/modules/logger"
	"github.com/specialistvlad/firmgen/modules/sensor"
	"github.com/specialistvlad/firmgen/modules/uart"
)

// coreModules is the definitive list of all component kinds that are
// compiled into the firmgen binary.
var coreModules = []registry.Module{
	&core.Module{},
	&logger.Module{},
	&json.Module{},
	&uart.Module{},
	&i2c.Module{},
	&http_request.Module{},
	&sensor.Module{},
	&globals.Module{},
}

// BuiltinModules returns every module compiled into the binary.
func BuiltinModules() []registry.Module {
	return append([]registry.Module(nil), coreModules...)
}
