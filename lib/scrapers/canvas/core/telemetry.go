package core

import (
	"canvassync/lib/restyutil"
	"canvassync/lib/telemetry"
)

var tracer = telemetry.Tracer("canvassync.lib.scrapers.canvas.core")
var restyInstrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
