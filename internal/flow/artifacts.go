package flow

// Artifact names written into the output directory, one set per stage.
const (
	SynthCheckpoint   = "post_synth.dcp"
	SynthTimingReport = "post_synth_timing_summary.rpt"
	SynthUtilReport   = "post_synth_util.rpt"

	ClockUtilReport   = "clock_util.rpt"
	PlaceCheckpoint   = "post_place.dcp"
	PlaceUtilReport   = "post_place_util.rpt"
	PlaceTimingReport = "post_place_timing_summary.rpt"

	RouteCheckpoint   = "post_route.dcp"
	RouteStatusReport = "post_route_status.rpt"
	RouteTimingReport = "post_route_timing_summary.rpt"
	RoutePowerReport  = "post_route_power.rpt"
	RouteDRCReport    = "post_impl_drc.rpt"
)

// NetlistName is the timing-annotated post-implementation netlist, named
// after the top-level unit.
func NetlistName(top string) string {
	return top + "_impl_netlist.v"
}

// BitstreamName is the final bitstream artifact, named after the top-level
// unit.
func BitstreamName(top string) string {
	return top + ".bit"
}
