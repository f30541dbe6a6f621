package analyzer

// Energy is the per-tick spectral summary. Every field is in [0,1] and the
// whole value is replaced each analysis tick; any history lives in the
// analyzer's own envelopes.
type Energy struct {
	Bass   float64 `json:"bass"`
	Mid    float64 `json:"mid"`
	High   float64 `json:"high"`
	Volume float64 `json:"volume"`
}
