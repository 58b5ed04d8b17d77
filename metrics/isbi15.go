package metrics

// ISBI15FromMetrics combines Dice, PPV, lesion false-discovery rate and
// lesion true-positive rate into the composite score described in Carass et
// al., "Longitudinal multiple sclerosis lesion segmentation: resource and
// challenge", NeuroImage 148 (2017): 77-102 (minus volume correlation).
//
// The reweighted flag rescales the score from its theoretical [0, 3/4] range
// to [0, 1]; callers almost always want it on.
func ISBI15FromMetrics(dice, ppv, lfdr, ltpr float64, reweighted bool) float64 {
	score := dice/8 + ppv/8 + (1-lfdr)/4 + ltpr/4
	if reweighted {
		score *= 4.0 / 3.0
	}
	return score
}

// ISBI15FromResults is ISBI15FromMetrics lifted over tagged results: if any
// input is undefined the composite is undefined.
func ISBI15FromResults(dice, ppv, lfdr, ltpr Result, reweighted bool) Result {
	if !dice.IsDefined() || !ppv.IsDefined() || !lfdr.IsDefined() || !ltpr.IsDefined() {
		return Undefined
	}
	return Defined(ISBI15FromMetrics(dice.Value(), ppv.Value(), lfdr.Value(), ltpr.Value(), reweighted))
}
