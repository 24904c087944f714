// Package response measures the frequency response of integer sample filters.
//
// [Measure] drives a scaled impulse through a filter, normalizes the integer
// output back to unit gain and transforms it with an FFT. Because the filter
// runs in its real fixed-point arithmetic, the result includes every effect of
// shifting and rounding, and can be checked against the ideal response with
// [Compare]:
//
//	f := ema.MustNew[int32](4)
//	res, err := response.Measure[int32](f, response.WithAmplitude(1<<20))
//	dev := response.Compare(res, func(hz float64) float64 {
//		return ema.MagnitudeDB(4, hz, res.SampleRate)
//	}, res.SampleRate/2)
package response
