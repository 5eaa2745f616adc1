package utils

import "math"

// TernarySearchMax returns the argmax of a unimodal f on [left, right].
func TernarySearchMax(f func(float64) float64, left, right, eps float64) float64 {
	for right-left > eps {
		a := math.FMA(left, 2., right) / 3.
		b := math.FMA(right, 2., left) / 3.
		if f(a) > f(b) {
			right = b
		} else {
			left = a
		}
	}
	return (left + right) * 0.5
}

// BinarySearch narrows the boundary of a monotone condition to within eps.
// The condition must fail at off and hold at on; the final bracket is
// returned in the same order.
func BinarySearch(condition func(float64) bool, off, on, eps float64) (float64, float64) {
	for math.Abs(on-off) > eps {
		mid := (off + on) * 0.5
		if condition(mid) {
			on = mid
		} else {
			off = mid
		}
	}
	return off, on
}
