package utils

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/spatial/r3"
)

func Argmax[T cmp.Ordered](arr []T) (argmax int) {
	for i := range arr {
		if cmp.Compare(arr[i], arr[argmax]) == 1 {
			argmax = i
		}
	}
	return
}

type Number interface {
	constraints.Float | constraints.Integer
}

func SumSlice[T Number](arr []T) (r T) {
	for i := range arr {
		r += arr[i]
	}
	return
}

func Average[T Number](s []T) (mean float64) {
	if len(s) == 0 {
		return 0
	}
	for i := range s {
		mean += float64(s[i])
	}
	mean /= float64(len(s))
	return
}

// MeanAndVariance returns zero variance for fewer than two samples.
func MeanAndVariance[T Number](s []T, unbiased bool) (mean, variance float64) {
	mean = Average(s)
	if len(s) < 2 {
		return mean, 0
	}
	for i := range s {
		variance += (float64(s[i]) - mean) * (float64(s[i]) - mean)
	}
	if unbiased {
		variance /= float64(len(s) - 1)
	} else {
		variance /= float64(len(s))
	}

	return
}

func IntAbs(a int) int {
	if a < 0 {
		return -a
	} else {
		return a
	}

}

// R draws a unit-mean exponential variate, -ln(u) with u in (0, 1].
func R(rng *rand.Rand) float64 {
	return -math.Log(1. - rng.Float64())
}

// IsotropicDirection is a unit vector uniform on the sphere.
func IsotropicDirection(rng *rand.Rand) r3.Vec {
	cosTheta := 2.*rng.Float64() - 1.
	sinTheta := math.Sqrt(1. - cosTheta*cosTheta)
	phi := 2. * math.Pi * rng.Float64()
	return r3.Vec{X: sinTheta * math.Cos(phi), Y: sinTheta * math.Sin(phi), Z: cosTheta}
}

func Intersect(a, b []string) *string {
	for i := range a {
		if slices.Contains(b, a[i]) {
			return &a[i]
		}
	}
	return nil
}
