package flow

import "math"

// Shared slice math for the analysis functions. All statistics use the
// population formulas; every division is zero-guarded at the call site or
// here.

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return sum(xs) / float64(len(xs))
}

// stdDevPop is the population standard deviation.
func stdDevPop(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// pearson is the population Pearson correlation coefficient,
// cov(x,y)/√(var(x)·var(y)). Returns 0 when either variance is 0 or the
// series lengths differ.
func pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	var cov, vx, vy float64
	for i := 0; i < n; i++ {
		dx := xs[i] - mx
		dy := ys[i] - my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0
	}
	return cov / math.Sqrt(vx*vy)
}

// linearRegression fits ys against the index 0..n-1 by ordinary least
// squares and returns the slope, intercept and correlation r.
func linearRegression(ys []float64) (slope, intercept, r float64) {
	n := len(ys)
	if n < 2 {
		if n == 1 {
			return 0, ys[0], 0
		}
		return 0, 0, 0
	}
	var sx, sy, sxx, sxy, syy float64
	for i, y := range ys {
		x := float64(i)
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
		syy += y * y
	}
	fn := float64(n)
	dx := fn*sxx - sx*sx
	if dx == 0 {
		return 0, mean(ys), 0
	}
	slope = (fn*sxy - sx*sy) / dx
	intercept = (sy - slope*sx) / fn
	dy := fn*syy - sy*sy
	if dy <= 0 {
		return slope, intercept, 0
	}
	r = (fn*sxy - sx*sy) / math.Sqrt(dx*dy)
	return slope, intercept, r
}

// risingFraction is the share of consecutive pairs where the series rises.
// 1.0 means monotonically rising; 0 for fewer than two points.
func risingFraction(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var rising int
	for i := 1; i < len(xs); i++ {
		if xs[i] > xs[i-1] {
			rising++
		}
	}
	return float64(rising) / float64(len(xs)-1)
}

// deltas returns the bar-to-bar differences of the series.
func deltas(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}
	ds := make([]float64, 0, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		ds = append(ds, xs[i]-xs[i-1])
	}
	return ds
}

// zScore standardizes a value; a zero stddev is treated as 1 so degenerate
// windows do not divide by zero or suppress the signal.
func zScore(v, m, std float64) float64 {
	if std == 0 {
		std = 1
	}
	return (v - m) / std
}
