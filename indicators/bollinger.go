package indicators

import "math"

// Bollinger is a streaming Bollinger Bands calculator: a rolling simple
// moving average with bands at stdDev sample standard deviations.
type Bollinger struct {
	period int
	stdDev float64
	closes []float64
}

func NewBollinger(period int, stdDev float64) *Bollinger {
	return &Bollinger{
		period: period,
		stdDev: stdDev,
		closes: make([]float64, 0, period),
	}
}

func (b *Bollinger) Warmup() int { return b.period }

func (b *Bollinger) Reset() {
	b.closes = b.closes[:0]
}

func (b *Bollinger) Update(close float64) {
	b.closes = append(b.closes, close)
	if len(b.closes) > b.period {
		b.closes = b.closes[1:]
	}
}

func (b *Bollinger) Ready() bool { return len(b.closes) >= b.period }

// Middle returns the rolling mean of the window.
func (b *Bollinger) Middle() float64 {
	if !b.Ready() {
		return 0
	}
	sum := 0.0
	for _, c := range b.closes {
		sum += c
	}
	return sum / float64(len(b.closes))
}

func (b *Bollinger) Upper() float64 { return b.Middle() + b.stdDev*b.sigma() }
func (b *Bollinger) Lower() float64 { return b.Middle() - b.stdDev*b.sigma() }

// sigma is the sample standard deviation of the window.
func (b *Bollinger) sigma() float64 {
	n := len(b.closes)
	if n < 2 {
		return 0
	}
	mean := b.Middle()
	var ss float64
	for _, c := range b.closes {
		d := c - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}
