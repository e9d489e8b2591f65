package indicators

// RSI is a streaming Relative Strength Index calculator using Wilder
// smoothing. Feed it closes in order; Value is defined once Ready.
type RSI struct {
	period    int
	count     int
	prevClose float64
	avgGain   float64
	avgLoss   float64
}

func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

func (r *RSI) Warmup() int { return r.period + 1 }

func (r *RSI) Reset() {
	r.count = 0
	r.prevClose = 0
	r.avgGain = 0
	r.avgLoss = 0
}

func (r *RSI) Update(close float64) {
	if r.count == 0 {
		r.prevClose = close
		r.count++
		return
	}

	delta := close - r.prevClose
	r.prevClose = close

	gain, loss := 0.0, 0.0
	if delta > 0 {
		gain = delta
	} else {
		loss = -delta
	}

	if r.count <= r.period {
		// Warmup: accumulate a simple average of the first 'period' deltas.
		r.avgGain += gain / float64(r.period)
		r.avgLoss += loss / float64(r.period)
	} else {
		n := float64(r.period)
		r.avgGain = (r.avgGain*(n-1) + gain) / n
		r.avgLoss = (r.avgLoss*(n-1) + loss) / n
	}
	r.count++
}

func (r *RSI) Ready() bool { return r.count >= r.period+1 }

func (r *RSI) Value() float64 {
	if !r.Ready() {
		return 0
	}
	if r.avgLoss == 0 {
		return 100
	}
	rs := r.avgGain / r.avgLoss
	return 100 - 100/(1+rs)
}
