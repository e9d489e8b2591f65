package indicators

// MACD is a streaming Moving Average Convergence Divergence calculator.
// Each EMA seeds on the first close and converges as bars arrive; the
// value is considered Ready after the slow period has elapsed.
type MACD struct {
	fast, slow, signal int
	count              int
	emaFast            float64
	emaSlow            float64
	emaSignal          float64
}

func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{fast: fast, slow: slow, signal: signal}
}

func (m *MACD) Warmup() int { return m.slow + m.signal }

func (m *MACD) Reset() {
	m.count = 0
	m.emaFast = 0
	m.emaSlow = 0
	m.emaSignal = 0
}

func (m *MACD) Update(close float64) {
	if m.count == 0 {
		m.emaFast = close
		m.emaSlow = close
		m.emaSignal = 0
		m.count++
		return
	}

	m.emaFast = ema(m.emaFast, close, m.fast)
	m.emaSlow = ema(m.emaSlow, close, m.slow)
	m.emaSignal = ema(m.emaSignal, m.emaFast-m.emaSlow, m.signal)
	m.count++
}

func (m *MACD) Ready() bool { return m.count >= m.slow+m.signal }

// Line returns the MACD line (fast EMA minus slow EMA).
func (m *MACD) Line() float64 {
	if !m.Ready() {
		return 0
	}
	return m.emaFast - m.emaSlow
}

// Signal returns the signal line (EMA of the MACD line).
func (m *MACD) Signal() float64 {
	if !m.Ready() {
		return 0
	}
	return m.emaSignal
}

func ema(prev, v float64, period int) float64 {
	k := 2.0 / float64(period+1)
	return (v-prev)*k + prev
}
