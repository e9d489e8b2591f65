package journal

// Nop discards everything. It is the default sink for simulations that
// only need the in-memory trade log.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error  { return nil }
func (Nop) PublishSnapshot(Snapshot) error { return nil }
func (Nop) Close() error                   { return nil }
