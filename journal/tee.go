package journal

import "errors"

// Tee fans every record out to all sinks. Errors are joined so one
// failing sink does not hide another's.
type Tee []Journal

func (t Tee) RecordTrade(rec TradeRecord) error {
	var errs []error
	for _, j := range t {
		errs = append(errs, j.RecordTrade(rec))
	}
	return errors.Join(errs...)
}

func (t Tee) PublishSnapshot(s Snapshot) error {
	var errs []error
	for _, j := range t {
		errs = append(errs, j.PublishSnapshot(s))
	}
	return errors.Join(errs...)
}

func (t Tee) Close() error {
	var errs []error
	for _, j := range t {
		errs = append(errs, j.Close())
	}
	return errors.Join(errs...)
}
