package fibdapp

import (
	"context"

	"go.uber.org/zap"
)

// Calculate sends input to the contract's fib method and stores the returned
// value as the session result. The input is forwarded as typed; only ABI
// encoding constrains it.
//
// Every failure is returned as a *CallError and leaves the previous result
// untouched. Calling Calculate before Bootstrap fails with ErrBindingUnset.
func (s *Session) Calculate(ctx context.Context, input string) (string, error) {
	s.mu.RLock()
	contract, closed := s.contract, s.closed
	s.mu.RUnlock()

	logger := s.cfg.logger.With(zap.String("input", input))

	switch {
	case closed:
		s.cfg.metrics.calculation(OutcomeError)
		return "", &CallError{Method: FibMethod, Input: input, Err: ErrSessionClosed}
	case contract == nil:
		s.cfg.metrics.calculation(OutcomeError)
		return "", &CallError{Method: FibMethod, Input: input, Err: ErrBindingUnset}
	}

	if s.cfg.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.callTimeout)
		defer cancel()
	}

	out, err := contract.CallRaw(ctx, FibMethod, input)
	if err != nil {
		s.cfg.metrics.calculation(OutcomeError)
		logger.Debug("fib call failed", zap.Error(err))
		return "", err
	}
	if len(out) == 0 {
		s.cfg.metrics.calculation(OutcomeError)
		return "", &CallError{Method: FibMethod, Input: input, Err: ErrNoReturnValue}
	}

	value := formatValue(out[0])

	s.mu.Lock()
	s.result = value
	s.hasResult = true
	s.mu.Unlock()

	s.cfg.metrics.calculation(OutcomeOK)
	logger.Debug("fib call succeeded", zap.String("result", value))
	s.emit(Event{Kind: EventResult, Result: value})
	return value, nil
}
