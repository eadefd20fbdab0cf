package quiz

import "time"

// startCountdown arms the countdown for the current question using the
// timer setting as it is now. Must hold m.mu.
func (m *Machine) startCountdown() {
	m.stopCountdown()
	s := m.sess
	s.RemainingSeconds = s.Config.Difficulty.TimeLimitSeconds()
	s.TimerRunning = m.records.TimerEnabled() && s.RemainingSeconds > 0
	if s.TimerRunning {
		m.scheduleTick()
	}
}

// stopCountdown cancels the pending tick and retires its generation so a
// tick already waiting on the lock is discarded. Must hold m.mu.
func (m *Machine) stopCountdown() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
	if m.sess != nil {
		m.sess.TimerRunning = false
	}
}

func (m *Machine) scheduleTick() {
	gen := m.gen
	m.timer = m.clock.AfterFunc(time.Second, func() {
		m.Dispatch(tick{gen: gen})
	})
}

// onTick applies one countdown second. Stale ticks change nothing.
func (m *Machine) onTick(t tick) bool {
	s := m.sess
	if t.gen != m.gen || s == nil || m.phase != PhaseQuestion || s.AnsweredCurrent || !s.TimerRunning {
		return false
	}
	m.timer = nil
	if s.RemainingSeconds > 0 {
		s.RemainingSeconds--
	}
	if s.RemainingSeconds == 0 {
		m.lockAnswer("", true)
		return true
	}
	m.scheduleTick()
	return true
}
