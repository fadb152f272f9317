package cartridge

import "time"

// rtc implements the MBC3 real-time clock. Open Question 2 (spec.md §9):
// rather than deriving the day counter from tm_yday (which resets at every
// year boundary and cannot represent a day count beyond 365), this tracks
// elapsed wall-clock seconds since the clock was started and derives every
// register from that duration, so it stays monotonic across year
// boundaries and across process restarts once epoch is persisted.
type rtc struct {
	epoch   time.Time // wall-clock time corresponding to elapsed
	elapsed int64     // seconds elapsed as of epoch (for persistence/resume)

	halted    bool
	haltedSec int64 // elapsed value frozen at the moment Halted was set

	latched     [5]byte
	latchStage  uint8 // tracks the 0-then-1 write sequence on 0x6000-0x7FFF
	selectedReg uint8 // 0x08-0x0C
}

func newRTC() *rtc {
	return &rtc{epoch: time.Now()}
}

// seconds returns the live elapsed-seconds count.
func (r *rtc) seconds() int64 {
	if r.halted {
		return r.haltedSec
	}
	return r.elapsed + int64(time.Since(r.epoch).Seconds())
}

// Latch captures the current clock into the 5 visible registers on a
// 0-then-1 write to 0x6000-0x7FFF.
func (r *rtc) Latch(value uint8) {
	if value == 0 {
		r.latchStage = 1
		return
	}
	if value == 1 && r.latchStage == 1 {
		r.latchStage = 0
		r.snapshot()
	}
}

func (r *rtc) snapshot() {
	s := r.seconds()
	days := s / 86400
	r.latched[0] = byte(s % 60)
	r.latched[1] = byte((s / 60) % 60)
	r.latched[2] = byte((s / 3600) % 24)
	r.latched[3] = byte(days & 0xFF)
	dh := byte((days >> 8) & 0x01)
	if r.halted {
		dh |= 0x40
	}
	if days > 0x1FF {
		dh |= 0x80 // day-counter carry
	}
	r.latched[4] = dh
}

// SelectRegister stores which of RTC S/M/H/DL/DH the 0xA000-0xBFFF window
// exposes, for MBC3 RAM-bank/RTC select values 0x08-0x0C.
func (r *rtc) SelectRegister(reg uint8) {
	r.selectedReg = reg
}

// Read returns the latched value of the currently selected register.
func (r *rtc) Read() uint8 {
	idx := r.selectedReg - 0x08
	if idx > 4 {
		return 0xFF
	}
	return r.latched[idx]
}

// Write stores value into the currently selected register and, for the
// writable fields, folds it back into the running elapsed-seconds counter
// so later reads stay consistent; it also handles the halt bit in DH.
func (r *rtc) Write(value uint8) {
	idx := r.selectedReg - 0x08
	if idx > 4 {
		return
	}
	r.snapshot()
	r.latched[idx] = value
	if idx == 4 {
		wasHalted := r.halted
		nowHalted := value&0x40 != 0
		if nowHalted && !wasHalted {
			r.haltedSec = r.seconds()
		}
		r.halted = nowHalted
		if !r.halted && wasHalted {
			r.epoch = time.Now()
			r.elapsed = r.haltedSec
		}
	}
	r.recompose()
}

// recompose rebuilds the running elapsed-seconds counter from the latched
// register fields after a direct write to one of them.
func (r *rtc) recompose() {
	days := int64(r.latched[3]) | int64(r.latched[4]&0x01)<<8
	total := days*86400 + int64(r.latched[2])*3600 + int64(r.latched[1])*60 + int64(r.latched[0])
	if r.halted {
		r.haltedSec = total
	} else {
		r.elapsed = total
		r.epoch = time.Now()
	}
}
