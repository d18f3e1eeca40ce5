package cgtcalc

// bedAndBreakfastDays is the statutory repurchase window: an acquisition up
// to 30 days after a disposal is matched against it.
const bedAndBreakfastDays = 30

// matchDecision is the outcome of a pairing rule for one
// acquisition/disposal pair.
type matchDecision int

const (
	// skipAcquisition advances past an acquisition that can never match the
	// current or any earlier disposal under the rule.
	skipAcquisition matchDecision = iota
	// skipDisposal advances past a disposal that can never match the current
	// or any later acquisition under the rule.
	skipDisposal
	// matchPair consumes quantity from both sides.
	matchPair
)

// pairingRule decides whether a pending acquisition and a pending disposal
// pair up. The matcher sweeps both lists forward without backtracking, so a
// rule must only skip an entry when no later entry on the other side could
// still match it.
type pairingRule func(acq, disp *subTransaction) matchDecision

// sameDayRule pairs an acquisition and a disposal made on the same calendar
// date.
func sameDayRule(acq, disp *subTransaction) matchDecision {
	if acq.tx.Date.Before(disp.tx.Date) {
		return skipAcquisition
	}
	if disp.tx.Date.Before(acq.tx.Date) {
		return skipDisposal
	}
	return matchPair
}

// bedAndBreakfastRule pairs a disposal with an acquisition made within the
// 30 days that follow it.
func bedAndBreakfastRule(acq, disp *subTransaction) matchDecision {
	if acq.tx.Date.Before(disp.tx.Date) {
		return skipAcquisition
	}
	if acq.tx.Date.After(disp.tx.Date.Add(bedAndBreakfastDays)) {
		return skipDisposal
	}
	return matchPair
}

// matchPending runs one matching pass over the asset's pending acquisitions
// and disposals, producing matches tagged with kind. It is a linear
// two-cursor merge: each step either consumes quantity or advances a cursor,
// so it terminates after at most len(acqs)+len(disps) rule consultations.
func matchPending(st *assetState, rule pairingRule, kind MatchKind, log *Logger) {
	acqs := st.pendingAcquisitions()
	disps := st.pendingDisposals()

	i, j := 0, 0
	for i < len(acqs) && j < len(disps) {
		acq, disp := acqs[i], disps[j]

		// Skip entries fully consumed by an earlier match in this pass
		// without consulting the rule.
		if acq.exhausted() {
			i++
			continue
		}
		if disp.exhausted() {
			j++
			continue
		}

		switch rule(acq, disp) {
		case skipAcquisition:
			i++
		case skipDisposal:
			j++
		case matchPair:
			qty := acq.remaining().Min(disp.remaining())
			m := newDirectMatch(kind, qty, disp, acq)
			acq.consume(qty)
			disp.consume(qty)
			st.record(m)
			log.Debug().
				Str("asset", st.asset).
				Str("rule", kind.String()).
				Str("quantity", qty.String()).
				Str("disposal", disp.tx.Date.String()).
				Str("acquisition", acq.tx.Date.String()).
				Msg("matched disposal")
			if acq.exhausted() {
				i++
			}
			if disp.exhausted() {
				j++
			}
		}
	}
}
