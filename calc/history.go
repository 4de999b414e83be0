package calc

// History is the ordered log of evaluated expressions, oldest first. No two
// consecutive entries are equal.
type History []string

// Append records expr unless it repeats the most recent entry. limit > 0 caps
// the log by dropping the oldest entries.
func (h History) Append(expr string, limit int) History {
	if expr == "" {
		return h
	}
	if last, ok := h.Last(); ok && last == expr {
		return h
	}
	out := make(History, len(h), len(h)+1)
	copy(out, h)
	out = append(out, expr)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// Last returns the most recent entry
func (h History) Last() (string, bool) {
	if len(h) == 0 {
		return "", false
	}
	return h[len(h)-1], true
}

// Select returns the entry at index i for restoring into the expression.
func (h History) Select(i int) (string, bool) {
	if i < 0 || i >= len(h) {
		return "", false
	}
	return h[i], true
}

// Clear returns an empty history
func (h History) Clear() History {
	return History{}
}
