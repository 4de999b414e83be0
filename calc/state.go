package calc

// ActionKind identifies a user intent handled by Reduce
type ActionKind int

const (
	ActionAppend ActionKind = iota
	ActionBackspace
	ActionReset
	ActionSetLiteral
	ActionCalculate
	ActionSelectHistory
)

func (k ActionKind) String() string {
	switch k {
	case ActionAppend:
		return "append"
	case ActionBackspace:
		return "backspace"
	case ActionReset:
		return "reset"
	case ActionSetLiteral:
		return "set"
	case ActionCalculate:
		return "calculate"
	case ActionSelectHistory:
		return "select"
	}
	return "unknown"
}

// Action is one discrete input event
type Action struct {
	Kind  ActionKind
	Text  string // token for Append, text for SetLiteral
	Index int    // history index for SelectHistory
}

func Key(token string) Action    { return Action{Kind: ActionAppend, Text: token} }
func Backspace() Action          { return Action{Kind: ActionBackspace} }
func Reset() Action              { return Action{Kind: ActionReset} }
func Literal(text string) Action { return Action{Kind: ActionSetLiteral, Text: text} }
func Calculate() Action          { return Action{Kind: ActionCalculate} }
func SelectHistory(i int) Action { return Action{Kind: ActionSelectHistory, Index: i} }

// State is the calculator's whole input state. Treat it as a value: Reduce
// never mutates its argument.
type State struct {
	Expr         string  // glyph form
	History      History // evaluated expressions, oldest first
	Result       string  // text of the last evaluation, cleared by the next edit
	Err          error   // last evaluation error, cleared by the next edit
	HistoryLimit int     // 0 means unbounded
}

// NewState returns an empty state with the given history cap
func NewState(historyLimit int) State {
	return State{History: History{}, HistoryLimit: historyLimit}
}

// Display is the expression as shown in the input line
func (s State) Display() string {
	return ToDisplay(s.Expr)
}

// Reduce applies a to s and returns the next state.
func Reduce(s State, a Action) State {
	switch a.Kind {
	case ActionAppend:
		s = s.edited()
		s.Expr = Append(s.Expr, a.Text)

	case ActionBackspace:
		s = s.edited()
		s.Expr = DeleteLast(s.Expr)

	case ActionReset:
		return State{History: s.History.Clear(), HistoryLimit: s.HistoryLimit}

	case ActionSetLiteral:
		s = s.edited()
		s.Expr = SetLiteral(a.Text)

	case ActionSelectHistory:
		expr, ok := s.History.Select(a.Index)
		if !ok {
			return s
		}
		s = s.edited()
		s.Expr = SetLiteral(expr)

	case ActionCalculate:
		v, err := Evaluate(ToASCII(s.Expr))
		if err != nil {
			s.Err = err
			s.Result = ""
			return s
		}
		s.History = s.History.Append(s.Expr, s.HistoryLimit)
		s.Expr, _ = ReplaceWithResult(v)
		s.Result = FormatNumber(v)
		s.Err = nil
	}
	return s
}

func (s State) edited() State {
	s.Result = ""
	s.Err = nil
	return s
}
