package decision

// Terminal labels of the rotation graph. The defensive labels appear on
// several branches, so they get named constants; single-ticker buys are
// inlined at their node.
const (
	LabelVIXGroup = "1.5x VIX Group (VXX, UVIX)"
	LabelVIXBlend = "VIX Blend (VXX=0.45, VIXM=0.2, UVIX=0.35)"
	LabelVIX1x    = "1x VIX (VIXY)"
	LabelTBill    = "BIL (T-Bill ETF)"
)

// rotationEntry is the designated entry node of the rotation graph.
const rotationEntry = 1

// BottomTwoRule ranks the leveraged tech candidates when the TQQQ branch
// fires. The candidate order matters: equal RSIs resolve in this order.
var BottomTwoRule = TieBreakRule{
	Candidates: []string{"SOXL", "TECL", "TQQQ", "FNGU"},
	Window:     9,
}

// rotationNodes is the hand-authored overbought-rotation graph. Node ids
// are sparse on purpose: they match the strategy sheet's row numbering.
var rotationNodes = map[int]Node{
	1:  {Symbol: "QQQ", Window: 9, Op: OpGreater, Threshold: 79, True: Goto(2), False: Goto(3)},
	2:  {Symbol: "VIXY", Window: 50, Op: OpGreater, Threshold: 40, True: Terminal(LabelVIXGroup), False: Goto(4)},
	3:  {Symbol: "SPY", Window: 9, Op: OpGreater, Threshold: 79, True: Goto(5), False: Goto(8)},
	4:  {Symbol: "SPY", Window: 9, Op: OpGreater, Threshold: 82.5, True: Terminal(LabelVIXGroup), False: Terminal(LabelVIXBlend)},
	5:  {Symbol: "VIXY", Window: 60, Op: OpGreater, Threshold: 40, True: Terminal(LabelVIXGroup), False: Goto(6)},
	6:  {Symbol: "QQQ", Window: 9, Op: OpGreater, Threshold: 82.5, True: Terminal(LabelVIXGroup), False: Terminal(LabelVIXBlend)},
	8:  {Symbol: "IOO", Window: 9, Op: OpGreater, Threshold: 80, True: Goto(9), False: Goto(12)},
	9:  {Symbol: "VIXY", Window: 60, Op: OpGreater, Threshold: 40, True: Terminal(LabelVIXGroup), False: Goto(10)},
	10: {Symbol: "IOO", Window: 9, Op: OpGreater, Threshold: 82.5, True: Terminal(LabelVIXGroup), False: Terminal(LabelVIX1x)},
	12: {Symbol: "XLP", Window: 9, Op: OpGreater, Threshold: 77, True: Goto(13), False: Goto(16)},
	13: {Symbol: "XLP", Window: 9, Op: OpGreater, Threshold: 82.5, True: Terminal(LabelVIXGroup), False: Terminal(LabelVIX1x)},
	16: {Symbol: "VTV", Window: 9, Op: OpGreater, Threshold: 79, True: Goto(17), False: Goto(18)},
	17: {Symbol: "VTV", Window: 9, Op: OpGreater, Threshold: 82.5, True: Terminal(LabelVIXGroup), False: Terminal(LabelVIX1x)},
	18: {Symbol: "XLF", Window: 9, Op: OpGreater, Threshold: 81, True: Goto(19), False: Goto(22)},
	19: {Symbol: "XLF", Window: 9, Op: OpGreater, Threshold: 85, True: Terminal(LabelVIXGroup), False: Terminal(LabelVIX1x)},
	22: {Symbol: "VOX", Window: 9, Op: OpGreater, Threshold: 79, True: Goto(23), False: Goto(24)},
	23: {Symbol: "VOX", Window: 9, Op: OpGreater, Threshold: 82.5, True: Terminal(LabelVIXGroup), False: Terminal(LabelVIX1x)},
	24: {Symbol: "CURE", Window: 9, Op: OpGreater, Threshold: 82, True: Goto(25), False: Goto(28)},
	25: {Symbol: "CURE", Window: 9, Op: OpGreater, Threshold: 85, True: Terminal(LabelVIXGroup), False: Terminal(LabelVIX1x)},
	28: {Symbol: "RETL", Window: 9, Op: OpGreater, Threshold: 82, True: Goto(29), False: Goto(32)},
	29: {Symbol: "RETL", Window: 9, Op: OpGreater, Threshold: 85, True: Terminal(LabelVIXGroup), False: Terminal(LabelVIX1x)},
	32: {Symbol: "LABU", Window: 9, Op: OpGreater, Threshold: 79, True: Terminal("LABD"), False: Goto(33)},
	33: {Symbol: "SOXL", Window: 9, Op: OpLess, Threshold: 25, True: Terminal("SOXL"), False: Goto(34)},
	34: {Symbol: "FNGU", Window: 9, Op: OpLess, Threshold: 25, True: Terminal("FNGU"), False: Goto(35)},
	35: {Symbol: "TQQQ", Window: 9, Op: OpLess, Threshold: 28, True: TieBreak(), False: Goto(36)},
	36: {Symbol: "TECL", Window: 9, Op: OpLess, Threshold: 25, True: Terminal("TECL"), False: Goto(37)},
	37: {Symbol: "UPRO", Window: 9, Op: OpLess, Threshold: 25, True: Terminal("UPRO"), False: Terminal(LabelTBill)},
}

// Rotation builds and validates the production rotation graph.
func Rotation() (*Graph, error) {
	return New(rotationEntry, rotationNodes, BottomTwoRule)
}
