package usecase

type unitPair struct {
	from, to string
}

var unitConversions = map[unitPair]float64{
	{"mm", "in"}: 0.0393701,
	{"cm", "in"}: 0.393701,
	{"in", "mm"}: 25.4,
	{"in", "cm"}: 2.54,
	{"g", "oz"}:  0.035274,
	{"kg", "lb"}: 2.20462,
	{"oz", "g"}:  28.3495,
	{"lb", "kg"}: 0.453592,
}

// StandardizeUnit converts value between two units from the fixed conversion
// table. Unit names are case-insensitive. It reports false for pairs the
// table does not cover, including same-unit pairs.
func StandardizeUnit(value float64, from, to string) (float64, bool) {
	factor, ok := unitConversions[unitPair{from: lowerText(from), to: lowerText(to)}]
	if !ok {
		return 0, false
	}
	return value * factor, true
}
