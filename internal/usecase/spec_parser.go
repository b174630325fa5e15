package usecase

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/labstock/inventory/internal/domain"
)

// Confidence thresholds and boosts
const (
	keywordBoost          = 0.1
	manySpecsBoost        = 0.1  // more than 3 specs
	someSpecsBoost        = 0.05 // 2-3 specs
	measurementConfidence = 0.5  // below this, generic measurements are merged in
)

// subParser extracts one category's specs from the working text.
// A zero confidence means the category was not recognized.
type subParser func(text string) domain.ParsedSpec

// SpecificationParser extracts structured specifications from free-text
// item descriptions. It holds no per-call state and is safe to share.
type SpecificationParser struct {
	enableDebugLogging bool
}

// NewSpecificationParser creates a new specification parser
func NewSpecificationParser(enableDebugLogging bool) *SpecificationParser {
	return &SpecificationParser{
		enableDebugLogging: enableDebugLogging,
	}
}

// Parse extracts category, specs, tags and confidence from a description.
// The name, when given, is prepended to the description. Parse never fails:
// unparseable numbers make the affected category parser report nothing.
func (p *SpecificationParser) Parse(description, name string) domain.ParsedSpec {
	text := workingText(description, name)

	best := domain.NewParsedSpec(domain.CategoryNone)
	for _, parse := range p.subParsers() {
		// a later parser replaces the current best only on strictly higher confidence
		if result := parse(text); result.Confidence > best.Confidence {
			best = result
		}
	}

	best.Confidence = calculateConfidence(best, text)

	if best.Confidence < measurementConfidence {
		for _, m := range extractMeasurements(text) {
			best.Specs[m.key] = domain.FloatSpec(m.value)
			best.Tags = append(best.Tags, m.key+":"+domain.FormatDecimal(m.value))
		}
	}

	best.Tags = append(best.Tags, extractMaterials(text)...)
	standardizeUnits(&best)

	if p.enableDebugLogging {
		log.Printf("[PARSE] %q -> category=%q confidence=%.2f specs=%d tags=%v",
			text, best.Category, best.Confidence, len(best.Specs), best.Tags)
	}

	return best
}

// workingText joins name and description the way Parse sees them
func workingText(description, name string) string {
	return strings.TrimSpace(name + " " + description)
}

// subParsers returns the category parsers in tie-breaking order
func (p *SpecificationParser) subParsers() []subParser {
	return []subParser{
		parseFastener,
		parseResistor,
		parseCapacitor,
		parseInductor,
		parseDiode,
		parseTransistor,
		parseICPackage,
		parsePowerSupply,
		parseWireCable,
		parseTool,
		parseChemical,
		parseDimensions,
	}
}

// empty is the result of a parser that recognized nothing
func empty() domain.ParsedSpec {
	return domain.NewParsedSpec(domain.CategoryNone)
}

// parseDecimal converts a captured number written in any script's digits
func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(asciiDigits(s), 64)
}

// wholeNumber converts a captured run of digits and returns it with its
// canonical decimal text. A value past the int range is kept as that text.
func wholeNumber(digits string) (domain.SpecValue, string) {
	digits = asciiDigits(digits)
	if n, err := strconv.Atoi(digits); err == nil {
		return domain.IntSpec(n), strconv.Itoa(n)
	}
	canonical := strings.TrimLeft(digits, "0")
	return domain.StringSpec(canonical), canonical
}

func boost(confidence, amount float64) float64 {
	return min(1.0, confidence+amount)
}

// parseFastener recognizes screws, bolts and nuts
func parseFastener(text string) domain.ParsedSpec {
	result := domain.NewParsedSpec(domain.CategoryFastener)

	if m := metricFastenerPattern.FindStringSubmatch(text); m != nil {
		diameter, digits := wholeNumber(m[1])
		thread := "M" + digits
		result.Specs["thread_size"] = domain.StringSpec(thread)
		result.Specs["diameter_mm"] = diameter
		result.Tags = append(result.Tags, thread)
		result.Confidence = 0.8

		if length := m[2]; length != "" {
			value, err := parseDecimal(length)
			if err != nil {
				return empty()
			}
			result.Specs["length_mm"] = domain.FloatSpec(value)
			result.Tags = append(result.Tags, length+"mm")
			result.Confidence = 0.9
		}
	}

	if m := imperialFastenerPattern.FindStringSubmatch(text); m != nil {
		_, digits := wholeNumber(m[1])
		thread := "#" + digits
		result.Specs["thread_size"] = domain.StringSpec(thread)
		result.Tags = append(result.Tags, thread)
		result.Confidence = 0.8

		if length := m[2]; length != "" {
			result.Specs["length_str"] = domain.StringSpec(length)
			result.Tags = append(result.Tags, length+"in")
			result.Confidence = 0.9
		}
	}

	if m := fractionInchPattern.FindStringSubmatch(text); m != nil {
		result.Specs["size_fraction"] = domain.StringSpec(m[1])
		result.Tags = append(result.Tags, m[1]+"in")
		if result.Confidence < 0.7 {
			result.Confidence = 0.7
		}
	}

	lower := lowerText(text)
	for _, head := range headTypes {
		if strings.Contains(lower, lowerText(head)) {
			result.Specs["head_type"] = domain.StringSpec(head)
			result.Tags = append(result.Tags, strings.ReplaceAll(head, " ", "-"))
			result.Confidence = boost(result.Confidence, 0.1)
			break
		}
	}

	switch {
	case strings.Contains(lower, "phillips"):
		result.Specs["drive"] = domain.StringSpec("phillips")
		result.Tags = append(result.Tags, "phillips")
	case strings.Contains(lower, "flathead") || strings.Contains(lower, "slotted"):
		result.Specs["drive"] = domain.StringSpec("flathead")
		result.Tags = append(result.Tags, "flathead")
	case strings.Contains(lower, "hex") || strings.Contains(lower, "allen"):
		result.Specs["drive"] = domain.StringSpec("hex")
		result.Tags = append(result.Tags, "hex-drive")
	case strings.Contains(lower, "torx"):
		result.Specs["drive"] = domain.StringSpec("torx")
		result.Tags = append(result.Tags, "torx")
	}

	if result.Confidence <= 0 {
		return empty()
	}
	return result
}

// parseResistor recognizes resistance values. Any numeric failure yields an empty result.
func parseResistor(text string) domain.ParsedSpec {
	m := resistorPattern.FindStringSubmatch(text)
	if m == nil {
		return empty()
	}

	value, err := parseDecimal(m[1])
	if err != nil {
		return empty()
	}
	prefix := strings.ToLower(m[2])
	multiplier, ok := resistorMultipliers[prefix]
	if !ok {
		multiplier = 1
	}

	result := domain.NewParsedSpec(domain.CategoryResistor)
	label := domain.FormatDecimal(value) + prefix + "Ω"
	result.Specs["resistance_ohms"] = domain.FloatSpec(value * multiplier)
	result.Specs["resistance_str"] = domain.StringSpec(label)
	result.Tags = append(result.Tags, label, "resistor")
	result.Confidence = 0.9

	switch {
	case strings.Contains(text, "1%"):
		result.Specs["tolerance"] = domain.StringSpec("1%")
		result.Tags = append(result.Tags, "1%-tolerance")
	case strings.Contains(text, "5%"):
		result.Specs["tolerance"] = domain.StringSpec("5%")
		result.Tags = append(result.Tags, "5%-tolerance")
	}

	if w := wattagePattern.FindStringSubmatch(text); w != nil {
		result.Specs["wattage"] = domain.StringSpec(w[1] + "W")
		result.Tags = append(result.Tags, w[1]+"W")
	}

	return result
}

// parseCapacitor recognizes capacitance values
func parseCapacitor(text string) domain.ParsedSpec {
	m := capacitorPattern.FindStringSubmatch(text)
	if m == nil {
		return empty()
	}

	value, err := parseDecimal(m[1])
	if err != nil {
		return empty()
	}
	prefix := strings.ToLower(m[2])
	multiplier, ok := capacitorMultipliers[prefix]
	if !ok {
		multiplier = 1
	}

	result := domain.NewParsedSpec(domain.CategoryCapacitor)
	label := domain.FormatDecimal(value) + prefix + "F"
	result.Specs["capacitance_farads"] = domain.FloatSpec(value * multiplier)
	result.Specs["capacitance_str"] = domain.StringSpec(label)
	result.Tags = append(result.Tags, label, "capacitor")
	result.Confidence = 0.9

	if v := capacitorVoltagePattern.FindStringSubmatch(text); v != nil {
		result.Specs["voltage"], _ = wholeNumber(v[1])
		result.Tags = append(result.Tags, v[1]+"V")
	}

	lower := lowerText(text)
	for _, kind := range []string{"ceramic", "electrolytic", "tantalum"} {
		if strings.Contains(lower, kind) {
			result.Specs["type"] = domain.StringSpec(kind)
			result.Tags = append(result.Tags, kind)
			break
		}
	}

	return result
}

// parseInductor recognizes inductance values
func parseInductor(text string) domain.ParsedSpec {
	m := inductorPattern.FindStringSubmatch(text)
	if m == nil {
		return empty()
	}

	value, err := parseDecimal(m[1])
	if err != nil {
		return empty()
	}
	prefix := strings.ToLower(m[2])
	multiplier, ok := inductorMultipliers[prefix]
	if !ok {
		multiplier = 1
	}

	result := domain.NewParsedSpec(domain.CategoryInductor)
	label := domain.FormatDecimal(value) + prefix + "H"
	result.Specs["inductance_henries"] = domain.FloatSpec(value * multiplier)
	result.Specs["inductance_str"] = domain.StringSpec(label)
	result.Tags = append(result.Tags, label, "inductor")
	result.Confidence = 0.9

	if c := ratedCurrentPattern.FindStringSubmatch(text); c != nil {
		if amps, err := parseDecimal(c[1]); err == nil {
			result.Specs["current_rating"] = domain.FloatSpec(amps)
			result.Tags = append(result.Tags, c[1]+"A")
		}
	}

	return result
}

// parseDiode always reports a diode; the confidence depends on what was found
func parseDiode(text string) domain.ParsedSpec {
	result := domain.NewParsedSpec(domain.CategoryDiode)

	if pkg, ok := diodePackagePattern.find(text); ok {
		result.Specs["package"] = domain.StringSpec(strings.ToUpper(pkg))
		result.Tags = append(result.Tags, strings.ToLower(pkg))
		result.Confidence = 0.7
	}

	lower := lowerText(text)
	switch {
	case strings.Contains(lower, "zener"):
		result.Specs["type"] = domain.StringSpec("zener")
		result.Tags = append(result.Tags, "zener")
		result.Confidence = 0.8
	case strings.Contains(lower, "schottky"):
		result.Specs["type"] = domain.StringSpec("schottky")
		result.Tags = append(result.Tags, "schottky")
		result.Confidence = 0.8
	case strings.Contains(lower, "rectifier"):
		result.Specs["type"] = domain.StringSpec("rectifier")
		result.Tags = append(result.Tags, "rectifier")
		result.Confidence = 0.8
	default:
		result.Specs["type"] = domain.StringSpec("standard")
		result.Tags = append(result.Tags, "diode")
		result.Confidence = 0.6
	}

	if v := ratedVoltagePattern.FindStringSubmatch(text); v != nil {
		if volts, err := parseDecimal(v[1]); err == nil {
			result.Specs["voltage"] = domain.FloatSpec(volts)
			result.Tags = append(result.Tags, v[1]+"V")
		}
	}

	if c := diodeCurrentPattern.FindStringSubmatch(text); c != nil {
		if current, err := parseDecimal(c[1]); err == nil {
			unit := "A"
			if strings.Contains(text, "mA") {
				unit = "mA"
			}
			result.Specs["current"] = domain.FloatSpec(current)
			result.Specs["current_unit"] = domain.StringSpec(unit)
			result.Tags = append(result.Tags, domain.FormatDecimal(current)+unit)
		}
	}

	return result
}

// parseTransistor always reports a transistor; the confidence depends on what was found
func parseTransistor(text string) domain.ParsedSpec {
	result := domain.NewParsedSpec(domain.CategoryTransistor)

	if pkg, ok := transistorPackagePattern.find(text); ok {
		result.Specs["package"] = domain.StringSpec(strings.ToUpper(pkg))
		result.Tags = append(result.Tags, strings.ToLower(pkg))
		result.Confidence = 0.7
	}

	lower := lowerText(text)
	switch {
	case strings.Contains(lower, "mosfet") || strings.Contains(lower, "fet"):
		result.Specs["type"] = domain.StringSpec("MOSFET")
		result.Tags = append(result.Tags, "mosfet")
		result.Confidence = 0.8
	case strings.Contains(lower, "bjt") || strings.Contains(lower, "bipolar"):
		result.Specs["type"] = domain.StringSpec("BJT")
		result.Tags = append(result.Tags, "bjt")
		result.Confidence = 0.8
	default:
		result.Specs["type"] = domain.StringSpec("transistor")
		result.Tags = append(result.Tags, "transistor")
		result.Confidence = 0.6
	}

	if v := ratedVoltagePattern.FindStringSubmatch(text); v != nil {
		if volts, err := parseDecimal(v[1]); err == nil {
			result.Specs["voltage"] = domain.FloatSpec(volts)
			result.Tags = append(result.Tags, v[1]+"V")
		}
	}

	return result
}

// parseICPackage recognizes bare package codes such as 0805 or SOT-23
func parseICPackage(text string) domain.ParsedSpec {
	pkg, ok := icPackagePattern.find(text)
	if !ok {
		return empty()
	}

	result := domain.NewParsedSpec(domain.CategoryElectronics)
	pkg = strings.ToUpper(pkg)
	result.Specs["package"] = domain.StringSpec(pkg)
	result.Tags = append(result.Tags, strings.ToLower(pkg), "smd")
	result.Confidence = 0.8
	return result
}

// parsePowerSupply recognizes voltage/current pairs such as 12V/2A
func parsePowerSupply(text string) domain.ParsedSpec {
	result := domain.NewParsedSpec(domain.CategoryPowerSupply)

	m := voltageCurrentPattern.FindStringSubmatch(text)
	if m == nil {
		return result
	}
	volts, errV := parseDecimal(m[1])
	amps, errA := parseDecimal(m[2])
	if errV != nil || errA != nil {
		return empty()
	}

	result.Specs["voltage"] = domain.FloatSpec(volts)
	result.Specs["current"] = domain.FloatSpec(amps)
	result.Specs["power"] = domain.FloatSpec(volts * amps)
	result.Tags = append(result.Tags,
		domain.FormatDecimal(volts)+"V",
		domain.FormatDecimal(amps)+"A",
		fmt.Sprintf("%.1fW", volts*amps),
	)
	result.Confidence = 0.9
	return result
}

// parseWireCable recognizes wire gauges and cross sections
func parseWireCable(text string) domain.ParsedSpec {
	result := domain.NewParsedSpec(domain.CategoryWireCable)

	if m := wireGaugePattern.FindStringSubmatch(text); m != nil {
		gauge, digits := wholeNumber(m[1])
		result.Specs["gauge_awg"] = gauge
		result.Tags = append(result.Tags, digits+"AWG")
		result.Confidence = 0.8
	}

	if m := wireSizePattern.FindStringSubmatch(text); m != nil {
		// a fractional capture such as "1/2" is not a number
		size, err := parseDecimal(m[1])
		if err != nil {
			return empty()
		}
		result.Specs["cross_section_mm2"] = domain.FloatSpec(size)
		result.Tags = append(result.Tags, domain.FormatDecimal(size)+"mm²")
		result.Confidence = 0.8
	}

	lower := lowerText(text)
	switch {
	case strings.Contains(lower, "solid"):
		result.Specs["conductor_type"] = domain.StringSpec("solid")
		result.Tags = append(result.Tags, "solid-core")
	case strings.Contains(lower, "stranded"):
		result.Specs["conductor_type"] = domain.StringSpec("stranded")
		result.Tags = append(result.Tags, "stranded")
	}

	switch {
	case strings.Contains(lower, "teflon") || strings.Contains(lower, "ptfe"):
		result.Specs["insulation"] = domain.StringSpec("PTFE")
		result.Tags = append(result.Tags, "ptfe")
	case strings.Contains(lower, "pvc"):
		result.Specs["insulation"] = domain.StringSpec("PVC")
		result.Tags = append(result.Tags, "pvc")
	case strings.Contains(lower, "silicone"):
		result.Specs["insulation"] = domain.StringSpec("silicone")
		result.Tags = append(result.Tags, "silicone")
	}

	return result
}

// parseTool recognizes drill and wrench sizes
func parseTool(text string) domain.ParsedSpec {
	result := domain.NewParsedSpec(domain.CategoryTool)

	if m := drillSizePattern.FindStringSubmatch(text); m != nil {
		result.Specs["drill_size"] = domain.StringSpec(m[1])
		result.Tags = append(result.Tags, m[1]+"-drill")
		result.Confidence = 0.8
	}

	if m := wrenchSizePattern.FindStringSubmatch(text); m != nil {
		result.Specs["wrench_size"] = domain.StringSpec(m[1])
		result.Tags = append(result.Tags, m[1]+"-wrench")
		result.Confidence = 0.8
	}

	return result
}

// parseChemical recognizes formula-like words and concentrations
func parseChemical(text string) domain.ParsedSpec {
	result := domain.NewParsedSpec(domain.CategoryChemical)

	if formula, ok := firstWholeWord(text, chemicalFormulaPattern); ok {
		result.Specs["formula"] = domain.StringSpec(formula)
		result.Tags = append(result.Tags, formula)
		result.Confidence = 0.7
	}

	if m := concentrationPattern.FindStringSubmatch(text); m != nil {
		value, err := parseDecimal(m[1])
		if err != nil {
			return empty()
		}
		result.Specs["concentration"] = domain.FloatSpec(value)
		result.Specs["concentration_unit"] = domain.StringSpec(m[2])
		result.Tags = append(result.Tags, domain.FormatDecimal(value)+m[2])
		result.Confidence = 0.8
	}

	return result
}

// parseDimensions recognizes LxW[xH] measurements. It never assigns a category.
func parseDimensions(text string) domain.ParsedSpec {
	m := dimensionsPattern.FindStringSubmatch(text)
	if m == nil {
		return empty()
	}

	length, errL := parseDecimal(m[1])
	width, errW := parseDecimal(m[2])
	if errL != nil || errW != nil {
		return empty()
	}
	var height float64
	if m[3] != "" {
		h, err := parseDecimal(m[3])
		if err != nil {
			return empty()
		}
		height = h
	}
	unit := "mm"
	if m[4] != "" {
		unit = strings.ToLower(m[4])
	}

	result := empty()
	result.Specs["length"] = domain.FloatSpec(length)
	result.Specs["width"] = domain.FloatSpec(width)
	label := domain.FormatDecimal(length) + "x" + domain.FormatDecimal(width)
	// a zero height is treated as absent
	if height != 0 {
		result.Specs["height"] = domain.FloatSpec(height)
		label += "x" + domain.FormatDecimal(height)
	}
	result.Tags = append(result.Tags, label+unit)
	result.Specs["unit"] = domain.StringSpec(unit)
	result.Confidence = 0.6
	return result
}

type measurement struct {
	key   string
	value float64
}

// extractMeasurements finds a bare metric length and weight, in that order
func extractMeasurements(text string) []measurement {
	var out []measurement
	if m := metricLengthPattern.FindStringSubmatch(text); m != nil {
		if v, err := parseDecimal(m[1]); err == nil {
			out = append(out, measurement{key: "length_" + strings.ToLower(m[2]), value: v})
		}
	}
	if m := metricWeightPattern.FindStringSubmatch(text); m != nil {
		if v, err := parseDecimal(m[1]); err == nil {
			out = append(out, measurement{key: "weight_" + strings.ToLower(m[2]), value: v})
		}
	}
	return out
}

// extractMaterials returns every material keyword present in the text
func extractMaterials(text string) []string {
	lower := lowerText(text)
	var found []string
	for _, material := range materials {
		if strings.Contains(lower, material) {
			found = append(found, material)
		}
	}
	return found
}

// calculateConfidence re-scores a result using category keywords and the
// number of extracted specs. Results without a category score 0.
func calculateConfidence(result domain.ParsedSpec, text string) float64 {
	if !result.HasCategory() {
		return 0.0
	}

	confidence := result.Confidence
	lower := lowerText(text)
	for _, keyword := range categoryKeywords[result.Category] {
		if strings.Contains(lower, keyword) {
			confidence = boost(confidence, keywordBoost)
			break
		}
	}

	switch n := len(result.Specs); {
	case n > 3:
		confidence = boost(confidence, manySpecsBoost)
	case n > 1:
		confidence = boost(confidence, someSpecsBoost)
	}

	return confidence
}

// standardizeUnits converts the first length key found to length_mm and the
// first weight key found to weight_g, keeping the source value under
// "<key>_original".
func standardizeUnits(result *domain.ParsedSpec) {
	if len(result.Specs) == 0 {
		return
	}
	standardizeFamily(result.Specs, lengthUnitKeys)
	standardizeFamily(result.Specs, weightUnitKeys)
}

func standardizeFamily(specs map[string]domain.SpecValue, family []unitKey) {
	canonical := family[0].key
	for _, unit := range family {
		value, ok := specs[unit.key]
		if !ok {
			continue
		}
		if unit.key != canonical {
			specs[canonical] = domain.FloatSpec(value.Number() * unit.factor)
		}
		specs[unit.key+"_original"] = value
		return
	}
}
