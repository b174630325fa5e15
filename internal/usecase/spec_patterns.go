package usecase

import "github.com/labstock/inventory/internal/domain"

// Compiled patterns for specification extraction. mustCompilePattern widens
// \s and \d to their Unicode classes.
var (
	// M6, M8x50
	metricFastenerPattern = mustCompilePattern(`(?i)M(\d+)(?:\s*[xX×]\s*(\d+(?:\.\d+)?))?`)
	// #8, #8 x 3/4
	imperialFastenerPattern = mustCompilePattern(`(?i)#(\d+)(?:\s*[xX×]\s*([0-9/]+))?`)
	// 3/4 inch, 1/2"
	fractionInchPattern = mustCompilePattern(`(?i)(\d+/\d+)\s*(?:inch|in|")`)

	// 10kΩ, 4.7M ohm
	resistorPattern = mustCompilePattern(`(?i)(\d+\.?\d*)\s*([kKmMgG]?)(?:Ω|ohm|ohms)`)
	wattagePattern  = mustCompilePattern(`(?i)(1/4|1/2|1|2|5)\s*W`)

	// 10μF, 100nF
	capacitorPattern        = mustCompilePattern(`(?i)(\d+\.?\d*)\s*([μunp]?)(?:F|farad)`)
	capacitorVoltagePattern = mustCompilePattern(`(?i)(\d+)\s*V`)

	// 10μH, 1mH
	inductorPattern = mustCompilePattern(`(?i)(\d+\.?\d*)\s*([μumH]?)(?:H|henry)`)

	ratedVoltagePattern   = mustCompilePattern(`(?i)(\d+(?:\.\d+)?)\s*V`)
	ratedCurrentPattern   = mustCompilePattern(`(?i)(\d+(?:\.\d+)?)\s*A`)
	diodeCurrentPattern   = mustCompilePattern(`(?i)(\d+(?:\.\d+)?)\s*(?:A|mA)`)
	voltageCurrentPattern = mustCompilePattern(`(?i)(\d+(?:\.\d+)?)\s*V\s*(?:/\s*)?(\d+(?:\.\d+)?)\s*A`)

	// 18 AWG, 22 gauge
	wireGaugePattern = mustCompilePattern(`(?i)(\d+)\s*(?:AWG|gauge)`)
	// 2mm², 1/2 mm2
	wireSizePattern = mustCompilePattern(`(?i)(\d+(?:/\d+)?)\s*(?:mm²|mm2)`)

	drillSizePattern  = mustCompilePattern(`(?i)(\d+(?:/\d+)?)\s*(?:inch|in|")\s*drill`)
	wrenchSizePattern = mustCompilePattern(`(?i)(\d+(?:/\d+)?)\s*(?:inch|in|")\s*wrench`)

	// H2O, NaCl, C6H12O6 - matched against whole words only
	chemicalFormulaPattern = mustCompilePattern(`^[A-Z][a-z]?\d*(?:[A-Z][a-z]?\d*)*$`)
	// 10%, 0.1M, 5N
	concentrationPattern = mustCompilePattern(`(?i)(\d+(?:\.\d+)?)\s*(%|M|mol/L|molar|N|normal)`)

	metricLengthPattern = mustCompilePattern(`(?i)(\d+\.?\d*)\s*(mm|cm|m)(?:\s|$)`)
	metricWeightPattern = mustCompilePattern(`(?i)(\d+\.?\d*)\s*(g|kg)(?:\s|$)`)

	// 10x20, 10 x 20 x 5 mm
	dimensionsPattern = mustCompilePattern(`(?i)(\d+\.?\d*)\s*[xX×]\s*(\d+\.?\d*)(?:\s*[xX×]\s*(\d+\.?\d*))?(?:\s*(mm|cm|in))?`)
)

var (
	icPackagePattern = newBoundedPattern(`(?i)`,
		"0805", "0603", "0402", "1206", "1210", "SOT-23", "SOT-89", "TO-220", "TO-92",
		"DIP-8", "DIP-14", "DIP-16", "QFN", "QFP", "BGA",
	)
	diodePackagePattern = newBoundedPattern(`(?i)`,
		"DO-?214", "DO-?41", "SOD-?123", "SOD-?323", "TO-?220", "TO-?92",
	)
	transistorPackagePattern = newBoundedPattern(`(?i)`,
		"TO-?18", "TO-?39", "TO-?92", "TO-?220", "TO-?247", "SOT-?23", "SOT-?89",
	)
)

// headTypes are checked in order; the first one found wins
var headTypes = []string{
	"pan head", "flat head", "round head", "hex head", "button head",
	"socket head", "cap head", "countersunk", "Phillips", "flathead",
	"hex bolt", "carriage bolt", "machine screw",
}

// materials are appended to tags in this order whenever they appear
var materials = []string{
	"steel", "stainless", "brass", "aluminum", "plastic", "nylon",
	"titanium", "copper", "zinc", "galvanized", "chrome", "bronze",
	"cast iron", "mild steel", "carbon steel", "alloy steel", "tool steel",
	"silicon", "germanium", "gallium", "arsenic", "phosphorus",
	"epoxy", "phenolic", "fiberglass", "ceramic", "porcelain",
	"rubber", "neoprene", "silicone", "teflon", "kevlar",
	"wood", "oak", "pine", "maple", "birch", "cherry", "walnut",
}

// categoryKeywords boost confidence when any of them appears in the text
var categoryKeywords = map[string][]string{
	domain.CategoryFastener:    {"screw", "bolt", "nut", "washer", "thread"},
	domain.CategoryResistor:    {"resistor", "resistance", "ohm"},
	domain.CategoryCapacitor:   {"capacitor", "capacitance", "farad"},
	domain.CategoryInductor:    {"inductor", "coil", "henry"},
	domain.CategoryDiode:       {"diode", "rectifier", "zener", "schottky"},
	domain.CategoryTransistor:  {"transistor", "mosfet", "fet", "bjt"},
	domain.CategoryPowerSupply: {"power", "supply", "voltage", "current", "watt"},
	domain.CategoryWireCable:   {"wire", "cable", "gauge", "awg", "conductor"},
	domain.CategoryTool:        {"drill", "wrench", "screwdriver", "plier"},
	domain.CategoryChemical:    {"acid", "solution", "concentration", "formula"},
}

// Multiplier tables keyed by the lower-cased prefix. The resistor table maps
// "m" to mega, so "4.7mΩ" reads as 4.7 MΩ; the inductor table maps it to milli.
var (
	resistorMultipliers = map[string]float64{
		"k": 1e3,
		"m": 1e6,
		"g": 1e9,
		"μ": 1e-6,
		"u": 1e-6,
	}
	capacitorMultipliers = map[string]float64{
		"μ": 1e-6,
		"u": 1e-6,
		"n": 1e-9,
		"p": 1e-12,
	}
	inductorMultipliers = map[string]float64{
		"m": 1e-3,
		"μ": 1e-6,
		"u": 1e-6,
		"n": 1e-9,
		"p": 1e-12,
	}
)

// unitFamilies lists the keys standardized to a canonical unit, in priority order
var (
	lengthUnitKeys = []unitKey{
		{key: "length_mm", factor: 1},
		{key: "length_cm", factor: 10},
		{key: "length_in", factor: 25.4},
	}
	weightUnitKeys = []unitKey{
		{key: "weight_g", factor: 1},
		{key: "weight_kg", factor: 1000},
		{key: "weight_oz", factor: 28.3495},
		{key: "weight_lb", factor: 453.592},
	}
)

type unitKey struct {
	key    string
	factor float64
}
