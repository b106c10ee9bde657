package units

// Factors are expressed in the kind's base unit: meter, liter, kilogram.
var (
	lengthUnits = []Unit{
		{Key: "giga", Label: "Gm", Factor: 1e9},
		{Key: "mega", Label: "Mm", Factor: 1e6},
		{Key: "kilo", Label: "km", Factor: 1e3},
		{Key: "hekto", Label: "hm", Factor: 1e2},
		{Key: "deko", Label: "dam", Factor: 1e1},
		{Key: "meter", Label: "m", Factor: 1},
		{Key: "dezi", Label: "dm", Factor: 1e-1},
		{Key: "zenti", Label: "cm", Factor: 1e-2},
		{Key: "milli", Label: "mm", Factor: 1e-3},
		{Key: "mikro", Label: "µm", Factor: 1e-6},
		{Key: "nano", Label: "nm", Factor: 1e-9},
	}

	// dm3 and l are the same volume and both carry the base factor.
	volumeUnits = []Unit{
		{Key: "m3", Label: "m³", Factor: 1000},
		{Key: "dm3", Label: "dm³", Factor: 1},
		{Key: "l", Label: "l", Factor: 1},
		{Key: "cm3", Label: "cm³", Factor: 0.001},
		{Key: "ml", Label: "ml", Factor: 0.001},
		{Key: "hl", Label: "hl", Factor: 100},
		{Key: "cl", Label: "cl", Factor: 0.01},
	}

	weightUnits = []Unit{
		{Key: "tonne", Label: "t", Factor: 1000},
		{Key: "kg", Label: "kg", Factor: 1},
		{Key: "mg", Label: "mg", Factor: 1e-6},
	}
)

var defaults = map[Kind]Defaults{
	Length: {From: "meter", To: "zenti"},
	Volume: {From: "m3", To: "l"},
	Weight: {From: "kg", To: "mg"},
}

var (
	tables = map[Kind][]Unit{
		Length: lengthUnits,
		Volume: volumeUnits,
		Weight: weightUnits,
	}

	index = buildIndex(tables)
)

func buildIndex(t map[Kind][]Unit) map[Kind]map[string]Unit {
	idx := make(map[Kind]map[string]Unit, len(t))
	for kind, list := range t {
		byKey := make(map[string]Unit, len(list))
		for _, u := range list {
			byKey[u.Key] = u
		}
		idx[kind] = byKey
	}
	return idx
}
