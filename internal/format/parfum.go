package format

var parfumTypeLabels = map[string]string{
	"eau_de_parfum":     "Eau de Parfum",
	"eau_de_toilette":   "Eau de Toilette",
	"extrait_de_parfum": "Extrait de Parfum",
	"eau_de_cologne":    "Eau de Cologne",
}

// ParfumTypeLabel maps a fragrance type code to its label. Unknown codes
// are returned unchanged.
func ParfumTypeLabel(code string) string {
	if label, ok := parfumTypeLabels[code]; ok {
		return label
	}
	return code
}
