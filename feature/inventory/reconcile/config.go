package reconcile

// Aliases maps raw detector class tokens to canonical inventory item names.
// Classes absent from the table pass through verbatim as their own
// canonical name, so the inventory self-extends when the detector learns
// new vocabulary.
type Aliases map[string]string

// DefaultAliases covers the detector's trained classes.
var DefaultAliases = Aliases{
	"FireExtinguisher": "Fire Extinguisher",
	"ToolBox":          "Toolbox",
	"OxygenTank":       "Oxygen Tank",
}

// Canonical resolves a raw class name to its canonical item name.
func (a Aliases) Canonical(className string) string {
	if name, ok := a[className]; ok {
		return name
	}
	return className
}
