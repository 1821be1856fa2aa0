package batch

// Categorías de frescura de un lote.
const (
	CategoryFresh  = "fresh"
	CategoryMedium = "medium"
	CategoryOld    = "old"
)

// AgePolicy define los umbrales de frescura en días. Con los valores por
// defecto un lote es fresco de 0 a 2 días, medio de 3 a 7 y viejo de 8 en
// adelante; los límites 2/3 y 7/8 están pactados con producción.
type AgePolicy struct {
	FreshMaxDays  int
	MediumMaxDays int
}

// DefaultAgePolicy devuelve los umbrales estándar de la panadería.
func DefaultAgePolicy() AgePolicy {
	return AgePolicy{FreshMaxDays: 2, MediumMaxDays: 7}
}

// Categorize clasifica una edad en días según la política.
func (p AgePolicy) Categorize(ageDays int) string {
	switch {
	case ageDays <= p.FreshMaxDays:
		return CategoryFresh
	case ageDays <= p.MediumMaxDays:
		return CategoryMedium
	default:
		return CategoryOld
	}
}

// SuggestedAction traduce la categoría a la acción que el panadero ve en la
// revisión de fin de día.
func (p AgePolicy) SuggestedAction(ageDays int) string {
	switch p.Categorize(ageDays) {
	case CategoryFresh:
		return ActionKeep
	case CategoryMedium:
		return ActionMarkdown
	default:
		return ActionReturn
	}
}

// Acciones sugeridas en la revisión de fin de día.
const (
	ActionKeep     = "keep"     // sigue en vitrina
	ActionMarkdown = "markdown" // rebajar precio
	ActionReturn   = "return"   // devolver / dar de baja
)

// CategoryColors es la paleta con la que el front pinta cada categoría.
type CategoryColors struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Border     string `json:"border"`
	Badge      string `json:"badge"`
}

var categoryPalette = map[string]CategoryColors{
	CategoryFresh:  {Background: "#e8f5e9", Text: "#1b5e20", Border: "#a5d6a7", Badge: "#2e7d32"},
	CategoryMedium: {Background: "#fff8e1", Text: "#e65100", Border: "#ffe082", Badge: "#ef6c00"},
	CategoryOld:    {Background: "#ffebee", Text: "#b71c1c", Border: "#ef9a9a", Badge: "#c62828"},
}

// Colors devuelve la paleta de una categoría. Una categoría desconocida usa
// la paleta de "old" para que un estado raro nunca pase desapercibido.
func Colors(category string) CategoryColors {
	if c, ok := categoryPalette[category]; ok {
		return c
	}
	return categoryPalette[CategoryOld]
}
