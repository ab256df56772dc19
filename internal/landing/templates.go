package landing

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/wolfman30/cosmo-wb-landing/internal/content"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// loadTemplates parses the page layout and the landing body together.
func loadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"buttonClass": buttonClass,
		"toneClass":   toneClass,
	}
	tmpl, err := template.New("base.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/base.tmpl", "templates/landing.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse landing templates: %w", err)
	}
	return tmpl, nil
}

func buttonClass(v content.ButtonVariant) string {
	switch v {
	case content.VariantBlack:
		return "btn btn-black"
	case content.VariantGreen:
		return "btn btn-green"
	case content.VariantWhite:
		return "btn btn-white"
	default:
		return "btn btn-gradient"
	}
}

func toneClass(tone string) string {
	switch tone {
	case "red", "emerald", "neutral":
		return "tone-" + tone
	default:
		return "tone-neutral"
	}
}
