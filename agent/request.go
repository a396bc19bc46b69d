package agent

import (
	"fmt"
	"strings"

	"propscout/models"
	"propscout/schema"
)

// CityToken derives the canonical location token used in source URLs:
// lowercase, nothing else. Whitespace and URL-unsafe characters pass
// through untouched and reach the provider as-is.
func CityToken(city string) string {
	return strings.ToLower(city)
}

func expandTemplate(template, token string) string {
	return strings.ReplaceAll(template, "{city}", token)
}

// buildPropertyRequest turns a search query into an extraction request:
// one URL per configured listing source, scoped to the city token, plus
// the instruction steering the provider. The max-price constraint is
// advisory text for the provider, never enforced locally.
func (a *Agent) buildPropertyRequest(query models.SearchQuery) models.ExtractionRequest {
	token := CityToken(query.City)

	urls := make([]string, 0, len(a.cfg.Sources.PropertyTemplates))
	for _, tmpl := range a.cfg.Sources.PropertyTemplates {
		urls = append(urls, expandTemplate(tmpl, token))
	}

	prompt := fmt.Sprintf(
		"Extract property listings for %s where property type is %s and category is %s. "+
			"Only include properties under %v Crores. "+
			"Each property must include name, address, price, description, and type.",
		query.City, query.Type, query.Category, query.MaxPrice,
	)

	return models.ExtractionRequest{
		URLs:   urls,
		Prompt: prompt,
		Schema: schema.PropertyCollection(),
	}
}
