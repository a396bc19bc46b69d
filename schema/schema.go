// Package schema declares the JSON-Schema descriptors sent to the
// extraction provider. The per-field descriptions steer the extraction;
// the descriptors are handed to the client verbatim.
package schema

// field builds one string-typed property entry.
func field(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

// PropertyCollection describes the expected shape of a property-search
// payload: an object with a "properties" array of listing records.
func PropertyCollection() map[string]interface{} {
	record := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"building_name":    field("string", "Name of the building/property"),
			"property_type":    field("string", "Type of property (commercial, residential, etc)"),
			"location_address": field("string", "Complete address of the property"),
			"price":            field("string", "Price of the property"),
			"description":      field("string", "Detailed description of the property"),
		},
		"required": []string{
			"building_name", "property_type", "location_address", "price", "description",
		},
	}

	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"properties": map[string]interface{}{
				"type":        "array",
				"description": "List of property details",
				"items":       record,
			},
		},
		"required": []string{"properties"},
	}
}

// LocationCollection describes the locality price-trend payload: an
// object with a "locations" array of trend points.
func LocationCollection() map[string]interface{} {
	point := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"location":         field("string", "Name of the locality"),
			"price_per_sqft":   field("number", "Current price per square foot"),
			"percent_increase": field("number", "Percentage price change"),
			"rental_yield":     field("number", "Rental yield percentage"),
		},
		"required": []string{"location", "price_per_sqft", "percent_increase", "rental_yield"},
	}

	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"locations": map[string]interface{}{
				"type":        "array",
				"description": "List of location data points",
				"items":       point,
			},
		},
		"required": []string{"locations"},
	}
}
