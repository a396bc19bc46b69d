package agent

import (
	"fmt"
	"strings"

	"propscout/models"
)

// NoDataMessage is the sentinel returned when the provider answered but
// yielded no usable property payload. It is informational, not an error.
const NoDataMessage = "No property data could be extracted. Try with a different city or parameters."

// TrendsPlaceholder is what GetLocationTrends returns while the trend
// formatter remains unimplemented.
const TrendsPlaceholder = "Sample location trend analysis (mocked for now)."

// recordFields maps each canonical record key to the alias casing some
// provider responses use for it.
var recordFields = []struct {
	key   string
	alias string
}{
	{"building_name", "Building_name"},
	{"property_type", "Property_type"},
	{"location_address", "Location_address"},
	{"price", "Price"},
	{"description", "Description"},
}

// MalformedRecordError reports a provider record missing a required
// field under both accepted key casings. This is bad input from the
// provider, not a local defect.
type MalformedRecordError struct {
	Index int
	Field string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("property record %d: missing field %q", e.Index, e.Field)
}

// FormatProperties renders the extraction response into the user-facing
// digest: one fixed-order section per record, in provider order, each
// closed with a horizontal rule. A nil response or a payload without the
// "properties" key recovers to the no-data sentinel.
func FormatProperties(resp *models.ExtractionResponse) (string, error) {
	if resp == nil {
		return NoDataMessage, nil
	}

	raw, ok := resp.Data["properties"]
	if !ok {
		return NoDataMessage, nil
	}

	items, ok := raw.([]interface{})
	if !ok {
		return NoDataMessage, nil
	}

	var b strings.Builder
	for i, item := range items {
		record, err := decodeRecord(i, item)
		if err != nil {
			return "", err
		}
		writeRecord(&b, record)
	}

	return b.String(), nil
}

func decodeRecord(index int, item interface{}) (models.PropertyRecord, error) {
	var record models.PropertyRecord

	m, ok := item.(map[string]interface{})
	if !ok {
		return record, &MalformedRecordError{Index: index, Field: "building_name"}
	}

	values := make(map[string]string, len(recordFields))
	for _, f := range recordFields {
		val, ok := stringField(m, f.key, f.alias)
		if !ok {
			return record, &MalformedRecordError{Index: index, Field: f.key}
		}
		values[f.key] = val
	}

	record.BuildingName = values["building_name"]
	record.PropertyType = values["property_type"]
	record.LocationAddress = values["location_address"]
	record.Price = values["price"]
	record.Description = values["description"]
	return record, nil
}

// stringField reads a string value under the canonical key, falling back
// to the alias casing.
func stringField(m map[string]interface{}, key, alias string) (string, bool) {
	if v, ok := m[key].(string); ok {
		return v, true
	}
	if v, ok := m[alias].(string); ok {
		return v, true
	}
	return "", false
}

func writeRecord(b *strings.Builder, r models.PropertyRecord) {
	fmt.Fprintf(b, "### %s\n", r.BuildingName)
	fmt.Fprintf(b, "- Location: %s\n", r.LocationAddress)
	fmt.Fprintf(b, "- Type: %s\n", r.PropertyType)
	fmt.Fprintf(b, "- Price: %s\n", r.Price)
	fmt.Fprintf(b, "- Description: %s\n", r.Description)
	b.WriteString("\n---\n")
}
