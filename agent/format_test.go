package agent

import (
	"errors"
	"strings"
	"testing"

	"propscout/models"
)

func TestFormatPropertiesNilResponse(t *testing.T) {
	out, err := FormatProperties(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != NoDataMessage {
		t.Fatalf("expected sentinel, got %q", out)
	}
}

func TestFormatPropertiesMissingKey(t *testing.T) {
	resp := &models.ExtractionResponse{
		Success: true,
		Data:    map[string]interface{}{"listings": []interface{}{}},
		Status:  "completed",
	}

	out, err := FormatProperties(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != NoDataMessage {
		t.Fatalf("expected sentinel, got %q", out)
	}
}

func TestFormatPropertiesEmptyData(t *testing.T) {
	resp := &models.ExtractionResponse{Success: true, Data: map[string]interface{}{}}

	out, err := FormatProperties(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != NoDataMessage {
		t.Fatalf("expected sentinel, got %q", out)
	}
}

func record(name, ptype, addr, price, desc string) map[string]interface{} {
	return map[string]interface{}{
		"building_name":    name,
		"property_type":    ptype,
		"location_address": addr,
		"price":            price,
		"description":      desc,
	}
}

func TestFormatPropertiesSingleRecord(t *testing.T) {
	resp := &models.ExtractionResponse{
		Success: true,
		Data: map[string]interface{}{
			"properties": []interface{}{
				record("Skyline Towers", "Flat", "Bandra West", "2.1 Cr", "2BHK sea view"),
			},
		},
		Status: "completed",
	}

	out, err := FormatProperties(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Skyline Towers", "Flat", "Bandra West", "2.1 Cr", "2BHK sea view"} {
		if !strings.Contains(out, want) {
			t.Fatalf("digest missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "---\n") {
		t.Fatalf("expected trailing separator:\n%s", out)
	}
	if got := strings.Count(out, "### "); got != 1 {
		t.Fatalf("expected 1 section header, got %d", got)
	}
}

func TestFormatPropertiesPreservesOrder(t *testing.T) {
	resp := &models.ExtractionResponse{
		Success: true,
		Data: map[string]interface{}{
			"properties": []interface{}{
				record("Alpha Residency", "Flat", "Andheri", "1.2 Cr", "first"),
				record("Beta Heights", "Flat", "Powai", "1.5 Cr", "second"),
				record("Gamma Villa", "Individual House", "Juhu", "4.0 Cr", "third"),
			},
		},
	}

	out, err := FormatProperties(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := strings.Count(out, "### "); got != 3 {
		t.Fatalf("expected 3 section headers, got %d", got)
	}

	alpha := strings.Index(out, "Alpha Residency")
	beta := strings.Index(out, "Beta Heights")
	gamma := strings.Index(out, "Gamma Villa")
	if alpha < 0 || beta < 0 || gamma < 0 {
		t.Fatalf("missing record names:\n%s", out)
	}
	if !(alpha < beta && beta < gamma) {
		t.Fatalf("records out of order: %d %d %d", alpha, beta, gamma)
	}
}

func TestFormatPropertiesAliasKeys(t *testing.T) {
	// Provider responses have historically used alias casing for some
	// fields; both spellings must decode.
	resp := &models.ExtractionResponse{
		Success: true,
		Data: map[string]interface{}{
			"properties": []interface{}{
				map[string]interface{}{
					"Building_name":    "Delta Court",
					"Property_type":    "Flat",
					"location_address": "Worli",
					"Price":            "3.2 Cr",
					"Description":      "3BHK",
				},
			},
		},
	}

	out, err := FormatProperties(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Delta Court") || !strings.Contains(out, "3.2 Cr") {
		t.Fatalf("alias-cased record not rendered:\n%s", out)
	}
}

func TestFormatPropertiesMalformedRecord(t *testing.T) {
	resp := &models.ExtractionResponse{
		Success: true,
		Data: map[string]interface{}{
			"properties": []interface{}{
				record("Alpha Residency", "Flat", "Andheri", "1.2 Cr", "ok"),
				map[string]interface{}{
					"building_name": "Broken Block",
					"property_type": "Flat",
					// location_address, price, description missing
				},
			},
		},
	}

	_, err := FormatProperties(resp)
	if err == nil {
		t.Fatal("expected error for malformed record")
	}

	var malformed *MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedRecordError, got %T: %v", err, err)
	}
	if malformed.Index != 1 {
		t.Fatalf("expected record index 1, got %d", malformed.Index)
	}
	if malformed.Field != "location_address" {
		t.Fatalf("expected missing location_address, got %q", malformed.Field)
	}
}
