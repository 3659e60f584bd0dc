package report

import "smartinfo/internal/smart"

// deviceDocument is the JSON shape of one device query. Field order is the
// output order; empty fields are omitted.
type deviceDocument struct {
	Model      string                    `json:"model,omitempty"`
	Serial     string                    `json:"serial,omitempty"`
	Firmware   string                    `json:"firmware,omitempty"`
	Health     string                    `json:"health,omitempty"`
	Attributes []ataDocument             `json:"attributes,omitempty"`
	NVMeHealth map[string]healthDocument `json:"nvme_health,omitempty"`
	Raw        *string                   `json:"raw,omitempty"`
}

type healthDocument struct {
	Raw   string `json:"raw"`
	Value *int64 `json:"value,omitempty"`
	Unit  string `json:"unit,omitempty"`
}

type ataDocument struct {
	ID         *int64 `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	Value      string `json:"value,omitempty"`
	Worst      string `json:"worst,omitempty"`
	Thresh     string `json:"thresh,omitempty"`
	Type       string `json:"type,omitempty"`
	Updated    string `json:"updated,omitempty"`
	WhenFailed string `json:"when_failed,omitempty"`
	Raw        string `json:"raw"`
}

func newDeviceDocument(res smart.Result) deviceDocument {
	doc := deviceDocument{
		Model:    res.Identity.Model,
		Serial:   res.Identity.Serial,
		Firmware: res.Identity.Firmware,
		Health:   res.Identity.Health,
	}

	for _, a := range res.ATA {
		doc.Attributes = append(doc.Attributes, ataDocument{
			ID:         a.ID,
			Name:       a.Name,
			Value:      a.Value,
			Worst:      a.Worst,
			Thresh:     a.Thresh,
			Type:       a.Type,
			Updated:    a.Updated,
			WhenFailed: a.WhenFailed,
			Raw:        a.Raw,
		})
	}

	// encoding/json writes map keys sorted, matching the table's key order.
	if res.Health.Len() > 0 {
		doc.NVMeHealth = make(map[string]healthDocument, res.Health.Len())
		for _, a := range res.Health.Attributes() {
			doc.NVMeHealth[a.Key] = healthDocument{Raw: a.Raw, Value: a.Value, Unit: a.Unit}
		}
	}

	if res.IncludeRaw {
		raw := res.Report
		doc.Raw = &raw
	}
	return doc
}
