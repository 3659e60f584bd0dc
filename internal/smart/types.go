package smart

import "sort"

// Identity holds the descriptive fields found at the top of a smartctl report.
// An empty string means the field was not present.
type Identity struct {
	Model    string
	Serial   string
	Firmware string
	Health   string // overall self-assessment result, e.g. PASSED
}

// Attribute is a single line of the SMART/Health Information section.
type Attribute struct {
	Key   string
	Raw   string
	Value *int64 // nil when the value has no leading integer
	Unit  string // empty when no unit was found
}

// AttributeTable stores attributes by key. A later Set for the same key
// replaces the earlier record.
type AttributeTable struct {
	byKey map[string]Attribute
}

// NewAttributeTable returns an empty table.
func NewAttributeTable() *AttributeTable {
	return &AttributeTable{byKey: make(map[string]Attribute)}
}

// Set inserts or overwrites the attribute under its key.
func (t *AttributeTable) Set(a Attribute) {
	if t.byKey == nil {
		t.byKey = make(map[string]Attribute)
	}
	t.byKey[a.Key] = a
}

// Get returns the attribute stored under key.
func (t *AttributeTable) Get(key string) (Attribute, bool) {
	if t == nil {
		return Attribute{}, false
	}
	a, ok := t.byKey[key]
	return a, ok
}

// Len returns the number of distinct keys.
func (t *AttributeTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byKey)
}

// Keys returns the keys in ascending order.
func (t *AttributeTable) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.byKey))
	for k := range t.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Attributes returns the records in ascending key order.
func (t *AttributeTable) Attributes() []Attribute {
	keys := t.Keys()
	out := make([]Attribute, 0, len(keys))
	for _, k := range keys {
		out = append(out, t.byKey[k])
	}
	return out
}

// ATAAttribute is one row of the classic ATA "ID# ATTRIBUTE_NAME" table.
// Rows that do not have the full ten columns only carry Raw.
type ATAAttribute struct {
	ID         *int64
	Name       string
	Value      string
	Worst      string
	Thresh     string
	Type       string
	Updated    string
	WhenFailed string
	Raw        string
}

// Result is everything parsed out of one device query.
type Result struct {
	Device     string
	Identity   Identity
	Health     *AttributeTable
	ATA        []ATAAttribute
	Report     string // untouched smartctl output
	IncludeRaw bool
}
