package domain

// GenericMedicine replaces a missing composition before vectorization
const GenericMedicine = "Generic Medicine"

// PriceUnavailable is reported when a record carries no price
const PriceUnavailable = "N/A"

// Medicine is one dataset row
type Medicine struct {
	Name        string
	Composition string
	Price       *string
}

// DisplayPrice returns the record price, or PriceUnavailable when absent
func (m Medicine) DisplayPrice() string {
	if m.Price == nil || *m.Price == "" {
		return PriceUnavailable
	}
	return *m.Price
}

// Corpus is the ordered set of records loaded at startup.
// Record positions are stable for the lifetime of the process.
type Corpus struct {
	Records           []Medicine
	NameColumn        string
	CompositionColumn string
}

// Len returns the number of records
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Records)
}

// IsEmpty reports whether the corpus holds no records
func (c *Corpus) IsEmpty() bool {
	return c.Len() == 0
}

// EmptyCorpus returns a corpus with no records and the default column names
func EmptyCorpus() *Corpus {
	return &Corpus{
		Records:           []Medicine{},
		NameColumn:        "Name",
		CompositionColumn: "Composition",
	}
}
