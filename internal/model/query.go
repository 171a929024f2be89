package model

// StructuredQuery is the fixed-shape representation of a user's free-text
// question. Absent attributes are empty strings, never omitted, so every
// downstream consumer can assume all three fields are present.
type StructuredQuery struct {
	Disease  string `json:"disease"`
	Country  string `json:"country"`
	Molecule string `json:"molecule"`
}

// IsEmpty reports whether no attribute was extracted from the query.
func (q StructuredQuery) IsEmpty() bool {
	return q.Disease == "" && q.Country == "" && q.Molecule == ""
}
