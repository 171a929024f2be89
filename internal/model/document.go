package model

// Document is a caller-supplied internal document handle. Only the name is
// required; content is optional and unused by the current knowledge agent.
type Document struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
}

// DocumentNames returns the names of docs in input order.
func DocumentNames(docs []Document) []string {
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	return names
}
