package domain

// SearchOutcome is the result of one resolver invocation.
//
// Converted is set when the results came from a script-converted rerun,
// SearchedSimplified when they came from the simplified-name table.
// ConvertedText records the converted query whenever a conversion was
// attempted, so an exhausted search still reports what was tried.
type SearchOutcome struct {
	Results            []Item `json:"results"`
	Converted          bool   `json:"converted"`
	OriginalText       string `json:"original_text"`
	ConvertedText      string `json:"converted_text,omitempty"`
	SearchedSimplified bool   `json:"searched_simplified"`
}
