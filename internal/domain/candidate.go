package domain

// Candidate is one geocoding match offered to the user when a place query is
// ambiguous. Class and Type carry the geocoder's classification (e.g.
// "boundary"/"administrative") so the chooser can tell two same-named places
// apart.
type Candidate struct {
	DisplayName string      `json:"display_name"`
	Coordinates Coordinates `json:"coordinates"`
	Class       string      `json:"class,omitempty"`
	Type        string      `json:"type,omitempty"`
}

// CandidateSet is the transient state of one suspended add: the query
// exactly as typed plus the matches to choose from. It lives only in memory;
// cancelling discards it without a trace in the list or the store.
type CandidateSet struct {
	Query      string      `json:"query"`
	Candidates []Candidate `json:"candidates"`
}
