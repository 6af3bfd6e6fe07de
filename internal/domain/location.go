package domain

// State is a top-level administrative region referenced by listings.
type State struct {
	ID   int
	Name string
}

// Municipality is a locality within a state.
type Municipality struct {
	ID      int
	StateID int
	Name    string
}
