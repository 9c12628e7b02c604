package search

// MatchSpan is one segment of a highlighted string. Concatenating the Text of
// all spans returned by Segment reproduces the input.
type MatchSpan struct {
	Text    string
	IsMatch bool
}

// Result is one model hit of FindModels.
type Result struct {
	Repo  string
	Model string
	Why   string
}
