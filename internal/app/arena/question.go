package arena

// Question is one entry in the duel question set. The set is fixed at process
// start and lives in memory; it is independent of the question bank served by
// the REST API.
type Question struct {
	// Text is the question prompt shown to both participants.
	Text string

	// Options is the ordered list of answer choices.
	Options []string

	// Answer is the correct option, compared by exact string match. It is
	// never sent to clients.
	Answer string
}

// DefaultQuestions is the built-in duel question set.
var DefaultQuestions = []Question{
	{
		Text:    "What is the capital of France?",
		Options: []string{"Paris", "London", "Berlin", "Madrid"},
		Answer:  "Paris",
	},
	{
		Text:    "2 + 2 = ?",
		Options: []string{"3", "4", "5", "6"},
		Answer:  "4",
	},
	{
		Text:    "Who wrote Hamlet?",
		Options: []string{"Shakespeare", "Hemingway", "Dickens", "Tolstoy"},
		Answer:  "Shakespeare",
	},
}
