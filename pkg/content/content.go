package content

// Quote is the quote of the day.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// TriviaQuestion is a multiple-choice question. Options already contain
// CorrectAnswer in shuffled order.
type TriviaQuestion struct {
	Number        int      `json:"number"`
	Question      string   `json:"question"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// NewsItem is one AI news summary.
type NewsItem struct {
	Headline     string `json:"headline"`
	Summary      string `json:"summary"`
	WhyItMatters string `json:"why_it_matters"`
}

// NewsCount is the number of news items in every issue.
const NewsCount = 5

// Content is everything that goes into one issue. It is built once per run
// and shared by every recipient.
type Content struct {
	Quote  Quote            `json:"quote"`
	Trivia []TriviaQuestion `json:"trivia"`
	News   []NewsItem       `json:"news"`
	// Fallbacks names the sections ("quote", "trivia", "news") that were
	// replaced by fallback content in this collection.
	Fallbacks []string `json:"fallbacks,omitempty"`
}

// Section names used in Content.Fallbacks.
const (
	SectionQuote  = "quote"
	SectionTrivia = "trivia"
	SectionNews   = "news"
)

// Degraded reports whether any section came from a fallback.
func (c Content) Degraded() bool {
	return len(c.Fallbacks) > 0
}
