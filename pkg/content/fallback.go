package content

// FallbackQuote is used whenever the quote API cannot be read.
func FallbackQuote() Quote {
	return Quote{
		Text:   "The only way to do great work is to love what you do.",
		Author: "Steve Jobs",
	}
}

// FallbackTrivia is the single question used when the trivia API fails.
func FallbackTrivia() []TriviaQuestion {
	return []TriviaQuestion{{
		Number:        1,
		Question:      "What is the capital of France?",
		Category:      "Geography",
		Difficulty:    "easy",
		Options:       []string{"London", "Berlin", "Paris", "Madrid"},
		CorrectAnswer: "Paris",
	}}
}

// FillerNews pads a short model response up to NewsCount.
func FillerNews() NewsItem {
	return NewsItem{
		Headline:     "AI Development Continues Across Multiple Sectors",
		Summary:      "The artificial intelligence industry continues to evolve with new breakthroughs in machine learning, natural language processing, and computer vision applications.",
		WhyItMatters: "These advances are transforming how businesses operate and how people interact with technology.",
	}
}

// FallbackNews replaces the whole news section when generation fails.
func FallbackNews() []NewsItem {
	return []NewsItem{
		{
			Headline:     "AI Models Achieve New Benchmarks in Reasoning Tasks",
			Summary:      "Latest AI systems demonstrate improved performance on complex reasoning challenges. Models show enhanced ability to solve multi-step problems and provide more accurate explanations for their conclusions.",
			WhyItMatters: "Better reasoning capabilities bring AI closer to handling real-world business and scientific challenges.",
		},
		{
			Headline:     "Enterprise AI Adoption Accelerates Globally",
			Summary:      "Companies worldwide are integrating AI into core operations, from customer service to product development. Industry reports show significant ROI and productivity gains across sectors.",
			WhyItMatters: "AI is becoming essential infrastructure for competitive businesses in the modern economy.",
		},
		{
			Headline:     "AI Safety Research Receives Increased Funding",
			Summary:      "Major tech companies and research institutions are expanding AI safety teams. Focus areas include alignment, interpretability, and developing frameworks for responsible AI deployment.",
			WhyItMatters: "Ensuring AI systems remain safe and beneficial is critical as they become more powerful and widespread.",
		},
		{
			Headline:     "Open Source AI Community Delivers Major Updates",
			Summary:      "Community-developed AI models continue to challenge proprietary systems with competitive performance. New tools make it easier for developers to build and deploy AI applications without vendor lock-in.",
			WhyItMatters: "Democratized AI access enables innovation from startups and researchers worldwide.",
		},
		{
			Headline:     "Global AI Governance Frameworks Take Shape",
			Summary:      "Governments and international bodies advance AI policy discussions. New regulations aim to balance innovation with safety, privacy, and ethical considerations.",
			WhyItMatters: "Clear regulatory frameworks help guide responsible AI development and build public trust.",
		},
	}
}
