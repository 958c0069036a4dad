// Package content assembles the daily issue: a quote from ZenQuotes, trivia
// from the Open Trivia Database and five AI news summaries from a language
// model.
//
// Sources are independent and fetched concurrently by [Aggregator.Collect].
// None of them can fail the issue: any network error, bad status, malformed
// payload or empty result is logged and replaced by the static values in
// fallback.go. News goes through [ParseNewsItems], which tolerates code
// fences and surrounding prose, and [NormalizeNews], which guarantees exactly
// [NewsCount] items.
//
// All upstream text is reduced to plain text with package sanitizer, so
// renderers can treat it as untrusted but markup-free.
package content
