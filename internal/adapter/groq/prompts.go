package groq

import "fmt"

const candidatePrompt = `You extract highlight moments from a timestamped transcript.

Each line looks like "[start - end] text" with times in seconds.

Duration:
- every candidate lasts between 15 and 120 seconds
- prefer moments of 20 to 90 seconds
- when a moment runs longer, keep its strongest subsection

Rules:
- answer with JSON only, no prose and no code fences
- use timestamps exactly as they appear, never invent them
- pick moments that are insightful, emotional or memorable
- strength is a number from 0.0 to 1.0

Format:
{"candidates":[{"startTime":number,"endTime":number,"title":string,"reason":string,"strength":number}]}`

const finalPromptTemplate = `You pick the best highlights from a ranked list of candidates.

Each line looks like "[start-end] title (strength) reason" with times in seconds.

Duration:
- every highlight lasts between 15 and 120 seconds
- prefer highlights of 30 to 60 seconds
- merge overlapping candidates only when the result stays within the limits

Rules:
- answer with JSON only, no prose and no code fences
- return between %d and %d highlights
- reuse candidate timestamps, never invent them
- write short, clear titles

Format:
{"highlights":[{"startTime":number,"endTime":number,"title":string,"reason":string}]}`

func finalPrompt(minCount, maxCount int) string {
	return fmt.Sprintf(finalPromptTemplate, minCount, maxCount)
}
