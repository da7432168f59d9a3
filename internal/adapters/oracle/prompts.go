package oracle

import (
	"fmt"
	"strings"

	"reviewkit/internal/domain"
)

const detectSystemPrompt = "You are an expert at categorizing businesses based on their name and customer reviews. Provide structured JSON responses."

func detectUserPrompt(businessName string, sampleReviews []string) string {
	var reviews strings.Builder
	for i, r := range sampleReviews {
		fmt.Fprintf(&reviews, "Review %d: %s\n", i+1, r)
	}

	var cats strings.Builder
	for _, c := range domain.Categories {
		fmt.Fprintf(&cats, "- %s\n", c)
	}

	return fmt.Sprintf(`Analyze the following information and determine the business type:

Company Name: %s

Sample Reviews:
%s
Based on the company name and review content, identify the PRIMARY business type from the following categories:
%s
Choose the MOST SPECIFIC category that fits. Be concise.

Return a JSON object with this structure:
{
  "business_type": "<detected type>",
  "confidence": "<high|medium|low>",
  "reasoning": "<brief explanation>"
}`, businessName, reviews.String(), cats.String())
}

const topicsSystemPrompt = "You are an expert at defining relevant review analysis categories for different business types. Provide structured JSON responses."

func topicsUserPrompt(category, businessName string) string {
	name := ""
	if businessName != "" {
		name = fmt.Sprintf(" (the business is called %q)", businessName)
	}
	return fmt.Sprintf(`Generate 5 specific review analysis topics for a %q business%s.

Requirements:
- Topics should be highly relevant to %q businesses
- Topics should be distinct and non-overlapping
- Topics should cover the most important aspects customers care about
- Always include %q as one of the 5 topics
- Topics should be specific enough to categorize reviews effectively

Examples:
- For restaurants: Food Quality, Service, Ambiance, Menu Variety, Value for Money
- For hotels: Room Quality, Staff Service, Cleanliness, Amenities, Value for Money
- For tours: Guide Performance, Experience Content, Organization, Atmosphere, Value for Money

Return a JSON object with this structure:
{
  "topics": [
    {"name": "<topic name>", "description": "<what this topic covers>"},
    ... (5 topics total)
  ]
}`, category, name, category, domain.ValueForMoney)
}

const classifySystemPrompt = "You are an expert at analyzing customer reviews and categorizing them into specific topics with sentiment analysis. You provide structured JSON responses."

func classifyUserPrompt(batch []domain.IndexedReview, topics []string) string {
	var topicLines strings.Builder
	for i, t := range topics {
		fmt.Fprintf(&topicLines, "%d. %s\n", i+1, t)
	}

	var reviewLines strings.Builder
	for _, r := range batch {
		date := "N/A"
		if !r.Review.CreatedAt.IsZero() {
			date = r.Review.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(&reviewLines, "Review %d (ID: %s):\n  Name: %s\n  Rating: %g stars\n  Date: %s\n  Comment: %s\n\n",
			r.Index, r.Review.ID, r.Review.Reviewer, r.Review.Rating, date, r.Review.Text)
	}

	return fmt.Sprintf(`Analyze the following customer reviews and categorize them into these EXACT topics:

%s
For each review, determine:
1. Which topic(s) it relates to (a review can relate to multiple topics, but list each (review, topic) pair at most once)
2. The sentiment for each topic: positive, neutral, or negative

Sentiment Classification:
- Positive: 4-5 stars OR clearly positive language
- Negative: 1-2 stars OR clearly negative language
- Neutral: 3 stars OR mixed/neutral language

Reviews:
%s
Return a JSON object with this EXACT structure:
{
  "assignments": [
    {
      "review_id": "<review ID>",
      "topic": "<one of the topics above, spelled exactly>",
      "sentiment": "positive|neutral|negative",
      "excerpt": "<the most relevant sentence or phrase from the review for that topic>"
    }
  ]
}

Include only (review, topic) pairs where the review actually mentions the topic.`, topicLines.String(), reviewLines.String())
}
