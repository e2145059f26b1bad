package classify

// Sentiment labels derived from a review's star rating.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
	SentimentNoRating = "No Rating"
)

// Sentiment maps a star rating to a sentiment label. A nil rating (review
// submitted without one) yields SentimentNoRating.
func Sentiment(rating *int) string {
	if rating == nil {
		return SentimentNoRating
	}
	switch {
	case *rating >= 4:
		return SentimentPositive
	case *rating == 3:
		return SentimentNeutral
	default:
		return SentimentNegative
	}
}
