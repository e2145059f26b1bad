package ai

// ExtractSystemPrompt frames the extraction request. The model sees the
// normalized review text in the user message.
const ExtractSystemPrompt = `You are provided with Amazon product reviews from users. Use the text to extract the necessary information from the query effectively.`

// ExtractUserPrompt wraps the normalized review text. The structured response
// format is enforced separately via a JSON schema.
const ExtractUserPrompt = `Extract entities (Product, Feature, Sentiment) from the following review and return them in the specified JSON format:

Review- %s`
