package common

// EntityPair is one (entity1, entity2, type) triple extracted from a single
// review. The extraction service also suggests a relation, but that value is
// discarded: the relation stored on a ReviewRecord always comes from the
// rule-based classifier.
type EntityPair struct {
	Entity1 string `json:"entity1"`
	Entity2 string `json:"entity2"`
	Type    string `json:"type"`
}

// ReviewInput is a single raw review as submitted for processing, before
// normalization and extraction.
type ReviewInput struct {
	ReviewText  string `json:"review_text" validate:"required"`
	UserID      string `json:"user_id" validate:"required"`
	Rating      *int   `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category"`
}

// ReviewRecord is the flattened row produced by the pipeline for one
// (review, entity pair). A record is created once at extraction time and
// never updated; Relation and Sentiment are derived deterministically from
// Entity2 and Rating respectively.
type ReviewRecord struct {
	ID          int64  `json:"id"`
	CleanedText string `json:"cleaned_review_content"`
	UserID      string `json:"user_id"`
	Entity1     string `json:"entity1"`
	Entity2     string `json:"entity2"`
	Type        string `json:"type"`
	Relation    string `json:"relation"`
	Rating      *int   `json:"rating,omitempty"`
	Sentiment   string `json:"sentiment"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category"`
}

// SubCommunityName returns the sub-category the record projects under,
// substituting "Unknown" when the review carried none.
func (r ReviewRecord) SubCommunityName() string {
	if r.SubCategory == "" {
		return "Unknown"
	}
	return r.SubCategory
}

// EntityKey is the full attribute tuple that identifies an Entity node in the
// projected graph. Two records naming the same entity with a different
// sentiment (or brand, or category) produce two distinct nodes.
type EntityKey struct {
	Name        string
	Type        string
	Sentiment   string
	Brand       string
	Category    string
	SubCategory string
}

// Entity1Key returns the graph identity of the record's first entity.
func (r ReviewRecord) Entity1Key() EntityKey {
	return r.entityKey(r.Entity1)
}

// Entity2Key returns the graph identity of the record's second entity.
func (r ReviewRecord) Entity2Key() EntityKey {
	return r.entityKey(r.Entity2)
}

func (r ReviewRecord) entityKey(name string) EntityKey {
	return EntityKey{
		Name:        name,
		Type:        r.Type,
		Sentiment:   r.Sentiment,
		Brand:       r.Brand,
		Category:    r.Category,
		SubCategory: r.SubCommunityName(),
	}
}
