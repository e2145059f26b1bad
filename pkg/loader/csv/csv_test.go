package csv

import "testing"

func TestParseReviews_FullDataset(t *testing.T) {
	data := []byte(`User Id,Review Title,Review Content,Review Rating,Brand,Category,Sub Category
u1,Great sunscreen,No irritation and love the scent,5,SunCo,Beauty,Skin Care
u2,Disappointing,Left a rash after one use,2,SunCo,Beauty,
`)
	reviews, err := ParseReviews(data)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}

	first := reviews[0]
	if first.ReviewText != "Great sunscreen No irritation and love the scent" {
		t.Fatalf("unexpected review text: %q", first.ReviewText)
	}
	if first.UserID != "u1" || first.Brand != "SunCo" || first.SubCategory != "Skin Care" {
		t.Fatalf("unexpected fields: %+v", first)
	}
	if first.Rating == nil || *first.Rating != 5 {
		t.Fatalf("expected rating 5, got %v", first.Rating)
	}

	second := reviews[1]
	if second.SubCategory != "" {
		t.Fatalf("expected empty sub-category, got %q", second.SubCategory)
	}
	if second.Rating == nil || *second.Rating != 2 {
		t.Fatalf("expected rating 2, got %v", second.Rating)
	}
}

func TestParseReviews_SkipsIncompleteRows(t *testing.T) {
	data := []byte(`User Id,Review Title,Review Rating
u1,Nice product,4
,Orphan review,3
u2,,
`)
	reviews, err := ParseReviews(data)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews))
	}
	if reviews[0].UserID != "u1" {
		t.Fatalf("unexpected review: %+v", reviews[0])
	}
}

func TestParseReviews_NonNumericRatingTreatedAsAbsent(t *testing.T) {
	data := []byte(`User Id,Review Content,Review Rating
u1,Works as advertised,n/a
u2,Decent enough,3.0
`)
	reviews, err := ParseReviews(data)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
	if reviews[0].Rating != nil {
		t.Fatalf("expected absent rating, got %v", *reviews[0].Rating)
	}
	if reviews[1].Rating == nil || *reviews[1].Rating != 3 {
		t.Fatalf("expected rating 3, got %v", reviews[1].Rating)
	}
}

func TestParseReviews_MissingRequiredColumns(t *testing.T) {
	if _, err := ParseReviews([]byte("Brand,Category\nSunCo,Beauty\n")); err == nil {
		t.Fatal("expected error for missing user id column")
	}
	if _, err := ParseReviews([]byte("User Id,Brand\nu1,SunCo\n")); err == nil {
		t.Fatal("expected error for missing review text columns")
	}
}
