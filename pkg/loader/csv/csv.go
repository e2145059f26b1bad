package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grapevine-ai/grapevine/pkg/common"
	"github.com/grapevine-ai/grapevine/pkg/loader"
)

// Column headers of the review dataset export. Matching is case-insensitive.
const (
	colReviewTitle   = "review title"
	colReviewContent = "review content"
	colUserID        = "user id"
	colRating        = "review rating"
	colBrand         = "brand"
	colCategory      = "category"
	colSubCategory   = "sub category"
)

// LoadReviews fetches a review dataset through the given file loader and
// parses it into review inputs.
func LoadReviews(ctx context.Context, fl loader.ReviewFileLoader, path string) ([]common.ReviewInput, error) {
	content, err := fl.GetFileBytes(ctx, path)
	if err != nil {
		return nil, err
	}
	return ParseReviews(content)
}

// ParseReviews parses a CSV review dataset. The first row must be a header
// naming at least the user id and one of the review text columns. The review
// text is the title and content joined with a space. Rows without a user id
// or review text are skipped. A rating that is missing or not an integer is
// treated as absent.
func ParseReviews(content []byte) ([]common.ReviewInput, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := index[colUserID]; !ok {
		return nil, fmt.Errorf("missing %q column in CSV header", colUserID)
	}
	if _, hasTitle := index[colReviewTitle]; !hasTitle {
		if _, hasContent := index[colReviewContent]; !hasContent {
			return nil, fmt.Errorf("missing review text columns in CSV header")
		}
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var reviews []common.ReviewInput
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		title := field(row, colReviewTitle)
		body := field(row, colReviewContent)
		text := strings.TrimSpace(title + " " + body)
		userID := field(row, colUserID)
		if text == "" || userID == "" {
			continue
		}

		review := common.ReviewInput{
			ReviewText:  text,
			UserID:      userID,
			Brand:       field(row, colBrand),
			Category:    field(row, colCategory),
			SubCategory: field(row, colSubCategory),
		}
		if raw := field(row, colRating); raw != "" {
			if rating, err := strconv.Atoi(raw); err == nil {
				review.Rating = &rating
			} else if f, err := strconv.ParseFloat(raw, 64); err == nil {
				rating := int(f)
				review.Rating = &rating
			}
		}

		reviews = append(reviews, review)
	}

	return reviews, nil
}
