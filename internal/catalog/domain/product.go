package domain

import (
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	ImgSrc        string             `bson:"img_src" json:"imgSrc"`
	Category      string             `bson:"category" json:"category"`
	SellerName    string             `bson:"seller_name" json:"sellerName"`
	SellerAddress string             `bson:"seller_address" json:"sellerAddress"`
	Price         float64            `bson:"price" json:"price"`
	Stock         int64              `bson:"stock" json:"stock"`
	Ratings       []Rating           `bson:"ratings" json:"ratings"`
	AvgRating     float64            `bson:"avg_rating" json:"avgRating"`
	TotalRatings  int                `bson:"total_ratings" json:"totalRatings"`
	CreatedAt     int64              `bson:"created_at" json:"createdAt"`
	UpdatedAt     int64              `bson:"updated_at" json:"updatedAt"`
}

type Rating struct {
	UserID    string `bson:"user_id" json:"userId"`
	Rating    int    `bson:"rating" json:"rating"`
	Review    string `bson:"review" json:"review"`
	CreatedAt int64  `bson:"created_at" json:"createdAt"`
}

// UpsertRating inserts or updates the single rating entry for userID. An
// empty review on update keeps the previously stored review text.
func (p *Product) UpsertRating(userID string, rating int, review string, timestamp int64) {
	for i := range p.Ratings {
		if p.Ratings[i].UserID != userID {
			continue
		}

		p.Ratings[i].Rating = rating
		if strings.TrimSpace(review) != "" {
			p.Ratings[i].Review = review
		}
		p.Ratings[i].CreatedAt = timestamp

		p.RecomputeRatingStats()
		return
	}

	p.Ratings = append(p.Ratings, Rating{
		UserID:    userID,
		Rating:    rating,
		Review:    review,
		CreatedAt: timestamp,
	})

	p.RecomputeRatingStats()
}

// RemoveRating deletes userID's rating entry. It reports whether an entry
// was actually removed.
func (p *Product) RemoveRating(userID string) bool {
	for i := range p.Ratings {
		if p.Ratings[i].UserID != userID {
			continue
		}

		p.Ratings = append(p.Ratings[:i], p.Ratings[i+1:]...)
		p.RecomputeRatingStats()
		return true
	}

	return false
}

// RecomputeRatingStats keeps AvgRating and TotalRatings consistent with
// the ratings slice. Every mutation calls this before the document is
// persisted, so the aggregates are written in the same update as the
// rating change.
func (p *Product) RecomputeRatingStats() {
	p.TotalRatings = len(p.Ratings)
	if p.TotalRatings == 0 {
		p.AvgRating = 0
		return
	}

	sum := 0
	for _, r := range p.Ratings {
		sum += r.Rating
	}

	p.AvgRating = float64(sum) / float64(p.TotalRatings)
}

// RatingHistogram maps each star value 1..5 to its count.
func (p *Product) RatingHistogram() map[int]int {
	histogram := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, r := range p.Ratings {
		if r.Rating >= 1 && r.Rating <= 5 {
			histogram[r.Rating]++
		}
	}

	return histogram
}

// Reviews returns the rating entries carrying a non-empty review text,
// most recent first.
func (p *Product) Reviews() []Rating {
	reviews := make([]Rating, 0, len(p.Ratings))
	for _, r := range p.Ratings {
		if strings.TrimSpace(r.Review) != "" {
			reviews = append(reviews, r)
		}
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt > reviews[j].CreatedAt
	})

	return reviews
}
