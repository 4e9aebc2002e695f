package usecase

import (
	"errors"
	"math"

	"shop-backend/internal/data/entity"
)

var ErrNoRatings = errors.New("no ratings to average")

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func lineTotal(price float64, count int) float64 {
	return round2(price * float64(count))
}

func cartTotal(items []entity.LineItem) float64 {
	var total float64
	for _, item := range items {
		total += lineTotal(item.Price, item.Count)
	}
	return round2(total)
}

// applyDiscount takes pct percent off total.
func applyDiscount(total, pct float64) float64 {
	return round2(total - total*pct/100)
}

// averageRating is the mean star value rounded half up.
func averageRating(stars []int) (int, error) {
	if len(stars) == 0 {
		return 0, ErrNoRatings
	}
	sum := 0
	for _, s := range stars {
		sum += s
	}
	return int(math.Floor(float64(sum)/float64(len(stars)) + 0.5)), nil
}
