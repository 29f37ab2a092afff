package aggregation

import (
	"errors"
	"fmt"

	"focusmap/gateway-service/internal/app/gateway/entity"
)

var (
	// ErrValidationMismatch оценка не соответствует категории рабочего места
	ErrValidationMismatch = errors.New("rating does not match workspace category")
	ErrUnknownCategory    = errors.New("unknown workspace category")
)

type dimension struct {
	name  string
	value func(c *entity.RatingCategories) float64
	set   func(r *entity.AverageRatingResult, v float64)
}

var baseDimensions = []dimension{
	{
		name:  "wifi",
		value: func(c *entity.RatingCategories) float64 { return c.Wifi },
		set:   func(r *entity.AverageRatingResult, v float64) { r.Wifi = v },
	},
	{
		name:  "quiet",
		value: func(c *entity.RatingCategories) float64 { return c.Quiet },
		set:   func(r *entity.AverageRatingResult, v float64) { r.Quiet = v },
	},
	{
		name:  "power",
		value: func(c *entity.RatingCategories) float64 { return c.Power },
		set:   func(r *entity.AverageRatingResult, v float64) { r.Power = v },
	},
	{
		name:  "cleanliness",
		value: func(c *entity.RatingCategories) float64 { return c.Cleanliness },
		set:   func(r *entity.AverageRatingResult, v float64) { r.Cleanliness = v },
	},
}

var categoryDimensions = map[entity.WorkspaceType][]dimension{
	entity.WorkspaceTypeCafe: {
		{
			name:  "taste",
			value: func(c *entity.RatingCategories) float64 { return optional(c.Taste) },
			set:   func(r *entity.AverageRatingResult, v float64) { r.Taste = v },
		},
	},
	entity.WorkspaceTypeLibrary: {
		{
			name:  "resources",
			value: func(c *entity.RatingCategories) float64 { return optional(c.Resources) },
			set:   func(r *entity.AverageRatingResult, v float64) { r.Resources = v },
		},
		{
			name:  "computers",
			value: func(c *entity.RatingCategories) float64 { return optional(c.Computers) },
			set:   func(r *entity.AverageRatingResult, v float64) { r.Computers = v },
		},
	},
}

// Отсутствующее значение дает вклад 0, как и в исходных данных
func optional(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Compute считает средние оценки по набору оценок одного рабочего места.
// Пустой набор дает нулевой результат с TotalRatings = 0.
// Измерения чужой категории всегда остаются нулевыми.
func Compute(category entity.WorkspaceType, ratings []entity.Rating) entity.AverageRatingResult {
	var result entity.AverageRatingResult
	if len(ratings) == 0 {
		return result
	}

	n := float64(len(ratings))
	dims := append(append([]dimension{}, baseDimensions...), categoryDimensions[category]...)

	for _, d := range dims {
		var sum float64
		for i := range ratings {
			sum += d.value(&ratings[i].Categories)
		}
		d.set(&result, sum/n)
	}

	result.TotalRatings = len(ratings)
	return result
}

// CheckRating проверяет, что набор измерений оценки соответствует категории.
// Возвращает ошибку, оборачивающую ErrValidationMismatch, с описанием расхождения.
func CheckRating(category entity.WorkspaceType, rating entity.Rating) error {
	c := rating.Categories

	switch category {
	case entity.WorkspaceTypeCafe:
		if c.Taste == nil {
			return fmt.Errorf("%w: cafe rating has no taste score", ErrValidationMismatch)
		}
		if c.Resources != nil || c.Computers != nil {
			return fmt.Errorf("%w: cafe rating has library scores", ErrValidationMismatch)
		}
	case entity.WorkspaceTypeLibrary:
		if c.Resources == nil || c.Computers == nil {
			return fmt.Errorf("%w: library rating has no resources or computers score", ErrValidationMismatch)
		}
		if c.Taste != nil {
			return fmt.Errorf("%w: library rating has a taste score", ErrValidationMismatch)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	return nil
}
