package validators

import (
	apperrors "homematch-search/internal/errors"
	"homematch-search/internal/models"
)

type criteriaValidator struct{}

func NewCriteriaValidator() CriteriaValidator {
	return &criteriaValidator{}
}

func (v *criteriaValidator) ValidateCriteria(criteria *models.SearchCriteria) error {
	if criteria.City == "" {
		return &apperrors.ValidationError{Field: "city", Reason: "is required"}
	}
	if criteria.MinPrice < 0 {
		return &apperrors.ValidationError{Field: "min_price", Reason: "must not be negative"}
	}
	if criteria.MaxPrice < 0 {
		return &apperrors.ValidationError{Field: "max_price", Reason: "must not be negative"}
	}
	if criteria.MinPrice > 0 && criteria.MaxPrice > 0 && criteria.MinPrice > criteria.MaxPrice {
		return &apperrors.ValidationError{Field: "min_price", Reason: "must not exceed max_price"}
	}
	if criteria.MinBedrooms < 0 {
		return &apperrors.ValidationError{Field: "min_bedrooms", Reason: "must not be negative"}
	}
	if criteria.MinBathrooms < 0 {
		return &apperrors.ValidationError{Field: "min_bathrooms", Reason: "must not be negative"}
	}
	return nil
}
