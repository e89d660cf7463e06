package validators

import (
	"homematch-search/internal/models"
)

type CriteriaValidator interface {
	ValidateCriteria(criteria *models.SearchCriteria) error
}
