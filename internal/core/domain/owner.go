package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Owner - владелец объекта недвижимости.
type Owner struct {
	IDOwner  string
	Name     string
	Address  string
	Photo    string
	Birthday time.Time
}

// NewOwner создает владельца с новым IDOwner.
func NewOwner(data Owner) (*Owner, error) {
	if strings.TrimSpace(data.Name) == "" {
		return nil, NewValidationError("name", "is required")
	}
	o := data
	o.IDOwner = uuid.New().String()
	return &o, nil
}

// DistinctOwnerIDs возвращает уникальные непустые IDOwner в порядке первого появления.
func DistinctOwnerIDs(properties []Property) []string {
	seen := make(map[string]struct{}, len(properties))
	ids := make([]string, 0, len(properties))
	for _, p := range properties {
		if p.IDOwner == "" {
			continue
		}
		if _, ok := seen[p.IDOwner]; ok {
			continue
		}
		seen[p.IDOwner] = struct{}{}
		ids = append(ids, p.IDOwner)
	}
	return ids
}
