package handler

import (
	"github.com/google/uuid"

	partnerapp "github.com/usmanhardware/backend/internal/application/partner"
	"github.com/usmanhardware/backend/internal/interfaces/http/dto"
)

func normalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func normalizePageSize(pageSize int) int {
	if pageSize <= 0 {
		return 20
	}
	return pageSize
}

func partnerListFilter(listReq dto.ListRequest, status string) partnerapp.PartnerListFilter {
	return partnerapp.PartnerListFilter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
		Status:   status,
	}
}

// parseOptionalUUIDQuery parses an optional UUID query parameter,
// reporting whether the raw value was present but malformed
func parseOptionalUUIDQuery(raw string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}
