package dto

import (
	"hotel/shared/constant"
	"net/http"
	"strconv"
)

// QueryParams carries optional page/limit paging. A zero Limit means the whole list.
type QueryParams struct {
	Page  int `json:"page"  validate:"omitempty,gte=1"`
	Limit int `json:"limit" validate:"omitempty,gte=1,lte=100"`
}

// Pagination describes the page that was returned.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// FromRequest populates QueryParams from the request's page and limit parameters.
// Values that are not integers are ignored. Page defaults to 1 once a limit is given.
func (q *QueryParams) FromRequest(r *http.Request) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil {
			q.Limit = limitInt
		}
	}

	if q.Limit > 0 && q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}
}

func (q *QueryParams) Paginated() bool {
	return q.Limit > 0
}

// Window returns the [start, end) slice bounds of the requested page within total items.
func (q *QueryParams) Window(total int) (start, end int) {
	if !q.Paginated() {
		return 0, total
	}

	if q.Page-1 > total/q.Limit {
		return total, total
	}

	start = min((q.Page-1)*q.Limit, total)
	end = min(start+q.Limit, total)

	return start, end
}

func (q *QueryParams) Pagination(total int) *Pagination {
	if !q.Paginated() {
		return nil
	}

	return &Pagination{
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: (total + q.Limit - 1) / q.Limit,
	}
}
