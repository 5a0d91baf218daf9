package domain

type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"` // persisted as available_qty
}

// ListProductsRequest is bound from the query string. Offset and Limit are
// pointers so that offset=0 passes the required check.
type ListProductsRequest struct {
	Offset   *int     `form:"offset" binding:"required,min=0"`
	Limit    *int     `form:"limit" binding:"required,gt=0"`
	MinPrice *float64 `form:"min_price"`
	MaxPrice *float64 `form:"max_price"`
}

func (r ListProductsRequest) Query() ProductQuery {
	q := ProductQuery{MinPrice: r.MinPrice, MaxPrice: r.MaxPrice}
	if r.Offset != nil {
		q.Offset = *r.Offset
	}
	if r.Limit != nil {
		q.Limit = *r.Limit
	}
	return q
}

// ProductQuery is a validated listing window. Nil price bounds impose no constraint.
type ProductQuery struct {
	Offset   int
	Limit    int
	MinPrice *float64
	MaxPrice *float64
}

type Page struct {
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	NextOffset *int  `json:"nextOffset"`
	PrevOffset *int  `json:"prevOffset"`
}

type ProductPage struct {
	Data []Product `json:"data"`
	Page Page      `json:"page"`
}

// NewPage derives the pagination metadata for a window over total matches.
// NextOffset is set while matches remain past the window; PrevOffset is set
// whenever offset > 0 and may be negative when offset < limit.
func NewPage(total int64, offset, limit int) Page {
	p := Page{Total: total, Limit: limit}
	// offset < total-limit avoids overflowing offset+limit.
	if int64(offset) < total-int64(limit) {
		next := offset + limit
		p.NextOffset = &next
	}
	if offset > 0 {
		prev := offset - limit
		p.PrevOffset = &prev
	}
	return p
}
