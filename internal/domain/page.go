package domain

// Page is one page of a listing together with the paging metadata.
type Page[T any] struct {
	Data       []T `json:"data"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	LastPage   int `json:"lastPage"`
}

func NewPage[T any](data []T, pageNumber, pageSize, totalCount int) *Page[T] {
	if data == nil {
		data = []T{}
	}
	lastPage := 0
	if pageSize > 0 {
		lastPage = (totalCount + pageSize - 1) / pageSize
	}
	return &Page[T]{
		Data:       data,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalCount: totalCount,
		LastPage:   lastPage,
	}
}

type DeleteOutcome int

const (
	Deleted DeleteOutcome = iota
	NotFound
	// Referenced means dependent rows still point at the entity.
	Referenced
)

func (o DeleteOutcome) String() string {
	switch o {
	case Deleted:
		return "deleted"
	case NotFound:
		return "not_found"
	case Referenced:
		return "referenced"
	default:
		return "unknown"
	}
}
