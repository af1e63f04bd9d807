package models

// RouteKind loại trang được yêu cầu
type RouteKind string

const (
	KindPropertyDetail  RouteKind = "property_detail"
	KindPropertyListing RouteKind = "property_listing"
	KindProjectDetail   RouteKind = "project_detail"
	KindProjectListing  RouteKind = "project_listing"
	KindNotFound        RouteKind = "not_found"
)

// Transaction prefixes
const (
	TransactionSale = "mua-ban"
	TransactionRent = "cho-thue"
	ProjectPrefix   = "du-an"
)

// DetailFormat định dạng URL chi tiết tin đăng
type DetailFormat string

const (
	FormatOld      DetailFormat = "old"
	FormatNew      DetailFormat = "new"
	FormatFallback DetailFormat = "fallback"
)

// ListingLevel độ chi tiết địa lý của trang danh sách
type ListingLevel string

const (
	LevelBase         ListingLevel = "base"
	LevelProvince     ListingLevel = "province"
	LevelWard         ListingLevel = "ward"
	LevelWardCategory ListingLevel = "ward-category"
)

// ProjectLevel độ chi tiết địa lý của trang danh sách dự án
type ProjectLevel string

const (
	ProjectLevelCity ProjectLevel = "city"
	ProjectLevelWard ProjectLevel = "ward"
)

// RouteClassification is one of PropertyDetail, PropertyListing, ProjectDetail,
// ProjectListing or NotFound. Values are immutable once produced.
type RouteClassification interface {
	Kind() RouteKind
	isRoute()
}

// DetailLocation vị trí nằm trong URL chi tiết
type DetailLocation struct {
	Province string `json:"province"`
	Ward     string `json:"ward"`
}

// PropertyDetail trang chi tiết tin đăng
type PropertyDetail struct {
	ID              string          `json:"id"`
	TransactionType string          `json:"transactionType,omitempty"`
	Location        *DetailLocation `json:"location,omitempty"`
	IsSeoURL        bool            `json:"isSeoUrl"`
	Format          DetailFormat    `json:"format"`
}

// ListingLocation vị trí của trang danh sách; trường rỗng nghĩa là không có trong URL
type ListingLocation struct {
	Province string `json:"province,omitempty"`
	Ward     string `json:"ward,omitempty"`
	Category string `json:"category,omitempty"`
}

// PropertyListing trang danh sách/tìm kiếm tin đăng
type PropertyListing struct {
	TransactionType string          `json:"transactionType,omitempty"`
	Location        ListingLocation `json:"location"`
	Level           ListingLevel    `json:"level"`
}

// ProjectLocation vị trí của dự án
type ProjectLocation struct {
	City string `json:"city"`
	Ward string `json:"ward"`
}

// ProjectDetail trang chi tiết dự án
type ProjectDetail struct {
	ID       string          `json:"id"`
	Location ProjectLocation `json:"location"`
	IsSeoURL bool            `json:"isSeoUrl"`
}

// ProjectListingLocation Ward == nil ⇔ Level == city
type ProjectListingLocation struct {
	City string  `json:"city"`
	Ward *string `json:"ward"`
}

// ProjectListing trang danh sách dự án
type ProjectListing struct {
	Location ProjectListingLocation `json:"location"`
	Level    ProjectLevel           `json:"level"`
}

// NotFound terminal, không xử lý tiếp
type NotFound struct{}

func (PropertyDetail) Kind() RouteKind  { return KindPropertyDetail }
func (PropertyListing) Kind() RouteKind { return KindPropertyListing }
func (ProjectDetail) Kind() RouteKind   { return KindProjectDetail }
func (ProjectListing) Kind() RouteKind  { return KindProjectListing }
func (NotFound) Kind() RouteKind        { return KindNotFound }

func (PropertyDetail) isRoute()  {}
func (PropertyListing) isRoute() {}
func (ProjectDetail) isRoute()   {}
func (ProjectListing) isRoute()  {}
func (NotFound) isRoute()        {}

// IsTransactionPrefix kiểm tra segment có phải mua-ban / cho-thue không
func IsTransactionPrefix(segment string) bool {
	return segment == TransactionSale || segment == TransactionRent
}

// LevelFor xác định level chỉ dựa trên các trường location đã có
func LevelFor(loc ListingLocation) ListingLevel {
	switch {
	case loc.Province == "":
		return LevelBase
	case loc.Ward == "":
		return LevelProvince
	case loc.Category == "":
		return LevelWard
	default:
		return LevelWardCategory
	}
}
