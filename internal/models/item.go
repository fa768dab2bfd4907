package models

import "time"

// ItemStatus is the moderation and exchange lifecycle state of a listing.
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusApproved  ItemStatus = "approved"
	ItemStatusRejected  ItemStatus = "rejected"
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusSwapped   ItemStatus = "swapped"
	ItemStatusRedeemed  ItemStatus = "redeemed"
)

// Closed enumerations of listing attributes.
var (
	ItemCategories = []string{"tops", "bottoms", "dresses", "outerwear", "shoes", "accessories", "bags", "jewelry", "other"}
	ItemTypes      = []string{"casual", "formal", "business", "sportswear", "vintage", "designer", "streetwear", "bohemian", "minimalist", "other"}
	ItemSizes      = []string{
		"XS", "S", "M", "L", "XL", "XXL", "XXXL",
		"US 4", "US 6", "US 8", "US 10", "US 12", "US 14", "US 16",
		"EU 34", "EU 36", "EU 38", "EU 40", "EU 42", "EU 44", "EU 46",
		"UK 6", "UK 8", "UK 10", "UK 12", "UK 14", "UK 16", "UK 18",
		"One Size", "Custom",
	}
	ItemConditions = []string{"excellent", "good", "fair", "poor"}
)

// Item is a listed garment.
type Item struct {
	ID             int32      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Type           string     `json:"type"`
	Size           string     `json:"size"`
	Condition      string     `json:"condition"`
	Tags           []string   `json:"tags"`
	Images         []string   `json:"images"`
	PointsValue    int        `json:"pointsValue"`
	UploaderID     int32      `json:"uploader"`
	Status         ItemStatus `json:"status"`
	IsAvailable    bool       `json:"isAvailable"`
	ApprovedBy     *int32     `json:"approvedBy,omitempty"`
	ApprovedAt     *time.Time `json:"approvedAt,omitempty"`
	RejectedReason string     `json:"rejectedReason,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Swappable reports whether the item may be the subject of a new swap request.
func (item *Item) Swappable() bool {
	return item.Status == ItemStatusAvailable && item.IsAvailable
}

// CreateItemRequest is the payload for listing a new garment.
type CreateItemRequest struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=1000"`
	Category    string   `json:"category" validate:"required,item_category"`
	Type        string   `json:"type" validate:"required,item_type"`
	Size        string   `json:"size" validate:"required,item_size"`
	Condition   string   `json:"condition" validate:"required,item_condition"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,required,max=20"`
	Images      []string `json:"images" validate:"required,min=1,max=5,dive,required"`
	PointsValue int      `json:"pointsValue" validate:"required,min=1,max=1000"`
}

// ItemFilter narrows item listings. Zero values mean "no constraint".
type ItemFilter struct {
	Category   string
	Type       string
	Size       string
	Condition  string
	Search     string
	Status     ItemStatus
	UploaderID int32
	// AvailableOnly restricts to items that can currently be swap-requested.
	AvailableOnly bool
	Limit         int
	Offset        int
}

// ItemModeration describes a moderation decision on a pending item.
type ItemModeration struct {
	ItemID      int32
	ModeratorID int32
	Approve     bool
	Reason      string
	At          time.Time
}

// RejectItemRequest is the payload of the moderation reject endpoint.
type RejectItemRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// Pagination selects one page of a listing. Page is 1-based.
type Pagination struct {
	Page  int
	Limit int
}

// ItemPage is one page of an item listing.
type ItemPage struct {
	Items []Item `json:"items"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}
