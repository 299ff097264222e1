package domain

// PageInfo is the pagination metadata every paged endpoint returns.
type PageInfo struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
}

// VideoPage is one page of the video feed.
type VideoPage struct {
	Videos []Video `json:"videos"`
	PageInfo
}

// NoticePage is one page of the notice board.
type NoticePage struct {
	Notices []Notice `json:"notices"`
	PageInfo
}

// InquiryPage is one page of inquiries.
type InquiryPage struct {
	Inquiries []Inquiry `json:"inquiries"`
	PageInfo
}

// AdminUserPage is one page of the admin user table.
type AdminUserPage struct {
	Users []AdminUser `json:"users"`
	PageInfo
}

// AdminVideoPage is one page of the admin video table.
type AdminVideoPage struct {
	Videos []AdminVideo `json:"videos"`
	PageInfo
}
