package domain

import "time"

// Role is a user's permission level as reported by the backend.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Gender as stored in the user profile.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// User is the authenticated user's profile, cached alongside the token.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Nickname     string `json:"nickname"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage,omitempty"`
	Role         Role   `json:"role"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	BirthDate    string `json:"birthDate,omitempty"`
	Gender       Gender `json:"gender,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
	Address1     string `json:"address1,omitempty"`
	Address2     string `json:"address2,omitempty"`
}

// Author is the reduced profile attached to videos and comments.
type Author struct {
	ID           int64  `json:"id"`
	Nickname     string `json:"nickname"`
	Email        string `json:"email,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Video is a single video as returned by the listing and detail endpoints.
// IsLiked and IsSubscribed are only populated on the detail endpoint for
// authenticated requests.
type Video struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	VideoPath     string    `json:"videoPath"`
	ThumbnailPath string    `json:"thumbnailPath"`
	Views         int       `json:"views"`
	LikeCount     int       `json:"likeCount"`
	IsLiked       bool      `json:"isLiked,omitempty"`
	IsSubscribed  bool      `json:"isSubscribed,omitempty"`
	Author        Author    `json:"author"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Channel is a user's public channel page, including its uploads.
type Channel struct {
	ID              int64   `json:"id"`
	Email           string  `json:"email"`
	Nickname        string  `json:"nickname"`
	ProfileImage    string  `json:"profileImage"`
	SubscriberCount int     `json:"subscriberCount"`
	VideoCount      int     `json:"videoCount"`
	IsSubscribed    bool    `json:"isSubscribed"`
	Videos          []Video `json:"videos"`
}

// Comment on a video.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notice is a notice-board post. Only admins may create or edit them.
type Notice struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ViewCount int       `json:"viewCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Inquiry is a support ticket. Answer fields are set by an admin.
type Inquiry struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Answer     string     `json:"answer,omitempty"`
	IsAnswered bool       `json:"isAnswered"`
	AnsweredAt *time.Time `json:"answeredAt,omitempty"`
	Author     Author     `json:"author"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// DashboardStats is the admin dashboard summary block.
type DashboardStats struct {
	TotalUsers       int `json:"totalUsers"`
	TotalVideos      int `json:"totalVideos"`
	TotalViews       int `json:"totalViews"`
	PendingInquiries int `json:"pendingInquiries"`
}

// Dashboard is the full admin dashboard payload.
type Dashboard struct {
	Stats        DashboardStats `json:"stats"`
	RecentUsers  []AdminUser    `json:"recentUsers"`
	RecentVideos []Video        `json:"recentVideos"`
}

// AdminUser is a row in the admin user table.
type AdminUser struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Nickname     string    `json:"nickname"`
	Role         Role      `json:"role"`
	ProfileImage string    `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
	VideoCount   int       `json:"videoCount"`
	CommentCount int       `json:"commentCount"`
}

// AdminVideo is a row in the admin video table.
type AdminVideo struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Views        int       `json:"views"`
	Author       Author    `json:"author"`
	CreatedAt    time.Time `json:"createdAt"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
}
