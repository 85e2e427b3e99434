package model

import "time"

// Course is a course owned by exactly one User.
//
// UserID is the foreign key and stays server-side. Clients see the owner
// through the embedded User instead:
//
//	{"id":"...","title":"...","description":"...","estimatedTime":null,
//	 "materialsNeeded":null,"user":{"id":"...","firstName":"..."}}
//
// EstimatedTime and MaterialsNeeded are *string because the columns are
// nullable; nil encodes as JSON null.
type Course struct {
	ID              string    `json:"id"              db:"id"`
	Title           string    `json:"title"           db:"title"`
	Description     string    `json:"description"     db:"description"`
	EstimatedTime   *string   `json:"estimatedTime"   db:"estimated_time"`
	MaterialsNeeded *string   `json:"materialsNeeded" db:"materials_needed"`
	UserID          string    `json:"-"               db:"user_id"`
	User            *User     `json:"user,omitempty"`
	CreatedAt       time.Time `json:"-"               db:"created_at"`
	UpdatedAt       time.Time `json:"-"               db:"updated_at"`
}

// CourseInput is the request body for POST and PUT /api/courses.
//
// There is no userId field: ownership always comes from the
// authenticated identity, so a userId sent by the client is dropped by the
// JSON decoder.
type CourseInput struct {
	Title           Text `json:"title"`
	Description     Text `json:"description"`
	EstimatedTime   Text `json:"estimatedTime"`
	MaterialsNeeded Text `json:"materialsNeeded"`
}

// Apply copies every field present in the input onto c.
// Call it only after ValidateUpdate has returned no messages.
func (in CourseInput) Apply(c *Course) {
	if in.Title.Valid {
		c.Title = in.Title.Value
	}
	if in.Description.Valid {
		c.Description = in.Description.Value
	}
	if in.EstimatedTime.Set {
		c.EstimatedTime = in.EstimatedTime.Ptr()
	}
	if in.MaterialsNeeded.Set {
		c.MaterialsNeeded = in.MaterialsNeeded.Ptr()
	}
}
