package service

// Reference is one column that stores a media reference (public URL, key,
// or bare filename).
type Reference struct {
	Table    string `json:"table"`
	IDColumn string `json:"-"`
	Column   string `json:"column"`
	// Deletable rows may be removed by a delete-mode sweep. Rows that other
	// tables point at only get their column cleared.
	Deletable bool `json:"-"`
}

// References lists every media column in the schema.
var References = []Reference{
	{Table: "events", IDColumn: "event_id", Column: "event_image_url", Deletable: true},
	{Table: "stories", IDColumn: "story_id", Column: "story_image_url", Deletable: true},
	{Table: "stories", IDColumn: "story_id", Column: "story_video_url", Deletable: true},
	{Table: "testimonials", IDColumn: "testimonial_id", Column: "testimonial_photo_url", Deletable: true},
	{Table: "gallery_items", IDColumn: "gallery_item_id", Column: "gallery_item_media_url", Deletable: true},
	{Table: "gallery_items", IDColumn: "gallery_item_id", Column: "gallery_item_thumbnail_url", Deletable: false},
	{Table: "slideshow_slides", IDColumn: "slide_id", Column: "slide_image_url", Deletable: true},
	{Table: "programs", IDColumn: "program_id", Column: "program_image_url", Deletable: false},
	{Table: "urgent_needs", IDColumn: "urgent_need_id", Column: "urgent_need_image_url", Deletable: false},
}
