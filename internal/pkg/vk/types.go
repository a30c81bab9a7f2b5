package vk

// Photo is one item of a photos.get response with extended=1.
// Fields the backup relies on are pointers so absence can be told apart
// from a zero value.
type Photo struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	AlbumID int64  `json:"album_id"`
	Date    *int64 `json:"date"`
	Likes   *Likes `json:"likes"`
	Sizes   []Size `json:"sizes"`
}

// Likes holds the like counter of a photo.
type Likes struct {
	Count *int `json:"count"`
}

// Size is one resolution variant. VK lists variants from smallest to largest.
type Size struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type photosResponse struct {
	Count int     `json:"count"`
	Items []Photo `json:"items"`
}

type resolvedObject struct {
	Type     string `json:"type"`
	ObjectID int64  `json:"object_id"`
}
