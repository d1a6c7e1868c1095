package models

// Source is a content source chapters are downloaded from.
type Source struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Lang string `json:"lang"`
}

// String returns the display name of the source.
func (s *Source) String() string {
	return s.Name
}
