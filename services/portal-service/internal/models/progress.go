package models

// Progress represents a user's tutorial progress record.
// CompletedTutorials is a set: it never contains duplicate IDs.
type Progress struct {
	UserID             string `json:"userId"`
	CompletedTutorials []int  `json:"completedTutorials"`
	LastVisited        *int   `json:"lastVisited"`
}

// NewEmptyProgress returns the default progress record for a user
func NewEmptyProgress(userID string) *Progress {
	return &Progress{
		UserID:             userID,
		CompletedTutorials: []int{},
	}
}
