package models

// Progress is one identity's tutorial progress record.
// CompletedTutorials is a set: it never contains duplicate IDs and it only
// grows, there is no way to un-complete a tutorial.
type Progress struct {
	CompletedTutorials []int `json:"completedTutorials"`
	LastVisited        *int  `json:"lastVisited,omitempty"`
}

// NewEmptyProgress returns the default progress record
func NewEmptyProgress() *Progress {
	return &Progress{
		CompletedTutorials: []int{},
	}
}
