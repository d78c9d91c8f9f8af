package model

// Iteration is one push/update round of a pull request on the code host.
type Iteration struct {
	ID int
}

// IterationChange is a single changed file within an iteration. The change
// tracking id lets later iterations correlate the same logical change.
type IterationChange struct {
	Path             string
	ChangeTrackingID int
}
