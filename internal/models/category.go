package models

// TrackerCategory groups trackers under a unique title. Trackers is a
// read-only view built from each tracker's category reference.
type TrackerCategory struct {
	Title    string    `json:"title"`
	Trackers []Tracker `json:"trackers"`
}

// TrackerRecord marks a tracker as completed on a day (YYYY-MM-DD).
type TrackerRecord struct {
	ID        string `json:"id"`
	TrackerID string `json:"tracker_id"`
	Day       string `json:"day"`
	CreatedAt string `json:"created_at"`
}
