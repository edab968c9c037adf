package api

// StatDTO holds the event counters for a statistics window.
type StatDTO struct {
	Processed    int `json:"processed"`
	Delivered    int `json:"delivered"`
	Dropped      int `json:"dropped"`
	HardBounced  int `json:"hard_bounced"`
	SoftBounced  int `json:"soft_bounced"`
	Opened       int `json:"opened"`
	Clicked      int `json:"clicked"`
	Unsubscribed int `json:"unsubscribed"`
	Spam         int `json:"spam"`
}

// DayStatDTO is the counters for a single civil date (YYYY-MM-DD).
type DayStatDTO struct {
	Date  string   `json:"date"`
	Stats *StatDTO `json:"stats"`
}
