package objects

// UsageStats is the last-hour call volume, bucketed per minute.
type UsageStats struct {
	Labels             []string `json:"labels"`
	Data               []int    `json:"data"`
	TotalCallsLastHour int      `json:"total_calls_last_hour"`
}
