package domain

type IncidentReport struct {
	TotalIncidents               int         `json:"totalIncidents"`
	DetectedCount                int         `json:"detectedCount"`
	ConfirmedCount               int         `json:"confirmedCount"`
	ResolvedCount                int         `json:"resolvedCount"`
	AverageResolutionTimeMinutes *float64    `json:"averageResolutionTimeMinutes,omitempty"`
	LatestIncidents              []*Incident `json:"latestIncidents"`
}

type DetailedStatistics struct {
	StatusDistribution   map[IncidentStatus]int `json:"statusDistribution"`
	TotalIncidentsCount  int                    `json:"totalIncidentsCount"`
	MinResolutionTime    *int64                 `json:"minResolutionTime,omitempty"`
	MaxResolutionTime    *int64                 `json:"maxResolutionTime,omitempty"`
	MedianResolutionTime *int64                 `json:"medianResolutionTime,omitempty"`
}

type DashboardOverview struct {
	DetectedCount      int         `json:"detectedCount"`
	ConfirmedCount     int         `json:"confirmedCount"`
	ResolvedCount      int         `json:"resolvedCount"`
	ActiveIncidents    int         `json:"activeIncidents"`
	DetectedIncidents  []*Incident `json:"detectedIncidents"`
	ConfirmedIncidents []*Incident `json:"confirmedIncidents"`
}

type QuickStatistics struct {
	TodayIncidents           int64   `json:"todayIncidents"`
	WeekIncidents            int64   `json:"weekIncidents"`
	AvgProcessingTime        string  `json:"avgProcessingTime"`
	AvgProcessingTimeMinutes float64 `json:"avgProcessingTimeMinutes"`
}
