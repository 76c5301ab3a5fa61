package domain

// Overview aggregates service-wide counters for the operations dashboard.
// Day windows are evaluated in the database's timezone.
type Overview struct {
	TotalUsers         int64
	TotalRooms         int64
	ActiveRooms        int64
	TotalTransfers     int64
	TotalVolumeMinor   int64
	RoomsToday         int64
	RoomsYesterday     int64
	TransfersToday     int64
	TransfersYesterday int64
}
