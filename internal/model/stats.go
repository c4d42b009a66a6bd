package model

// Stats are the derived read-only counters shown on the sysop dashboard
type Stats struct {
	TotalPlayers     int // non-admin accounts
	ActiveSessions   int // distinct accounts holding at least one session
	RecentlyActive   int // profiles with activity inside the recent window
	TotalConnections int // session rows
}
