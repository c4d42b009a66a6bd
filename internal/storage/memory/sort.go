package memory

import (
	"sort"

	"github.com/arkade-games/adastra-server/internal/model"
)

// sortPlayerRecords orders by last activity descending; profiles that have
// never synced sort last, with account id as a stable tiebreaker so the
// ordering is deterministic
func sortPlayerRecords(records []model.PlayerRecord) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i].Profile.LastActivity, records[j].Profile.LastActivity
		if !a.Equal(b) {
			return a.After(b)
		}
		return records[i].Account.ID < records[j].Account.ID
	})
}
