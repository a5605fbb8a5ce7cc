package redis

import (
	"fmt"
	"time"
)

const (
	FilterOptionsCacheTTL = 5 * time.Minute
	SyncSummaryCacheTTL   = 24 * time.Hour
	MatchSnapshotCacheTTL = 30 * time.Minute
)

func FilterOptionsKey(includeClosed bool) string {
	if includeClosed {
		return "recruit:facets:all"
	}
	return "recruit:facets:open"
}

func SyncSummaryKey() string {
	return "recruit:sync:last"
}

func MatchSnapshotKey(profileDigest string) string {
	return fmt.Sprintf("recruit:match:%s", profileDigest)
}
