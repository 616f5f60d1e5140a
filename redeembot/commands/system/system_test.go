package system

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/topheroes-tools/redeembot/redeembot/analytics"
	"github.com/topheroes-tools/redeembot/redeembot/redeemer"
)

func TestInlineServers(t *testing.T) {
	guilds := make([]GuildInfo, 7)
	for i := range guilds {
		guilds[i] = GuildInfo{ID: 100, Name: "Guild", MemberCount: 3}
	}

	tests := []struct {
		name     string
		n        int
		contains []string
		excludes []string
	}{
		{name: "none", n: 0, contains: []string{"not currently in any servers"}},
		{
			name:     "fits inline",
			n:        2,
			contains: []string{"(2 Total)", "1. **Guild** (ID: `100`) - 3 members", "2. **Guild**"},
			excludes: []string{"more!"},
		},
		{
			name:     "overflow goes to DM",
			n:        7,
			contains: []string{"(7 Total)", "5. **Guild**", "... and **2** more!"},
			excludes: []string{"6. **Guild**"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InlineServers(ServerLines(guilds[:tt.n]))
			for _, c := range tt.contains {
				if !strings.Contains(got, c) {
					t.Errorf("InlineServers() = %q, missing %q", got, c)
				}
			}
			for _, x := range tt.excludes {
				if strings.Contains(got, x) {
					t.Errorf("InlineServers() = %q, should not contain %q", got, x)
				}
			}
		})
	}
}

func TestVersionInfo(t *testing.T) {
	got := VersionInfo("1.2.3", "v1.2.3", "2025-01-01T00:00:00Z")
	for _, want := range []string{"Version: `1.2.3`", "Git Tag: `v1.2.3`", "Build: `2025-01-01T00:00:00Z`", runtime.Version()} {
		if !strings.Contains(got, want) {
			t.Errorf("VersionInfo() = %q, missing %q", got, want)
		}
	}
}

func TestStatsSummary(t *testing.T) {
	got := StatsSummary(analytics.Stats{Total: 3, Successful: 2, Failed: 1, UniqueCodes: 1, UniqueUsers: 3})
	if !strings.Contains(got, "Success rate: **66.7%**") {
		t.Errorf("StatsSummary() = %q", got)
	}
}

func TestRecordLine(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	ok := RecordLine(redeemer.OutcomeRecord{AccountID: "1", Kind: redeemer.KindRedeem, Target: "ABC", Succeeded: true, Timestamp: ts})
	if want := "✅ <t:1700000000:t> `1` redeem `ABC`"; ok != want {
		t.Errorf("RecordLine(success) = %q, want %q", ok, want)
	}

	failed := RecordLine(redeemer.OutcomeRecord{AccountID: "2", Kind: redeemer.KindCheckIn, Target: "7", Reason: "rejected (1): nope", Timestamp: ts})
	if want := "❌ <t:1700000000:t> `2` check-in `7` - rejected (1): nope"; failed != want {
		t.Errorf("RecordLine(failure) = %q, want %q", failed, want)
	}
}
