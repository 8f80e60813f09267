package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterPosts(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	w := ResolveWindow(Range30d, now)

	inWindow := now.AddDate(0, 0, -5).Format(time.RFC3339)
	outOfWindow := now.AddDate(0, 0, -45).Format(time.RFC3339)

	posts := []Record{
		{"createdAt": inWindow, "channels": []interface{}{"Instagram", "TikTok"}},
		{"createdAt": inWindow, "channels": []interface{}{"YouTube"}},
		{"createdAt": outOfWindow, "channels": []interface{}{"Instagram"}},
		{"createdAt": "not-a-date", "channels": []interface{}{"Instagram"}},
		{"caption": "no timestamp at all"},
		nil,
	}

	t.Run("all channels", func(t *testing.T) {
		got := FilterPosts(posts, w, AllChannels)
		assert.Len(t, got, 2)
	})

	t.Run("specific channel", func(t *testing.T) {
		got := FilterPosts(posts, w, "Instagram")
		require.Len(t, got, 1)
		assert.Contains(t, got[0].Record.StringsField("channels"), "Instagram")
	})

	t.Run("channel with no posts", func(t *testing.T) {
		got := FilterPosts(posts, w, "Twitch")
		assert.Empty(t, got)
	})

	t.Run("missing channel field fails an active filter", func(t *testing.T) {
		recs := []Record{{"createdAt": inWindow}}
		assert.Empty(t, FilterPosts(recs, w, "Instagram"))
		assert.Len(t, FilterPosts(recs, w, AllChannels), 1)
	})
}

func TestFilterMessages(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	w := ResolveWindow(Range7d, now)

	inWindow := now.AddDate(0, 0, -2).Format(time.RFC3339)

	messages := []Record{
		{"timestamp": inWindow, "platform": "Instagram"},
		{"timestamp": inWindow, "platform": "TikTok"},
		{"timestamp": now.AddDate(0, 0, -10).Format(time.RFC3339), "platform": "Instagram"},
	}

	assert.Len(t, FilterMessages(messages, w, AllChannels), 2)

	got := FilterMessages(messages, w, "Instagram")
	require.Len(t, got, 1)
	assert.Equal(t, "Instagram", got[0].Record.StringField("platform"))
}

func TestFilterRecordsCarriesNormalizedTimestamp(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	w := ResolveWindow(Range30d, now)

	epoch := now.AddDate(0, 0, -1).Unix()
	messages := []Record{
		{"timestamp": map[string]interface{}{"seconds": float64(epoch)}},
	}

	got := FilterMessages(messages, w, AllChannels)
	require.Len(t, got, 1)
	assert.Equal(t, epoch, got[0].At.Unix())
}
