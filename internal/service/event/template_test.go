package event

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/proactive-event-sender/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTemplate = `{
	"timestamp": "",
	"referenceId": "unique-id-of-this-event-instance-abc123",
	"expiryTime": "",
	"event": {
		"name": "AMAZON.MessageAlert.Activated",
		"payload": {
			"state": {"status": "UNREAD", "freshness": "NEW"},
			"messageGroup": {
				"creator": {"name": "placeholder"},
				"count": 1,
				"urgency": "URGENT"
			}
		}
	},
	"localizedAttributes": [{"locale": "en-US", "source": "localizedattribute:source"}],
	"relevantAudience": {"type": "Multicast", "payload": {}}
}`

func writeTemplate(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "message-template.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func loadTestTemplate(t *testing.T) *Template {
	t.Helper()

	tmpl, err := LoadTemplate(writeTemplate(t, testTemplate))
	require.NoError(t, err)
	return tmpl
}

func creatorName(t *testing.T, e map[string]any) string {
	t.Helper()

	ev := e["event"].(map[string]any)
	payload := ev["payload"].(map[string]any)
	group := payload["messageGroup"].(map[string]any)
	creator := group["creator"].(map[string]any)
	return creator["name"].(string)
}

// =============================================================================
// LoadTemplate
// =============================================================================

func TestLoadTemplate_Errors(t *testing.T) {
	t.Run("파일 없음", func(t *testing.T) {
		_, err := LoadTemplate(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.System))
	})

	t.Run("잘못된 JSON", func(t *testing.T) {
		_, err := LoadTemplate(writeTemplate(t, `{"event": `))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
	})

	t.Run("creator 객체 없음", func(t *testing.T) {
		_, err := LoadTemplate(writeTemplate(t, `{"event": {"name": "AMAZON.MessageAlert.Activated"}}`))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})
}

// =============================================================================
// Build
// =============================================================================

func TestBuild(t *testing.T) {
	tmpl := loadTestTemplate(t)
	ts := time.Date(2024, 3, 1, 9, 30, 15, 123456789, time.FixedZone("KST", 9*60*60))

	e, err := tmpl.Build("새 메시지가 도착했습니다", ts, 24)
	require.NoError(t, err)

	assert.Equal(t, "새 메시지가 도착했습니다", creatorName(t, e))
	assert.Equal(t, "2024-03-01T00:30:15.123Z", e["timestamp"])
	assert.Equal(t, "2024-03-02T00:30:15.123Z", e["expiryTime"])

	// 나머지 필드는 템플릿 그대로 유지됩니다.
	assert.Equal(t, "unique-id-of-this-event-instance-abc123", e["referenceId"])
	ev := e["event"].(map[string]any)
	assert.Equal(t, "AMAZON.MessageAlert.Activated", ev["name"])
	assert.Len(t, e["localizedAttributes"], 1)
}

func TestBuild_ExpiryTime(t *testing.T) {
	tmpl := loadTestTemplate(t)
	ts := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		validityHours float64
		wantExpiry    string
	}{
		{name: "0시간", validityHours: 0, wantExpiry: "2024-12-31T23:00:00.000Z"},
		{name: "1시간 (연도 변경)", validityHours: 1, wantExpiry: "2025-01-01T00:00:00.000Z"},
		{name: "소수 시간", validityHours: 1.5, wantExpiry: "2025-01-01T00:30:00.000Z"},
		{name: "밀리초 미만 절사", validityHours: 0.0000001, wantExpiry: "2024-12-31T23:00:00.000Z"},
		{name: "여러 날", validityHours: 24 * 7, wantExpiry: "2025-01-07T23:00:00.000Z"},
		{name: "1년", validityHours: 24 * 365, wantExpiry: "2025-12-31T23:00:00.000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tmpl.Build("msg", ts, tt.validityHours)
			require.NoError(t, err)

			assert.Equal(t, "2024-12-31T23:00:00.000Z", e["timestamp"])
			assert.Equal(t, tt.wantExpiry, e["expiryTime"])

			// expiryTime - timestamp == validityHours × 3,600,000 ms (밀리초 단위 절사)
			start, err := time.Parse(TimeLayout, e["timestamp"].(string))
			require.NoError(t, err)
			end, err := time.Parse(TimeLayout, e["expiryTime"].(string))
			require.NoError(t, err)
			assert.Equal(t, int64(tt.validityHours*3600000), end.Sub(start).Milliseconds())
		})
	}
}

func TestBuild_ExpiryTime_LargeValidity(t *testing.T) {
	tmpl := loadTestTemplate(t)
	ts := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)

	// time.Duration 범위(약 292년)를 넘는 유효 시간도 밀리초 단위로 정확히 더해져야 합니다.
	e, err := tmpl.Build("msg", ts, 1e7)
	require.NoError(t, err)

	start, err := time.Parse(TimeLayout, e["timestamp"].(string))
	require.NoError(t, err)
	end, err := time.Parse(TimeLayout, e["expiryTime"].(string))
	require.NoError(t, err)

	assert.True(t, end.After(start), "expiryTime(%s)이 timestamp보다 이전입니다", e["expiryTime"])
	assert.Equal(t, int64(36_000_000_000_000), end.UnixMilli()-start.UnixMilli())
	assert.Equal(t, "3165-10-18T15:00:00.000Z", e["expiryTime"])
}

func TestBuild_ExpiryTime_OutOfRange(t *testing.T) {
	tmpl := loadTestTemplate(t)
	ts := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)

	for _, hours := range []float64{1e12, -1e12, math.Inf(1), math.NaN()} {
		_, err := tmpl.Build("msg", ts, hours)
		require.Error(t, err, "validity_hours=%v", hours)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	}
}

func TestBuild_DoesNotMutateTemplate(t *testing.T) {
	tmpl := loadTestTemplate(t)

	first, err := tmpl.Build("first", time.Now(), 1)
	require.NoError(t, err)
	second, err := tmpl.Build("second", time.Now(), 1)
	require.NoError(t, err)

	assert.Equal(t, "first", creatorName(t, first))
	assert.Equal(t, "second", creatorName(t, second))

	// 반환된 이벤트를 수정해도 템플릿에 영향이 없어야 합니다.
	first["referenceId"] = "changed"
	third, err := tmpl.Build("third", time.Now(), 1)
	require.NoError(t, err)
	assert.Equal(t, "unique-id-of-this-event-instance-abc123", third["referenceId"])
	assert.Equal(t, "placeholder", tmpl.k.String(creatorNamePath))
}

func TestBuild_Concurrent(t *testing.T) {
	tmpl := loadTestTemplate(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			msg := string(rune('a' + i))
			e, err := tmpl.Build(msg, time.Now(), 1)
			assert.NoError(t, err)
			assert.Equal(t, msg, creatorName(t, e))
		}(i)
	}
	wg.Wait()
}

func TestBuild_MarshalsToJSON(t *testing.T) {
	tmpl := loadTestTemplate(t)

	e, err := tmpl.Build("msg", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2)
	require.NoError(t, err)

	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"expiryTime":"2024-01-01T02:00:00.000Z"`)
	assert.Contains(t, string(b), `"name":"msg"`)
}
