package snapshot_test

import (
	"testing"
	"time"

	"github.com/rizesql/timeserver/internal/assert"
	"github.com/rizesql/timeserver/internal/snapshot"
)

func TestResolveLocale(t *testing.T) {
	tests := []struct {
		lang string
		want *snapshot.Locale
	}{
		{"en", snapshot.English},
		{"EN", snapshot.English},
		{"en-US", snapshot.English},
		{"en_GB.UTF-8", snapshot.English},
		{"en_US:en", snapshot.English},
		{"zh-cn", snapshot.Chinese},
		{"zh_CN", snapshot.Chinese},
		{"zh", snapshot.Chinese},
		{"fr", snapshot.Chinese},
		{"", snapshot.Chinese},
		{"C", snapshot.Chinese},
		{"C.UTF-8", snapshot.Chinese},
		{"!!", snapshot.Chinese},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			assert.Equal(t, snapshot.ResolveLocale(tt.lang).Name(), tt.want.Name())
		})
	}
}

func TestDefaultLocale(t *testing.T) {
	assert.Equal(t, snapshot.DefaultLocale().Name(), "zh-cn")

	locales := snapshot.Locales()
	assert.Equal(t, len(locales), 2)
	assert.Equal(t, locales[0].Name(), "zh-cn")
}

func TestLocaleNames(t *testing.T) {
	assert.Equal(t, snapshot.English.WeekdayName(time.Sunday), "Sunday")
	assert.Equal(t, snapshot.Chinese.WeekdayName(time.Saturday), "星期六")
	assert.Equal(t, snapshot.English.MonthName(time.December), "December")
	assert.Equal(t, snapshot.Chinese.MonthName(time.November), "十一月")
}
