package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	parsed, err := ParseTimeOfDay("08:30:15")
	require.NoError(t, err)
	require.Equal(t, TimeOfDay{Hour: 8, Minute: 30, Second: 15}, parsed)
}

func TestParseTimeOfDayRejectsMalformed(t *testing.T) {
	for _, input := range []string{
		"", "08:00", "8 o'clock", "24:00:00", "08:60:00", "08:00:61",
		"08:00:00garbage", "08:00:00 ",
	} {
		_, err := ParseTimeOfDay(input)
		require.Error(t, err, "input %q", input)
	}
}

func TestTimeOfDayOrdering(t *testing.T) {
	early, err := ParseTimeOfDay("08:00:00")
	require.NoError(t, err)
	late, err := ParseTimeOfDay("18:00:00")
	require.NoError(t, err)

	require.True(t, early.Before(late))
	require.True(t, late.After(early))
	require.False(t, early.Before(early))
	require.False(t, early.After(early))
}

func TestTimeOfDayJSON(t *testing.T) {
	parsed, err := ParseTimeOfDay("09:05:00")
	require.NoError(t, err)

	data, err := json.Marshal(parsed)
	require.NoError(t, err)
	require.Equal(t, `"09:05:00"`, string(data))

	var decoded TimeOfDay
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, parsed, decoded)
}

func TestTimeOfDayScan(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.Scan("06:15:00"))
	require.Equal(t, TimeOfDay{Hour: 6, Minute: 15}, tod)

	require.NoError(t, tod.Scan([]byte("07:45:30")))
	require.Equal(t, TimeOfDay{Hour: 7, Minute: 45, Second: 30}, tod)

	require.NoError(t, tod.Scan("05:30:00.123456"))
	require.Equal(t, TimeOfDay{Hour: 5, Minute: 30}, tod)

	require.NoError(t, tod.Scan(time.Date(1, time.January, 1, 13, 20, 5, 0, time.UTC)))
	require.Equal(t, TimeOfDay{Hour: 13, Minute: 20, Second: 5}, tod)

	require.Error(t, tod.Scan(3.14))
}

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	parsed, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return parsed
}

func TestVehicleCoversWindow(t *testing.T) {
	vehicle := &Vehicle{
		AvailabilityStartTime: mustTime(t, "08:00:00"),
		AvailabilityEndTime:   mustTime(t, "18:00:00"),
	}

	require.True(t, vehicle.CoversWindow(mustTime(t, "09:00:00"), mustTime(t, "17:00:00")))
	require.True(t, vehicle.CoversWindow(mustTime(t, "08:00:00"), mustTime(t, "18:00:00")))
	require.False(t, vehicle.CoversWindow(mustTime(t, "07:00:00"), mustTime(t, "17:00:00")))
	require.False(t, vehicle.CoversWindow(mustTime(t, "09:00:00"), mustTime(t, "19:00:00")))
}
