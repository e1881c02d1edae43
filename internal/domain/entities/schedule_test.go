package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code4imabari/kyukyu-annai/internal/domain/entities"
)

func validDayJSON(name string) string {
	return `{
		"date_week": "2025年1月2日（木曜日）",
		"hospitals": [
			{
				"name": "` + name + `",
				"medical": "内科",
				"time": "09:00～17:00",
				"daytime": "0898-00-0000",
				"address": "今治市町1-1-1",
				"hira_address": "いまばりしまち",
				"hira_name": "びょういん",
				"lat": 34.066,
				"lon": 132.997,
				"type": 70,
				"link": "https://example.com/h1"
			}
		]
	}`
}

func TestParseFeed_PreservesKeyOrder(t *testing.T) {
	// Keys deliberately out of lexical order: the upstream order wins.
	data := `{
		"2025-01-03": ` + validDayJSON("第三病院") + `,
		"2025-01-01": ` + validDayJSON("第一病院") + `,
		"2025-01-02": ` + validDayJSON("第二病院") + `
	}`

	feed, err := entities.ParseFeed([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-01-03", "2025-01-01", "2025-01-02"}, feed.Dates())
	assert.Equal(t, "2025-01-03", feed.MinDate())
	assert.Equal(t, "2025-01-02", feed.MaxDate())

	day, ok := feed.Day("2025-01-01")
	require.True(t, ok)
	assert.Equal(t, "第一病院", day.Hospitals[0].Name)

	_, ok = feed.Day("2025-12-31")
	assert.False(t, ok)
}

func TestParseFeed_Empty(t *testing.T) {
	_, err := entities.ParseFeed([]byte(`{}`))
	assert.Error(t, err)
}

func TestParseFeed_NotAnObject(t *testing.T) {
	_, err := entities.ParseFeed([]byte(`[1, 2, 3]`))
	assert.Error(t, err)
}

func TestParseFeed_MissingRequiredFields(t *testing.T) {
	data := `{
		"2025-01-01": {
			"date_week": "2025年1月1日（水曜日）",
			"hospitals": [
				{"medical": "内科", "time": "09:00～17:00", "daytime": "0898-00-0000"}
			]
		}
	}`

	_, err := entities.ParseFeed([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2025-01-01")
}

func TestDayRecordValidate(t *testing.T) {
	entry := entities.HospitalEntry{
		Name:        "病院",
		Medical:     "内科",
		Time:        "09:00～17:00",
		Daytime:     "0898-00-0000",
		Address:     "今治市",
		HiraAddress: "いまばりし",
		HiraName:    "びょういん",
		Lat:         34.0,
		Lon:         133.0,
	}

	day := &entities.DayRecord{DateWeek: "2025年1月1日", Hospitals: []entities.HospitalEntry{entry}}
	assert.NoError(t, day.Validate())

	noHospitals := &entities.DayRecord{DateWeek: "2025年1月1日"}
	assert.Error(t, noHospitals.Validate())

	noLabel := &entities.DayRecord{Hospitals: []entities.HospitalEntry{entry}}
	assert.Error(t, noLabel.Validate())

	noCoords := entry
	noCoords.Lat = 0
	badDay := &entities.DayRecord{DateWeek: "2025年1月1日", Hospitals: []entities.HospitalEntry{noCoords}}
	assert.Error(t, badDay.Validate())
}
