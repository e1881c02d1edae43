package services_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code4imabari/kyukyu-annai/internal/application/services"
	"github.com/code4imabari/kyukyu-annai/internal/domain/entities"
	"github.com/code4imabari/kyukyu-annai/internal/infrastructure/storage"
)

type stubSynthesizer struct {
	calls int
	audio []byte
	err   error
	texts []string
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	s.calls++
	s.texts = append(s.texts, text)
	if s.err != nil {
		return nil, s.err
	}
	return s.audio, nil
}

func TestFormatTimeRange(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"10:00～18:00", "10時から18時まで"},
		{"09:30～翌07:00", "9時30分から翌日7時まで"},
		{"08:00～12:00 / 13:00～17:00", "8時から12時まで、13時から17時まで"},
		{"09:00～17:30", "9時から17時30分まで"},
		{"09:00～17:00（受付16:30まで）", "9時から17時まで"},
		{"", ""},
		{"終日対応", ""},
		{"終日対応 / 10:00～18:00", "10時から18時まで"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, services.FormatTimeRange(tt.raw))
		})
	}
}

func TestBuildAnnouncement(t *testing.T) {
	day := &entities.DayRecord{
		DateWeek: "2025年01月02日（木曜日）",
		Hospitals: []entities.HospitalEntry{
			{
				Name:        "第一病院",
				Medical:     "内科",
				Time:        "09:00～17:00",
				Daytime:     "0898-00-0001",
				HiraAddress: "いまばりしまちいちばん",
				HiraName:    "だいいちびょういん",
				Lat:         34.0, Lon: 133.0,
				Type: 70,
			},
			{
				Name:        "歯科クリニック",
				Medical:     "歯科",
				Time:        "10:00～18:00",
				Daytime:     "0898-00-0002",
				HiraAddress: "いまばりしまちにばん",
				HiraName:    "しかくりにっく",
				Lat:         34.1, Lon: 133.1,
				Type: 8,
			},
		},
	}

	got := services.BuildAnnouncement(day)

	want := "1月2日（木曜日）の救急当番病院をおしらせします、" +
		"9時から17時まで、いまばりしまちいちばん、だいいちびょういん、電話、0898-00-0001、" +
		"歯科の診察は、10時から18時まで、いまばりしまちにばん、しかくりにっく、電話、0898-00-0002"
	assert.Equal(t, want, got)
}

func TestBuildAnnouncement_RemoteIslandPrefix(t *testing.T) {
	day := &entities.DayRecord{
		DateWeek: "2025年11月23日（日曜日）",
		Hospitals: []entities.HospitalEntry{
			{
				Name:        "島の診療所",
				Medical:     "内科",
				Time:        "08:30～17:00",
				Daytime:     "0897-00-0001",
				HiraAddress: "おおみしまちょう",
				HiraName:    "しまのしんりょうじょ",
				Lat:         34.2, Lon: 133.0,
				Type: 9,
			},
		},
	}

	got := services.BuildAnnouncement(day)

	assert.Equal(t,
		"11月23日（日曜日）の救急当番病院をおしらせします、島しょ部の診察は、8時30分から17時まで、おおみしまちょう、しまのしんりょうじょ、電話、0897-00-0001",
		got)
}

func TestEnsureAudio_SynthesizesOnce(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewArtifactStore(dir)
	require.NoError(t, err)

	synth := &stubSynthesizer{audio: []byte("mp3-bytes")}
	svc := services.NewAnnouncementService(synth, store)

	day := remoteIslandDay()

	require.NoError(t, svc.EnsureAudio(context.Background(), "2025-11-23", day))
	require.NoError(t, svc.EnsureAudio(context.Background(), "2025-11-23", day))

	assert.Equal(t, 1, synth.calls)
	assert.True(t, svc.HasAudio("2025-11-23"))

	data, err := os.ReadFile(filepath.Join(dir, "2025-11-23.mp3"))
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), data)
}

func TestEnsureAudio_FailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewArtifactStore(dir)
	require.NoError(t, err)

	synth := &stubSynthesizer{err: errors.New("endpoint down")}
	svc := services.NewAnnouncementService(synth, store)

	err = svc.EnsureAudio(context.Background(), "2025-11-23", remoteIslandDay())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2025-11-23")
	assert.False(t, svc.HasAudio("2025-11-23"))

	// A later attempt synthesizes again rather than serving a partial artifact.
	synth.err = nil
	synth.audio = []byte("ok")
	require.NoError(t, svc.EnsureAudio(context.Background(), "2025-11-23", remoteIslandDay()))
	assert.Equal(t, 2, synth.calls)
	assert.True(t, svc.HasAudio("2025-11-23"))
}

func remoteIslandDay() *entities.DayRecord {
	return &entities.DayRecord{
		DateWeek: "2025年11月23日（日曜日）",
		Hospitals: []entities.HospitalEntry{
			{
				Name:        "島の診療所",
				Medical:     "内科",
				Time:        "08:30～17:00",
				Daytime:     "0897-00-0001",
				HiraAddress: "おおみしまちょう",
				HiraName:    "しまのしんりょうじょ",
				Lat:         34.2, Lon: 133.0,
				Type: 9,
			},
		},
	}
}
