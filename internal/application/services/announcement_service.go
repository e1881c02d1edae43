package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/code4imabari/kyukyu-annai/internal/domain/entities"
	"github.com/code4imabari/kyukyu-annai/internal/domain/providers"
	"github.com/code4imabari/kyukyu-annai/internal/infrastructure/storage"
)

var (
	// One consultation window: start, wave dash, optional next-day marker, end.
	// Matched as a prefix, trailing annotations are ignored.
	timeRangePattern = regexp.MustCompile(`^(\d{2}):(\d{2})～(翌)?(\d{2}):(\d{2})`)

	// Long date label as published upstream, e.g. 2025年01月02日. The year is
	// dropped and zero padding stripped for the spoken form.
	longDatePattern = regexp.MustCompile(`\d{4}年0?(\d+)月0?(\d+)日`)
)

// timeRangeSeparator joins multiple consultation windows in the raw feed.
const timeRangeSeparator = " / "

// FormatTimeRange renders a raw consultation-hours string like
// "09:30～翌07:00" as a spoken Japanese phrase. Multiple windows separated by
// " / " are joined with an ideographic comma; windows that do not match the
// expected shape are skipped.
func FormatTimeRange(raw string) string {
	var converted []string
	for _, window := range strings.Split(raw, timeRangeSeparator) {
		m := timeRangePattern.FindStringSubmatch(window)
		if m == nil {
			if window != "" {
				log.Debug().Str("window", window).Msg("skipping unrecognized time range window")
			}
			continue
		}

		start := clockPhrase(m[1], m[2])
		end := clockPhrase(m[4], m[5])
		if m[3] != "" {
			converted = append(converted, start+"から翌日"+end+"まで")
		} else {
			converted = append(converted, start+"から"+end+"まで")
		}
	}
	return strings.Join(converted, "、")
}

// clockPhrase renders HH/MM as a spoken time, dropping leading zeros and the
// minute part when it is exactly "00".
func clockPhrase(hour, minute string) string {
	h, _ := strconv.Atoi(hour)
	if minute == "00" {
		return fmt.Sprintf("%d時", h)
	}
	m, _ := strconv.Atoi(minute)
	return fmt.Sprintf("%d時%d分", h, m)
}

// BuildAnnouncement assembles the spoken schedule for one day: preamble,
// then per hospital the category prefix (when any), consultation hours,
// phonetic address and name, and the phone number, all joined with "、".
func BuildAnnouncement(day *entities.DayRecord) string {
	shortDate := longDatePattern.ReplaceAllString(day.DateWeek, "${1}月${2}日")

	phrases := []string{shortDate + "の救急当番病院をおしらせします"}

	for i := range day.Hospitals {
		h := &day.Hospitals[i]
		if prefix := h.Type.SpeechPrefix(h.Medical); prefix != "" {
			phrases = append(phrases, prefix)
		}
		phrases = append(phrases,
			FormatTimeRange(h.Time),
			h.HiraAddress,
			h.HiraName,
			"電話",
			h.Daytime,
		)
	}

	return strings.Join(phrases, "、")
}

// AnnouncementService turns day records into audio artifacts.
type AnnouncementService struct {
	synthesizer providers.SpeechSynthesizer
	store       *storage.ArtifactStore
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(synthesizer providers.SpeechSynthesizer, store *storage.ArtifactStore) *AnnouncementService {
	return &AnnouncementService{
		synthesizer: synthesizer,
		store:       store,
	}
}

// EnsureAudio synthesizes and stores the announcement for a date unless the
// artifact already exists. Existence is the only idempotency check: a stale
// artifact is never regenerated even if the day record has changed since.
// Synthesis failures surface to the caller; nothing is retried.
func (s *AnnouncementService) EnsureAudio(ctx context.Context, dateKey string, day *entities.DayRecord) error {
	if s.store.Exists(dateKey) {
		return nil
	}

	text := BuildAnnouncement(day)
	log.Info().Str("date", dateKey).Str("announcement", text).Msg("synthesizing announcement")

	audio, err := s.synthesizer.Synthesize(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to synthesize announcement for %s: %w", dateKey, err)
	}

	return s.store.Save(dateKey, audio)
}

// HasAudio reports whether the artifact for a date exists.
func (s *AnnouncementService) HasAudio(dateKey string) bool {
	return s.store.Exists(dateKey)
}

// AudioPath returns the artifact path for a date.
func (s *AnnouncementService) AudioPath(dateKey string) string {
	return s.store.Path(dateKey)
}
