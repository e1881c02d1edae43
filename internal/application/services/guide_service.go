package services

import (
	"context"
	"strings"

	"github.com/code4imabari/kyukyu-annai/internal/domain/entities"
	"github.com/code4imabari/kyukyu-annai/internal/domain/providers"
	apperrors "github.com/code4imabari/kyukyu-annai/pkg/errors"
)

// ErrDataNotFound is the user-facing message for a date with no listing.
const ErrDataNotFound = "データが見つかりません"

// DateRange bounds the date picker.
type DateRange struct {
	Dates []string `json:"dates"`
	Min   string   `json:"min"`
	Max   string   `json:"max"`
}

// DayView is one day's guide as rendered to the page: the table rows, the
// map block and audio availability.
type DayView struct {
	Date      string        `json:"date"`
	DateWeek  string        `json:"date_week"`
	Hospitals []HospitalRow `json:"hospitals"`
	Map       MapView       `json:"map"`
	Audio     AudioView     `json:"audio"`
}

// HospitalRow is one table row.
type HospitalRow struct {
	Name    string `json:"name"`
	Medical string `json:"medical"`
	Time    string `json:"time"`
	Daytime string `json:"daytime"`
	Address string `json:"address"`
	Link    string `json:"link"`
}

// MapView centers the map on the day's hospitals.
type MapView struct {
	Center  Coordinates `json:"center"`
	Markers []MapMarker `json:"markers"`
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// MapMarker is one map pin, one per distinct hospital name.
type MapMarker struct {
	Name    string  `json:"name"`
	Medical string  `json:"medical"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Color   string  `json:"color"`
}

// AudioView reports whether the announcement artifact is available.
type AudioView struct {
	Available bool   `json:"available"`
	URL       string `json:"url,omitempty"`
}

// GuideService serves the duty-hospital guide for selectable dates.
type GuideService struct {
	feed          providers.FeedProvider
	announcements *AnnouncementService
}

// NewGuideService creates a new guide service
func NewGuideService(feed providers.FeedProvider, announcements *AnnouncementService) *GuideService {
	return &GuideService{
		feed:          feed,
		announcements: announcements,
	}
}

// DateRange returns the selectable dates in feed order.
func (s *GuideService) DateRange(ctx context.Context) (*DateRange, error) {
	feed, err := s.feed.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	return &DateRange{
		Dates: feed.Dates(),
		Min:   feed.MinDate(),
		Max:   feed.MaxDate(),
	}, nil
}

// Day returns the guide view for one date. A date absent from the feed is a
// not-found error, recovered by the caller as a user-facing message; the
// synthesizer is never touched for such dates.
func (s *GuideService) Day(ctx context.Context, dateKey string) (*DayView, error) {
	feed, err := s.feed.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	day, ok := feed.Day(dateKey)
	if !ok {
		return nil, apperrors.NewNotFoundError(ErrDataNotFound)
	}

	view := &DayView{
		Date:     dateKey,
		DateWeek: day.DateWeek,
		Map:      buildMapView(day),
	}

	for _, h := range day.Hospitals {
		view.Hospitals = append(view.Hospitals, HospitalRow{
			Name:    h.Name,
			Medical: h.Medical,
			Time:    h.Time,
			Daytime: h.Daytime,
			Address: h.Address,
			Link:    h.Link,
		})
	}

	if s.announcements.HasAudio(dateKey) {
		view.Audio = AudioView{
			Available: true,
			URL:       "/api/schedule/days/" + dateKey + "/audio",
		}
	}

	return view, nil
}

// EnsureDayAudio synthesizes the announcement artifact for a date when it
// does not exist yet. Unknown dates fail with not-found before any synthesis.
func (s *GuideService) EnsureDayAudio(ctx context.Context, dateKey string) error {
	feed, err := s.feed.Fetch(ctx)
	if err != nil {
		return err
	}

	day, ok := feed.Day(dateKey)
	if !ok {
		return apperrors.NewNotFoundError(ErrDataNotFound)
	}

	return s.announcements.EnsureAudio(ctx, dateKey, day)
}

// AudioPath returns the artifact path for a date and whether it exists.
func (s *GuideService) AudioPath(dateKey string) (string, bool) {
	if !s.announcements.HasAudio(dateKey) {
		return "", false
	}
	return s.announcements.AudioPath(dateKey), true
}

// buildMapView groups entries by hospital name in first-seen order, joining
// department labels with "・", and centers on the mean position of all
// entries (duplicates included, matching the table the page shows).
func buildMapView(day *entities.DayRecord) MapView {
	var view MapView

	index := make(map[string]int)
	var latSum, lonSum float64
	for _, h := range day.Hospitals {
		latSum += h.Lat
		lonSum += h.Lon

		if i, ok := index[h.Name]; ok {
			view.Markers[i].Medical = strings.Join([]string{view.Markers[i].Medical, h.Medical}, "・")
			continue
		}
		index[h.Name] = len(view.Markers)
		view.Markers = append(view.Markers, MapMarker{
			Name:    h.Name,
			Medical: h.Medical,
			Address: h.Address,
			Lat:     h.Lat,
			Lon:     h.Lon,
			Color:   h.Type.MarkerColor(),
		})
	}

	n := float64(len(day.Hospitals))
	view.Center = Coordinates{Lat: latSum / n, Lon: lonSum / n}
	return view
}
