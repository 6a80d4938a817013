package calendar

import (
	"context"
	"sort"
	"time"

	"go-campzeo-client/src/application/store"
	domainCampaign "go-campzeo-client/src/domain/campaign"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/repository/backend"

	"go.uber.org/zap"
)

const dateKeyLayout = "2006-01-02"

// MapEvents turns scheduled posts into zero-length calendar events titled by
// platform. Posts without a scheduled time are skipped.
func MapEvents(posts []domainCampaign.ScheduledPost) []domainCampaign.CalendarEvent {
	events := make([]domainCampaign.CalendarEvent, 0, len(posts))
	for _, post := range posts {
		if post.ScheduledPostTime.IsZero() {
			continue
		}
		events = append(events, domainCampaign.CalendarEvent{
			ID:         post.ID,
			CampaignID: post.CampaignID,
			Title:      string(post.Type),
			Subject:    post.Subject,
			Platform:   post.Type,
			Start:      post.ScheduledPostTime,
			End:        post.ScheduledPostTime,
		})
	}
	return events
}

// DateKey is the YYYY-MM-DD bucket key of t in loc
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateKeyLayout)
}

// GroupEventsByDate buckets events by local date. Buckets are ordered by date
// and events inside a bucket by start time, so the result only depends on the input set.
func GroupEventsByDate(events []domainCampaign.CalendarEvent, loc *time.Location) []domainCampaign.DateBucket {
	if loc == nil {
		loc = time.Local
	}
	byKey := map[string][]domainCampaign.CalendarEvent{}
	for _, event := range events {
		key := DateKey(event.Start, loc)
		byKey[key] = append(byKey[key], event)
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([]domainCampaign.DateBucket, 0, len(keys))
	for _, key := range keys {
		bucket := append([]domainCampaign.CalendarEvent(nil), byKey[key]...)
		sort.SliceStable(bucket, func(i, j int) bool {
			if !bucket[i].Start.Equal(bucket[j].Start) {
				return bucket[i].Start.Before(bucket[j].Start)
			}
			return bucket[i].ID < bucket[j].ID
		})
		buckets = append(buckets, domainCampaign.DateBucket{Date: key, Events: bucket})
	}
	return buckets
}

// UpcomingBuckets keeps the events strictly after now and drops emptied buckets
func UpcomingBuckets(buckets []domainCampaign.DateBucket, now time.Time) []domainCampaign.DateBucket {
	out := make([]domainCampaign.DateBucket, 0, len(buckets))
	for _, bucket := range buckets {
		var future []domainCampaign.CalendarEvent
		for _, event := range bucket.Events {
			if event.Start.After(now) {
				future = append(future, event)
			}
		}
		if len(future) > 0 {
			out = append(out, domainCampaign.DateBucket{Date: bucket.Date, Events: future})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ICalendarUseCase backs the dashboard calendar and upcoming list
type ICalendarUseCase interface {
	Events(ctx context.Context) ([]domainCampaign.CalendarEvent, error)
	Calendar(ctx context.Context) ([]domainCampaign.DateBucket, error)
	Upcoming(ctx context.Context) ([]domainCampaign.DateBucket, error)
}

type CalendarUseCase struct {
	postRepository backend.PostRepositoryInterface
	refresh        *store.Sequencer[[]domainCampaign.CalendarEvent]
	now            func() time.Time
	location       *time.Location
	Logger         *logger.Logger
}

func NewCalendarUseCase(
	postRepository backend.PostRepositoryInterface,
	now func() time.Time,
	location *time.Location,
	loggerInstance *logger.Logger,
) ICalendarUseCase {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.Local
	}
	return &CalendarUseCase{
		postRepository: postRepository,
		refresh:        store.NewSequencer[[]domainCampaign.CalendarEvent](),
		now:            now,
		location:       location,
		Logger:         loggerInstance,
	}
}

// Events fetches the scheduled posts. When a newer refresh was dispatched
// meanwhile, the newer result is returned instead of this one.
func (c *CalendarUseCase) Events(ctx context.Context) ([]domainCampaign.CalendarEvent, error) {
	ticket := c.refresh.Begin()
	posts, err := c.postRepository.GetScheduled(ctx)
	if err != nil {
		return nil, err
	}
	events := MapEvents(posts)
	if !c.refresh.Resolve(ticket, events) {
		c.Logger.Debug("Dropped stale calendar refresh", zap.Uint64("ticket", uint64(ticket)))
		if latest, ok := c.refresh.Latest(); ok {
			return latest, nil
		}
	}
	return events, nil
}

func (c *CalendarUseCase) Calendar(ctx context.Context) ([]domainCampaign.DateBucket, error) {
	events, err := c.Events(ctx)
	if err != nil {
		return nil, err
	}
	return GroupEventsByDate(events, c.location), nil
}

// Upcoming is recomputed against the clock on every call
func (c *CalendarUseCase) Upcoming(ctx context.Context) ([]domainCampaign.DateBucket, error) {
	buckets, err := c.Calendar(ctx)
	if err != nil {
		return nil, err
	}
	return UpcomingBuckets(buckets, c.now()), nil
}
