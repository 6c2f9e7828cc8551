package services

import (
	"sort"
	"sync"
	"time"

	"github.com/timebridge/timebridge-server/models"
)

// MeetingCache mirrors one owner's meetings in memory so views can run
// synchronous queries between remote reads. It is not the source of
// truth; the database is.
type MeetingCache struct {
	mu       sync.RWMutex
	meetings map[uint]models.Meeting
}

func NewMeetingCache(meetings []models.Meeting) *MeetingCache {
	c := &MeetingCache{meetings: make(map[uint]models.Meeting, len(meetings))}
	for _, m := range meetings {
		c.meetings[m.ID] = m
	}
	return c
}

func (c *MeetingCache) Add(m models.Meeting) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.meetings[m.ID] = m
}

func (c *MeetingCache) Get(id uint) (models.Meeting, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.meetings[id]
	return m, ok
}

func (c *MeetingCache) Remove(id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.meetings, id)
}

func (c *MeetingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.meetings)
}

// UpdateStatus changes a meeting's status and recomputes its display
// color. The second return is false when the meeting is not cached.
func (c *MeetingCache) UpdateStatus(id uint, status string) (models.Meeting, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.meetings[id]
	if !ok {
		return models.Meeting{}, false
	}
	m.Status = status
	m.Color = models.StatusColor(status)
	c.meetings[id] = m
	return m, true
}

// Upcoming returns non-canceled meetings starting between the beginning
// of today and the end of today+7 days, ascending by start.
func (c *MeetingCache) Upcoming(now time.Time) []models.Meeting {
	from := dayStart(now)
	until := from.AddDate(0, 0, 8) // exclusive: end of today+7
	return c.window(func(m models.Meeting) bool {
		return !m.StartAt.Before(from) && m.StartAt.Before(until)
	})
}

// Later returns non-canceled meetings starting strictly after the
// upcoming window, ascending by start.
func (c *MeetingCache) Later(now time.Time) []models.Meeting {
	until := dayStart(now).AddDate(0, 0, 8)
	return c.window(func(m models.Meeting) bool {
		return !m.StartAt.Before(until)
	})
}

func (c *MeetingCache) window(keep func(models.Meeting) bool) []models.Meeting {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []models.Meeting{}
	for _, m := range c.meetings {
		if m.Status == models.StatusCanceled {
			continue
		}
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out
}
