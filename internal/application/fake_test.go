package application

import (
	"context"
	"errors"
	"sort"
	"sync"

	"foxhole/internal/models"
	"foxhole/internal/repository"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

// fakeStore is an in-memory stand-in for the three repositories.
type fakeStore struct {
	mu      sync.Mutex
	wars    []models.War
	scores  []models.ScoreEntry
	counts  map[countKey]int
	pubs    map[int64]models.LivePublication
	editLog []models.EditLogEntry

	err   error
	calls []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		counts: make(map[countKey]int),
		pubs:   make(map[int64]models.LivePublication),
	}
}

func (f *fakeStore) repos() *repository.Repository {
	return &repository.Repository{War: f, Ledger: f, Publication: f}
}

func (f *fakeStore) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeStore) StartWar(_ context.Context, name string) (models.War, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("StartWar"); err != nil {
		return models.War{}, err
	}
	for _, w := range f.wars {
		if w.Name == name {
			return models.War{}, repository.ErrWarExists
		}
	}
	for i := range f.wars {
		f.wars[i].Active = false
	}
	w := models.War{ID: int64(len(f.wars) + 1), Name: name, Active: true}
	f.wars = append(f.wars, w)
	return w, nil
}

func (f *fakeStore) GetActiveWar(context.Context) (*models.War, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetActiveWar"); err != nil {
		return nil, err
	}
	for _, w := range f.wars {
		if w.Active {
			w := w
			return &w, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetWarByName(_ context.Context, name string) (*models.War, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetWarByName"); err != nil {
		return nil, err
	}
	for _, w := range f.wars {
		if w.Name == name {
			w := w
			return &w, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListPastWars(_ context.Context, limit int) ([]models.War, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.War
	for i := len(f.wars) - 1; i >= 0 && len(out) < limit; i-- {
		if !f.wars[i].Active {
			out = append(out, f.wars[i])
		}
	}
	return out, f.record("ListPastWars")
}

func (f *fakeStore) addPoints(player string, warID int64, points int) {
	for i := range f.scores {
		if f.scores[i].PlayerID == player && f.scores[i].WarID == warID {
			f.scores[i].Points += points
			return
		}
	}
	f.scores = append(f.scores, models.ScoreEntry{PlayerID: player, WarID: warID, Points: points})
}

type countKey struct {
	player  string
	warID   int64
	vehicle string
	name    string
}

func (f *fakeStore) RecordDestruction(_ context.Context, d models.Destruction) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("RecordDestruction"); err != nil {
		return 0, err
	}
	if d.Amount <= 0 {
		return 0, repository.ErrInvalidAmount
	}
	w, _ := models.VehicleWeight(d.Vehicle)
	f.counts[countKey{d.PlayerID, d.WarID, d.Vehicle, d.DisplayName}] += d.Amount
	f.addPoints(d.PlayerID, d.WarID, w*d.Amount)
	return w * d.Amount, nil
}

func (f *fakeStore) CorrectDestruction(_ context.Context, c models.Correction) (models.EditLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CorrectDestruction"); err != nil {
		return models.EditLogEntry{}, err
	}
	w, _ := models.VehicleWeight(c.Vehicle)
	key := countKey{c.TargetID, c.WarID, c.Vehicle, c.DisplayName}
	before := f.counts[key]
	after, pts := models.ApplyCorrection(before, c.Delta, w)
	f.counts[key] = after
	f.addPoints(c.TargetID, c.WarID, pts)
	e := models.EditLogEntry{
		ID: int64(len(f.editLog) + 1), WarID: c.WarID, EditorID: c.EditorID, TargetID: c.TargetID,
		Vehicle: c.Vehicle, DisplayName: c.DisplayName, Delta: c.Delta,
		BeforeCount: before, AfterCount: after, PointsDelta: pts,
	}
	f.editLog = append(f.editLog, e)
	return e, nil
}

func (f *fakeStore) GetPlayerStats(_ context.Context, player string, warID int64, vehicle string) ([]models.VehicleStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := []models.VehicleStat{}
	for k, n := range f.counts {
		if k.player != player || k.warID != warID || (vehicle != "" && k.vehicle != vehicle) {
			continue
		}
		stats = append(stats, models.VehicleStat{Vehicle: k.vehicle, DisplayName: k.name, Count: n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].DisplayName < stats[j].DisplayName
	})
	return stats, f.record("GetPlayerStats")
}

func (f *fakeStore) GetPlayerTotalPoints(_ context.Context, player string, warID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.scores {
		if s.PlayerID == player && s.WarID == warID {
			return s.Points, f.record("GetPlayerTotalPoints")
		}
	}
	return 0, f.record("GetPlayerTotalPoints")
}

func (f *fakeStore) GetWarLeaderboard(_ context.Context, warID int64, limit int) ([]models.ScoreEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetWarLeaderboard"); err != nil {
		return nil, err
	}
	var out []models.ScoreEntry
	for _, s := range f.scores {
		if s.WarID == warID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) GetVehicleTotals(_ context.Context, warID int64) ([]models.VehicleTotal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetVehicleTotals"); err != nil {
		return nil, err
	}
	sums := make(map[string]int)
	for k, n := range f.counts {
		if k.warID == warID {
			sums[k.vehicle] += n
		}
	}
	out := []models.VehicleTotal{}
	for v, n := range sums {
		out = append(out, models.VehicleTotal{Vehicle: v, Total: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Vehicle < out[j].Vehicle
	})
	return out, nil
}

func (f *fakeStore) GetEditLog(_ context.Context, warID int64, limit int) ([]models.EditLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.EditLogEntry
	for i := len(f.editLog) - 1; i >= 0 && len(out) < limit; i-- {
		if f.editLog[i].WarID == warID {
			out = append(out, f.editLog[i])
		}
	}
	return out, f.record("GetEditLog")
}

func (f *fakeStore) Register(_ context.Context, p models.LivePublication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("Register"); err != nil {
		return err
	}
	f.pubs[p.WarID] = p
	return nil
}

func (f *fakeStore) Lookup(_ context.Context, warID int64) (*models.LivePublication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("Lookup"); err != nil {
		return nil, err
	}
	p, ok := f.pubs[warID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type sinkCall struct {
	Location string
	Handle   string
	Text     string
}

type fakeSink struct {
	mu        sync.Mutex
	created   []sinkCall
	updated   []sinkCall
	createErr error
	updateErr map[string]error
}

func (s *fakeSink) CreateMessage(_ context.Context, location, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return "", s.createErr
	}
	handle := "msg-" + string(rune('a'+len(s.created)))
	s.created = append(s.created, sinkCall{Location: location, Handle: handle, Text: text})
	return handle, nil
}

func (s *fakeSink) UpdateMessage(_ context.Context, location, handle, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated = append(s.updated, sinkCall{Location: location, Handle: handle, Text: text})
	return s.updateErr[handle]
}

func (s *fakeSink) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created) + len(s.updated)
}

type fakeResolver struct {
	missing map[string]bool
	failing map[string]bool
}

func (r fakeResolver) Resolve(_ context.Context, playerID string) (string, error) {
	if r.missing[playerID] {
		return "", ErrNotFound
	}
	if r.failing[playerID] {
		return "", errors.New("gateway timeout")
	}
	return "name-" + playerID, nil
}

type fakeMirror struct {
	title string
	rows  [][]interface{}
	err   error
}

func (m *fakeMirror) Publish(_ context.Context, title string, rows [][]interface{}) error {
	m.title = title
	m.rows = rows
	return m.err
}

func allow(string) bool { return true }
func deny(string) bool  { return false }
