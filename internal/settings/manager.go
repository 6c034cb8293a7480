package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/teletext/internal/storage"
)

// Manager is the persistence facade for Settings and the time machine
// state. Construct one per session; a fresh instance is the reset hook.
type Manager struct {
	kv  storage.KV
	log zerolog.Logger
}

// NewManager creates a settings Manager on the shared medium.
func NewManager(kv storage.KV, log zerolog.Logger) *Manager {
	return &Manager{
		kv:  kv,
		log: log.With().Str("component", "settings").Logger(),
	}
}

// Load returns the persisted settings. An absent or corrupt record
// silently loads Defaults; loading never fails.
func (m *Manager) Load(ctx context.Context) Settings {
	raw, ok, err := m.kv.Get(ctx, settingsKey)
	if err != nil {
		m.log.Warn().Err(err).Msg("reading settings failed, using defaults")
		return Defaults()
	}
	if !ok {
		return Defaults()
	}

	var s Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		m.log.Warn().Err(err).Msg("corrupt settings record, using defaults")
		return Defaults()
	}
	return s
}

// Save persists the full settings record.
func (m *Manager) Save(ctx context.Context, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := m.kv.Put(ctx, settingsKey, string(data)); err != nil {
		return fmt.Errorf("persisting settings: %w", err)
	}
	return nil
}

// Update applies fn to the current record and persists the result.
// Fields fn does not touch keep their prior values exactly.
func (m *Manager) Update(ctx context.Context, fn func(*Settings)) (Settings, error) {
	s := m.Load(ctx)
	fn(&s)
	if err := m.Save(ctx, s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Reset restores the default record.
func (m *Manager) Reset(ctx context.Context) error {
	return m.Save(ctx, Defaults())
}

// timeMachineRecord is the persisted shape of the time machine state.
// Only the date is stored; Active is derived on load.
type timeMachineRecord struct {
	Date string `json:"date"` // 2006-01-02
}

// TimeMachine returns the current time machine state. Inactive (and
// zero-dated) when nothing is stored or the record is corrupt.
func (m *Manager) TimeMachine(ctx context.Context) TimeMachineDate {
	raw, ok, err := m.kv.Get(ctx, timeMachineKey)
	if err != nil || !ok {
		return TimeMachineDate{}
	}

	var rec timeMachineRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		m.log.Warn().Err(err).Msg("corrupt time machine record")
		return TimeMachineDate{}
	}
	d, err := time.Parse("2006-01-02", rec.Date)
	if err != nil {
		m.log.Warn().Err(err).Msg("corrupt time machine date")
		return TimeMachineDate{}
	}
	return TimeMachineDate{Date: d, Active: true}
}

// SetTimeMachine activates the time machine at the given date. Date and
// active flag are set together.
func (m *Manager) SetTimeMachine(ctx context.Context, d time.Time) error {
	data, err := json.Marshal(timeMachineRecord{Date: d.Format("2006-01-02")})
	if err != nil {
		return fmt.Errorf("encoding time machine record: %w", err)
	}
	if err := m.kv.Put(ctx, timeMachineKey, string(data)); err != nil {
		return fmt.Errorf("persisting time machine record: %w", err)
	}
	return nil
}

// ClearTimeMachine deactivates the time machine and drops the date.
func (m *Manager) ClearTimeMachine(ctx context.Context) error {
	if err := m.kv.Delete(ctx, timeMachineKey); err != nil {
		return fmt.Errorf("clearing time machine record: %w", err)
	}
	return nil
}
