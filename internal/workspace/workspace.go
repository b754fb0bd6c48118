// Package workspace owns the mutable state of one scheduling session: the
// roster, the session grid, the current schedule and its history.
//
// Every change goes through a Workspace method so the schedule always covers
// exactly the current buyers and sessions. A Workspace is not safe for
// concurrent use.
package workspace

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/matchmaker/internal/db"
	"github.com/javiermolinar/matchmaker/internal/event"
	"github.com/javiermolinar/matchmaker/internal/exchange"
	"github.com/javiermolinar/matchmaker/internal/roster"
	"github.com/javiermolinar/matchmaker/internal/schedule"
	"github.com/javiermolinar/matchmaker/internal/scheduler"
	"github.com/javiermolinar/matchmaker/internal/sessions"
	"github.com/javiermolinar/matchmaker/internal/summary"
)

// Workspace coordinates roster changes, allocation runs, manual edits and
// undo/redo.
type Workspace struct {
	settings   event.Settings
	sessions   []event.Session
	settingRev int

	roster    *roster.Roster
	current   *schedule.Schedule
	history   *schedule.History
	scheduler *scheduler.Scheduler
	log       zerolog.Logger

	memo conflictMemo
}

type conflictMemo struct {
	schedule   *schedule.Schedule
	rosterRev  int
	settingRev int
	value      schedule.Conflicts
	valid      bool
}

// Option configures a Workspace.
type Option func(*options)

type options struct {
	log          zerolog.Logger
	shuffler     scheduler.Shuffler
	historyLimit int
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithShuffler sets the allocator's randomness. The default is an unseeded PCG.
func WithShuffler(s scheduler.Shuffler) Option {
	return func(o *options) { o.shuffler = s }
}

// WithHistoryLimit bounds the number of undo snapshots.
func WithHistoryLimit(n int) Option {
	return func(o *options) { o.historyLimit = n }
}

// New creates a workspace over r and commits the empty schedule as the
// baseline snapshot.
func New(settings event.Settings, r *roster.Roster, opts ...Option) (*Workspace, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session settings: %w", err)
	}
	if r == nil {
		r = roster.New(roster.DefaultRules())
	}

	o := options{
		log:          zerolog.Nop(),
		historyLimit: schedule.DefaultMaxHistory,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.shuffler == nil {
		o.shuffler = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	w := &Workspace{
		settings:  settings,
		sessions:  sessions.All(settings),
		roster:    r,
		history:   schedule.NewHistory(o.historyLimit),
		scheduler: scheduler.New(o.shuffler),
		log:       o.log.With().Str("component", "workspace").Logger(),
	}
	w.current = schedule.New(r.Buyers(), w.sessions)
	w.history.Commit(w.current)
	return w, nil
}

// Settings returns the session timing in force.
func (w *Workspace) Settings() event.Settings {
	return w.settings
}

// Sessions returns the session grid sorted by block then start time.
func (w *Workspace) Sessions() []event.Session {
	return append([]event.Session(nil), w.sessions...)
}

// Schedule returns a copy of the current schedule.
func (w *Workspace) Schedule() *schedule.Schedule {
	return w.current.Clone()
}

// Buyers returns the buyers in insertion order.
func (w *Workspace) Buyers() []event.Buyer {
	return w.roster.Buyers()
}

// Sellers returns the sellers in insertion order.
func (w *Workspace) Sellers() []event.Seller {
	return w.roster.Sellers()
}

// Preferences returns a buyer's preference list.
func (w *Workspace) Preferences(buyerID string) event.Preferences {
	return w.roster.Preferences(buyerID)
}

// FindBuyer looks a buyer up by name, ignoring case.
func (w *Workspace) FindBuyer(name string) (event.Buyer, bool) {
	return w.roster.FindBuyer(name)
}

// FindSeller looks a seller up by name, ignoring case.
func (w *Workspace) FindSeller(name string) (event.Seller, bool) {
	return w.roster.FindSeller(name)
}

// EventFile captures the roster as an event file.
func (w *Workspace) EventFile() *roster.File {
	return roster.ToFile(w.roster)
}

// AddBuyer adds a buyer and gives it an empty row.
func (w *Workspace) AddBuyer(name, country string, block event.Block) (event.Buyer, error) {
	b, err := w.roster.AddBuyer(name, country, block)
	if err != nil {
		w.log.Info().Err(err).Str("buyer", name).Msg("buyer rejected")
		return event.Buyer{}, err
	}
	w.reconcile()
	w.log.Debug().Str("buyer", b.Name).Str("block", string(b.Block)).Msg("buyer added")
	return b, nil
}

// RemoveBuyer drops a buyer, its preferences and its row.
func (w *Workspace) RemoveBuyer(id string) error {
	if err := w.roster.RemoveBuyer(id); err != nil {
		return err
	}
	w.reconcile()
	w.log.Debug().Str("buyer_id", id).Msg("buyer removed")
	return nil
}

// AddSeller adds a seller to the roster.
func (w *Workspace) AddSeller(name string) (event.Seller, error) {
	s, err := w.roster.AddSeller(name)
	if err != nil {
		w.log.Info().Err(err).Str("seller", name).Msg("seller rejected")
		return event.Seller{}, err
	}
	return s, nil
}

// RemoveSeller drops a seller, unsets it in every preference list and
// empties every cell it held. The cleared schedule is committed only if a
// cell changed.
func (w *Workspace) RemoveSeller(id string) error {
	if _, err := w.roster.RemoveSeller(id); err != nil {
		return err
	}
	if cleared, changed := w.current.ClearSeller(id); changed {
		w.commit(cleared, "remove seller")
	}
	w.log.Debug().Str("seller_id", id).Msg("seller removed")
	return nil
}

// ImportSellers parses a seller list and merges the names not already
// present. It returns the new sellers and how many names were skipped.
func (w *Workspace) ImportSellers(text string) ([]event.Seller, int) {
	added, dups := w.roster.MergeNames(exchange.ParseSellerNames(text))
	w.log.Info().Int("added", len(added)).Int("duplicates", dups).Msg("sellers imported")
	return added, dups
}

// SetPreferences saves a buyer's ranked sellers.
func (w *Workspace) SetPreferences(buyerID string, p event.Preferences) error {
	if err := w.roster.SetPreferences(buyerID, p); err != nil {
		w.log.Info().Err(err).Str("buyer_id", buyerID).Msg("preferences rejected")
		return err
	}
	return nil
}

// UpdateSettings rebuilds the session grid and reconciles the schedule.
func (w *Workspace) UpdateSettings(st event.Settings) error {
	if err := st.Validate(); err != nil {
		return event.Reject("update settings", err)
	}
	w.settings = st
	w.sessions = sessions.All(st)
	w.settingRev++
	w.reconcile()
	return nil
}

// AutoSchedule replaces the schedule with a fresh allocation and commits it.
func (w *Workspace) AutoSchedule() ([]event.Warning, error) {
	buyers := w.roster.Buyers()
	if len(buyers) == 0 {
		return nil, event.Reject("auto-schedule", event.ErrNoBuyers)
	}

	res, err := w.scheduler.Run(scheduler.Input{
		Buyers:      buyers,
		Sessions:    w.sessions,
		Preferences: w.roster.AllPreferences(),
		Sellers:     w.roster.Sellers(),
	})
	if err != nil {
		return nil, fmt.Errorf("auto-schedule: %w", err)
	}

	for _, warning := range res.Warnings {
		w.log.Warn().
			Str("kind", string(warning.Kind)).
			Str("buyer", warning.BuyerName).
			Msg(warning.String())
	}
	w.commit(res.Schedule, "auto-schedule")
	w.log.Info().Int("filled", res.Schedule.Filled()).Msg("auto-schedule done")
	return res.Warnings, nil
}

// Move drags the seller in from onto to. Every accepted move is committed,
// including one that leaves the grid as it was.
func (w *Workspace) Move(from, to schedule.Cell) error {
	next, err := schedule.Move(w.current, w.roster.Buyers(), w.sessions, from, to)
	if err != nil {
		w.log.Info().Err(err).Msg("move rejected")
		return err
	}
	w.commit(next, "move")
	return nil
}

// Undo restores the previous snapshot, fitted to the current roster and grid.
// Sellers removed since the snapshot was taken come back as empty cells.
func (w *Workspace) Undo() bool {
	s, ok := w.history.Undo()
	if !ok {
		return false
	}
	w.restore(s)
	w.log.Debug().Int("cursor", w.history.Cursor()).Msg("undo")
	return true
}

// Redo restores the next snapshot, fitted to the current roster and grid.
func (w *Workspace) Redo() bool {
	s, ok := w.history.Redo()
	if !ok {
		return false
	}
	w.restore(s)
	w.log.Debug().Int("cursor", w.history.Cursor()).Msg("redo")
	return true
}

// CanUndo reports whether Undo would do anything.
func (w *Workspace) CanUndo() bool {
	return w.history.CanUndo()
}

// CanRedo reports whether Redo would do anything.
func (w *Workspace) CanRedo() bool {
	return w.history.CanRedo()
}

// HistoryLen returns the number of stored snapshots.
func (w *Workspace) HistoryLen() int {
	return w.history.Len()
}

// Conflicts returns the double bookings of the current schedule. The result
// is cached until the schedule, roster or grid changes.
func (w *Workspace) Conflicts() schedule.Conflicts {
	m := &w.memo
	if m.valid && m.schedule == w.current && m.rosterRev == w.roster.Revision() && m.settingRev == w.settingRev {
		return m.value
	}
	*m = conflictMemo{
		schedule:   w.current,
		rosterRev:  w.roster.Revision(),
		settingRev: w.settingRev,
		value:      schedule.DetectConflicts(w.current, w.roster.Buyers(), w.sessions),
		valid:      true,
	}
	return m.value
}

// Meeting is one slot a seller holds.
type Meeting struct {
	Buyer   event.Buyer
	Session event.Session
}

// MeetingsForSeller lists the meetings of the seller with the given name,
// matched case-insensitively, sorted by block then start time. Only cells
// inside the buyer's block are reported.
func (w *Workspace) MeetingsForSeller(name string) (event.Seller, []Meeting, error) {
	seller, ok := w.roster.FindSeller(name)
	if !ok {
		return event.Seller{}, nil, fmt.Errorf("%w: %s", event.ErrSellerNotFound, strings.TrimSpace(name))
	}

	var out []Meeting
	for _, b := range w.roster.Buyers() {
		for _, sess := range w.sessions {
			if sess.Block != b.Block {
				continue
			}
			if id, _ := w.current.Get(b.ID, sess.ID); id == seller.ID {
				out = append(out, Meeting{Buyer: b, Session: sess})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Session, out[j].Session
		if a.Block != b.Block {
			return a.Block.Order() < b.Block.Order()
		}
		return event.TimeToMinutes(a.Start) < event.TimeToMinutes(b.Start)
	})
	return seller, out, nil
}

// ScheduledSellers returns, sorted, the names of sellers holding at least
// one cell whose name contains query (case-insensitive). An empty query
// matches every scheduled seller.
func (w *Workspace) ScheduledSellers(query string) []string {
	names := event.SellerNames(w.roster.Sellers())
	query = strings.ToLower(strings.TrimSpace(query))

	seen := make(map[string]bool)
	var out []string
	for _, buyerID := range w.current.BuyerIDs() {
		for _, sellerID := range w.current.SellersOf(buyerID) {
			name, ok := names[sellerID]
			if !ok || seen[name] {
				continue
			}
			if query != "" && !strings.Contains(strings.ToLower(name), query) {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Summary computes fill statistics for the current schedule.
func (w *Workspace) Summary() summary.Summary {
	return summary.Summarize(summary.Input{
		Schedule:    w.current,
		Buyers:      w.roster.Buyers(),
		Sessions:    w.sessions,
		Preferences: w.roster.AllPreferences(),
		Conflicts:   w.Conflicts(),
	})
}

// WriteCSV exports the current schedule.
func (w *Workspace) WriteCSV(out io.Writer) error {
	return exchange.WriteCSV(out, w.current, w.roster.Buyers(), w.roster.Sellers(), w.sessions)
}

// Archiver stores a finished schedule.
type Archiver interface {
	WriteExport(ctx context.Context, exp *db.Export, meetings []db.Meeting) error
}

// ArchiveRecord captures the current schedule as an archive export header
// and its meetings.
func (w *Workspace) ArchiveRecord(label string) (db.Export, []db.Meeting) {
	sum := w.Summary()
	exp := db.Export{
		Label:     label,
		Buyers:    len(w.roster.Buyers()),
		Slots:     sum.Slots(),
		Filled:    sum.Filled(),
		Conflicts: sum.Conflicts,
	}
	return exp, db.MeetingsFrom(w.current, w.roster.Buyers(), w.roster.Sellers(), w.sessions)
}

// Archive writes the current schedule's meetings and fill statistics to a.
func (w *Workspace) Archive(ctx context.Context, a Archiver, label string) (db.Export, error) {
	exp, meetings := w.ArchiveRecord(label)
	if err := a.WriteExport(ctx, &exp, meetings); err != nil {
		return db.Export{}, fmt.Errorf("archiving schedule: %w", err)
	}
	w.log.Info().Int64("export_id", exp.ID).Int("meetings", len(meetings)).Msg("schedule archived")
	return exp, nil
}

func (w *Workspace) reconcile() {
	w.current = schedule.Reconcile(w.current, w.roster.Buyers(), w.sessions)
}

// restore makes a history snapshot current without committing it.
func (w *Workspace) restore(s *schedule.Schedule) {
	s = schedule.Reconcile(s, w.roster.Buyers(), w.sessions)
	known := make(map[string]bool)
	for _, seller := range w.roster.Sellers() {
		known[seller.ID] = true
	}
	for _, b := range w.roster.Buyers() {
		for _, id := range s.SellersOf(b.ID) {
			if known[id] {
				continue
			}
			if cleared, ok := s.ClearSeller(id); ok {
				w.log.Debug().Str("seller", id).Msg("dropped removed seller from snapshot")
				s = cleared
			}
		}
	}
	w.current = s
}

func (w *Workspace) commit(s *schedule.Schedule, reason string) {
	w.current = s
	w.history.Commit(s)
	w.log.Debug().Str("reason", reason).Int("snapshots", w.history.Len()).Msg("schedule committed")
}
