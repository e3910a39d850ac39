package uistate

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/drovic/drovic-backend/internal/domain"
)

var (
	ErrDownloadInProgress = errors.New("download already in progress")
	ErrNothingPending     = errors.New("no download awaiting confirmation")
)

// EventDownloadProgress is emitted when an asset enters or leaves "in progress"
const EventDownloadProgress = "download.progress"

// DownloadEvent reports a change of an asset's in-progress mark
type DownloadEvent struct {
	Type       string `json:"type"`
	AssetID    int64  `json:"asset_id"`
	InProgress bool   `json:"in_progress"`
}

// DownloadState is a snapshot of the flow
type DownloadState struct {
	Pending    *domain.Asset `json:"pending,omitempty"`
	PromptOpen bool          `json:"prompt_open"`
	InProgress []int64       `json:"in_progress"`
}

// DownloadFlow is the two-step simulated download: Initiate opens a confirmation
// prompt, Confirm marks the asset in progress and clears the mark after a fixed
// delay. No file is transferred.
type DownloadFlow struct {
	mu         sync.Mutex
	clock      Clock
	delay      time.Duration
	toaster    *Toaster
	msgs       Messages
	pending    *domain.Asset
	inProgress map[int64]Timer
	onChange   func(DownloadEvent)
	closed     bool
}

// NewDownloadFlow creates a DownloadFlow reporting through toaster. onChange may be nil.
func NewDownloadFlow(clock Clock, delay time.Duration, toaster *Toaster, msgs Messages, onChange func(DownloadEvent)) *DownloadFlow {
	if clock == nil {
		clock = RealClock()
	}
	return &DownloadFlow{
		clock:      clock,
		delay:      delay,
		toaster:    toaster,
		msgs:       msgs,
		inProgress: make(map[int64]Timer),
		onChange:   onChange,
	}
}

// Initiate sets the pending asset and opens the confirmation prompt.
// A second Initiate replaces the pending asset.
func (f *DownloadFlow) Initiate(asset *domain.Asset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.inProgress[asset.ID]; busy {
		return ErrDownloadInProgress
	}
	f.pending = asset
	return nil
}

// Cancel closes the prompt without downloading
func (f *DownloadFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = nil
}

// Confirm marks the pending asset in progress and closes the prompt
func (f *DownloadFlow) Confirm() (*domain.Asset, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrNothingPending
	}
	asset := f.pending
	if asset == nil {
		f.mu.Unlock()
		return nil, ErrNothingPending
	}
	if _, busy := f.inProgress[asset.ID]; busy {
		f.pending = nil
		f.mu.Unlock()
		return nil, ErrDownloadInProgress
	}
	f.pending = nil
	id := asset.ID
	f.inProgress[id] = f.clock.AfterFunc(f.delay, func() { f.complete(id) })
	f.mu.Unlock()

	f.emit(DownloadEvent{Type: EventDownloadProgress, AssetID: id, InProgress: true})
	f.toaster.Show(fmt.Sprintf(f.msgs.Downloading, asset.Name), domain.SeveritySuccess)
	return asset, nil
}

func (f *DownloadFlow) complete(id int64) {
	f.mu.Lock()
	if _, ok := f.inProgress[id]; !ok || f.closed {
		f.mu.Unlock()
		return
	}
	delete(f.inProgress, id)
	f.mu.Unlock()

	f.emit(DownloadEvent{Type: EventDownloadProgress, AssetID: id, InProgress: false})
	f.toaster.Show(f.msgs.DownloadComplete, domain.SeveritySuccess)
}

// InProgress reports whether the asset's trigger is disabled
func (f *DownloadFlow) InProgress(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.inProgress[id]
	return ok
}

// State returns a snapshot of the flow
func (f *DownloadFlow) State() DownloadState {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.inProgress))
	for id := range f.inProgress {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return DownloadState{
		Pending:    f.pending,
		PromptOpen: f.pending != nil,
		InProgress: ids,
	}
}

// Close stops every pending completion
func (f *DownloadFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.pending = nil
	for id, t := range f.inProgress {
		t.Stop()
		delete(f.inProgress, id)
	}
}

func (f *DownloadFlow) emit(ev DownloadEvent) {
	if f.onChange != nil {
		f.onChange(ev)
	}
}
