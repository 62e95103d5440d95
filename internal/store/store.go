// Package store is the client-side domain store: five state slices kept
// consistent under concurrent, overlapping and failing network operations.
// Intents are blocking method calls; state transitions commit under one
// store-wide mutex, so mutations serialize and every reader observes a
// single consistent view between any two intents. Network I/O always
// happens outside the lock; when two operations on the same entity race,
// the last response to arrive wins.
package store

import "sync"

// Slice names double as the persistence keys for the hydration wrapper.
const (
	SliceSession      = "auth"
	SliceRequisitions = "jobs"
	SliceJobPosts     = "jobPosts"
	SliceUploads      = "resumes"
	SliceAnalyses     = "resumeAnalysis"
)

// ChangeFunc observes committed snapshots of a slice. It is invoked after
// the mutation lock is released and must not dispatch intents back into
// the store.
type ChangeFunc func(slice string, snapshot any)

// Store aggregates the five slices. Construct it once at application
// start through New; there is no implicit singleton.
type Store struct {
	mu       sync.Mutex
	onChange ChangeFunc
	hydrated bool

	Session      *SessionSlice
	Requisitions *RequisitionSlice
	JobPosts     *JobPostSlice
	Uploads      *UploadSlice
	Analyses     *AnalysisSlice
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithOnChange registers the snapshot observer used by the persistence
// wrapper.
func WithOnChange(fn ChangeFunc) Option {
	return func(s *Store) { s.onChange = fn }
}

// New wires the slices to their gateways. The analysis slice drives the
// upload tracker through the progress-reporter contract; no slice touches
// another slice's internals directly.
func New(auth AuthGateway, requisitions RequisitionGateway, jobPosts JobPostGateway, resumes ResumeGateway, opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}

	s.Session = &SessionSlice{opState: opState{store: s}, gw: auth}
	s.Requisitions = &RequisitionSlice{opState: opState{store: s}, gw: requisitions}
	s.JobPosts = &JobPostSlice{opState: opState{store: s}, gw: jobPosts}
	s.Uploads = &UploadSlice{opState: opState{store: s}, gw: resumes}
	s.Analyses = &AnalysisSlice{opState: opState{store: s}, gw: resumes, report: s.Uploads.RecordProgress}
	return s
}

// Hydrated reports whether the persistence wrapper has finished restoring
// durable state. Consumers should render a neutral loading surface until
// this flips to true.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// MarkHydrated is called by the hydration wrapper once every whitelisted
// slice has been restored.
func (s *Store) MarkHydrated() {
	s.mu.Lock()
	s.hydrated = true
	s.mu.Unlock()
}

// publish hands a committed snapshot to the change observer. Callers must
// not hold the store lock.
func (s *Store) publish(slice string, snapshot any) {
	if s.onChange != nil {
		s.onChange(slice, snapshot)
	}
}

// opState carries the per-slice async bookkeeping shared by every slice:
// the slice-global loading flag (coarse: a fetch and a delete on the same
// slice toggle the same flag) and the last rejection
// message.
type opState struct {
	store     *Store
	isLoading bool
	errMsg    string
}

// begin marks an intent as in flight and clears the previous error.
func (o *opState) begin() {
	o.store.mu.Lock()
	o.isLoading = true
	o.errMsg = ""
	o.store.mu.Unlock()
}

// fail records a rejection. The message is also returned to the caller so
// failure is signalled through the intent itself, not only through the
// shared error field (which a later operation may overwrite).
func (o *opState) fail(err error) error {
	o.store.mu.Lock()
	o.isLoading = false
	o.errMsg = err.Error()
	o.store.mu.Unlock()
	return err
}

// ClearError resets the last error message without other side effects.
func (o *opState) ClearError() {
	o.store.mu.Lock()
	o.errMsg = ""
	o.store.mu.Unlock()
}
