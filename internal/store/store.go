// Package store keeps analysis, deployment, document, and user records
// in memory. Records are keyed by generated UUIDs and survive only for
// the process lifetime.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"archcost/internal/analysis"
	"archcost/internal/deploy"
	"archcost/internal/docgen"
	"archcost/internal/estimate"
)

// AnalysisRecord pairs a diagram analysis with the estimate computed
// from it.
type AnalysisRecord struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	FileName  string             `json:"file_name,omitempty"`
	Analysis  *analysis.Analysis `json:"analysis"`
	Breakdown estimate.Breakdown `json:"breakdown"`
}

// DeploymentRecord tracks one simulated deployment.
type DeploymentRecord struct {
	ID         string    `json:"id"`
	AnalysisID string    `json:"analysis_id"`
	CreatedAt  time.Time `json:"created_at"`

	Tracker *deploy.Tracker `json:"-"`
}

// DocumentRecord holds one generated document and its outcome.
type DocumentRecord struct {
	ID         string              `json:"id"`
	AnalysisID string              `json:"analysis_id"`
	CreatedAt  time.Time           `json:"created_at"`
	Type       docgen.DocumentType `json:"type"`
	Status     docgen.Status       `json:"status"`
	Filename   string              `json:"filename,omitempty"`
	Content    []byte              `json:"-"`

	// seq orders documents created in the same clock tick.
	seq uint64
}

// UserRecord identifies a registered user of the service.
type UserRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
}

// Store is the in-memory record set. All methods are safe for
// concurrent use.
type Store struct {
	mu          sync.RWMutex
	analyses    map[string]AnalysisRecord
	deployments map[string]DeploymentRecord
	documents   map[string]DocumentRecord
	users       map[string]UserRecord
	docSeq      uint64

	now   func() time.Time
	newID func() string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		analyses:    make(map[string]AnalysisRecord),
		deployments: make(map[string]DeploymentRecord),
		documents:   make(map[string]DocumentRecord),
		users:       make(map[string]UserRecord),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// CreateAnalysis stores a new analysis record and returns it with its
// generated id and timestamp filled in.
func (s *Store) CreateAnalysis(rec AnalysisRecord) AnalysisRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.newID()
	rec.CreatedAt = s.now()
	s.analyses[rec.ID] = rec
	return rec
}

// GetAnalysis looks up an analysis record by id.
func (s *Store) GetAnalysis(id string) (AnalysisRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.analyses[id]
	return rec, ok
}

// CreateDeployment stores a deployment record.
func (s *Store) CreateDeployment(rec DeploymentRecord) DeploymentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.newID()
	rec.CreatedAt = s.now()
	s.deployments[rec.ID] = rec
	return rec
}

// GetDeployment looks up a deployment record by id.
func (s *Store) GetDeployment(id string) (DeploymentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.deployments[id]
	return rec, ok
}

// CreateDocument stores a generated document record.
func (s *Store) CreateDocument(rec DocumentRecord) DocumentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.newID()
	rec.CreatedAt = s.now()
	s.docSeq++
	rec.seq = s.docSeq
	s.documents[rec.ID] = rec
	return rec
}

// GetDocument looks up a document record by id.
func (s *Store) GetDocument(id string) (DocumentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.documents[id]
	return rec, ok
}

// ListDocumentsByAnalysis returns every document generated for an
// analysis, oldest first.
func (s *Store) ListDocumentsByAnalysis(analysisID string) []DocumentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []DocumentRecord
	for _, rec := range s.documents {
		if rec.AnalysisID == analysisID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// CreateUser stores a user record.
func (s *Store) CreateUser(rec UserRecord) UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.newID()
	rec.CreatedAt = s.now()
	s.users[rec.ID] = rec
	return rec
}

// GetUser looks up a user record by id.
func (s *Store) GetUser(id string) (UserRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[id]
	return rec, ok
}

// DeleteAnalysis removes an analysis record. Documents and deployments
// that reference it are kept; their analysis id simply dangles.
func (s *Store) DeleteAnalysis(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.analyses[id]; !ok {
		return false
	}
	delete(s.analyses, id)
	return true
}
