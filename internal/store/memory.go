package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush/employee-admin/internal/apperr"
	"github.com/ayush/employee-admin/internal/models"
)

// MemoryStore is an in-process employee store with the same uniqueness rules as
// the MongoDB indexes.
type MemoryStore struct {
	lock      sync.RWMutex
	employees map[primitive.ObjectID]models.Employee
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{employees: make(map[primitive.ObjectID]models.Employee)}
}

func (s *MemoryStore) Insert(_ context.Context, e *models.Employee) (*models.Employee, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	doc := *e
	doc.ID = primitive.NewObjectID()
	if s.duplicate(&doc) {
		return nil, apperr.New(apperr.Conflict, msgEmployeeDuplicate)
	}
	s.employees[doc.ID] = doc
	return &doc, nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.Employee, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	out := make([]models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id string) (*models.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errEmployeeNotFound
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	e, ok := s.employees[oid]
	if !ok {
		return nil, errEmployeeNotFound
	}
	return &e, nil
}

func (s *MemoryStore) Update(_ context.Context, e *models.Employee) (*models.Employee, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.employees[e.ID]; !ok {
		return nil, errEmployeeNotFound
	}
	if s.duplicate(e) {
		return nil, apperr.New(apperr.Conflict, msgEmployeeDuplicate)
	}
	s.employees[e.ID] = *e
	doc := *e
	return &doc, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) (*models.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errEmployeeNotFound
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	e, ok := s.employees[oid]
	if !ok {
		return nil, errEmployeeNotFound
	}
	delete(s.employees, oid)
	return &e, nil
}

// duplicate reports whether another record already uses e's email or mobile number.
// Callers hold the lock.
func (s *MemoryStore) duplicate(e *models.Employee) bool {
	for id, other := range s.employees {
		if id == e.ID {
			continue
		}
		if other.Email == e.Email || other.MobileNo == e.MobileNo {
			return true
		}
	}
	return false
}

// MemoryCredentialStore is an in-process credential store.
type MemoryCredentialStore struct {
	lock        sync.RWMutex
	credentials map[string]models.Credential
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{credentials: make(map[string]models.Credential)}
}

func (s *MemoryCredentialStore) FindByUsername(_ context.Context, username string) (*models.Credential, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	c, ok := s.credentials[username]
	if !ok {
		return nil, errCredentialNotFound
	}
	return &c, nil
}

func (s *MemoryCredentialStore) Upsert(_ context.Context, username, passwordHash string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	c, ok := s.credentials[username]
	if !ok {
		c = models.Credential{ID: uuid.NewString(), Username: username, CreatedAt: time.Now()}
	}
	c.PasswordHash = passwordHash
	s.credentials[username] = c
	return nil
}

// Remove deletes username; used to simulate account removal.
func (s *MemoryCredentialStore) Remove(username string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.credentials, username)
}
