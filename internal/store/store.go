package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fekuna/omnipos-cafeteria-service/internal/apperror"
	"github.com/fekuna/omnipos-cafeteria-service/internal/credential"
	"github.com/fekuna/omnipos-cafeteria-service/internal/logger"
	"github.com/fekuna/omnipos-cafeteria-service/internal/metrics"
	"github.com/fekuna/omnipos-cafeteria-service/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Config struct {
	Path          string
	FileMode      os.FileMode
	AdminUsername string
	AdminPassword string
}

// Store owns every entity and the single document they are persisted to.
// All access goes through View and Update, which share one lock, so a Store
// may be used from several goroutines.
type Store struct {
	mu      sync.RWMutex
	cfg     Config
	data    *Data
	logger  logger.ZapLogger
	metrics *metrics.Metrics
}

// Open loads the document at cfg.Path, creating and seeding it when it does
// not exist yet. m may be nil when save counters are not wanted.
func Open(ctx context.Context, cfg *Config, log logger.ZapLogger, m *metrics.Metrics) (*Store, error) {
	c := *cfg
	if c.FileMode == 0 {
		c.FileMode = 0o644
	}
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
	}
	if c.AdminPassword == "" {
		c.AdminPassword = "admin"
	}

	s := &Store{
		cfg:     c,
		logger:  log.With(zap.String("data_file", c.Path)),
		metrics: m,
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string { return s.cfg.Path }

func (s *Store) load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.cfg.Path)
	if errors.Is(err, os.ErrNotExist) {
		s.data = s.seed()
		s.logger.Info("Data file not found, starting with seeded store")
		return s.writeLocked(ctx, s.data)
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", apperror.ErrPersistence, s.cfg.Path, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: parse %s: %v", apperror.ErrPersistence, s.cfg.Path, err)
	}

	d := newData()
	needsSave := false

	d.Users = doc.Users
	for i := range d.Users {
		u := &d.Users[i]
		if !credential.LooksHashed(u.PasswordHash) {
			u.PasswordHash = credential.Hash(u.PasswordHash)
			needsSave = true
			s.logger.Info("Migrated plaintext password", zap.Int("user_id", u.ID))
		}
		d.Reserve(KindUser, u.ID)
	}

	// A document without a categories array keeps the defaults.
	if doc.Categories == nil {
		d.Categories = defaultCategories()
	} else {
		d.Categories = doc.Categories
	}
	for _, c := range d.Categories {
		d.Reserve(KindCategory, c.ID)
	}

	d.Meals = doc.Meals
	for _, m := range d.Meals {
		d.Reserve(KindMeal, m.ID)
	}

	d.Orders = doc.Orders
	for _, o := range d.Orders {
		d.Reserve(KindOrder, o.ID)
	}

	if len(d.Users) == 0 {
		d.Users = append(d.Users, s.defaultAdmin(d.NextID(KindUser)))
		needsSave = true
		s.logger.Warn("Document has no users, re-seeded default admin")
	}

	s.data = d
	s.logger.Info("Store loaded",
		zap.Int("users", len(d.Users)),
		zap.Int("categories", len(d.Categories)),
		zap.Int("meals", len(d.Meals)),
		zap.Int("orders", len(d.Orders)),
	)

	if needsSave {
		return s.writeLocked(ctx, d)
	}
	return nil
}

func (s *Store) seed() *Data {
	d := newData()
	d.Users = []model.User{s.defaultAdmin(d.NextID(KindUser))}
	d.Categories = defaultCategories()
	for _, c := range d.Categories {
		d.Reserve(KindCategory, c.ID)
	}
	return d
}

func (s *Store) defaultAdmin(id int) model.User {
	return model.User{
		ID:           id,
		Username:     s.cfg.AdminUsername,
		PasswordHash: credential.Hash(s.cfg.AdminPassword),
		Role:         model.RoleAdmin,
		Balance:      decimal.Zero,
	}
}

func defaultCategories() []model.Category {
	cats := make([]model.Category, len(model.DefaultCategoryNames))
	for i, name := range model.DefaultCategoryNames {
		cats[i] = model.Category{ID: i + 1, Name: name}
	}
	return cats
}

// View runs fn with read access to the current state. fn must not retain or
// modify anything it is given.
func (s *Store) View(fn func(*Data) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// Update runs fn on a private copy of the state and persists the result. The
// copy replaces the live state only once it has been written, so an error
// from fn or from the write leaves the store as it was.
func (s *Store) Update(ctx context.Context, fn func(*Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	next := s.data.clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.writeLocked(ctx, next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// NextID hands out the next id for k. It does not persist anything; the
// caller still has to add the entity.
func (s *Store) NextID(k Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.NextID(k)
}

// Save rewrites the document from the current state.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writeLocked(ctx, s.data)
}

func (s *Store) writeLocked(_ context.Context, d *Data) error {
	err := writeJSONFile(s.cfg.Path, d.document(), s.cfg.FileMode)
	s.metrics.ObserveSave(err)
	if err != nil {
		s.logger.Error("Failed to save data file", zap.Error(err))
		return fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
	}
	return nil
}

// writeJSONFile replaces path atomically: the document is written to a temp
// file in the same directory and renamed over the target.
func writeJSONFile(path string, v any, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// WriteJSONFile is the document writer used for exports.
func WriteJSONFile(path string, v any) error {
	if err := writeJSONFile(path, v, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", apperror.ErrPersistence, path, err)
	}
	return nil
}
