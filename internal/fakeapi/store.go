package fakeapi

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/achievo/internal/client/models"
	"github.com/dmitrijs2005/achievo/internal/common"
)

const (
	otpTTL          = 10 * time.Minute
	purposeRegister = "registration"
	purposeReset    = "password_reset"
)

var (
	errEmailTaken     = errors.New("email already registered")
	errBadCredentials = errors.New("incorrect email or password")
)

type userRecord struct {
	models.User
	hash          []byte
	tier          string
	emailVerified bool
}

type otpRecord struct {
	code    string
	expires time.Time
	used    bool
}

// table keeps rows of one resource kind keyed by id.
type table[T any] struct {
	rows map[int64]*T
	next int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[int64]*T{}}
}

func (t *table[T]) insert(build func(id int64) T) T {
	t.next++
	row := build(t.next)
	t.rows[t.next] = &row
	return row
}

// list returns matching rows ordered by id.
func (t *table[T]) list(keep func(*T) bool) []T {
	ids := make([]int64, 0, len(t.rows))
	for id, row := range t.rows {
		if keep == nil || keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, *t.rows[id])
	}
	return out
}

func (t *table[T]) count(keep func(*T) bool) int {
	n := 0
	for _, row := range t.rows {
		if keep(row) {
			n++
		}
	}
	return n
}

// memoryStore is the whole backend state. Every method takes the lock, so
// handlers never see a half-applied change.
type memoryStore struct {
	mu  sync.Mutex
	now func() time.Time

	users        *table[userRecord]
	achievements *table[models.Achievement]
	categories   *table[models.Category]
	skills       *table[models.Skill]
	goals        *table[models.Goal]

	// otps is keyed by purpose + ":" + lower-cased email.
	otps map[string]otpRecord
}

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{
		now:          now,
		users:        newTable[userRecord](),
		achievements: newTable[models.Achievement](),
		categories:   newTable[models.Category](),
		skills:       newTable[models.Skill](),
		goals:        newTable[models.Goal](),
		otps:         map[string]otpRecord{},
	}
}

func (s *memoryStore) stamp() models.Timestamp {
	return models.NewTimestamp(s.now().UTC())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// users

func (s *memoryStore) findByEmailLocked(email string) *userRecord {
	email = normalizeEmail(email)
	for _, u := range s.users.rows {
		if normalizeEmail(u.Email) == email {
			return u
		}
	}
	return nil
}

func (s *memoryStore) createUser(email, password, fullName string, superuser, verified bool) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByEmailLocked(email) != nil {
		return models.User{}, errEmailTaken
	}

	now := s.stamp()
	rec := s.users.insert(func(id int64) userRecord {
		return userRecord{
			User: models.User{
				ID:          id,
				Email:       strings.TrimSpace(email),
				FullName:    fullName,
				IsActive:    true,
				IsSuperuser: superuser,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			hash:          hash,
			tier:          "free",
			emailVerified: verified,
		}
	})
	return rec.User, nil
}

// authenticate returns the user even when inactive; the caller decides.
func (s *memoryStore) authenticate(email, password string) (models.User, error) {
	s.mu.Lock()
	u := s.findByEmailLocked(email)
	var hash []byte
	var user models.User
	if u != nil {
		hash, user = u.hash, u.User
	}
	s.mu.Unlock()

	if u == nil || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return models.User{}, errBadCredentials
	}
	return user, nil
}

func (s *memoryStore) userByID(id int64) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.rows[id]
	if !ok {
		return models.User{}, false
	}
	return u.User, true
}

func (s *memoryStore) emailExists(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByEmailLocked(email) != nil
}

func (s *memoryStore) updateProfile(id int64, in models.ProfileUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.rows[id]
	if !ok {
		return models.User{}, common.ErrorNotFound
	}
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	u.UpdatedAt = s.stamp()
	return u.User, nil
}

func (s *memoryStore) checkPassword(id int64, password string) bool {
	s.mu.Lock()
	u, ok := s.users.rows[id]
	var hash []byte
	if ok {
		hash = u.hash
	}
	s.mu.Unlock()

	return ok && bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

func (s *memoryStore) setPassword(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findByEmailLocked(email)
	if u == nil {
		return common.ErrorNotFound
	}
	u.hash = hash
	u.UpdatedAt = s.stamp()
	return nil
}

// otp

func otpKey(purpose, email string) string {
	return purpose + ":" + normalizeEmail(email)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// issueOTP replaces any pending code for the same purpose and email.
func (s *memoryStore) issueOTP(purpose, email string) (string, error) {
	code, err := generateOTP()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.otps[otpKey(purpose, email)] = otpRecord{code: code, expires: s.now().Add(otpTTL)}
	return code, nil
}

// consumeOTP reports whether code is the pending, unexpired code and marks
// it used.
func (s *memoryStore) consumeOTP(purpose, email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := otpKey(purpose, email)
	rec, ok := s.otps[key]
	if !ok || rec.used || rec.code != code || !s.now().Before(rec.expires) {
		return false
	}
	rec.used = true
	s.otps[key] = rec
	return true
}

func (s *memoryStore) pendingOTP(purpose, email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.otps[otpKey(purpose, email)]
	if !ok || rec.used {
		return "", false
	}
	return rec.code, true
}

// admin

func (s *memoryStore) adminViewLocked(u *userRecord) models.UserAdmin {
	uid := u.ID

	return models.UserAdmin{
		ID:               u.ID,
		Email:            u.Email,
		FullName:         u.FullName,
		IsActive:         u.IsActive,
		IsSuperuser:      u.IsSuperuser,
		SubscriptionTier: u.tier,
		IsEmailVerified:  u.emailVerified,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
		AchievementCount: s.achievements.count(func(a *models.Achievement) bool { return a.UserID == uid }),
		SkillCount:       s.skills.count(func(sk *models.Skill) bool { return sk.UserID == uid }),
		GoalCount:        s.goals.count(func(g *models.Goal) bool { return g.UserID == uid }),
	}
}

func (s *memoryStore) adminUsers(skip, limit int, search string) []models.UserAdmin {
	s.mu.Lock()
	defer s.mu.Unlock()

	search = strings.ToLower(search)
	rows := s.users.list(func(u *userRecord) bool {
		return search == "" ||
			strings.Contains(strings.ToLower(u.Email), search) ||
			strings.Contains(strings.ToLower(u.FullName), search)
	})

	out := make([]models.UserAdmin, 0, len(rows))
	for _, u := range page(rows, skip, limit) {
		out = append(out, s.adminViewLocked(s.users.rows[u.ID]))
	}
	return out
}

func (s *memoryStore) adminUser(id int64) (models.UserAdmin, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.rows[id]
	if !ok {
		return models.UserAdmin{}, false
	}
	return s.adminViewLocked(u), true
}

func (s *memoryStore) adminUpdateUser(id int64, in models.UserAdminUpdate) (models.UserAdmin, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.rows[id]
	if !ok {
		return models.UserAdmin{}, false
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.IsSuperuser != nil {
		u.IsSuperuser = *in.IsSuperuser
	}
	if in.SubscriptionTier != nil {
		u.tier = *in.SubscriptionTier
	}
	if in.IsEmailVerified != nil {
		u.emailVerified = *in.IsEmailVerified
	}
	u.UpdatedAt = s.stamp()
	return s.adminViewLocked(u), true
}

// deleteUser removes the user together with everything they own.
func (s *memoryStore) deleteUser(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users.rows[id]; !ok {
		return false
	}
	delete(s.users.rows, id)
	for k, a := range s.achievements.rows {
		if a.UserID == id {
			delete(s.achievements.rows, k)
		}
	}
	for k, sk := range s.skills.rows {
		if sk.UserID == id {
			delete(s.skills.rows, k)
		}
	}
	for k, g := range s.goals.rows {
		if g.UserID == id {
			delete(s.goals.rows, k)
		}
	}
	return true
}

func (s *memoryStore) stats() models.SystemStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now().UTC().Format("2006-01-02")
	st := models.SystemStats{
		TotalUsers:        len(s.users.rows),
		TotalAchievements: len(s.achievements.rows),
		TotalSkills:       len(s.skills.rows),
		TotalGoals:        len(s.goals.rows),
	}
	for _, u := range s.users.rows {
		if u.IsActive {
			st.ActiveUsers++
		}
		if u.emailVerified {
			st.VerifiedUsers++
		}
		if u.tier == "pro" {
			st.ProUsers++
		}
		if u.CreatedAt.UTC().Format("2006-01-02") == today {
			st.UsersCreatedToday++
		}
	}
	return st
}

// growth returns one point per day from today-days to today inclusive.
func (s *memoryStore) growth(days int) []models.GrowthDataPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	end := s.now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -days)

	perDay := map[string]int{}
	total := 0
	for _, u := range s.users.rows {
		created := u.CreatedAt.UTC()
		if created.Before(start) {
			total++
			continue
		}
		perDay[created.Format("2006-01-02")]++
	}

	out := make([]models.GrowthDataPoint, 0, days+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		total += perDay[key]
		out = append(out, models.GrowthDataPoint{Date: key, NewUsers: perDay[key], TotalUsers: total})
	}
	return out
}

func (s *memoryStore) adminAchievements(skip, limit int) []models.AdminAchievement {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := page(s.achievements.list(nil), skip, limit)
	out := make([]models.AdminAchievement, 0, len(rows))
	for _, a := range rows {
		item := models.AdminAchievement{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			UserID:      a.UserID,
			IsPublic:    a.IsPublic,
			CreatedAt:   a.CreatedAt,
		}
		if u, ok := s.users.rows[a.UserID]; ok {
			item.UserEmail = u.Email
		}
		out = append(out, item)
	}
	return out
}

func page[T any](rows []T, skip, limit int) []T {
	skip = max(skip, 0)
	if skip >= len(rows) {
		return rows[:0]
	}
	rows = rows[skip:]
	if limit >= 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
