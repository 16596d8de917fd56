package data

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stratum01/parliment-watch-sub000/src/pwapi/types"
)

// ErrNotFound covers both "never fetched" and "expired and purged"; readers
// that care about the difference do not exist yet.
var ErrNotFound = errors.New("record not found")

// Store owns the durable vote/bill/member records. All writes go through
// natural-key upserts, so repeated refreshes never create duplicate rows and
// concurrent runs of the same job are absorbed by the uniqueness constraint.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// UpsertVote writes a vote keyed on (number, session). horizon sets the
// record's expiry from now; last_updated is bumped on every call.
func (s *Store) UpsertVote(v *types.Vote, horizon time.Duration) error {
	v.ExpiresAt = s.now().Add(horizon)
	v.LastUpdated = s.now()
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "number"}, {Name: "session"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"date", "result", "yea_total", "nay_total", "paired_total",
			"description_en", "description_fr", "url", "bill_url", "bill_number",
			"party_votes", "ballots", "raw", "expires_at", "last_updated",
		}),
	}).Create(v).Error
	if err != nil {
		return fmt.Errorf("upsert vote %d/%s: %w", v.Number, v.Session, err)
	}
	return nil
}

// UpsertBill writes a bill keyed on (number, session).
func (s *Store) UpsertBill(b *types.Bill, horizon time.Duration) error {
	b.ExpiresAt = s.now().Add(horizon)
	b.LastUpdated = s.now()
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "number"}, {Name: "session"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"introduced_date", "name_en", "name_fr", "legisinfo_id", "url",
			"status", "sponsor_url", "summary", "text_url", "law_url",
			"events", "raw", "expires_at", "last_updated",
		}),
	}).Create(b).Error
	if err != nil {
		return fmt.Errorf("upsert bill %s/%s: %w", b.Number, b.Session, err)
	}
	return nil
}

// UpsertMember writes a member keyed on its canonical source URL.
func (s *Store) UpsertMember(m *types.Member, horizon time.Duration) error {
	m.ExpiresAt = s.now().Add(horizon)
	m.LastUpdated = s.now()
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "party", "constituency", "province", "photo_url",
			"email", "phone", "roles", "offices", "raw", "expires_at", "last_updated",
		}),
	}).Create(m).Error
	if err != nil {
		return fmt.Errorf("upsert member %s: %w", m.URL, err)
	}
	return nil
}

func (s *Store) FindVote(session string, number int) (*types.Vote, error) {
	var v types.Vote
	err := s.db.Where("session = ? AND number = ?", session, number).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) FindBill(session, number string) (*types.Bill, error) {
	var b types.Bill
	err := s.db.Where("session = ? AND number = ?", session, number).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) FindMember(url string) (*types.Member, error) {
	var m types.Member
	err := s.db.Where("url = ?", url).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ListVotes(limit, offset int) ([]types.Vote, error) {
	var out []types.Vote
	err := s.db.Order("date DESC, number DESC").Limit(limit).Offset(offset).Find(&out).Error
	return out, err
}

func (s *Store) ListBills(limit, offset int) ([]types.Bill, error) {
	var out []types.Bill
	err := s.db.Order("introduced_date DESC, number DESC").Limit(limit).Offset(offset).Find(&out).Error
	return out, err
}

func (s *Store) ListMembers(limit, offset int) ([]types.Member, error) {
	var out []types.Member
	err := s.db.Order("name ASC").Limit(limit).Offset(offset).Find(&out).Error
	return out, err
}

// DeleteExpired purges every record past its expiry across all three kinds
// and returns how many rows went.
func (s *Store) DeleteExpired() (int64, error) {
	now := s.now()
	var total int64
	for _, model := range []interface{}{&types.Vote{}, &types.Bill{}, &types.Member{}} {
		res := s.db.Where("expires_at < ?", now).Delete(model)
		if res.Error != nil {
			return total, res.Error
		}
		total += res.RowsAffected
	}
	return total, nil
}
