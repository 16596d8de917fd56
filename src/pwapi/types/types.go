package types

import (
	"encoding/json"
	"time"
)

// Recorded divisions
type Vote struct {
	ID            uint64    `gorm:"primaryKey" json:"-"`
	Number        int       `gorm:"uniqueIndex:idx_votes_number_session;not null" json:"number"`
	Session       string    `gorm:"uniqueIndex:idx_votes_number_session;size:16;not null" json:"session"`
	Date          string    `gorm:"size:10" json:"date"`
	Result        string    `gorm:"size:32" json:"result"`
	YeaTotal      int       `gorm:"default:0" json:"yea_total"`
	NayTotal      int       `gorm:"default:0" json:"nay_total"`
	PairedTotal   int       `gorm:"default:0" json:"paired_total"`
	DescriptionEn string    `gorm:"type:text" json:"description_en"`
	DescriptionFr string    `gorm:"type:text" json:"description_fr,omitempty"`
	URL           string    `gorm:"size:256" json:"url"`
	BillURL       string    `gorm:"size:256" json:"bill_url,omitempty"`
	BillNumber    string    `gorm:"size:16" json:"bill_number,omitempty"`
	PartyVotes    string    `gorm:"type:text" json:"-"` // JSON []PartyVote
	Ballots       string    `gorm:"type:text" json:"-"` // JSON []Ballot
	Raw           string    `gorm:"type:text" json:"-"`
	ExpiresAt     time.Time `gorm:"index" json:"-"`
	LastUpdated   time.Time `json:"last_updated"`
}

// MarshalJSON serves the decoded tallies and ballots instead of the raw
// storage columns.
func (v Vote) MarshalJSON() ([]byte, error) {
	type alias Vote
	return json.Marshal(struct {
		alias
		PartyVotes []PartyVote `json:"party_votes,omitempty"`
		Ballots    []Ballot    `json:"ballots,omitempty"`
	}{alias(v), v.PartyVoteList(), v.BallotList()})
}

// Legislation
type Bill struct {
	ID             uint64    `gorm:"primaryKey" json:"-"`
	Number         string    `gorm:"uniqueIndex:idx_bills_number_session;size:16;not null" json:"number"`
	Session        string    `gorm:"uniqueIndex:idx_bills_number_session;size:16;not null" json:"session"`
	IntroducedDate string    `gorm:"size:10" json:"introduced"`
	NameEn         string    `gorm:"type:text" json:"name_en"`
	NameFr         string    `gorm:"type:text" json:"name_fr,omitempty"`
	LegisinfoID    int64     `gorm:"default:0" json:"legisinfo_id,omitempty"`
	URL            string    `gorm:"size:256" json:"url"`
	Status         string    `gorm:"size:64" json:"status"` // free-text stage label, not a closed set
	SponsorURL     string    `gorm:"size:256" json:"sponsor_politician_url,omitempty"`
	Summary        string    `gorm:"type:text" json:"summary,omitempty"`
	TextURL        string    `gorm:"size:256" json:"text_url,omitempty"`
	LawURL         string    `gorm:"size:256" json:"law_url,omitempty"`
	Events         string    `gorm:"type:text" json:"-"` // JSON []BillEvent
	Raw            string    `gorm:"type:text" json:"-"`
	ExpiresAt      time.Time `gorm:"index" json:"-"`
	LastUpdated    time.Time `json:"last_updated"`
}

func (b Bill) MarshalJSON() ([]byte, error) {
	type alias Bill
	return json.Marshal(struct {
		alias
		Events []BillEvent `json:"events,omitempty"`
	}{alias(b), b.EventList()})
}

// Legislators, keyed by canonical source URL
type Member struct {
	ID           uint64    `gorm:"primaryKey" json:"-"`
	URL          string    `gorm:"uniqueIndex;size:256;not null" json:"url"`
	Name         string    `gorm:"size:128" json:"name"`
	Party        string    `gorm:"size:64" json:"party"`
	Constituency string    `gorm:"size:128" json:"constituency"`
	Province     string    `gorm:"size:8" json:"province"`
	PhotoURL     string    `gorm:"size:256" json:"photo_url,omitempty"`
	Email        string    `gorm:"size:128" json:"email,omitempty"`
	Phone        string    `gorm:"size:32" json:"phone,omitempty"`
	Roles        string    `gorm:"type:text" json:"-"` // JSON []string
	Offices      string    `gorm:"type:text" json:"-"` // JSON []Office
	Raw          string    `gorm:"type:text" json:"-"`
	ExpiresAt    time.Time `gorm:"index" json:"-"`
	LastUpdated  time.Time `json:"last_updated"`
}

func (m Member) MarshalJSON() ([]byte, error) {
	type alias Member
	return json.Marshal(struct {
		alias
		Roles   []string `json:"roles,omitempty"`
		Offices []Office `json:"offices,omitempty"`
	}{alias(m), m.RoleList(), m.OfficeList()})
}

// PartyVote is one party's tally on a division.
type PartyVote struct {
	Party       string `json:"party"`
	Vote        string `json:"vote"`
	DisagreePct string `json:"disagreement,omitempty"`
}

// Ballot is one member's recorded position on a division.
type Ballot struct {
	PoliticianURL string `json:"politician_url,omitempty"`
	VoteURL       string `json:"vote_url,omitempty"`
	Ballot        string `json:"ballot"`
}

// BillEvent is one legislative stage entry for a bill.
type BillEvent struct {
	Date        string `json:"date"`
	Status      string `json:"status"`
	Institution string `json:"institution"`
}

// Office is a member's constituency or parliament office.
type Office struct {
	Type   string `json:"type"`
	Postal string `json:"postal,omitempty"`
	Tel    string `json:"tel,omitempty"`
	Fax    string `json:"fax,omitempty"`
}

// MarshalList encodes a slice for storage in a JSON text column.
// A nil or empty slice stores as an empty string rather than "null".
func MarshalList(v interface{}) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(b) == "null" || string(b) == "[]" {
		return "", nil
	}
	return string(b), nil
}

func decodeList[T any](raw string) []T {
	if raw == "" {
		return nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

// BallotList decodes the stored per-member ballots, if any.
func (v Vote) BallotList() []Ballot { return decodeList[Ballot](v.Ballots) }

// PartyVoteList decodes the stored per-party tallies, if any.
func (v Vote) PartyVoteList() []PartyVote { return decodeList[PartyVote](v.PartyVotes) }

// EventList decodes the stored legislative events, if any.
func (b Bill) EventList() []BillEvent { return decodeList[BillEvent](b.Events) }

// RoleList decodes the stored role labels, if any.
func (m Member) RoleList() []string { return decodeList[string](m.Roles) }

// OfficeList decodes the stored office records, if any.
func (m Member) OfficeList() []Office { return decodeList[Office](m.Offices) }
